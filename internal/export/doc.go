// Package export converts task collections to and from portable files.
//
// JSON and YAML carry the full task shape and can be imported again. CSV is
// a flat spreadsheet view and PDF a printable report grouped by quadrant;
// both are export-only.
package export
