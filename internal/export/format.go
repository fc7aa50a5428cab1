package export

import (
	"errors"
	"fmt"
	"strings"
)

// Format identifies a serialization of a task collection.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

var (
	// ErrUnsupportedFormat is returned for format names this package does not
	// know, or for formats that cannot be used in the requested direction.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrInvalidPayload is returned when an import payload cannot be decoded.
	ErrInvalidPayload = errors.New("invalid import payload")
)

// ParseFormat converts a format name, case-insensitively. The empty string
// means FormatJSON; "yml" is accepted as FormatYAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// ContentType returns the MIME type used when serving the format.
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	return string(f)
}

// Decodable reports whether the format can be imported.
func (f Format) Decodable() bool {
	return f == FormatJSON || f == FormatYAML
}
