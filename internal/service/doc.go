// Package service implements the application's use cases on top of the
// store interfaces: ordering and filtering of the task collection, the two
// update modes (flags drive the quadrant, or an explicit quadrant drives the
// flags), bulk import and clearing, and publication of lifecycle events.
package service
