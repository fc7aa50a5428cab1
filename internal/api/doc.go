// Package api handles incoming HTTP requests, request validation, and
// response formatting. It acts as an adapter between HTTP clients and the
// task service, translating service errors into status codes and safe
// messages.
package api
