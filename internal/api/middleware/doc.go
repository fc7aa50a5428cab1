// Package middleware holds the HTTP middleware specific to this API:
// request tracing with per-request loggers, and the configurable CORS policy.
package middleware
