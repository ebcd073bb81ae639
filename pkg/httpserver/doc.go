// Package httpserver wraps http.Server with graceful shutdown on context
// cancellation or SIGINT/SIGTERM, plus a health endpoint handler that runs
// dependency probes.
package httpserver
