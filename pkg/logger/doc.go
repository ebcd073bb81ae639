// Package logger builds configured slog.Logger instances for the
// application. Production gets JSON output for log aggregation, development
// gets text output at debug level. Attribute helpers keep key names
// consistent across packages.
package logger
