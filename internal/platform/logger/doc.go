// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels. Request-scoped loggers travel in the context
// (see WithLogger and FromContext) so handlers and services log with the
// request's trace fields.
package logger
