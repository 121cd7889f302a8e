// Package logger provides structured logging for the browser using the
// standard library log/slog package. It configures a JSON handler at the
// configured level and carries request-scoped loggers through context.
package logger
