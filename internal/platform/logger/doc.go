// Package logger provides structured logging functionality for the
// application, built on log/slog with a JSON handler. It also carries
// the request-scoped logger through context.Context so handlers and
// services log with the request's correlation attributes attached.
package logger
