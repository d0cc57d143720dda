// Package logger configures the process-wide slog JSON logger from
// config.ServerConfig and threads request-scoped loggers through
// context.Context.
//
// Components derive their logger with a "component" attribute; HTTP requests
// add a trace_id in the trace middleware and retrieve it with
// FromContextOrDefault. TestLogBuffer captures output for assertions.
package logger
