// Package logging configures structured logging for cloudstub.
//
// It is a thin wrapper over log/slog: components accept a *slog.Logger
// and fall back to Nop() when none is supplied. The CLI builds one
// logger from the configured level and format and passes it down.
package logging
