// Package logging configures structured logging on top of log/slog.
//
// New builds a *slog.Logger from a logging configuration and installs
// it as the process default, so packages can pick it up with
// slog.Default().With("component", ...).
package logging
