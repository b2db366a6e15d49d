// Package logging assembles structured slog loggers and the user facing
// console used by the Bilrost CLI.
//
// It owns the configurable console/JSON handlers and centralizes level and
// output plumbing. Console wraps the terminal streams so command results and
// diagnostics can be redirected to a log file with the --output flag without
// each command knowing about it.
package logging
