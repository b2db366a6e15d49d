// Package main hosts the Bilrost CLI entrypoint and command table.
//
// Every command is declared once in a static table (commandTable) and turned
// into a Cobra command by buildCommand. Before any action other than help
// runs, the background service is started if needed; workspace-scoped
// commands resolve their identifier from --identifier or from the registered
// workspace enclosing --pwd. Results are printed as indented JSON through the
// console, which --output redirects into a log file.
package main
