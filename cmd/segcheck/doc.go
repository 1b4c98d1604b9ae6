// Package main hosts the segcheck CLI entrypoint and command graph.
//
// The Cobra command tree loads segment and validation exports, runs the
// consensus evaluator and the discrepancy analysis, renders reports, and
// manages the run archive. Configuration and logger construction happen once
// per invocation in commandContext so subcommands only deal with their flags.
//
// Keep this package lean: analysis belongs in the internal packages and is
// surfaced here through commands or flags.
package main
