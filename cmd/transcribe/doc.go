// Package main hosts the transcribe CLI entrypoint and command graph.
//
// The root command runs the full pipeline on a single input file; the batch,
// deps, and config subcommands cover multi-file runs, external tool checks,
// and configuration scaffolding. This package resolves configuration, layers
// flag overrides, and wires structured logging so the internal packages can
// stay free of terminal concerns.
package main
