// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the chorus CLI.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, and a
// Run function. Commands are assembled into a tree in cmd/chorus/main.go
// and dispatched via [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3). This is implemented in
// suggest.go.
//
// Commands signal a deliberate non-zero exit (as opposed to an error to
// print) by returning [ExitError]; main checks for the ExitCode method
// on returned errors. [ToolError] carries an [ErrorCategory] so
// automation wrapping the CLI can classify failures without parsing
// message text.
package cli
