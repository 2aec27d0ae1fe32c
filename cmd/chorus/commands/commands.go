// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete chorus CLI command tree. The
// chorus binary imports this package; command implementations live
// alongside the tree so tests can exercise them without a process
// boundary.
package commands

import (
	"fmt"
	"runtime/debug"

	"github.com/chorusdoc/chorus/cmd/chorus/cli"
)

// Root builds and returns the complete chorus CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "chorus",
		Description: `Chorus: convert JSON documents to and from the chorus binary
document format.

The binary format carries a mergeable edit history alongside the
JSON value, so two copies of a document edited independently can be
reconciled later. Encoding records an actor identity with every
value written; decoding verifies integrity before returning JSON.`,
		Subcommands: []*cli.Command{
			jsonToBinaryCommand(),
			binaryToJSONCommand(),
			probeCommand(),
			inspectCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("chorus %s\n", buildVersion())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Encode a JSON file as a binary document",
				Command:     "chorus json-to-binary doc.json -o doc.chorus",
			},
			{
				Description: "Recover the JSON value",
				Command:     "chorus binary-to-json doc.chorus",
			},
			{
				Description: "Check a file before processing it",
				Command:     "chorus probe -q doc.chorus && chorus binary-to-json doc.chorus",
			},
			{
				Description: "Examine a document that will not decode",
				Command:     "chorus inspect doc.chorus",
			},
		},
	}
}

// buildVersion reports the module version recorded by the Go
// toolchain, or "devel" for source builds.
func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "devel"
}
