// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/chorusdoc/chorus/cmd/chorus/cli"
	"github.com/chorusdoc/chorus/lib/codec"
	"github.com/chorusdoc/chorus/lib/engine/lww"
)

func inspectCommand() *cli.Command {
	var hexInput bool

	return &cli.Command{
		Name:    "inspect",
		Summary: "Show the envelope header and payload of a binary document",
		Description: `Read a binary document from stdin (or a file argument) and print its
envelope header (format version, compression, sizes, payload digest)
followed by the payload in CBOR diagnostic notation (RFC 8949 §8).

Diagnostic notation preserves the exact wire representation: integer
vs float, byte strings vs text strings, and map key order. This is
the tool to reach for when a document fails to decode and you want
to see what is actually on disk.

With --hex, input is treated as hex-encoded rather than raw binary.
Whitespace in the hex input is ignored.`,
		Usage: "chorus inspect [flags] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
			flagSet.BoolVarP(&hexInput, "hex", "x", false, "treat input as hex-encoded binary")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Inspect a document file",
				Command:     "chorus inspect doc.chorus",
			},
			{
				Description: "Inspect hex-encoded bytes",
				Command:     "xxd -p doc.chorus | chorus inspect --hex",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, hexInput)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return cli.Validation("inspect takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return inspectDocument(data, os.Stdout)
		},
	}
}

// inspectDocument prints the envelope header summary and the payload
// in diagnostic notation.
func inspectDocument(data []byte, w io.Writer) error {
	info, payload, err := lww.Inspect(data)
	if err != nil {
		return cli.Validation("inspect: %v", err)
	}

	fmt.Fprintf(w, "version:      %d\n", info.Version)
	fmt.Fprintf(w, "compression:  %s\n", info.Compression)
	fmt.Fprintf(w, "payload size: %d bytes\n", info.PayloadSize)
	fmt.Fprintf(w, "stored size:  %d bytes\n", info.StoredSize)
	fmt.Fprintf(w, "digest:       %s\n", info.Digest)

	notation, err := codec.Diagnose(payload)
	if err != nil {
		return cli.Internal("diagnose payload: %v", err)
	}
	fmt.Fprintf(w, "payload:      %s\n", notation)
	return nil
}
