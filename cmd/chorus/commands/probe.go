// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/chorusdoc/chorus/cmd/chorus/cli"
	"github.com/chorusdoc/chorus/lib/document"
	"github.com/chorusdoc/chorus/lib/engine/lww"
)

func probeCommand() *cli.Command {
	var quiet bool

	return &cli.Command{
		Name:    "probe",
		Summary: "Check whether input is a valid binary document",
		Description: `Read bytes from stdin (or a file argument) and report whether they
form a decodable binary document.

Prints "valid" or "invalid" and exits 0 or 1 accordingly. Garbage
input is a normal outcome, not an error: probe never fails on
malformed bytes, it just reports them invalid.`,
		Usage: "chorus probe [flags] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("probe", pflag.ContinueOnError)
			flagSet.BoolVarP(&quiet, "quiet", "q", false, "suppress output, report via exit code only")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Check a file",
				Command:     "chorus probe doc.chorus",
			},
			{
				Description: "Use in a shell conditional",
				Command:     "chorus probe -q doc.chorus && echo ok",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readDocumentArg(args)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return cli.Validation("probe takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}
			return probeDocument(data, os.Stdout, quiet)
		},
	}
}

// probeDocument reports document validity on w and signals the
// verdict through the returned error: nil for valid, ExitError{1}
// for invalid.
func probeDocument(data []byte, w io.Writer, quiet bool) error {
	codec := document.NewCodec(lww.New())
	result := codec.Probe(data)

	if result.Valid() {
		if !quiet {
			fmt.Fprintln(w, "valid")
		}
		return nil
	}

	if !quiet {
		fmt.Fprintln(w, "invalid")
	}
	return &cli.ExitError{Code: 1}
}
