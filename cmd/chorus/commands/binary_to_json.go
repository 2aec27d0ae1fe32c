// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/chorusdoc/chorus/cmd/chorus/cli"
	"github.com/chorusdoc/chorus/lib/config"
	"github.com/chorusdoc/chorus/lib/docstore"
	"github.com/chorusdoc/chorus/lib/document"
	"github.com/chorusdoc/chorus/lib/engine/lww"
)

func binaryToJSONCommand() *cli.Command {
	var (
		actor      string
		compact    bool
		output     string
		configPath string
	)

	return &cli.Command{
		Name:    "binary-to-json",
		Summary: "Decode a binary document back to JSON",
		Description: `Read a binary document from stdin (or a file argument) and write the
JSON value it carries to stdout (or --output).

By default, output is pretty-printed with 2-space indentation. Use -c
for compact single-line output.

Decoding verifies the document envelope: magic bytes, format version,
and payload digest. Corrupt or foreign input fails with an error
rather than producing partial output.`,
		Usage: "chorus binary-to-json [flags] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("binary-to-json", pflag.ContinueOnError)
			flagSet.StringVar(&actor, "actor", "", "actor identity for subsequent edits (default: keep the recorded one)")
			flagSet.BoolVarP(&compact, "compact", "c", false, "compact output (no indentation)")
			flagSet.StringVarP(&output, "output", "o", "", "write the JSON to this file instead of stdout")
			flagSet.StringVar(&configPath, "config", "", "config file path (default: $CHORUS_CONFIG)")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Decode a binary document to pretty JSON",
				Command:     "chorus binary-to-json doc.chorus",
			},
			{
				Description: "Compact output on a pipe",
				Command:     "chorus binary-to-json -c < doc.chorus | jq '.title'",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readDocumentArg(args)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return cli.Validation("binary-to-json takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if actor == "" {
				actor = cfg.DefaultActor
			}

			logger := cli.NewCommandLogger().With("command", "binary-to-json")

			var buf bytes.Buffer
			if err := decodeDocument(data, &buf, actor, compact); err != nil {
				return err
			}
			if output != "" {
				if err := docstore.WriteDocument(output, buf.Bytes()); err != nil {
					return err
				}
				logger.Info("wrote JSON document", "path", output, "bytes", buf.Len())
				return nil
			}
			if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
				return err
			}
			logger.Info("wrote JSON document to stdout", "bytes", buf.Len())
			return nil
		},
	}
}

// decodeDocument decodes a binary document and writes its JSON value
// to w.
func decodeDocument(data []byte, w io.Writer, actor string, compact bool) error {
	if len(data) == 0 {
		return cli.Validation("empty input: expected a binary document")
	}

	codec := document.NewCodec(lww.New())
	value, err := codec.Decode(data, document.Options{Actor: actor})
	if err != nil {
		return cli.Validation("decode: %v", err)
	}

	return writeJSON(w, value, compact)
}

// writeJSON encodes value as JSON and writes it to w with a trailing
// newline. When compact is false, output is pretty-printed with
// 2-space indentation.
func writeJSON(w io.Writer, value any, compact bool) error {
	var output []byte
	var err error
	if compact {
		output, err = json.Marshal(value)
	} else {
		output, err = json.MarshalIndent(value, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	_, err = fmt.Fprintln(w, string(output))
	return err
}

// readDocumentArg reads a binary document from the trailing file
// path argument or stdin, preferring the document store for file
// reads so store errors carry path context.
func readDocumentArg(args []string) ([]byte, []string, error) {
	if length := len(args); length > 0 {
		candidate := args[length-1]
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			data, err := docstore.ReadDocument(candidate)
			if err != nil {
				return nil, nil, err
			}
			return data, args[:length-1], nil
		}
	}
	return readInput(args, false)
}
