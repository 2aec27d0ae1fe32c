// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/chorusdoc/chorus/cmd/chorus/cli"
	"github.com/chorusdoc/chorus/lib/config"
	"github.com/chorusdoc/chorus/lib/docstore"
	"github.com/chorusdoc/chorus/lib/document"
	"github.com/chorusdoc/chorus/lib/engine/lww"
)

// encodeOptions holds the resolved settings for a json-to-binary run,
// after merging flags with the optional config file.
type encodeOptions struct {
	actor       string
	validate    bool
	check       bool
	compression string
}

func jsonToBinaryCommand() *cli.Command {
	var (
		actor       string
		validate    bool
		check       bool
		compression string
		output      string
		configPath  string
	)

	return &cli.Command{
		Name:    "json-to-binary",
		Summary: "Encode a JSON file as a binary document",
		Description: `Read JSON from stdin (or a file argument) and write the equivalent
binary document to stdout (or --output).

Input may contain // and /* */ comments and trailing commas (JSONC);
they are stripped before parsing. JSON integers are preserved as
integers through the conversion, not widened to floats.

The output is binary. Use "chorus inspect" to examine it, or
"chorus binary-to-json" to recover the JSON value.`,
		Usage: "chorus json-to-binary [flags] [file]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("json-to-binary", pflag.ContinueOnError)
			flagSet.StringVar(&actor, "actor", "", "actor identity recorded in the document (default: generated)")
			flagSet.BoolVar(&validate, "validate", false, "reject input that is not plain JSON data before encoding")
			flagSet.BoolVar(&check, "check", false, "decode the produced bytes and verify they match the input")
			flagSet.StringVar(&compression, "compression", "", "payload compression: none, lz4, or zstd (default: zstd)")
			flagSet.StringVarP(&output, "output", "o", "", "write the binary document to this file instead of stdout")
			flagSet.StringVar(&configPath, "config", "", "config file path (default: $CHORUS_CONFIG)")
			return flagSet
		},
		Examples: []cli.Example{
			{
				Description: "Encode a JSON file",
				Command:     "chorus json-to-binary doc.json -o doc.chorus",
			},
			{
				Description: "Encode from stdin with a fixed actor",
				Command:     "echo '{\"title\":\"notes\"}' | chorus json-to-binary --actor editor-1 > doc.chorus",
			},
			{
				Description: "Validate the input shape and verify the round trip",
				Command:     "chorus json-to-binary --validate --check doc.json -o doc.chorus",
			},
			{
				Description: "Store the payload uncompressed",
				Command:     "chorus json-to-binary --compression none doc.json -o doc.chorus",
			},
		},
		Run: func(args []string) error {
			data, remainingArgs, err := readInput(args, false)
			if err != nil {
				return err
			}
			if len(remainingArgs) > 0 {
				return cli.Validation("json-to-binary takes no positional arguments besides an optional file path, got %q", remainingArgs[0])
			}

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			options := encodeOptions{
				actor:       actor,
				validate:    validate,
				check:       check,
				compression: compression,
			}
			if options.actor == "" {
				options.actor = cfg.DefaultActor
			}
			if options.compression == "" {
				options.compression = cfg.Compression
			}

			logger := cli.NewCommandLogger().With("command", "json-to-binary")

			var buf bytes.Buffer
			if err := encodeDocument(data, &buf, options); err != nil {
				return err
			}
			if output != "" {
				if err := docstore.WriteDocument(output, buf.Bytes()); err != nil {
					return err
				}
				logger.Info("wrote binary document", "path", output, "bytes", buf.Len())
				return nil
			}
			if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
				return err
			}
			logger.Info("wrote binary document to stdout", "bytes", buf.Len())
			return nil
		},
	}
}

// encodeDocument parses JSON input, encodes it as a binary document,
// and writes the result to w.
func encodeDocument(data []byte, w io.Writer, options encodeOptions) error {
	if len(data) == 0 {
		return cli.Validation("empty input: expected JSON data")
	}

	value, err := parseJSON(data)
	if err != nil {
		return cli.Validation("parse JSON: %v", err)
	}

	eng, err := newEngine(options.compression)
	if err != nil {
		return cli.Validation("%v", err)
	}
	codec := document.NewCodec(eng)

	binary, err := codec.Encode(value, document.Options{
		Actor:        options.actor,
		ValidateJSON: options.validate,
	})
	if err != nil {
		return cli.Validation("encode: %v", err)
	}

	if options.check {
		decoded, err := codec.Decode(binary, document.Options{Actor: options.actor})
		if err != nil {
			return cli.Internal("check: decode produced bytes: %v", err)
		}
		if !reflect.DeepEqual(decoded, value) {
			return cli.Internal("check: decoded value does not match input")
		}
	}

	_, err = w.Write(binary)
	return err
}

// parseJSON strips JSONC comments and trailing commas, then decodes a
// single JSON value. Numbers are kept as json.Number during decoding
// and converted to int64/float64 afterwards so integers survive the
// conversion intact.
func parseJSON(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	if decoder.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return convertNumbers(value), nil
}

// convertNumbers recursively walks a JSON-decoded value and converts
// json.Number to int64 or float64. Without this, json.Decoder with
// UseNumber() leaves numbers as strings that the document engine
// would reject.
func convertNumbers(v any) any {
	switch value := v.(type) {
	case json.Number:
		if integer, err := value.Int64(); err == nil {
			return integer
		}
		if float, err := value.Float64(); err == nil {
			return float
		}
		// json.Number that is neither int64 nor float64 should not
		// happen with valid JSON, but fail loudly if it does.
		panic(fmt.Sprintf("json.Number %q is neither int64 nor float64", value.String()))

	case map[string]any:
		for key, element := range value {
			value[key] = convertNumbers(element)
		}
		return value

	case []any:
		for index, element := range value {
			value[index] = convertNumbers(element)
		}
		return value

	default:
		return v
	}
}

// newEngine builds the default document engine, honoring an optional
// compression algorithm name.
func newEngine(compression string) (*lww.Engine, error) {
	if compression == "" {
		return lww.New(), nil
	}
	algorithm, err := lww.ParseCompression(compression)
	if err != nil {
		return nil, err
	}
	return lww.NewWithCompression(algorithm)
}
