// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "chorus",
		Subcommands: []*Command{
			{
				Name: "json-to-binary",
				Run: func(args []string) error {
					called = "json-to-binary"
					return nil
				},
			},
			{
				Name: "probe",
				Run: func(args []string) error {
					called = "probe"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"probe"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "probe" {
		t.Errorf("dispatched to %q, want %q", called, "probe")
	}
}

func TestCommand_Execute_PassesRemainingArgs(t *testing.T) {
	var receivedArgs []string

	root := &Command{
		Name: "chorus",
		Subcommands: []*Command{
			{
				Name: "binary-to-json",
				Run: func(args []string) error {
					receivedArgs = args
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"binary-to-json", "doc.chorus"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "doc.chorus" {
		t.Errorf("args = %v, want [doc.chorus]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var actor string
	var target string

	command := &Command{
		Name: "json-to-binary",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("json-to-binary", pflag.ContinueOnError)
			flagSet.StringVar(&actor, "actor", "", "actor identifier")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute([]string{"--actor", "editor-1", "doc.json"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if actor != "editor-1" {
		t.Errorf("actor = %q, want %q", actor, "editor-1")
	}
	if target != "doc.json" {
		t.Errorf("target = %q, want %q", target, "doc.json")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "json-to-binary",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("json-to-binary", pflag.ContinueOnError)
			flagSet.Bool("validate", false, "validate input shape")
			flagSet.String("actor", "", "actor identifier")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--validaet"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "did you mean --validate") {
		t.Errorf("error = %q, want suggestion for '--validate'", errStr)
	}
	if !strings.Contains(errStr, "validaet") {
		t.Errorf("error = %q, should mention the bad flag", errStr)
	}
	if !strings.Contains(errStr, "--help") {
		t.Errorf("error = %q, should point to --help", errStr)
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	command := &Command{
		Name: "probe",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("probe", pflag.ContinueOnError)
			flagSet.Bool("quiet", false, "suppress output")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--zzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest anything for gibberish", err)
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "chorus",
		Subcommands: []*Command{
			{Name: "json-to-binary", Run: func([]string) error { return nil }},
			{Name: "binary-to-json", Run: func([]string) error { return nil }},
			{Name: "probe", Run: func([]string) error { return nil }},
		},
	}

	err := root.Execute([]string{"prboe"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), `did you mean "probe"`) {
		t.Errorf("error = %q, want suggestion for 'probe'", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	root := &Command{
		Name: "chorus",
		Subcommands: []*Command{
			{Name: "probe", Run: func([]string) error { return nil }},
		},
	}

	err := root.Execute(nil)
	if err == nil {
		t.Fatal("Execute() = nil, want error when no subcommand given")
	}
	if !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %q, want 'subcommand required'", err)
	}
}

func TestCommand_PrintHelp_ListsSubcommandsAndExamples(t *testing.T) {
	root := &Command{
		Name:        "chorus",
		Description: "Convert between JSON and the chorus binary document format.",
		Subcommands: []*Command{
			{Name: "json-to-binary", Summary: "Encode a JSON file as a binary document"},
			{Name: "binary-to-json", Summary: "Decode a binary document back to JSON"},
		},
		Examples: []Example{
			{
				Description: "Encode a document",
				Command:     "chorus json-to-binary doc.json --output doc.chorus",
			},
		},
	}

	var buf bytes.Buffer
	root.PrintHelp(&buf)
	help := buf.String()

	for _, want := range []string{
		"json-to-binary",
		"Encode a JSON file as a binary document",
		"binary-to-json",
		"# Encode a document",
		"chorus json-to-binary doc.json --output doc.chorus",
		"Run 'chorus <command> --help'",
	} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q\n%s", want, help)
		}
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	ran := false
	command := &Command{
		Name:    "probe",
		Summary: "Check whether a file is a valid binary document",
		Run: func(args []string) error {
			ran = true
			return nil
		},
	}

	if err := command.Execute([]string{"--help"}); err != nil {
		t.Fatalf("Execute(--help) error: %v", err)
	}
	if ran {
		t.Error("Run executed on --help, want help output only")
	}
}

func TestCommand_FullName_NestedPath(t *testing.T) {
	root := &Command{Name: "chorus"}
	child := &Command{Name: "probe", parent: root}

	if got := child.fullName(); got != "chorus probe" {
		t.Errorf("fullName() = %q, want %q", got, "chorus probe")
	}
}
