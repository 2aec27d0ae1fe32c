// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"errors"
	"testing"

	"github.com/chorusdoc/chorus/cmd/chorus/cli"
)

func TestProbeDocument_Valid(t *testing.T) {
	binary := encodeForTest(t, `{"title":"notes"}`)

	var output bytes.Buffer
	if err := probeDocument(binary, &output, false); err != nil {
		t.Fatalf("probeDocument() error: %v", err)
	}
	if got := output.String(); got != "valid\n" {
		t.Errorf("output = %q, want %q", got, "valid\n")
	}
}

func TestProbeDocument_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("definitely not a document")},
		{"truncated", encodeForTest(t, `{"a":1}`)[:20]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			err := probeDocument(tt.data, &output, false)
			if err == nil {
				t.Fatal("probeDocument() = nil, want ExitError")
			}

			var exitErr *cli.ExitError
			if !errors.As(err, &exitErr) {
				t.Fatalf("error is %T, want *cli.ExitError", err)
			}
			if exitErr.Code != 1 {
				t.Errorf("exit code = %d, want 1", exitErr.Code)
			}
			if got := output.String(); got != "invalid\n" {
				t.Errorf("output = %q, want %q", got, "invalid\n")
			}
		})
	}
}

func TestProbeDocument_Quiet(t *testing.T) {
	var output bytes.Buffer
	if err := probeDocument(encodeForTest(t, `{}`), &output, true); err != nil {
		t.Fatalf("probeDocument() error: %v", err)
	}
	if output.Len() != 0 {
		t.Errorf("quiet probe wrote %q, want nothing", output.String())
	}

	output.Reset()
	err := probeDocument([]byte("junk"), &output, true)
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("quiet probe on junk: error = %v, want ExitError{1}", err)
	}
	if output.Len() != 0 {
		t.Errorf("quiet probe wrote %q, want nothing", output.String())
	}
}

func TestProbeDocument_Repeatable(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}

	for i := 0; i < 2; i++ {
		var output bytes.Buffer
		err := probeDocument(data, &output, false)
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("probe %d: error = %v, want ExitError", i, err)
		}
	}
}
