// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/chorusdoc/chorus/lib/engine/lww"
)

// newLWWCodec builds a codec over the real default engine. These
// tests exercise the full conversion boundary end to end.
func newLWWCodec() *Codec {
	return NewCodec(lww.New())
}

func TestRoundTripLaw(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"null", nil},
		{"boolean", true},
		{"integer", int64(42)},
		{"negative integer", int64(-1)},
		{"float", 3.25},
		{"string", "hello"},
		{"empty string", ""},
		{"empty object", map[string]any{}},
		{"object with empty list", map[string]any{"items": []any{}}},
		{"unicode multi-byte", "这是一段中文 🎶 and ASCII"},
		{"unicode mixed direction", "english ثم نص عربي ثم english again"},
		{
			"scenario object",
			map[string]any{
				"string":    "hello",
				"number":    int64(42),
				"boolean":   true,
				"nullValue": nil,
				"array":     []any{int64(1), int64(2), int64(3), "test"},
				"nested":    map[string]any{"deep": map[string]any{"value": "nested data"}},
			},
		},
	}

	options := []struct {
		name    string
		options Options
	}{
		{"zero options", Options{}},
		{"fixed actor", Options{Actor: "round-trip-actor"}},
		{"validated", Options{ValidateJSON: true}},
	}

	for _, opt := range options {
		t.Run(opt.name, func(t *testing.T) {
			codec := newLWWCodec()
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					data, err := codec.Encode(tt.value, opt.options)
					if err != nil {
						t.Fatalf("Encode: %v", err)
					}
					if len(data) == 0 {
						t.Fatal("Encode produced zero bytes")
					}

					got, err := codec.Decode(data, opt.options)
					if err != nil {
						t.Fatalf("Decode: %v", err)
					}
					if !reflect.DeepEqual(got, tt.value) {
						t.Errorf("round-trip mismatch:\ngot  %#v\nwant %#v", got, tt.value)
					}
				})
			}
		})
	}
}

func TestRoundTripDeepNesting(t *testing.T) {
	var value any = "leaf"
	for i := 0; i < 120; i++ {
		value = map[string]any{"level": value}
	}

	codec := newLWWCodec()
	data, err := codec.Encode(value, Options{ValidateJSON: true})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := codec.Decode(data, Options{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(got, value) {
		t.Error("deep nesting round-trip mismatch")
	}
}

func TestDecodeRejectsNonDocuments(t *testing.T) {
	codec := newLWWCodec()

	for _, tt := range []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"five arbitrary bytes", []byte{1, 2, 3, 4, 5}},
		{"text", []byte("this is not a document")},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.data, Options{})
			if err == nil {
				t.Fatal("Decode succeeded on non-document bytes")
			}
			var decodeError *DecodeError
			if !errors.As(err, &decodeError) {
				t.Errorf("error is %T, want *DecodeError", err)
			}
		})
	}
}

func TestProbeAgainstRealEngine(t *testing.T) {
	codec := newLWWCodec()

	valid, err := codec.Encode(map[string]any{"probe": "me"}, Options{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if !codec.IsValidBinary(valid) {
		t.Error("IsValidBinary = false for bytes Encode produced")
	}
	if codec.IsValidBinary(nil) {
		t.Error("IsValidBinary = true for empty input")
	}
	if codec.IsValidBinary([]byte{1, 2, 3, 4, 5}) {
		t.Error("IsValidBinary = true for arbitrary bytes")
	}

	t.Run("idempotent", func(t *testing.T) {
		before := append([]byte(nil), valid...)
		first := codec.IsValidBinary(valid)
		second := codec.IsValidBinary(valid)
		if first != second {
			t.Error("probing twice gave different verdicts")
		}
		if !bytes.Equal(before, valid) {
			t.Error("probing modified the input bytes")
		}
	})
}

func TestActorThreadingRoundTrip(t *testing.T) {
	codec := newLWWCodec()
	value := map[string]any{"owner": "document"}

	t.Run("same actor both directions", func(t *testing.T) {
		options := Options{Actor: "editor-A"}
		data, err := codec.Encode(value, options)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		got, err := codec.Decode(data, options)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !reflect.DeepEqual(got, any(value)) {
			t.Errorf("round-trip with actor mismatch: %#v", got)
		}
	})

	t.Run("oversized actor fails deterministically", func(t *testing.T) {
		options := Options{Actor: strings.Repeat("a", 1000)}
		_, firstErr := codec.Encode(value, options)
		_, secondErr := codec.Encode(value, options)
		if firstErr == nil || secondErr == nil {
			t.Fatal("1000-character actor accepted")
		}
		var encodeError *EncodeError
		if !errors.As(firstErr, &encodeError) {
			t.Errorf("error is %T, want *EncodeError", firstErr)
		}
		if firstErr.Error() != secondErr.Error() {
			t.Errorf("rejections differ: %q vs %q", firstErr, secondErr)
		}
	})
}

func TestValidationGatingAgainstRealEngine(t *testing.T) {
	codec := newLWWCodec()
	invalid := map[string]any{"callback": func() {}}

	_, err := codec.Encode(invalid, Options{ValidateJSON: true})
	var validationError *ValidationError
	if !errors.As(err, &validationError) {
		t.Fatalf("validated encode error is %T, want *ValidationError", err)
	}

	// Without validation the engine's own rejection applies instead.
	_, err = codec.Encode(invalid, Options{})
	var encodeError *EncodeError
	if !errors.As(err, &encodeError) {
		t.Fatalf("unvalidated encode error is %T, want *EncodeError", err)
	}
}
