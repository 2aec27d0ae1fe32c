// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package lww

import (
	"encoding/binary"
	"reflect"
	"strings"
	"testing"
)

// sampleValue is large enough that zstd actually compresses it, so
// round-trip tests exercise the compressed path.
func sampleValue() map[string]any {
	items := make([]any, 0, 64)
	for i := 0; i < 64; i++ {
		items = append(items, map[string]any{
			"name":    "item",
			"enabled": i%2 == 0,
			"index":   int64(i),
		})
	}
	return map[string]any{
		"title": "inventory",
		"items": items,
		"meta":  map[string]any{"nested": map[string]any{"deep": "value"}},
	}
}

func TestSerializeDeserializeRoundtrip(t *testing.T) {
	for _, name := range []string{"none", "lz4", "zstd"} {
		t.Run(name, func(t *testing.T) {
			compression, err := ParseCompression(name)
			if err != nil {
				t.Fatalf("ParseCompression: %v", err)
			}
			engine, err := NewWithCompression(compression)
			if err != nil {
				t.Fatalf("NewWithCompression: %v", err)
			}

			value := sampleValue()
			doc, err := engine.Create(value, "round-trip-actor")
			if err != nil {
				t.Fatalf("Create: %v", err)
			}

			data, err := engine.Serialize(doc)
			if err != nil {
				t.Fatalf("Serialize: %v", err)
			}
			if len(data) <= headerSize {
				t.Fatalf("serialized document is %d bytes, want more than the %d-byte header", len(data), headerSize)
			}

			loaded, err := engine.Deserialize(data, "")
			if err != nil {
				t.Fatalf("Deserialize: %v", err)
			}
			got, err := engine.Materialize(loaded)
			if err != nil {
				t.Fatalf("Materialize: %v", err)
			}
			if !reflect.DeepEqual(got, any(value)) {
				t.Errorf("round-trip mismatch:\ngot  %#v\nwant %#v", got, value)
			}
		})
	}
}

func TestDeserializeRejectsGarbage(t *testing.T) {
	engine := New()
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"empty", nil, "empty input"},
		{"zero length", []byte{}, "empty input"},
		{"five arbitrary bytes", []byte{1, 2, 3, 4, 5}, "truncated"},
		{"wrong magic", append([]byte("NOTADOC!"), make([]byte, headerSize)...), "bad magic"},
		{"header only", func() []byte {
			data := make([]byte, headerSize)
			copy(data, documentMagic[:])
			return data
		}(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Deserialize(tt.data, "")
			if err == nil {
				t.Fatal("Deserialize succeeded on garbage input")
			}
			if tt.want != "" && !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err, tt.want)
			}
		})
	}
}

func TestDeserializeRejectsImplausibleDeclaredSize(t *testing.T) {
	// A few stored bytes cannot expand to half a gigabyte under
	// either algorithm. The decoder must reject the header before
	// allocating the declared size.
	engine := New()
	for _, tag := range []Compression{CompressionLZ4, CompressionZstd} {
		t.Run(tag.String(), func(t *testing.T) {
			data := make([]byte, headerSize, headerSize+8)
			copy(data, documentMagic[:])
			data[8] = byte(tag)
			binary.LittleEndian.PutUint32(data[12:16], 1<<29)
			data = append(data, 1, 2, 3, 4, 5, 6, 7, 8)

			_, err := engine.Deserialize(data, "")
			if err == nil {
				t.Fatal("implausible declared size accepted")
			}
			if !strings.Contains(err.Error(), "implausible") {
				t.Errorf("error %q does not mention the implausible size", err)
			}
		})
	}
}

func TestDeserializeRejectsUnsupportedVersion(t *testing.T) {
	engine := New()
	doc, err := engine.Create("value", "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	data, err := engine.Serialize(doc)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	data[6] = formatVersion + 1
	if _, err := engine.Deserialize(data, ""); err == nil {
		t.Error("future format version accepted")
	}
}

func TestDeserializeDetectsCorruption(t *testing.T) {
	engine := New()
	doc, err := engine.Create(sampleValue(), "corruption-actor")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	data, err := engine.Serialize(doc)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	// Flip one bit in the stored payload. Depending on the byte,
	// either decompression or the digest check catches it — both
	// are DecodeError territory, neither may succeed.
	corrupted := append([]byte(nil), data...)
	corrupted[headerSize+len(corrupted[headerSize:])/2] ^= 0x01

	if _, err := engine.Deserialize(corrupted, ""); err == nil {
		t.Error("corrupted payload accepted")
	}
}

func TestDeserializeActorThreading(t *testing.T) {
	engine := New()
	doc, err := engine.Create(map[string]any{"key": "value"}, "actor-one")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	data, err := engine.Serialize(doc)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	t.Run("original actor kept when unspecified", func(t *testing.T) {
		loaded, err := engine.Deserialize(data, "")
		if err != nil {
			t.Fatalf("Deserialize: %v", err)
		}
		if actor := loaded.(*document).actor; actor != "actor-one" {
			t.Errorf("actor = %q, want %q", actor, "actor-one")
		}
	})

	t.Run("new actor adopted when given", func(t *testing.T) {
		loaded, err := engine.Deserialize(data, "actor-two")
		if err != nil {
			t.Fatalf("Deserialize: %v", err)
		}
		if actor := loaded.(*document).actor; actor != "actor-two" {
			t.Errorf("actor = %q, want %q", actor, "actor-two")
		}
	})

	t.Run("invalid actor rejected", func(t *testing.T) {
		if _, err := engine.Deserialize(data, strings.Repeat("a", 1000)); err == nil {
			t.Error("oversized deserialize actor accepted")
		}
	})
}

func TestInspect(t *testing.T) {
	engine := New()
	doc, err := engine.Create(sampleValue(), "inspect-actor")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	data, err := engine.Serialize(doc)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	info, payload, err := Inspect(data)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Version != formatVersion {
		t.Errorf("Version = %d, want %d", info.Version, formatVersion)
	}
	if info.Compression != CompressionZstd {
		t.Errorf("Compression = %v, want zstd", info.Compression)
	}
	if info.PayloadSize != len(payload) {
		t.Errorf("PayloadSize = %d, payload is %d bytes", info.PayloadSize, len(payload))
	}
	if info.StoredSize >= info.PayloadSize {
		t.Errorf("zstd payload not compressed: stored %d, uncompressed %d", info.StoredSize, info.PayloadSize)
	}
	if len(info.Digest) != 64 {
		t.Errorf("Digest = %q, want 64 hex characters", info.Digest)
	}

	if _, _, err := Inspect([]byte{1, 2, 3}); err == nil {
		t.Error("Inspect of garbage succeeded")
	}
}

func TestIncompressibleFallsBackToNone(t *testing.T) {
	// A tiny document's payload does not shrink under zstd; the
	// envelope must record CompressionNone and still round-trip.
	engine := New()
	doc, err := engine.Create(true, "tiny-actor")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	data, err := engine.Serialize(doc)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	info, _, err := Inspect(data)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.Compression != CompressionNone {
		t.Errorf("tiny document stored with %v, want none", info.Compression)
	}

	loaded, err := engine.Deserialize(data, "")
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	got, err := engine.Materialize(loaded)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if got != true {
		t.Errorf("materialized %#v, want true", got)
	}
}
