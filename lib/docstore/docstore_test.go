// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package docstore

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
)

func TestWriteReadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "value.chorus")
	data := []byte{'C', 'H', 'O', 'R', 'U', 'S', 1, 0, 0xDE, 0xAD}

	if err := WriteDocument(path, data); err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}
	got, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("read back %x, want %x", got, data)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadDocument(filepath.Join(t.TempDir(), "absent.chorus"))
	if err == nil {
		t.Fatal("ReadDocument of a missing file succeeded")
	}

	var storeError *StoreError
	if !errors.As(err, &storeError) {
		t.Fatalf("error is %T, want *StoreError", err)
	}
	if storeError.Op != "read" {
		t.Errorf("Op = %q, want %q", storeError.Op, "read")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("not-found kind lost: errors.Is(err, fs.ErrNotExist) = false")
	}
}

func TestWriteMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-dir", "value.chorus")
	err := WriteDocument(path, []byte("data"))
	if err == nil {
		t.Fatal("WriteDocument into a missing directory succeeded")
	}

	var storeError *StoreError
	if !errors.As(err, &storeError) {
		t.Fatalf("error is %T, want *StoreError", err)
	}
	if storeError.Op != "write" {
		t.Errorf("Op = %q, want %q", storeError.Op, "write")
	}
}
