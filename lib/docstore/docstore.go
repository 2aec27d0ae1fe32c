// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package docstore

import (
	"fmt"
	"os"
)

// StoreError reports a failed read or write at the persistence
// boundary. The underlying OS error is wrapped verbatim, so callers
// can distinguish not-found from permission-denied with errors.Is
// against fs.ErrNotExist and fs.ErrPermission.
type StoreError struct {
	// Op is "read" or "write".
	Op string

	// Path is the file the operation targeted.
	Path string

	// Err is the underlying OS error.
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// ReadDocument reads the binary document stored at path. The bytes
// are returned exactly as written; no format interpretation happens
// at this layer.
func ReadDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &StoreError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}

// WriteDocument writes data to path, replacing any existing file.
// The destination directory must exist — this layer does not create
// parents, retry, or clean up after a failed write.
func WriteDocument(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &StoreError{Op: "write", Path: path, Err: err}
	}
	return nil
}
