// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

// Package docstore moves binary documents to and from a filesystem.
//
// It imposes no format: a stored document is exactly the bytes the
// codec produced, and a read returns exactly the bytes on disk.
// Concurrent writes to the same path are not serialized here —
// last writer wins at the filesystem layer.
package docstore
