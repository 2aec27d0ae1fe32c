// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

// Package engine defines the CRDT document engine contract consumed
// by the conversion boundary (lib/document).
//
// The conversion layer never inspects documents directly — it calls
// the four [Engine] operations and treats [Doc] as an opaque handle.
// Keeping the contract this narrow means the engine can be swapped
// or mocked in tests without touching the shape validator, the
// codec, or the CLI.
//
// The default implementation lives in lib/engine/lww.
package engine
