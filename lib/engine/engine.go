// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package engine

// Doc is an opaque handle to an engine's in-memory document
// representation. Each engine implementation defines its own concrete
// document type and type-asserts in Serialize and Materialize; a
// handle produced by one engine is meaningless to another.
type Doc any

// Engine is the CRDT document engine contract consumed by the
// conversion boundary. Implementations own document construction,
// the binary serialization format, and merge semantics; the
// conversion layer only prepares input for the engine and inspects
// its output.
//
// All operations are synchronous. Serialize and Deserialize must be
// exact inverses for any Doc the engine itself produced.
type Engine interface {
	// Create materializes a fresh document seeded with value,
	// attributing the initial state to actor. An empty actor means
	// "unspecified" and the engine picks one; a non-empty actor is
	// validated against the engine's own identity rules.
	Create(value any, actor string) (Doc, error)

	// Serialize encodes doc to its opaque binary form.
	Serialize(doc Doc) ([]byte, error)

	// Deserialize loads a document from its binary form, optionally
	// associating the local replica with actor. It must reject
	// bytes that are empty, truncated, or not a recognizable
	// document encoding.
	Deserialize(data []byte, actor string) (Doc, error)

	// Materialize returns the document's current JSON view: nil,
	// bool, int64, float64, string, []any, and map[string]any.
	Materialize(doc Doc) (any, error)
}
