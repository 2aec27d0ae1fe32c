// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package lww

import (
	"fmt"

	"github.com/chorusdoc/chorus/lib/engine"
)

// Engine is the last-writer-wins document engine. The zero value is
// not usable; construct with [New] or [NewWithCompression].
//
// Engines are stateless between calls: every operation works on the
// document handle it is given, so a single Engine is safe for
// concurrent use from multiple goroutines.
type Engine struct {
	compression Compression
}

// New returns an engine that compresses document payloads with zstd,
// the right default for the text-heavy CBOR payloads JSON documents
// produce.
func New() *Engine {
	return &Engine{compression: CompressionZstd}
}

// NewWithCompression returns an engine using the given payload
// compression algorithm.
func NewWithCompression(compression Compression) (*Engine, error) {
	switch compression {
	case CompressionNone, CompressionLZ4, CompressionZstd:
		return &Engine{compression: compression}, nil
	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", compression)
	}
}

// Create builds a fresh document seeded with value, attributing the
// initial state to actor. An empty actor means "unspecified" and a
// random one is generated. Values containing reference cycles or
// runtime kinds outside the plain JSON domain are rejected.
func (e *Engine) Create(value any, actor string) (engine.Doc, error) {
	resolved, err := resolveActor(actor)
	if err != nil {
		return nil, err
	}

	doc := &document{actor: resolved}
	root, err := doc.build(value, nil)
	if err != nil {
		return nil, err
	}
	doc.root = root
	return doc, nil
}

// Serialize encodes doc into the enveloped binary form described in
// the package documentation.
func (e *Engine) Serialize(doc engine.Doc) ([]byte, error) {
	d, err := e.document(doc)
	if err != nil {
		return nil, err
	}
	return sealEnvelope(d, e.compression)
}

// Deserialize loads a document from its binary form. When actor is
// non-empty it becomes the local replica identity of the loaded
// document; otherwise the identity recorded in the payload is kept.
func (e *Engine) Deserialize(data []byte, actor string) (engine.Doc, error) {
	if actor != "" {
		if err := validateActor(actor); err != nil {
			return nil, err
		}
	}

	d, err := openEnvelope(data)
	if err != nil {
		return nil, err
	}
	if actor != "" {
		d.actor = actor
	}
	return d, nil
}

// Materialize returns doc's current JSON view.
func (e *Engine) Materialize(doc engine.Doc) (any, error) {
	d, err := e.document(doc)
	if err != nil {
		return nil, err
	}
	return d.root.materialize(), nil
}

// Merge combines two replicas of a document into a new document
// holding the converged state. Both inputs are left unmodified; the
// result's replica identity is taken from the first input. Merge is
// commutative: Merge(a, b) and Merge(b, a) materialize identically.
func (e *Engine) Merge(doc, other engine.Doc) (engine.Doc, error) {
	a, err := e.document(doc)
	if err != nil {
		return nil, err
	}
	b, err := e.document(other)
	if err != nil {
		return nil, err
	}

	merged := &document{
		actor: a.actor,
		clock: max(a.clock, b.clock),
		root:  mergeNodes(a.root, b.root),
	}
	return merged, nil
}

// document unwraps an engine.Doc handle, rejecting handles produced
// by a different engine implementation.
func (e *Engine) document(doc engine.Doc) (*document, error) {
	d, ok := doc.(*document)
	if !ok || d == nil {
		return nil, fmt.Errorf("document handle is %T, not an lww document", doc)
	}
	return d, nil
}
