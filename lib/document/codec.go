// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"github.com/chorusdoc/chorus/lib/engine"
	"github.com/chorusdoc/chorus/lib/jsonshape"
)

// Options configures a single encode or decode operation.
//
// The zero value is valid: no validation, engine-chosen actor.
type Options struct {
	// Actor is an opaque identity token attributed to the edit
	// origin of the document. Format constraints are owned by the
	// engine, not by this layer. Empty means "unspecified" — the
	// engine picks an identity on encode and keeps the recorded
	// one on decode.
	Actor string

	// ValidateJSON runs the jsonshape check before encoding. When
	// false (the default) arbitrary values are passed straight to
	// the engine, whose own acceptance rules decide.
	ValidateJSON bool
}

// Codec converts between plain JSON values and the engine's binary
// document form. A Codec is stateless and safe for concurrent use.
type Codec struct {
	engine engine.Engine
}

// NewCodec returns a codec backed by the given engine.
func NewCodec(e engine.Engine) *Codec {
	return &Codec{engine: e}
}

// Encode materializes a fresh document seeded with value and returns
// its serialized binary form. With options.ValidateJSON set, a value
// that fails the shape check is rejected with a [*ValidationError]
// before any engine call; engine failures are wrapped in
// [*EncodeError].
func (c *Codec) Encode(value any, options Options) ([]byte, error) {
	if options.ValidateJSON && !jsonshape.IsPlainJSON(value) {
		return nil, &ValidationError{Value: value}
	}

	doc, err := c.engine.Create(value, options.Actor)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}
	data, err := c.engine.Serialize(doc)
	if err != nil {
		return nil, &EncodeError{Err: err}
	}
	return data, nil
}

// Decode loads a binary document and returns its JSON view. Any
// engine rejection — empty input, truncation, corruption, foreign
// bytes, malformed actor — surfaces as a [*DecodeError].
func (c *Codec) Decode(data []byte, options Options) (any, error) {
	doc, err := c.engine.Deserialize(data, options.Actor)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	value, err := c.engine.Materialize(doc)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return value, nil
}
