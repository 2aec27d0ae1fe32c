// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. The same document state
// always produces identical payload bytes, which is what makes the
// envelope integrity digest meaningful.
var encMode cbor.EncMode

// decMode is the CBOR decoder configured to accept standard CBOR.
// Unknown fields are silently ignored for forward compatibility
// across document format versions.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Document payloads never use non-string map keys. When the
		// decoder's target is any (leaf values inside node trees),
		// it must pick a concrete Go map type. The CBOR default is
		// map[interface{}]interface{}, which is incompatible with
		// encoding/json and with the plain-JSON value domain.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		// JSON has one integer domain, not separate signed/unsigned
		// ones. Decoding CBOR unsigned integers to uint64 (the
		// library default) would break the round-trip law: an int64
		// leaf would come back as uint64 and fail deep equality.
		// Converting to int64 (failing on overflow) keeps decoded
		// values in the same type domain the encoder accepted.
		IntDec: cbor.IntDecConvertSignedOrFail,
		// Document node trees nest several CBOR levels per level of
		// JSON nesting (node map, entry list, entry map, child
		// node), so the library default of 32 would cap documents
		// at roughly ten JSON levels and break the round-trip
		// guarantee for deeper values. 65535 is the option's
		// maximum and covers documents thousands of levels deep.
		MaxNestedLevels: 65535,
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// Encoder is a CBOR stream encoder. Type alias so consumers import
// only lib/codec, not fxamacker/cbor directly.
type Encoder = cbor.Encoder

// Decoder is a CBOR stream decoder. Type alias so consumers import
// only lib/codec, not fxamacker/cbor directly.
type Decoder = cbor.Decoder

// RawMessage is a raw encoded CBOR value.
type RawMessage = cbor.RawMessage

// NewEncoder returns a CBOR encoder that writes to w using the
// standard Core Deterministic Encoding configuration.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder returns a CBOR decoder that reads from r using the
// standard decoding configuration.
func NewDecoder(r io.Reader) *Decoder {
	return decMode.NewDecoder(r)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for
// the entire contents of data. Used by "chorus inspect" to show a
// document payload without converting it to JSON.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
