// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package lww

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/chorusdoc/chorus/lib/codec"
)

// Envelope format constants. All are protocol constants — changing
// any of them invalidates existing documents.
const (
	// formatVersion is byte 6 of the magic. Version 1 is the
	// initial format.
	formatVersion = 1

	// headerSize is the fixed envelope header: 8-byte magic
	// + 1-byte compression tag + 3 reserved bytes + 4-byte
	// uncompressed payload size + 32-byte payload digest.
	headerSize = 48

	// maxPayloadSize bounds the uncompressed payload. A document
	// larger than this fails to serialize, and a header declaring
	// more than this is rejected outright. Declared sizes within the
	// bound are additionally checked against what the stored bytes
	// could plausibly expand to (see the expansion limits in
	// decompressPayload), so a small hostile envelope cannot make
	// the decoder reserve a large buffer.
	maxPayloadSize = 1 << 30
)

// documentMagic is the 8-byte envelope signature.
var documentMagic = [8]byte{'C', 'H', 'O', 'R', 'U', 'S', formatVersion, 0}

// sealEnvelope serializes a document: deterministic CBOR payload,
// keyed BLAKE3 digest, optional compression, fixed header. When the
// payload does not shrink under the requested algorithm it is stored
// uncompressed and the header says so.
func sealEnvelope(d *document, compression Compression) ([]byte, error) {
	payload, err := codec.Marshal(toWire(d))
	if err != nil {
		return nil, fmt.Errorf("encoding document payload: %w", err)
	}
	if len(payload) > maxPayloadSize {
		return nil, fmt.Errorf("document payload is %d bytes, maximum is %d", len(payload), maxPayloadSize)
	}

	payloadDigest := hashPayload(payload)

	stored := payload
	storedTag := compression
	if compression != CompressionNone {
		compressed, err := compressPayload(payload, compression)
		switch {
		case errors.Is(err, errIncompressible):
			storedTag = CompressionNone
		case err != nil:
			return nil, fmt.Errorf("compressing document payload: %w", err)
		default:
			stored = compressed
		}
	}

	envelope := make([]byte, headerSize, headerSize+len(stored))
	copy(envelope[0:8], documentMagic[:])
	envelope[8] = byte(storedTag)
	binary.LittleEndian.PutUint32(envelope[12:16], uint32(len(payload)))
	copy(envelope[16:48], payloadDigest[:])
	return append(envelope, stored...), nil
}

// openEnvelope validates and decodes a serialized document. Every
// header field is checked before the payload is touched; the digest
// is checked before the payload is decoded.
func openEnvelope(data []byte) (*document, error) {
	payload, _, err := openPayload(data)
	if err != nil {
		return nil, err
	}

	var wire wireDocument
	if err := codec.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("decoding document payload: %w", err)
	}
	return fromWire(&wire)
}

// Info summarizes a document envelope without decoding the node
// tree. Used by "chorus inspect".
type Info struct {
	// Version is the format version from the magic.
	Version uint8

	// Compression is how the payload is stored.
	Compression Compression

	// PayloadSize is the uncompressed payload size in bytes.
	PayloadSize int

	// StoredSize is the on-wire payload size after compression.
	StoredSize int

	// Digest is the hex-encoded payload digest.
	Digest string
}

// Inspect validates a document envelope and returns its header
// summary together with the uncompressed CBOR payload, so callers
// can render the payload in diagnostic notation.
func Inspect(data []byte) (Info, []byte, error) {
	payload, compression, err := openPayload(data)
	if err != nil {
		return Info{}, nil, err
	}
	payloadDigest := hashPayload(payload)
	return Info{
		Version:     data[6],
		Compression: compression,
		PayloadSize: len(payload),
		StoredSize:  len(data) - headerSize,
		Digest:      hex.EncodeToString(payloadDigest[:]),
	}, payload, nil
}

// openPayload performs the envelope checks shared by openEnvelope
// and Inspect, returning the verified uncompressed payload.
func openPayload(data []byte) ([]byte, Compression, error) {
	if len(data) == 0 {
		return nil, 0, fmt.Errorf("empty input: expected a binary document")
	}
	if len(data) < headerSize {
		return nil, 0, fmt.Errorf("truncated document: %d bytes, envelope header is %d", len(data), headerSize)
	}
	if !bytes.Equal(data[0:6], documentMagic[0:6]) {
		return nil, 0, fmt.Errorf("not a chorus document (bad magic)")
	}
	if version := data[6]; version != formatVersion {
		return nil, 0, fmt.Errorf("unsupported document format version %d (this build reads version %d)",
			version, formatVersion)
	}

	compression := Compression(data[8])
	declaredSize := binary.LittleEndian.Uint32(data[12:16])
	if declaredSize > maxPayloadSize {
		return nil, 0, fmt.Errorf("declared payload size %d exceeds maximum %d", declaredSize, maxPayloadSize)
	}

	var declaredDigest digest
	copy(declaredDigest[:], data[16:48])

	payload, err := decompressPayload(data[headerSize:], compression, int(declaredSize))
	if err != nil {
		return nil, 0, err
	}
	if hashPayload(payload) != declaredDigest {
		return nil, 0, fmt.Errorf("payload digest mismatch: document is corrupted")
	}
	return payload, compression, nil
}
