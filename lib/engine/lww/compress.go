// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package lww

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the algorithm used for a document payload.
// The tag is stored in the envelope header (1 byte). These values
// are protocol constants — changing them breaks document format
// compatibility.
type Compression uint8

const (
	// CompressionNone stores the payload uncompressed. Small
	// documents gain nothing from compression; the serializer also
	// falls back to this tag when compression does not shrink the
	// payload.
	CompressionNone Compression = 0

	// CompressionLZ4 is LZ4 block compression: modest ratios but
	// very cheap decompression.
	CompressionLZ4 Compression = 1

	// CompressionZstd is zstd at the default level. CBOR document
	// payloads are text-heavy, where zstd's ratios are worth the
	// extra CPU. This is the engine default.
	CompressionZstd Compression = 2
)

// String returns the tag's human-readable name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a compression tag from its string name.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression algorithm: %q", name)
	}
}

// errIncompressible signals that compressing made the payload no
// smaller. The serializer falls back to CompressionNone.
var errIncompressible = errors.New("payload is incompressible")

// zstdEncoder and zstdDecoder are reused across calls to avoid
// repeated initialization overhead. Both are safe for concurrent
// use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("lww: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxPayloadSize))
	if err != nil {
		panic("lww: zstd decoder initialization failed: " + err.Error())
	}
}

// Per-algorithm bounds on how much a stored payload can grow when
// decompressed. A header that declares an uncompressed size beyond
// what the stored bytes could possibly expand to is rejected before
// any allocation. LZ4 block compression cannot exceed roughly 255x
// (one literal byte plus match copies); zstd RLE blocks reach about
// 32Ki x (128 KiB of output from a few stored bytes).
const (
	lz4MaxExpansion  = 255
	zstdMaxExpansion = 1 << 15
)

// compressPayload compresses payload with the given algorithm.
// Returns errIncompressible when the result would not be smaller
// than the input.
func compressPayload(payload []byte, tag Compression) ([]byte, error) {
	switch tag {
	case CompressionNone:
		return payload, nil

	case CompressionLZ4:
		bound := lz4.CompressBlockBound(len(payload))
		destination := make([]byte, bound)
		written, err := lz4.CompressBlock(payload, destination, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		// CompressBlock returns 0 for incompressible input.
		if written == 0 || written >= len(payload) {
			return nil, errIncompressible
		}
		return destination[:written], nil

	case CompressionZstd:
		compressed := zstdEncoder.EncodeAll(payload, nil)
		if len(compressed) >= len(payload) {
			return nil, errIncompressible
		}
		return compressed, nil

	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
}

// decompressPayload reverses compressPayload. The uncompressedSize
// comes from the envelope header and must match the result exactly.
func decompressPayload(compressed []byte, tag Compression, uncompressedSize int) ([]byte, error) {
	switch tag {
	case CompressionNone:
		if len(compressed) != uncompressedSize {
			return nil, fmt.Errorf("uncompressed payload: size %d does not match declared %d",
				len(compressed), uncompressedSize)
		}
		return compressed, nil

	case CompressionLZ4:
		if uncompressedSize > len(compressed)*lz4MaxExpansion {
			return nil, fmt.Errorf("lz4 decompress: declared size %d is implausible for %d stored bytes",
				uncompressedSize, len(compressed))
		}
		destination := make([]byte, uncompressedSize)
		read, err := lz4.UncompressBlock(compressed, destination)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		if read != uncompressedSize {
			return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, uncompressedSize)
		}
		return destination, nil

	case CompressionZstd:
		if uncompressedSize > len(compressed)*zstdMaxExpansion {
			return nil, fmt.Errorf("zstd decompress: declared size %d is implausible for %d stored bytes",
				uncompressedSize, len(compressed))
		}
		result, err := zstdDecoder.DecodeAll(compressed, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if len(result) != uncompressedSize {
			return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), uncompressedSize)
		}
		return result, nil

	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
}
