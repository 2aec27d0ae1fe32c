// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package lww

import "github.com/zeebo/blake3"

// digest is a 32-byte BLAKE3 hash of an uncompressed document
// payload, stored in the envelope header.
type digest [32]byte

// payloadDomainKey is the 32-byte key for BLAKE3 keyed hashing of
// document payloads. Domain separation keeps payload digests from
// colliding with any other BLAKE3 use of the same bytes. The value
// is a fixed protocol constant — changing it invalidates every
// existing document. The bytes are the ASCII domain name, zero
// padded, so the key is readable in hex dumps.
var payloadDomainKey = [32]byte{
	'c', 'h', 'o', 'r', 'u', 's', '.', 'd', 'o', 'c', 'u', 'm', 'e', 'n', 't', '.',
	'p', 'a', 'y', 'l', 'o', 'a', 'd', 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// hashPayload computes the payload-domain BLAKE3 keyed hash of the
// uncompressed payload bytes. The digest is always computed on
// uncompressed bytes so integrity is independent of the compression
// algorithm chosen at serialization time.
func hashPayload(payload []byte) digest {
	hasher, err := blake3.NewKeyed(payloadDomainKey[:])
	if err != nil {
		// NewKeyed fails only for a key that is not 32 bytes; the
		// key is a compile-time constant of the right size.
		panic("lww: BLAKE3 keyed hasher initialization failed: " + err.Error())
	}
	hasher.Write(payload)

	var d digest
	copy(d[:], hasher.Sum(nil))
	return d
}
