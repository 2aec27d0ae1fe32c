// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

// Package lww is the default Chorus document engine: a
// last-writer-wins JSON document CRDT.
//
// Every node in a document tree carries a logical timestamp — a
// (counter, actor) pair ordered by counter first, actor second.
// Map nodes hold one LWW register per key; list nodes hold elements
// with stable identities and tombstones instead of physical removal.
// Merging two replicas keeps, for each register, the write with the
// greater timestamp, so any two replicas that have seen the same
// writes converge to the same state regardless of merge order.
//
// The binary form is a 48-byte envelope followed by the document
// state as deterministic CBOR:
//
//	offset  size  field
//	0       8     magic: 'C','H','O','R','U','S', version, 0
//	8       1     compression tag (none, lz4, zstd)
//	9       3     reserved
//	12      4     uncompressed payload size (uint32 LE)
//	16      32    keyed BLAKE3 digest of the uncompressed payload
//	48      —     payload (possibly compressed)
//
// Deserialization validates the magic, version, compression tag,
// size bound, and digest before decoding the payload, so corrupted
// or foreign bytes are rejected with a clear error instead of being
// half-decoded.
package lww
