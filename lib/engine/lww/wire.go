// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package lww

import "fmt"

// Wire representation of a document payload. Timestamps reference
// actors by index into the payload's actor table rather than
// repeating the actor string on every node. Field names are single
// letters because node records dominate payload size.

type wireTimestamp struct {
	Counter uint64 `cbor:"c"`
	Actor   uint32 `cbor:"a"`
}

type wireDocument struct {
	Actors []string  `cbor:"actors"`
	Self   uint32    `cbor:"self"`
	Clock  uint64    `cbor:"clock"`
	Root   *wireNode `cbor:"root"`
}

type wireNode struct {
	ID       wireTimestamp `cbor:"id"`
	Kind     uint8         `cbor:"kind"`
	Bool     bool          `cbor:"b,omitempty"`
	Int      int64         `cbor:"i,omitempty"`
	Float    float64       `cbor:"f,omitempty"`
	String   string        `cbor:"s,omitempty"`
	Entries  []wireEntry   `cbor:"e,omitempty"`
	Elements []wireElement `cbor:"l,omitempty"`
}

type wireEntry struct {
	Key   string        `cbor:"k"`
	Set   wireTimestamp `cbor:"t"`
	Value *wireNode     `cbor:"v"`
}

type wireElement struct {
	ID      wireTimestamp `cbor:"id"`
	Value   *wireNode     `cbor:"v"`
	Deleted bool          `cbor:"d,omitempty"`
}

// actorTable assigns dense indexes to actor strings during wire
// conversion. Index 0 is always the local replica's actor.
type actorTable struct {
	actors  []string
	indexes map[string]uint32
}

func newActorTable(self string) *actorTable {
	return &actorTable{
		actors:  []string{self},
		indexes: map[string]uint32{self: 0},
	}
}

func (t *actorTable) index(actor string) uint32 {
	if index, ok := t.indexes[actor]; ok {
		return index
	}
	index := uint32(len(t.actors))
	t.actors = append(t.actors, actor)
	t.indexes[actor] = index
	return index
}

// toWire converts a document to its wire representation. The walk
// populates the actor table, so it must complete before the table
// is captured.
func toWire(d *document) *wireDocument {
	table := newActorTable(d.actor)
	root := nodeToWire(d.root, table)
	return &wireDocument{
		Actors: table.actors,
		Self:   0,
		Clock:  d.clock,
		Root:   root,
	}
}

func nodeToWire(n *node, table *actorTable) *wireNode {
	if n == nil {
		return nil
	}
	wire := &wireNode{
		ID:   wireTimestamp{Counter: n.id.counter, Actor: table.index(n.id.actor)},
		Kind: uint8(n.kind),
	}
	switch n.kind {
	case kindBool:
		wire.Bool = n.boolValue
	case kindInt:
		wire.Int = n.intValue
	case kindFloat:
		wire.Float = n.floatValue
	case kindString:
		wire.String = n.stringValue
	case kindMap:
		wire.Entries = make([]wireEntry, len(n.entries))
		for i, entry := range n.entries {
			wire.Entries[i] = wireEntry{
				Key:   entry.key,
				Set:   wireTimestamp{Counter: entry.set.counter, Actor: table.index(entry.set.actor)},
				Value: nodeToWire(entry.value, table),
			}
		}
	case kindList:
		wire.Elements = make([]wireElement, len(n.elements))
		for i, element := range n.elements {
			wire.Elements[i] = wireElement{
				ID:      wireTimestamp{Counter: element.id.counter, Actor: table.index(element.id.actor)},
				Value:   nodeToWire(element.value, table),
				Deleted: element.deleted,
			}
		}
	}
	return wire
}

// fromWire validates a decoded wire document and converts it back
// to the in-memory representation. Validation is structural: kinds
// must be known, actor indexes must resolve, map keys must be
// unique, and no value pointer may be missing. CBOR that decodes
// cleanly can still fail here — the payload is untrusted input.
func fromWire(wire *wireDocument) (*document, error) {
	if len(wire.Actors) == 0 {
		return nil, fmt.Errorf("payload has no actor table")
	}
	for i, actor := range wire.Actors {
		if err := validateActor(actor); err != nil {
			return nil, fmt.Errorf("actor table entry %d: %w", i, err)
		}
	}
	if int(wire.Self) >= len(wire.Actors) {
		return nil, fmt.Errorf("self actor index %d out of range (table has %d entries)",
			wire.Self, len(wire.Actors))
	}
	if wire.Root == nil {
		return nil, fmt.Errorf("payload has no root node")
	}

	root, err := nodeFromWire(wire.Root, wire.Actors)
	if err != nil {
		return nil, err
	}
	return &document{
		actor: wire.Actors[wire.Self],
		clock: wire.Clock,
		root:  root,
	}, nil
}

func timestampFromWire(wire wireTimestamp, actors []string) (timestamp, error) {
	if int(wire.Actor) >= len(actors) {
		return timestamp{}, fmt.Errorf("actor index %d out of range (table has %d entries)",
			wire.Actor, len(actors))
	}
	return timestamp{counter: wire.Counter, actor: actors[wire.Actor]}, nil
}

func nodeFromWire(wire *wireNode, actors []string) (*node, error) {
	id, err := timestampFromWire(wire.ID, actors)
	if err != nil {
		return nil, err
	}

	kind := nodeKind(wire.Kind)
	if !kind.valid() {
		return nil, fmt.Errorf("unknown node kind %d", wire.Kind)
	}

	n := &node{id: id, kind: kind}
	switch kind {
	case kindBool:
		n.boolValue = wire.Bool
	case kindInt:
		n.intValue = wire.Int
	case kindFloat:
		n.floatValue = wire.Float
	case kindString:
		n.stringValue = wire.String

	case kindMap:
		seen := make(map[string]bool, len(wire.Entries))
		n.entries = make([]mapEntry, len(wire.Entries))
		for i, entry := range wire.Entries {
			if seen[entry.Key] {
				return nil, fmt.Errorf("duplicate map key %q", entry.Key)
			}
			seen[entry.Key] = true
			if entry.Value == nil {
				return nil, fmt.Errorf("map key %q has no value node", entry.Key)
			}
			set, err := timestampFromWire(entry.Set, actors)
			if err != nil {
				return nil, fmt.Errorf("map key %q: %w", entry.Key, err)
			}
			value, err := nodeFromWire(entry.Value, actors)
			if err != nil {
				return nil, fmt.Errorf("map key %q: %w", entry.Key, err)
			}
			n.entries[i] = mapEntry{key: entry.Key, set: set, value: value}
		}

	case kindList:
		n.elements = make([]listElement, len(wire.Elements))
		for i, element := range wire.Elements {
			if element.Value == nil {
				return nil, fmt.Errorf("list element %d has no value node", i)
			}
			id, err := timestampFromWire(element.ID, actors)
			if err != nil {
				return nil, fmt.Errorf("list element %d: %w", i, err)
			}
			value, err := nodeFromWire(element.Value, actors)
			if err != nil {
				return nil, fmt.Errorf("list element %d: %w", i, err)
			}
			n.elements[i] = listElement{id: id, value: value, deleted: element.Deleted}
		}
	}
	return n, nil
}
