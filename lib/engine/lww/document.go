// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package lww

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
)

// timestamp is a logical clock value identifying a single write:
// a document-local counter paired with the writing replica's actor.
// Timestamps are totally ordered by counter first, actor second, so
// concurrent writes with equal counters still order deterministically.
type timestamp struct {
	counter uint64
	actor   string
}

// less reports whether t orders before other.
func (t timestamp) less(other timestamp) bool {
	if t.counter != other.counter {
		return t.counter < other.counter
	}
	return t.actor < other.actor
}

// nodeKind discriminates the node union. Values are wire constants —
// changing them breaks document format compatibility.
type nodeKind uint8

const (
	kindNull nodeKind = iota
	kindBool
	kindInt
	kindFloat
	kindString
	kindList
	kindMap
)

func (k nodeKind) valid() bool {
	return k <= kindMap
}

// node is one vertex of a document tree. Exactly one of the value
// fields is meaningful, selected by kind.
type node struct {
	id   timestamp
	kind nodeKind

	boolValue   bool
	intValue    int64
	floatValue  float64
	stringValue string

	entries  []mapEntry
	elements []listElement
}

// mapEntry is one key of a map node: an LWW register holding the
// timestamp of the winning write and the value it installed.
type mapEntry struct {
	key   string
	set   timestamp
	value *node
}

// listElement is one element of a list node. Elements keep a stable
// identity and are tombstoned rather than removed, so concurrent
// edits to the same list can be reconciled by element identity.
type listElement struct {
	id      timestamp
	value   *node
	deleted bool
}

// document is the engine's in-memory representation: a node tree,
// the local replica identity, and the replica's logical clock.
type document struct {
	actor string
	clock uint64
	root  *node
}

// tick advances the document clock and returns a fresh timestamp
// attributed to the local actor.
func (d *document) tick() timestamp {
	d.clock++
	return timestamp{counter: d.clock, actor: d.actor}
}

// build converts a plain JSON value into a node tree, assigning
// timestamps from the document clock. The path set tracks container
// references on the current traversal path: the engine detects
// reference cycles itself, independent of any pre-flight shape
// validation the caller may have skipped.
func (d *document) build(value any, path map[uintptr]bool) (*node, error) {
	switch v := value.(type) {
	case nil:
		return &node{id: d.tick(), kind: kindNull}, nil

	case bool:
		return &node{id: d.tick(), kind: kindBool, boolValue: v}, nil

	case string:
		return &node{id: d.tick(), kind: kindString, stringValue: v}, nil

	case int:
		return &node{id: d.tick(), kind: kindInt, intValue: int64(v)}, nil
	case int8:
		return &node{id: d.tick(), kind: kindInt, intValue: int64(v)}, nil
	case int16:
		return &node{id: d.tick(), kind: kindInt, intValue: int64(v)}, nil
	case int32:
		return &node{id: d.tick(), kind: kindInt, intValue: int64(v)}, nil
	case int64:
		return &node{id: d.tick(), kind: kindInt, intValue: v}, nil
	case uint:
		return d.buildUint(uint64(v))
	case uint8:
		return &node{id: d.tick(), kind: kindInt, intValue: int64(v)}, nil
	case uint16:
		return &node{id: d.tick(), kind: kindInt, intValue: int64(v)}, nil
	case uint32:
		return &node{id: d.tick(), kind: kindInt, intValue: int64(v)}, nil
	case uint64:
		return d.buildUint(v)

	case float32:
		return &node{id: d.tick(), kind: kindFloat, floatValue: float64(v)}, nil
	case float64:
		return &node{id: d.tick(), kind: kindFloat, floatValue: v}, nil

	case json.Number:
		if integer, err := v.Int64(); err == nil {
			return &node{id: d.tick(), kind: kindInt, intValue: integer}, nil
		}
		if float, err := v.Float64(); err == nil {
			return &node{id: d.tick(), kind: kindFloat, floatValue: float}, nil
		}
		return nil, fmt.Errorf("number %q is not representable as int64 or float64", v.String())

	case []any:
		return d.buildList(v, path)

	case map[string]any:
		return d.buildMap(v, path)

	default:
		return nil, fmt.Errorf("cannot represent %T in a document: values must be plain JSON", value)
	}
}

func (d *document) buildUint(v uint64) (*node, error) {
	if v > math.MaxInt64 {
		return nil, fmt.Errorf("unsigned value %d overflows the document integer range", v)
	}
	return &node{id: d.tick(), kind: kindInt, intValue: int64(v)}, nil
}

func (d *document) buildList(list []any, path map[uintptr]bool) (*node, error) {
	n := &node{id: d.tick(), kind: kindList}
	if len(list) == 0 {
		return n, nil
	}

	pointer := reflect.ValueOf(list).Pointer()
	if path[pointer] {
		return nil, fmt.Errorf("value contains a reference cycle")
	}
	if path == nil {
		path = make(map[uintptr]bool)
	}
	path[pointer] = true

	n.elements = make([]listElement, 0, len(list))
	for index, element := range list {
		child, err := d.build(element, path)
		if err != nil {
			return nil, fmt.Errorf("list index %d: %w", index, err)
		}
		n.elements = append(n.elements, listElement{id: child.id, value: child})
	}

	delete(path, pointer)
	return n, nil
}

func (d *document) buildMap(object map[string]any, path map[uintptr]bool) (*node, error) {
	n := &node{id: d.tick(), kind: kindMap}
	if len(object) == 0 {
		return n, nil
	}

	pointer := reflect.ValueOf(object).Pointer()
	if path[pointer] {
		return nil, fmt.Errorf("value contains a reference cycle")
	}
	if path == nil {
		path = make(map[uintptr]bool)
	}
	path[pointer] = true

	// Keys are visited in sorted order so that the assigned
	// timestamps (and therefore the serialized bytes) do not depend
	// on Go's map iteration order.
	keys := make([]string, 0, len(object))
	for key := range object {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	n.entries = make([]mapEntry, 0, len(object))
	for _, key := range keys {
		child, err := d.build(object[key], path)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		n.entries = append(n.entries, mapEntry{key: key, set: child.id, value: child})
	}

	delete(path, pointer)
	return n, nil
}

// materialize converts a node tree back into its plain JSON view.
// Tombstoned list elements are skipped.
func (n *node) materialize() any {
	switch n.kind {
	case kindNull:
		return nil
	case kindBool:
		return n.boolValue
	case kindInt:
		return n.intValue
	case kindFloat:
		return n.floatValue
	case kindString:
		return n.stringValue

	case kindList:
		list := make([]any, 0, len(n.elements))
		for _, element := range n.elements {
			if element.deleted {
				continue
			}
			list = append(list, element.value.materialize())
		}
		return list

	case kindMap:
		object := make(map[string]any, len(n.entries))
		for _, entry := range n.entries {
			object[entry.key] = entry.value.materialize()
		}
		return object

	default:
		// Unreachable: kinds are validated at deserialization and
		// construction.
		panic(fmt.Sprintf("lww: materialize of invalid node kind %d", n.kind))
	}
}
