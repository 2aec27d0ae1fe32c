// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package lww

import "slices"

// mergeNodes combines two replicas of a node into a freshly
// allocated node. Neither input is modified.
//
// Same-kind containers are merged structurally: maps reconcile per
// key (last writer wins per register, recursive merge when both
// sides hold a container), lists union their elements by element
// identity. Everything else — leaves, or a kind conflict — is
// resolved by node timestamp: the later write wins outright.
func mergeNodes(a, b *node) *node {
	if a == nil {
		return clone(b)
	}
	if b == nil {
		return clone(a)
	}

	switch {
	case a.kind == kindMap && b.kind == kindMap:
		return mergeMaps(a, b)
	case a.kind == kindList && b.kind == kindList:
		return mergeLists(a, b)
	default:
		if a.id.less(b.id) {
			return clone(b)
		}
		return clone(a)
	}
}

func mergeMaps(a, b *node) *node {
	merged := &node{id: laterTimestamp(a.id, b.id), kind: kindMap}

	byKey := make(map[string]mapEntry, len(b.entries))
	for _, entry := range b.entries {
		byKey[entry.key] = entry
	}

	seen := make(map[string]bool, len(a.entries))
	keys := make([]string, 0, len(a.entries)+len(b.entries))
	for _, entry := range a.entries {
		keys = append(keys, entry.key)
		seen[entry.key] = true
	}
	for _, entry := range b.entries {
		if !seen[entry.key] {
			keys = append(keys, entry.key)
		}
	}
	slices.Sort(keys)

	aByKey := make(map[string]mapEntry, len(a.entries))
	for _, entry := range a.entries {
		aByKey[entry.key] = entry
	}

	merged.entries = make([]mapEntry, 0, len(keys))
	for _, key := range keys {
		left, inLeft := aByKey[key]
		right, inRight := byKey[key]

		switch {
		case inLeft && inRight:
			merged.entries = append(merged.entries, mergeEntries(left, right))
		case inLeft:
			merged.entries = append(merged.entries, mapEntry{key: key, set: left.set, value: clone(left.value)})
		default:
			merged.entries = append(merged.entries, mapEntry{key: key, set: right.set, value: clone(right.value)})
		}
	}
	return merged
}

// mergeEntries reconciles one map key present on both sides. When
// both registers hold a container of the same kind the containers
// are merged; otherwise the register with the later write wins.
func mergeEntries(a, b mapEntry) mapEntry {
	sameContainer := (a.value.kind == kindMap && b.value.kind == kindMap) ||
		(a.value.kind == kindList && b.value.kind == kindList)
	if sameContainer {
		return mapEntry{
			key:   a.key,
			set:   laterTimestamp(a.set, b.set),
			value: mergeNodes(a.value, b.value),
		}
	}

	if a.set.less(b.set) {
		return mapEntry{key: b.key, set: b.set, value: clone(b.value)}
	}
	return mapEntry{key: a.key, set: a.set, value: clone(a.value)}
}

// mergeLists unions elements by identity, ordered by element
// timestamp. Elements present on both sides merge their values and
// combine tombstones (a delete on either side sticks).
func mergeLists(a, b *node) *node {
	merged := &node{id: laterTimestamp(a.id, b.id), kind: kindList}

	byID := make(map[timestamp]listElement, len(b.elements))
	for _, element := range b.elements {
		byID[element.id] = element
	}

	seen := make(map[timestamp]bool, len(a.elements))
	merged.elements = make([]listElement, 0, len(a.elements)+len(b.elements))
	for _, element := range a.elements {
		seen[element.id] = true
		if other, ok := byID[element.id]; ok {
			merged.elements = append(merged.elements, listElement{
				id:      element.id,
				value:   mergeNodes(element.value, other.value),
				deleted: element.deleted || other.deleted,
			})
			continue
		}
		merged.elements = append(merged.elements, listElement{
			id:      element.id,
			value:   clone(element.value),
			deleted: element.deleted,
		})
	}
	for _, element := range b.elements {
		if seen[element.id] {
			continue
		}
		merged.elements = append(merged.elements, listElement{
			id:      element.id,
			value:   clone(element.value),
			deleted: element.deleted,
		})
	}

	slices.SortStableFunc(merged.elements, func(x, y listElement) int {
		if x.id == y.id {
			return 0
		}
		if x.id.less(y.id) {
			return -1
		}
		return 1
	})
	return merged
}

func laterTimestamp(a, b timestamp) timestamp {
	if a.less(b) {
		return b
	}
	return a
}

// clone deep-copies a node tree.
func clone(n *node) *node {
	if n == nil {
		return nil
	}
	copied := *n
	if n.entries != nil {
		copied.entries = make([]mapEntry, len(n.entries))
		for i, entry := range n.entries {
			copied.entries[i] = mapEntry{key: entry.key, set: entry.set, value: clone(entry.value)}
		}
	}
	if n.elements != nil {
		copied.elements = make([]listElement, len(n.elements))
		for i, element := range n.elements {
			copied.elements[i] = listElement{id: element.id, value: clone(element.value), deleted: element.deleted}
		}
	}
	return &copied
}
