// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

package jsonshape

import (
	"encoding/json"
	"reflect"
)

// IsPlainJSON reports whether value is representable as plain JSON:
// nil, booleans, numbers, strings, and acyclic nestings of slices
// and string-keyed maps of such values. Anything else — times,
// compiled patterns, functions, channels, structs, non-string map
// keys — is rejected.
//
// The check is a pure predicate: it never panics and has no side
// effects. Self-referential values are detected by tracking the
// containers on the current traversal path and reported as invalid
// rather than recursed into.
func IsPlainJSON(value any) bool {
	return isPlain(value, nil)
}

// reference identifies a container on the current traversal path.
// The kind disambiguates a map and a slice that happen to share a
// backing pointer.
type reference struct {
	pointer uintptr
	kind    reflect.Kind
}

func isPlain(value any, path map[reference]bool) bool {
	switch value.(type) {
	case nil:
		return true
	case bool, string, json.Number:
		return true
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	}

	container := reflect.ValueOf(value)
	switch container.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		// Named leaf types (type Status string, etc.) carry the
		// same runtime kind as their underlying JSON primitive.
		return true

	case reflect.Slice:
		if container.Len() == 0 {
			return true
		}
		ref := reference{pointer: container.Pointer(), kind: reflect.Slice}
		if path[ref] {
			return false
		}
		if path == nil {
			path = make(map[reference]bool)
		}
		path[ref] = true
		for i := 0; i < container.Len(); i++ {
			if !isPlain(container.Index(i).Interface(), path) {
				return false
			}
		}
		delete(path, ref)
		return true

	case reflect.Array:
		// Arrays are values, not references — they cannot form a
		// cycle on their own.
		for i := 0; i < container.Len(); i++ {
			if !isPlain(container.Index(i).Interface(), path) {
				return false
			}
		}
		return true

	case reflect.Map:
		if container.Type().Key().Kind() != reflect.String {
			return false
		}
		if container.Len() == 0 {
			return true
		}
		ref := reference{pointer: container.Pointer(), kind: reflect.Map}
		if path[ref] {
			return false
		}
		if path == nil {
			path = make(map[reference]bool)
		}
		path[ref] = true
		iterator := container.MapRange()
		for iterator.Next() {
			if !isPlain(iterator.Value().Interface(), path) {
				return false
			}
		}
		delete(path, ref)
		return true

	default:
		return false
	}
}
