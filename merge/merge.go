/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package merge

import (
	"sort"
	"strings"
)

// compositeTypes are DTCG types whose values merge field by field rather
// than being replaced wholesale.
var compositeTypes = map[string]bool{
	"shadow":       true,
	"typography":   true,
	"border":       true,
	"transition":   true,
	"gradient":     true,
	"strokeStyle":  true,
	"stroke-style": true,
}

// isToken classifies a raw node: a node with a $value key is always a
// token, never a group, and vice versa.
func isToken(m map[string]any) bool {
	_, ok := m["$value"]
	return ok
}

// DetectConflicts walks both documents in lock step and reports every path
// whose classification or effective type disagrees. Keys present on only
// one side can never conflict.
func DetectConflicts(a, b map[string]any) []Conflict {
	var conflicts []Conflict
	detectGroup(a, b, "", "", "", &conflicts)
	return conflicts
}

func detectGroup(a, b map[string]any, path, aInherited, bInherited string, out *[]Conflict) {
	if t, ok := a["$type"].(string); ok {
		aInherited = t
	}
	if t, ok := b["$type"].(string); ok {
		bInherited = t
	}

	for _, key := range sharedKeys(a, b) {
		aVal, aIsMap := a[key].(map[string]any)
		bVal, bIsMap := b[key].(map[string]any)
		if !aIsMap || !bIsMap {
			continue
		}
		childPath := joinPath(path, key)

		aToken, bToken := isToken(aVal), isToken(bVal)
		if aToken != bToken {
			*out = append(*out, Conflict{Path: childPath, Kind: GroupTokenConflict, A: a[key], B: b[key]})
			continue
		}

		if aToken {
			aType := effectiveType(aVal, aInherited)
			bType := effectiveType(bVal, bInherited)
			if aType != "" && bType != "" && aType != bType {
				*out = append(*out, Conflict{Path: childPath, Kind: TypeMismatch, A: aType, B: bType})
			}
			continue
		}

		detectGroup(aVal, bVal, childPath, aInherited, bInherited, out)
	}
}

// Merge combines two documents, b overlaying a. It runs DetectConflicts
// first and refuses to merge at all if any conflict exists, so the merge is
// atomic.
func Merge(a, b map[string]any) (map[string]any, error) {
	if conflicts := DetectConflicts(a, b); len(conflicts) > 0 {
		return nil, &ConflictError{Conflicts: conflicts}
	}
	return mergeGroup(a, b, ""), nil
}

// MergeAll folds documents left to right; later documents override earlier
// ones wherever paths overlap.
func MergeAll(docs ...map[string]any) (map[string]any, error) {
	if len(docs) == 0 {
		return map[string]any{}, nil
	}
	acc := copyMap(docs[0])
	for _, doc := range docs[1:] {
		merged, err := Merge(acc, doc)
		if err != nil {
			return nil, err
		}
		acc = merged
	}
	return acc, nil
}

// mergeGroup merges two conflict-free group objects. The result starts
// from a; every key of b overlays or recurses with b winning at leaves.
func mergeGroup(a, b map[string]any, inheritedType string) map[string]any {
	result := copyMap(a)

	// Group-level $type prefers b's, else a's, else the parent's.
	childInherited := inheritedType
	if t, ok := a["$type"].(string); ok {
		childInherited = t
	}
	if t, ok := b["$type"].(string); ok {
		childInherited = t
	}

	for key, bVal := range b {
		if strings.HasPrefix(key, "$") {
			result[key] = mergeMetadata(key, a[key], bVal)
			continue
		}

		aVal, aIsMap := a[key].(map[string]any)
		bMap, bIsMap := bVal.(map[string]any)
		if !aIsMap || !bIsMap {
			result[key] = copyValue(bVal)
			continue
		}

		if isToken(aVal) && isToken(bMap) {
			result[key] = mergeToken(aVal, bMap, childInherited)
		} else {
			result[key] = mergeGroup(aVal, bMap, childInherited)
		}
	}

	return result
}

// mergeToken merges two token objects sharing a path.
func mergeToken(a, b map[string]any, inheritedType string) map[string]any {
	result := copyMap(a)
	effType := effectiveType(b, effectiveType(a, inheritedType))

	for key, bVal := range b {
		switch key {
		case "$value":
			result[key] = mergeValues(a[key], bVal, effType)
		default:
			result[key] = mergeMetadata(key, a[key], bVal)
		}
	}
	return result
}

// IsComposite reports whether a DTCG type carries an object-shaped value
// that merges field by field.
func IsComposite(effType string) bool {
	return compositeTypes[effType]
}

// mergeValues combines two $value payloads. A declared composite type, or
// any pair of object-shaped values, merges shallowly per field with b's
// fields winning and a's untouched fields surviving; anything else is
// replaced by b outright.
func mergeValues(aVal, bVal any, effType string) any {
	aMap, aIsMap := aVal.(map[string]any)
	bMap, bIsMap := bVal.(map[string]any)
	if aIsMap && bIsMap {
		result := copyMap(aMap)
		for field, v := range bMap {
			result[field] = copyValue(v)
		}
		return result
	}
	// Scalar values, and composites overridden by a non-object (e.g. an
	// alias string), are replaced by b.
	return copyValue(bVal)
}

// mergeMetadata merges a $-prefixed member: $extensions deep-merges as
// plain objects, everything else takes b's value when b defines it.
func mergeMetadata(key string, aVal, bVal any) any {
	if key == "$extensions" {
		aMap, aIsMap := aVal.(map[string]any)
		bMap, bIsMap := bVal.(map[string]any)
		if aIsMap && bIsMap {
			return deepMergeObjects(aMap, bMap)
		}
	}
	return copyValue(bVal)
}

// deepMergeObjects merges plain objects recursively. Arrays are replaced
// wholesale, not concatenated.
func deepMergeObjects(a, b map[string]any) map[string]any {
	result := copyMap(a)
	for key, bVal := range b {
		if aMap, ok := result[key].(map[string]any); ok {
			if bMap, ok := bVal.(map[string]any); ok {
				result[key] = deepMergeObjects(aMap, bMap)
				continue
			}
		}
		result[key] = copyValue(bVal)
	}
	return result
}

// effectiveType returns a token's own $type or the inherited group type.
func effectiveType(m map[string]any, inherited string) string {
	if t, ok := m["$type"].(string); ok {
		return t
	}
	return inherited
}

// sharedKeys returns the sorted keys present in both maps.
func sharedKeys(a, b map[string]any) []string {
	var keys []string
	for key := range a {
		if strings.HasPrefix(key, "$") {
			continue
		}
		if _, ok := b[key]; ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return copyMap(x)
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = copyValue(val)
		}
		return out
	default:
		return v
	}
}
