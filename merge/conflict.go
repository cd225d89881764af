/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package merge combines raw token documents with conflict detection.
package merge

import (
	"encoding/json"
	"fmt"
	"strings"

	"bennypowers.dev/tzerufim/schema"
)

// ConflictKind classifies a merge conflict.
type ConflictKind string

const (
	// TypeMismatch means the same path carries differing effective types.
	TypeMismatch ConflictKind = "type-mismatch"

	// GroupTokenConflict means the same path is a token on one side and
	// a group on the other.
	GroupTokenConflict ConflictKind = "group-token-conflict"
)

// Conflict describes one irreconcilable difference between two documents.
type Conflict struct {
	// Path is the dot-joined document path of the conflict.
	Path string

	// Kind classifies the conflict.
	Kind ConflictKind

	// A and B are the conflicting raw values from each side.
	A any
	B any
}

// summaryLimit caps how many conflicts beyond the first get summarized.
const summaryLimit = 3

// ConflictError aggregates every conflict found between two documents.
// Merges are atomic: either zero conflicts exist and the whole merge is
// well-defined, or nothing is merged and this error reports why.
type ConflictError struct {
	Conflicts []Conflict
}

// Error renders the first conflict with full context and summarizes a few
// more.
func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 0 {
		return "merge conflict"
	}
	first := e.Conflicts[0]
	var b strings.Builder
	fmt.Fprintf(&b, "%s at %q:\n  a: %s\n  b: %s",
		first.Kind, first.Path, renderValue(first.A), renderValue(first.B))

	extra := e.Conflicts[1:]
	for i, c := range extra {
		if i == summaryLimit {
			fmt.Fprintf(&b, "\nand %d more conflicts", len(extra)-summaryLimit)
			break
		}
		fmt.Fprintf(&b, "\nalso %s at %q", c.Kind, c.Path)
	}
	return b.String()
}

// Unwrap lets callers errors.Is against the merge sentinel.
func (e *ConflictError) Unwrap() error {
	return schema.ErrMergeConflict
}

func renderValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
