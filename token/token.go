/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package token provides the typed AST for DTCG design token documents.
// See: https://design-tokens.github.io/community-group/format/
package token

import "strings"

// Node is a node in a token document tree: either a *Token or a *Group.
// Classification happens once at parse time; later phases type-switch
// exhaustively instead of re-probing for $value.
type Node interface {
	// NodePath returns the dot-joined path of this node within its document.
	NodePath() string

	// ParentPath returns the dot-joined path of the enclosing group
	// ("" for children of the root).
	ParentPath() string

	node()
}

// Token represents a design token: a leaf node carrying a $value.
type Token struct {
	// Path is the dot-joined identifier, unique within a document.
	Path string

	// Name is the terminal path segment (e.g. "primary" for "color.primary").
	Name string

	// Value is the raw $value, possibly containing {alias} strings or
	// nested $ref pointers.
	Value any

	// Type is the effective type: the token's own $type, or the nearest
	// enclosing group's.
	Type string

	// Description is optional documentation for the token.
	Description string

	// Extensions allows for custom metadata.
	Extensions map[string]any

	// Deprecated indicates if this token should no longer be used.
	Deprecated bool

	// References holds normalized alias paths found in Value.
	// $ref pointers are tracked separately (see Refs) because they are
	// resolved eagerly during assembly, not lazily.
	References []string

	// Refs holds $ref pointer strings found in Value.
	Refs []string

	// Resolved indicates whether alias resolution has completed.
	Resolved bool

	// ResolvedValue is the value after alias resolution.
	ResolvedValue any

	// parent is the enclosing group's path. Non-owning: callers resolve
	// it through the tree root on demand.
	parent string
}

func (t *Token) node() {}

// NodePath returns the dot-joined path of this token.
func (t *Token) NodePath() string { return t.Path }

// ParentPath returns the path of the enclosing group.
func (t *Token) ParentPath() string { return t.parent }

// HasReferences reports whether any aliases remain unsatisfied.
func (t *Token) HasReferences() bool { return len(t.References) > 0 }

// AddReference records a normalized alias path, deduplicating.
func (t *Token) AddReference(ref string) {
	for _, existing := range t.References {
		if existing == ref {
			return
		}
	}
	t.References = append(t.References, ref)
}

// RemoveReference drops a satisfied alias path.
func (t *Token) RemoveReference(ref string) {
	kept := t.References[:0]
	for _, existing := range t.References {
		if existing != ref {
			kept = append(kept, existing)
		}
	}
	t.References = kept
}

// CSSVariableName returns the CSS custom property name for this token.
// e.g. "--color-primary" or "--my-prefix-color-primary"
func (t *Token) CSSVariableName(prefix string) string {
	name := strings.ReplaceAll(t.Path, ".", "-")
	if prefix != "" {
		return "--" + strings.ReplaceAll(prefix, ".", "-") + "-" + name
	}
	return "--" + name
}
