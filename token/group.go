/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

// Group represents a named container of tokens and nested groups.
// Children keep insertion order so merge and output stay deterministic.
type Group struct {
	// Path is the dot-joined path of this group ("" for the root).
	Path string

	// Name is the terminal path segment.
	Name string

	// Type is the $type inherited by untyped descendant tokens.
	Type string

	// Description is optional documentation for the group.
	Description string

	names    []string
	children map[string]Node

	// parent is the enclosing group's path, non-owning.
	parent string
}

func (g *Group) node() {}

// NewGroup creates an empty group at the given path.
func NewGroup(path, name string) *Group {
	return &Group{
		Path:     path,
		Name:     name,
		children: make(map[string]Node),
	}
}

// NodePath returns the dot-joined path of this group.
func (g *Group) NodePath() string { return g.Path }

// ParentPath returns the path of the enclosing group.
func (g *Group) ParentPath() string { return g.parent }

// SetParent records the enclosing group's path.
func (g *Group) SetParent(path string) { g.parent = path }

// Insert adds or replaces a child, preserving first-insertion order.
func (g *Group) Insert(name string, child Node) {
	if g.children == nil {
		g.children = make(map[string]Node)
	}
	if _, exists := g.children[name]; !exists {
		g.names = append(g.names, name)
	}
	switch n := child.(type) {
	case *Token:
		n.parent = g.Path
	case *Group:
		n.parent = g.Path
	}
	g.children[name] = child
}

// Child returns the named child, or nil.
func (g *Group) Child(name string) Node {
	return g.children[name]
}

// Names returns child names in insertion order.
func (g *Group) Names() []string {
	out := make([]string, len(g.names))
	copy(out, g.names)
	return out
}

// Len returns the number of direct children.
func (g *Group) Len() int { return len(g.names) }

// Walk visits every descendant token in insertion order.
func (g *Group) Walk(visit func(*Token)) {
	for _, name := range g.names {
		switch n := g.children[name].(type) {
		case *Token:
			visit(n)
		case *Group:
			n.Walk(visit)
		}
	}
}

// AllTokens returns every descendant token in insertion order.
func (g *Group) AllTokens() []*Token {
	var tokens []*Token
	g.Walk(func(t *Token) {
		tokens = append(tokens, t)
	})
	return tokens
}
