/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"path"
	"sort"
	"strings"

	"bennypowers.dev/tzerufim/schema"
)

// FileAST is the typed tree of one token document.
type FileAST struct {
	// Root is the document's root group (Path == "").
	Root *Group

	// FilePath is the file this document was loaded from.
	FilePath string

	// Version is the detected DTCG schema version.
	Version schema.Version

	// CrossFileRefs holds $ref strings that point into other files.
	CrossFileRefs map[string]struct{}
}

// NewFileAST creates an empty FileAST for a file path.
func NewFileAST(filePath string) *FileAST {
	return &FileAST{
		Root:          NewGroup("", ""),
		FilePath:      filePath,
		CrossFileRefs: make(map[string]struct{}),
	}
}

// NodeAt walks the tree to the node at a dot-joined path, or nil.
func (f *FileAST) NodeAt(dotPath string) Node {
	if dotPath == "" {
		return f.Root
	}
	var current Node = f.Root
	for _, segment := range strings.Split(dotPath, ".") {
		group, ok := current.(*Group)
		if !ok {
			return nil
		}
		current = group.Child(segment)
		if current == nil {
			return nil
		}
	}
	return current
}

// TokenAt returns the token at a dot-joined path, or nil if the path is
// absent or names a group.
func (f *FileAST) TokenAt(dotPath string) *Token {
	t, _ := f.NodeAt(dotPath).(*Token)
	return t
}

// Tokens returns every token in the document in insertion order.
func (f *FileAST) Tokens() []*Token {
	return f.Root.AllTokens()
}

// ProjectAST indexes FileASTs by normalized file path, for documents whose
// references span files.
type ProjectAST struct {
	files map[string]*FileAST
	order []string
}

// NewProjectAST creates an empty project.
func NewProjectAST() *ProjectAST {
	return &ProjectAST{files: make(map[string]*FileAST)}
}

// NormalizePath canonicalizes a file path for project lookup.
func NormalizePath(p string) string {
	return path.Clean(strings.ReplaceAll(p, "\\", "/"))
}

// Add registers a file's AST, replacing any previous entry for its path.
func (p *ProjectAST) Add(file *FileAST) {
	key := NormalizePath(file.FilePath)
	if _, exists := p.files[key]; !exists {
		p.order = append(p.order, key)
	}
	p.files[key] = file
}

// File returns the AST for a path, or nil.
func (p *ProjectAST) File(filePath string) *FileAST {
	return p.files[NormalizePath(filePath)]
}

// Paths returns registered file paths in insertion order.
func (p *ProjectAST) Paths() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// FileGraph returns the file-level dependency adjacency: each file's
// normalized path maps to the files its cross-file $refs point into,
// resolved relative to the referencing file. The same cycle detection that
// runs over token alias graphs runs over this.
func (p *ProjectAST) FileGraph() map[string][]string {
	adjacency := make(map[string][]string)
	for _, key := range p.order {
		file := p.files[key]
		var deps []string
		for ref := range file.CrossFileRefs {
			ptr, err := ParsePointer(ref)
			if err != nil || ptr.File == "" {
				continue
			}
			target := ptr.File
			if dir := path.Dir(key); dir != "." {
				target = path.Join(dir, ptr.File)
			}
			deps = append(deps, NormalizePath(target))
		}
		sort.Strings(deps)
		adjacency[key] = deps
	}
	return adjacency
}
