/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"sync"

	"bennypowers.dev/tzerufim/fs"
	"bennypowers.dev/tzerufim/token"
)

// Loader reads and parses token documents, caching parsed results by
// normalized path. The cache is read-only from the caller's perspective:
// Load returns a deep copy, so shared cache entries are never mutated by
// permutation merges running in parallel.
type Loader struct {
	filesystem fs.FileSystem

	mu    sync.RWMutex
	cache map[string]map[string]any
}

// NewLoader creates a Loader over the given filesystem.
func NewLoader(filesystem fs.FileSystem) *Loader {
	return &Loader{
		filesystem: filesystem,
		cache:      make(map[string]map[string]any),
	}
}

// Load returns the parsed document for a path, reading it at most once.
func (l *Loader) Load(path string) (map[string]any, error) {
	key := token.NormalizePath(path)

	l.mu.RLock()
	doc, ok := l.cache[key]
	l.mu.RUnlock()
	if ok {
		return copyDocument(doc), nil
	}

	doc, err := ParseFile(l.filesystem, path)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[key] = doc
	l.mu.Unlock()

	return copyDocument(doc), nil
}

// FileSystem returns the underlying filesystem.
func (l *Loader) FileSystem() fs.FileSystem {
	return l.filesystem
}

// copyDocument deep-copies a raw document.
func copyDocument(doc map[string]any) map[string]any {
	return copyValue(doc).(map[string]any)
}

func copyValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = copyValue(val)
		}
		return out
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
