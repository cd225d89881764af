/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package mapfs provides an in-memory filesystem implementation for testing.
package mapfs

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"
	"testing/fstest"
	"time"
)

// MapFileSystem implements tzerufim's fs.FileSystem over an in-memory
// fstest.MapFS, so tests never touch the real filesystem.
type MapFileSystem struct {
	mu      sync.RWMutex
	mapFS   fstest.MapFS
	modTime time.Time
}

// New creates a new in-memory filesystem for testing.
func New() *MapFileSystem {
	return &MapFileSystem{
		mapFS:   make(fstest.MapFS),
		modTime: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// AddFile adds a file to the in-memory filesystem.
func (mfs *MapFileSystem) AddFile(p string, content string, mode fs.FileMode) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	p = cleanPath(p)
	mfs.mapFS[p] = &fstest.MapFile{
		Data:    []byte(content),
		Mode:    mode,
		ModTime: mfs.modTime,
	}
}

// ReadFile reads the entire contents of a file.
func (mfs *MapFileSystem) ReadFile(name string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return mfs.mapFS.ReadFile(cleanPath(name))
}

// WriteFile writes data to a file.
func (mfs *MapFileSystem) WriteFile(name string, data []byte, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.mapFS[cleanPath(name)] = &fstest.MapFile{
		Data:    data,
		Mode:    perm,
		ModTime: mfs.modTime,
	}
	return nil
}

// MkdirAll is a no-op: MapFS materializes directories from file paths.
func (mfs *MapFileSystem) MkdirAll(p string, perm fs.FileMode) error {
	return nil
}

// ReadDir reads the named directory and returns its entries.
func (mfs *MapFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return mfs.mapFS.ReadDir(cleanPath(name))
}

// Stat returns file information for the named file.
func (mfs *MapFileSystem) Stat(name string) (fs.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return mfs.mapFS.Stat(cleanPath(name))
}

// Exists returns true if the path exists.
func (mfs *MapFileSystem) Exists(p string) bool {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	if _, ok := mfs.mapFS[cleanPath(p)]; ok {
		return true
	}
	// Directory probe: any file below the path counts.
	prefix := cleanPath(p) + "/"
	for name := range mfs.mapFS {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Open opens the named file for reading.
func (mfs *MapFileSystem) Open(name string) (fs.File, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return mfs.mapFS.Open(cleanPath(name))
}

// Files returns the paths of every file, for test assertions.
func (mfs *MapFileSystem) Files() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	var names []string
	for name := range mfs.mapFS {
		names = append(names, name)
	}
	return names
}

// String renders the filesystem contents, for test failure messages.
func (mfs *MapFileSystem) String() string {
	return fmt.Sprintf("mapfs%v", mfs.Files())
}

// cleanPath normalizes a path for fstest.MapFS, which requires unrooted
// slash-separated paths.
func cleanPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(p)
	return strings.TrimPrefix(p, "/")
}
