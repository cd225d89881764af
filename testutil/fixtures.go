/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package testutil provides testing utilities for tzerufim.
package testutil

import (
	"testing"

	"bennypowers.dev/tzerufim/internal/mapfs"
)

// NewFS builds an in-memory filesystem from a map of path to content.
func NewFS(t *testing.T, files map[string]string) *mapfs.MapFileSystem {
	t.Helper()

	mfs := mapfs.New()
	for path, content := range files {
		mfs.AddFile(path, content, 0644)
	}
	return mfs
}
