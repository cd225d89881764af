/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package mapfs_test

import (
	"testing"

	"bennypowers.dev/tzerufim/internal/mapfs"
)

func TestReadWrite(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("tokens/base.json", "{}", 0644)

	data, err := mfs.ReadFile("tokens/base.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("ReadFile = %q", data)
	}

	if err := mfs.WriteFile("dist/out.json", []byte("written"), 0644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err = mfs.ReadFile("dist/out.json")
	if err != nil || string(data) != "written" {
		t.Errorf("round trip failed: %q, %v", data, err)
	}
}

func TestExists(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("a/b/c.json", "{}", 0644)

	if !mfs.Exists("a/b/c.json") {
		t.Error("file must exist")
	}
	if !mfs.Exists("a/b") {
		t.Error("implied directory must exist")
	}
	if mfs.Exists("a/b/ghost.json") {
		t.Error("absent file must not exist")
	}
}

func TestPathNormalization(t *testing.T) {
	mfs := mapfs.New()
	mfs.AddFile("/rooted/file.json", "{}", 0644)

	if _, err := mfs.ReadFile("rooted/./file.json"); err != nil {
		t.Errorf("normalized lookup failed: %v", err)
	}
}
