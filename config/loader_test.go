/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package config_test

import (
	"slices"
	"testing"

	"bennypowers.dev/tzerufim/config"
	"bennypowers.dev/tzerufim/testutil"
)

func TestLoad_YAML(t *testing.T) {
	mfs := testutil.NewFS(t, map[string]string{
		".config/tzerufim.yaml": "manifest: design/tokens.manifest.json\noutput: build\nprefix: ds\nresolveReferences: true\n",
	})

	cfg, err := config.Load(mfs, ".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil {
		t.Fatal("expected config")
	}
	if cfg.Manifest != "design/tokens.manifest.json" {
		t.Errorf("Manifest = %q", cfg.Manifest)
	}
	if cfg.Output != "build" {
		t.Errorf("Output = %q", cfg.Output)
	}
	if cfg.Prefix != "ds" {
		t.Errorf("Prefix = %q", cfg.Prefix)
	}
	if cfg.ResolveReferences == nil || !*cfg.ResolveReferences {
		t.Error("ResolveReferences must be true")
	}
}

func TestLoad_JSON(t *testing.T) {
	mfs := testutil.NewFS(t, map[string]string{
		".config/tzerufim.json": `{"manifest": "m.json", "maxDepth": 8}`,
	})

	cfg, err := config.Load(mfs, ".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Manifest != "m.json" {
		t.Errorf("Manifest = %q", cfg.Manifest)
	}
	if cfg.MaxDepth != 8 {
		t.Errorf("MaxDepth = %d", cfg.MaxDepth)
	}
}

func TestLoad_YAMLTakesPriority(t *testing.T) {
	mfs := testutil.NewFS(t, map[string]string{
		".config/tzerufim.yaml": "manifest: from-yaml.json\n",
		".config/tzerufim.json": `{"manifest": "from-json.json"}`,
	})

	cfg, err := config.Load(mfs, ".")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Manifest != "from-yaml.json" {
		t.Errorf("yaml must win over json, got %q", cfg.Manifest)
	}
}

func TestLoad_Missing(t *testing.T) {
	mfs := testutil.NewFS(t, nil)

	cfg, err := config.Load(mfs, ".")
	if err != nil {
		t.Fatalf("missing config is not an error: %v", err)
	}
	if cfg != nil {
		t.Error("expected nil config when none exists")
	}
}

func TestLoadOrDefault(t *testing.T) {
	mfs := testutil.NewFS(t, nil)

	cfg := config.LoadOrDefault(mfs, ".")
	if cfg.Manifest != "tokens.manifest.json" {
		t.Errorf("default Manifest = %q", cfg.Manifest)
	}
	if cfg.Output != "dist" {
		t.Errorf("default Output = %q", cfg.Output)
	}
}

func TestExpandFiles(t *testing.T) {
	mfs := testutil.NewFS(t, map[string]string{
		"tokens/base.json":        "{}",
		"tokens/theme/light.json": "{}",
		"tokens/theme/dark.json":  "{}",
		"tokens/readme.md":        "",
	})

	files, err := config.ExpandFiles(mfs, ".", []string{"tokens/**/*.json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	slices.Sort(files)
	want := []string{
		"tokens/base.json",
		"tokens/theme/dark.json",
		"tokens/theme/light.json",
	}
	if !slices.Equal(files, want) {
		t.Errorf("ExpandFiles = %v, want %v", files, want)
	}
}

func TestExpandFiles_PassThrough(t *testing.T) {
	mfs := testutil.NewFS(t, nil)

	files, err := config.ExpandFiles(mfs, ".", []string{"tokens/base.json"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Non-glob paths pass through even when absent; reads report them later.
	if len(files) != 1 || files[0] != "tokens/base.json" {
		t.Errorf("ExpandFiles = %v", files)
	}
}
