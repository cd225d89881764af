/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides project configuration loading for tzerufim.
package config

// Config represents the tzerufim project configuration.
type Config struct {
	// Manifest is the path to the token manifest file.
	Manifest string `yaml:"manifest" json:"manifest"`

	// Output is the directory resolved permutations are written to.
	Output string `yaml:"output" json:"output"`

	// Prefix is the CSS variable prefix used by the CSS emitter.
	Prefix string `yaml:"prefix" json:"prefix"`

	// ResolveReferences requests full alias dereferencing of every
	// permutation. Nil defers to the manifest's own options.
	ResolveReferences *bool `yaml:"resolveReferences" json:"resolveReferences"`

	// MaxDepth overrides the reference chain depth limit.
	MaxDepth int `yaml:"maxDepth" json:"maxDepth"`
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Manifest: "tokens.manifest.json",
		Output:   "dist",
	}
}
