/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/tzerufim/manifest"
	"bennypowers.dev/tzerufim/schema"
)

func parseManifest(t *testing.T, data string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.Parse([]byte(data), "tokens.manifest.json")
	require.NoError(t, err)
	return m
}

func TestValidate_OK(t *testing.T) {
	m := parseManifest(t, themeManifest)
	assert.NoError(t, m.Validate())
}

func TestValidate_CollectsEveryViolation(t *testing.T) {
	m := parseManifest(t, `{
		"modifiers": {
			"theme": {"oneOf": [], "values": {}},
			"broken": {"oneOf": ["a", "a"], "values": {}}
		}
	}`)

	err := m.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrInvalidManifest))

	var verrs manifest.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	// Missing sets, empty oneOf, duplicate option: all in one pass.
	assert.Len(t, verrs, 3)
}

func TestValidate_MissingModifiersObject(t *testing.T) {
	m := parseManifest(t, `{"sets": ["a.json"]}`)
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "modifiers")
}

func TestValidate_EmptyModifiersObjectIsFine(t *testing.T) {
	m := parseManifest(t, `{"sets": ["a.json"], "modifiers": {}}`)
	assert.NoError(t, m.Validate())
}

func TestValidate_SetWithoutFiles(t *testing.T) {
	m := parseManifest(t, `{"sets": [{"name": "base"}], "modifiers": {}}`)
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sets[0]")
}

func TestValidate_GenerateUnknownModifier(t *testing.T) {
	m := parseManifest(t, `{
		"sets": ["a.json"],
		"modifiers": {},
		"generate": [{"ghost": "on"}]
	}`)
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown modifier "ghost"`)
}

func TestValidate_GenerateFilterUnknownSet(t *testing.T) {
	m := parseManifest(t, `{
		"sets": [{"name": "base", "files": ["a.json"]}],
		"modifiers": {},
		"generate": [{"includeSets": ["ghost"]}]
	}`)
	err := m.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown set "ghost"`)
}

func TestValidate_GenerateWildcardPasses(t *testing.T) {
	m := parseManifest(t, `{
		"sets": ["a.json"],
		"modifiers": {"theme": {"oneOf": ["light"], "values": {"light": []}}},
		"generate": [{"theme": "*", "includeSets": ["*"]}]
	}`)
	assert.NoError(t, m.Validate())
}

func TestValidateInput(t *testing.T) {
	m := parseManifest(t, `{
		"sets": ["a.json"],
		"modifiers": {
			"theme": {"oneOf": ["light", "dark"], "values": {"light": [], "dark": []}},
			"features": {"anyOf": ["x", "y"], "values": {"x": [], "y": []}}
		}
	}`)

	tests := []struct {
		name    string
		input   map[string]any
		wantErr string
	}{
		{"valid", map[string]any{"theme": "dark", "features": []string{"x"}}, ""},
		{"empty defaults", map[string]any{}, ""},
		{"output key reserved", map[string]any{"output": "dist/out.json"}, ""},
		{"unknown modifier", map[string]any{"ghost": "on"}, "not declared"},
		{"oneOf wrong option", map[string]any{"theme": "sepia"}, "not an option"},
		{"oneOf not a string", map[string]any{"theme": []string{"light"}}, "requires a string"},
		{"anyOf not an array", map[string]any{"features": "x"}, "requires an array"},
		{"anyOf undeclared member", map[string]any{"features": []string{"x", "ghost"}}, "not an option"},
		{"output not a string", map[string]any{"output": 7}, "must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.ValidateInput(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateInput_CollectsAll(t *testing.T) {
	m := parseManifest(t, themeManifest)
	err := m.ValidateInput(map[string]any{
		"theme": "sepia",
		"ghost": "on",
	})
	require.Error(t, err)
	var verrs manifest.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
}
