/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bennypowers.dev/tzerufim/manifest"
)

const themeManifest = `{
	"sets": [
		{"name": "base", "files": ["a.json"]}
	],
	"modifiers": {
		"theme": {
			"oneOf": ["light", "dark"],
			"values": {
				"light": ["l.json"],
				"dark": ["d.json"]
			}
		}
	}
}`

func TestParse_JSON(t *testing.T) {
	m, err := manifest.Parse([]byte(themeManifest), "tokens.manifest.json")
	require.NoError(t, err)

	require.Len(t, m.Sets, 1)
	assert.Equal(t, "base", m.Sets[0].Name)
	assert.Equal(t, []string{"a.json"}, m.Sets[0].Files)

	theme := m.Modifier("theme")
	require.NotNil(t, theme)
	assert.Equal(t, manifest.OneOf, theme.Kind)
	assert.Equal(t, []string{"light", "dark"}, theme.OptionNames())
	assert.Equal(t, []string{"l.json"}, theme.Option("light").Files)
}

func TestParse_JSONC(t *testing.T) {
	m, err := manifest.Parse([]byte(`{
		// base tokens shared by every permutation
		"sets": ["a.json"],
		"modifiers": {}
	}`), "tokens.manifest.jsonc")
	require.NoError(t, err)
	require.Len(t, m.Sets, 1)
	assert.Equal(t, []string{"a.json"}, m.Sets[0].Files)
	assert.Empty(t, m.Sets[0].Name, "shorthand sets are anonymous")
}

func TestParse_YAML(t *testing.T) {
	m, err := manifest.Parse([]byte(`
sets:
  - name: base
    files:
      - a.json
modifiers:
  density:
    anyOf: [compact, comfy]
    values:
      compact: [compact.json]
      comfy: [comfy.json]
options:
  resolveReferences: true
`), "tokens.manifest.yaml")
	require.NoError(t, err)

	density := m.Modifier("density")
	require.NotNil(t, density)
	assert.Equal(t, manifest.AnyOf, density.Kind)
	assert.True(t, m.Options.ResolveReferences)
}

func TestParse_ModifierDeclarationOrder(t *testing.T) {
	m, err := manifest.Parse([]byte(`{
		"sets": ["a.json"],
		"modifiers": {
			"zebra": {"oneOf": ["on"], "values": {"on": []}},
			"apple": {"oneOf": ["on"], "values": {"on": []}},
			"mango": {"oneOf": ["on"], "values": {"on": []}}
		}
	}`), "m.json")
	require.NoError(t, err)

	names := make([]string, len(m.Modifiers))
	for i, mod := range m.Modifiers {
		names[i] = mod.Name
	}
	assert.Equal(t, []string{"zebra", "apple", "mango"}, names,
		"declaration order decides id segments and merge order, maps would scramble it")
}

func TestParse_Generate(t *testing.T) {
	m, err := manifest.Parse([]byte(`{
		"sets": ["a.json"],
		"modifiers": {
			"theme": {"oneOf": ["light", "dark"], "values": {"light": [], "dark": []}},
			"features": {"anyOf": ["x", "y"], "values": {"x": [], "y": []}}
		},
		"generate": [
			{"theme": "*", "output": "dist/{id}.json", "excludeModifiers": ["features"]},
			{"theme": "dark", "features": ["x", "y"]}
		]
	}`), "m.json")
	require.NoError(t, err)

	require.Len(t, m.Generate, 2)
	assert.Equal(t, "*", m.Generate[0].Input["theme"])
	assert.Equal(t, "dist/{id}.json", m.Generate[0].Output)
	assert.Equal(t, []string{"features"}, m.Generate[0].ExcludeModifiers)
	assert.Equal(t, []any{"x", "y"}, m.Generate[1].Input["features"])
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty document", ""},
		{"root not object", `["a.json"]`},
		{"sets not array", `{"sets": "a.json"}`},
		{"modifier not object", `{"sets": ["a"], "modifiers": {"theme": "light"}}`},
		{"generate not array", `{"sets": ["a"], "modifiers": {}, "generate": {}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manifest.Parse([]byte(tt.data), "m.json")
			assert.Error(t, err)
		})
	}
}
