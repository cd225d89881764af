/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser_test

import (
	"slices"
	"testing"

	"bennypowers.dev/tzerufim/parser"
	"bennypowers.dev/tzerufim/schema"
	"bennypowers.dev/tzerufim/testutil"
	"bennypowers.dev/tzerufim/token"
)

func TestParse_JSON(t *testing.T) {
	doc, err := parser.Parse([]byte(`{"color": {"primary": {"$value": "#ff0000"}}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := doc["color"]; !ok {
		t.Error("expected color key")
	}
}

func TestParse_JSONC(t *testing.T) {
	doc, err := parser.Parse([]byte(`{
		// primary brand color
		"color": {"primary": {"$value": "#ff0000"}}
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := doc["color"]; !ok {
		t.Error("expected color key")
	}
}

func TestParse_YAML(t *testing.T) {
	doc, err := parser.Parse([]byte("color:\n  primary:\n    $value: '#ff0000'\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := doc["color"]; !ok {
		t.Error("expected color key")
	}
}

func TestBuild_TokenVersusGroup(t *testing.T) {
	file := parser.Build(map[string]any{
		"color": map[string]any{
			"primary": map[string]any{"$value": "#ff0000"},
		},
	}, "tokens.json", parser.Options{})

	if _, ok := file.NodeAt("color").(*token.Group); !ok {
		t.Error("color must be a group")
	}
	if _, ok := file.NodeAt("color.primary").(*token.Token); !ok {
		t.Error("color.primary must be a token")
	}
}

func TestBuild_TypeInheritance(t *testing.T) {
	file := parser.Build(map[string]any{
		"color": map[string]any{
			"$type":   "color",
			"primary": map[string]any{"$value": "#ff0000"},
			"special": map[string]any{"$value": "16px", "$type": "dimension"},
			"deep": map[string]any{
				"nested": map[string]any{"$value": "#00ff00"},
			},
		},
	}, "tokens.json", parser.Options{})

	if got := file.TokenAt("color.primary").Type; got != "color" {
		t.Errorf("inherited type = %q, want color", got)
	}
	if got := file.TokenAt("color.special").Type; got != "dimension" {
		t.Errorf("own type must win, got %q", got)
	}
	if got := file.TokenAt("color.deep.nested").Type; got != "color" {
		t.Errorf("type must propagate through nested groups, got %q", got)
	}
}

func TestBuild_AliasExtraction(t *testing.T) {
	file := parser.Build(map[string]any{
		"border": map[string]any{
			"$value": "1px solid {color.primary}",
		},
	}, "tokens.json", parser.Options{})

	tok := file.TokenAt("border")
	if !slices.Equal(tok.References, []string{"color.primary"}) {
		t.Errorf("References = %v", tok.References)
	}
	if tok.Resolved {
		t.Error("token with references must not start resolved")
	}
}

func TestBuild_RefsTrackedSeparately(t *testing.T) {
	file := parser.Build(map[string]any{
		"$schema": "https://www.designtokens.org/schemas/2025.10.json",
		"surface": map[string]any{
			"$value": map[string]any{"$ref": "#/color/primary"},
		},
	}, "tokens.json", parser.Options{})

	tok := file.TokenAt("surface")
	if len(tok.References) != 0 {
		t.Errorf("$ref must not appear in alias references, got %v", tok.References)
	}
	if !slices.Equal(tok.Refs, []string{"#/color/primary"}) {
		t.Errorf("Refs = %v", tok.Refs)
	}
}

func TestBuild_DraftIgnoresRef(t *testing.T) {
	file := parser.Build(map[string]any{
		"$schema": "https://www.designtokens.org/schemas/draft.json",
		"surface": map[string]any{
			"$value": "#/color/primary",
		},
	}, "tokens.json", parser.Options{})

	if len(file.TokenAt("surface").Refs) != 0 {
		t.Error("draft documents must not track $ref pointers")
	}
}

func TestBuild_CrossFileRefs(t *testing.T) {
	file := parser.Build(map[string]any{
		"surface": map[string]any{
			"$value": map[string]any{"$ref": "base.json#/color/primary"},
		},
	}, "tokens.json", parser.Options{SchemaVersion: schema.V2025_10})

	if _, ok := file.CrossFileRefs["base.json#/color/primary"]; !ok {
		t.Errorf("cross-file ref not recorded: %v", file.CrossFileRefs)
	}
}

func TestBuild_MalformedDegradesToEmptyGroup(t *testing.T) {
	file := parser.Build(map[string]any{
		"broken": "just a string",
		"fine":   map[string]any{"$value": "1"},
	}, "tokens.json", parser.Options{})

	group, ok := file.NodeAt("broken").(*token.Group)
	if !ok {
		t.Fatal("malformed entries must degrade to groups, not fail")
	}
	if group.Len() != 0 {
		t.Error("degraded group must be empty")
	}
	if file.TokenAt("fine") == nil {
		t.Error("siblings of malformed entries must still build")
	}
}

func TestLoader_CachesAndCopies(t *testing.T) {
	mfs := testutil.NewFS(t, map[string]string{
		"tokens/base.json": `{"a": {"$value": "1"}}`,
	})
	loader := parser.NewLoader(mfs)

	first, err := loader.Load("tokens/base.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Mutating the returned document must not poison the cache.
	first["a"].(map[string]any)["$value"] = "mutated"

	second, err := loader.Load("tokens/base.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := second["a"].(map[string]any)["$value"]; got != "1" {
		t.Errorf("cache was mutated through a returned copy: %v", got)
	}
}
