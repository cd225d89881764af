/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package convert_test

import (
	"encoding/json"
	"strings"
	"testing"

	"bennypowers.dev/tzerufim/convert"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    convert.Format
		wantErr bool
	}{
		{"dtcg", convert.FormatDTCG, false},
		{"json", convert.FormatDTCG, false},
		{"", convert.FormatDTCG, false},
		{"CSS", convert.FormatCSS, false},
		{"scss", "", true},
	}
	for _, tt := range tests {
		got, err := convert.ParseFormat(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDocument_DTCG(t *testing.T) {
	doc := map[string]any{
		"color": map[string]any{"primary": map[string]any{"$value": "#ff0000"}},
	}
	out, err := convert.FormatDocument(doc, convert.FormatDTCG, convert.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var round map[string]any
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if _, ok := round["color"]; !ok {
		t.Error("expected color key in output")
	}
}

func TestFormatDocument_CSS(t *testing.T) {
	doc := map[string]any{
		"color": map[string]any{
			"$type":   "color",
			"primary": map[string]any{"$value": "#ff0000"},
		},
		"spacing": map[string]any{
			"small": map[string]any{"$value": "4px"},
		},
	}
	out, err := convert.FormatDocument(doc, convert.FormatCSS, convert.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	css := string(out)

	if !strings.HasPrefix(css, ":root {\n") || !strings.HasSuffix(css, "}\n") {
		t.Errorf("output must be a :root block:\n%s", css)
	}
	if !strings.Contains(css, "--color-primary: #ff0000;") {
		t.Errorf("missing color declaration:\n%s", css)
	}
	if !strings.Contains(css, "--spacing-small: 4px;") {
		t.Errorf("missing spacing declaration:\n%s", css)
	}
}

func TestFormatDocument_CSSPrefix(t *testing.T) {
	doc := map[string]any{
		"spacing": map[string]any{"small": map[string]any{"$value": "4px"}},
	}
	out, err := convert.FormatDocument(doc, convert.FormatCSS, convert.Options{Prefix: "ds"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "--ds-spacing-small: 4px;") {
		t.Errorf("prefix missing:\n%s", out)
	}
}

func TestFormatDocument_CSSColorNormalization(t *testing.T) {
	doc := map[string]any{
		"named": map[string]any{"$type": "color", "$value": "rebeccapurple"},
	}
	out, err := convert.FormatDocument(doc, convert.FormatCSS, convert.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "--named: #663399;") {
		t.Errorf("named colors must normalize to hex:\n%s", out)
	}
}

func TestFormatDocument_CSSStructuredColor(t *testing.T) {
	doc := map[string]any{
		"hexed": map[string]any{
			"$type":  "color",
			"$value": map[string]any{"colorSpace": "srgb", "hex": "#aabbcc"},
		},
		"components": map[string]any{
			"$type": "color",
			"$value": map[string]any{
				"colorSpace": "srgb",
				"components": []any{1.0, 0.0, 0.0},
			},
		},
	}
	out, err := convert.FormatDocument(doc, convert.FormatCSS, convert.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	css := string(out)
	if !strings.Contains(css, "--hexed: #aabbcc;") {
		t.Errorf("hex member must win:\n%s", css)
	}
	if !strings.Contains(css, "--components: #ff0000;") {
		t.Errorf("components must render as hex:\n%s", css)
	}
}

func TestFormatDocument_CSSShadowShorthand(t *testing.T) {
	doc := map[string]any{
		"elevation": map[string]any{
			"$type": "shadow",
			"$value": map[string]any{
				"offsetX": "0px",
				"offsetY": "2px",
				"blur":    "4px",
				"spread":  "0px",
				"color":   "#00000080",
			},
		},
	}
	out, err := convert.FormatDocument(doc, convert.FormatCSS, convert.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "--elevation: 0px 2px 4px 0px #00000080;") {
		t.Errorf("shadow shorthand wrong:\n%s", out)
	}
}

func TestFormatDocument_CSSCompositeWithoutShorthand(t *testing.T) {
	doc := map[string]any{
		"heading": map[string]any{
			"$type": "typography",
			"$value": map[string]any{
				"fontFamily": "Inter",
				"fontSize":   "24px",
			},
		},
	}
	out, err := convert.FormatDocument(doc, convert.FormatCSS, convert.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Typography has no CSS shorthand; value serializes as JSON.
	if !strings.Contains(string(out), `"fontFamily":"Inter"`) {
		t.Errorf("composite without shorthand must serialize as JSON:\n%s", out)
	}
}
