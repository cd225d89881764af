/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package convert serializes resolved permutations to output formats.
package convert

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mazznoer/csscolorparser"

	"bennypowers.dev/tzerufim/merge"
	"bennypowers.dev/tzerufim/parser"
)

// Format represents an output format for permutation serialization.
type Format string

const (
	// FormatDTCG outputs the merged DTCG document as JSON (default).
	FormatDTCG Format = "dtcg"

	// FormatCSS outputs CSS custom properties with :root selector.
	FormatCSS Format = "css"
)

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "dtcg", "json", "":
		return FormatDTCG, nil
	case "css":
		return FormatCSS, nil
	default:
		return "", fmt.Errorf("unknown format %q (valid: dtcg, css)", s)
	}
}

// Options configures serialization.
type Options struct {
	// Prefix is added to CSS custom property names.
	Prefix string
}

// FormatDocument serializes a raw token document in the given format.
func FormatDocument(doc map[string]any, format Format, opts Options) ([]byte, error) {
	switch format {
	case FormatDTCG:
		return json.MarshalIndent(doc, "", "  ")
	case FormatCSS:
		return formatCSS(doc, opts)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// formatCSS renders every token as a custom property under :root, in
// deterministic order. Composite values serialize as JSON; colors
// normalize to hex where they parse as CSS colors.
func formatCSS(doc map[string]any, opts Options) ([]byte, error) {
	var b strings.Builder
	b.WriteString(":root {\n")

	file := parser.Build(doc, "", parser.Options{})
	for _, tok := range file.Tokens() {
		value := tok.Value
		if tok.Resolved {
			value = tok.ResolvedValue
		}
		fmt.Fprintf(&b, "  %s: %s;\n", tok.CSSVariableName(opts.Prefix), cssValue(value, tok.Type))
	}

	b.WriteString("}\n")
	return []byte(b.String()), nil
}

// cssValue renders one token value as CSS text.
func cssValue(value any, tokenType string) string {
	switch v := value.(type) {
	case string:
		if tokenType == "color" {
			if c, err := csscolorparser.Parse(v); err == nil {
				return c.HexString()
			}
		}
		return v
	case map[string]any:
		if tokenType == "color" {
			if s, ok := structuredColor(v); ok {
				return s
			}
		}
		if merge.IsComposite(tokenType) {
			if s, ok := compositeShorthand(v, tokenType); ok {
				return s
			}
		}
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// structuredColor renders a 2025.10 structured color object as hex.
func structuredColor(v map[string]any) (string, bool) {
	if hex, ok := v["hex"].(string); ok {
		return hex, true
	}
	components, ok := v["components"].([]any)
	if !ok || len(components) != 3 {
		return "", false
	}
	floats := make([]float64, 3)
	for i, c := range components {
		f, ok := c.(float64)
		if !ok {
			return "", false
		}
		floats[i] = f
	}
	alpha := 1.0
	if a, ok := v["alpha"].(float64); ok {
		alpha = a
	}
	c := csscolorparser.Color{R: floats[0], G: floats[1], B: floats[2], A: alpha}
	return c.HexString(), true
}

// compositeShorthand renders the composites that have a natural CSS
// shorthand. Others fall through to JSON.
func compositeShorthand(v map[string]any, tokenType string) (string, bool) {
	switch tokenType {
	case "shadow":
		return fieldJoin(v, []string{"offsetX", "offsetY", "blur", "spread", "color"}), true
	case "border":
		return fieldJoin(v, []string{"width", "style", "color"}), true
	case "transition":
		return fieldJoin(v, []string{"duration", "timingFunction", "delay"}), true
	default:
		return "", false
	}
}

func fieldJoin(v map[string]any, fields []string) string {
	var parts []string
	for _, field := range fields {
		if raw, ok := v[field]; ok {
			parts = append(parts, cssValue(raw, ""))
		}
	}
	return strings.Join(parts, " ")
}

