/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package token

import (
	"fmt"
	"regexp"
	"strings"

	"bennypowers.dev/tzerufim/schema"
)

var (
	// curlyBracePattern matches {token.path} alias references.
	curlyBracePattern = regexp.MustCompile(`\{([^{}]+)\}`)

	// pointerPattern matches $ref pointers: #/path or file.json#/path.
	pointerPattern = regexp.MustCompile(`^([^#\s{}]*)#(/.*)?$`)
)

// IsAliasString reports whether a string contains a {path} alias.
func IsAliasString(s string) bool {
	return curlyBracePattern.MatchString(s)
}

// IsWholeAlias reports whether a string is exactly one {path} alias,
// with no surrounding text.
func IsWholeAlias(s string) bool {
	m := curlyBracePattern.FindString(s)
	return m == s && m != ""
}

// AliasPath extracts the normalized path of a whole-string alias.
func AliasPath(s string) (string, bool) {
	if !IsWholeAlias(s) {
		return "", false
	}
	return strings.TrimSpace(s[1 : len(s)-1]), true
}

// ExtractAliases collects every normalized {path} alias found anywhere in a
// raw value: inside strings, nested objects, and arrays. Order follows first
// appearance; duplicates are dropped.
func ExtractAliases(value any) []string {
	var refs []string
	seen := make(map[string]bool)
	walkStrings(value, func(s string) {
		for _, m := range curlyBracePattern.FindAllStringSubmatch(s, -1) {
			ref := strings.TrimSpace(m[1])
			if ref != "" && !seen[ref] {
				seen[ref] = true
				refs = append(refs, ref)
			}
		}
	})
	return refs
}

// ExtractRefs collects every $ref pointer string found anywhere in a raw
// value: {"$ref": "#/x"} members and bare "#/x" / "file.json#/x" strings.
func ExtractRefs(value any) []string {
	var refs []string
	seen := make(map[string]bool)
	record := func(s string) {
		if pointerPattern.MatchString(s) && !seen[s] {
			seen[s] = true
			refs = append(refs, s)
		}
	}
	switch v := value.(type) {
	case string:
		record(v)
	case map[string]any:
		walkRefMembers(v, record)
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				walkRefMembers(m, record)
			} else if s, ok := item.(string); ok {
				record(s)
			}
		}
	}
	return refs
}

func walkRefMembers(m map[string]any, record func(string)) {
	if s, ok := m["$ref"].(string); ok {
		record(s)
	}
	for key, v := range m {
		if key == "$ref" {
			continue
		}
		switch nested := v.(type) {
		case map[string]any:
			walkRefMembers(nested, record)
		case []any:
			for _, item := range nested {
				if im, ok := item.(map[string]any); ok {
					walkRefMembers(im, record)
				}
			}
		}
	}
}

// walkStrings visits every string in a raw value tree.
func walkStrings(value any, visit func(string)) {
	switch v := value.(type) {
	case string:
		visit(v)
	case map[string]any:
		for _, nested := range v {
			walkStrings(nested, visit)
		}
	case []any:
		for _, nested := range v {
			walkStrings(nested, visit)
		}
	}
}

// Pointer is a parsed $ref target.
type Pointer struct {
	// File is the target file path; empty for intra-document pointers.
	File string

	// Segments are the decoded path segments below the document root.
	Segments []string
}

// DotPath returns the pointer's segments joined with dots.
func (p Pointer) DotPath() string {
	return strings.Join(p.Segments, ".")
}

// ParsePointer parses a $ref string into a Pointer.
// Accepted forms: "#/color/primary", "base.json#/color/primary", "#".
// Segments are RFC 6901-decoded (~1 before ~0).
func ParsePointer(ref string) (Pointer, error) {
	m := pointerPattern.FindStringSubmatch(ref)
	if m == nil {
		return Pointer{}, fmt.Errorf("%w: %q", schema.ErrInvalidReference, ref)
	}
	p := Pointer{File: m[1]}
	if m[2] == "/" {
		// "#/" names an empty segment, not the root.
		return Pointer{}, fmt.Errorf("%w: empty segment in %q", schema.ErrInvalidReference, ref)
	}
	raw := strings.TrimPrefix(m[2], "/")
	if raw == "" {
		return p, nil
	}
	segments := strings.Split(raw, "/")
	for i, segment := range segments {
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		if segment == "" {
			return Pointer{}, fmt.Errorf("%w: empty segment in %q", schema.ErrInvalidReference, ref)
		}
		segments[i] = segment
	}
	p.Segments = segments
	return p, nil
}
