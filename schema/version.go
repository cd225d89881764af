/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package schema provides DTCG schema version handling and shared errors.
package schema

import "fmt"

// Version represents a design tokens schema version.
type Version int

const (
	// Unknown represents an undetected or unrecognized schema version.
	Unknown Version = iota

	// Draft represents the editor's draft schema.
	Draft

	// V2025_10 represents the stable 2025.10 schema.
	V2025_10
)

// String returns the string representation of the schema version.
func (v Version) String() string {
	switch v {
	case Draft:
		return "draft"
	case V2025_10:
		return "v2025.10"
	default:
		return "unknown"
	}
}

// SupportsRef reports whether this schema version honors $ref pointers.
// Draft documents treat "#/..." strings as plain values.
func (v Version) SupportsRef() bool {
	return v == V2025_10
}

// FromURL returns the schema version from a JSON Schema URL.
func FromURL(url string) (Version, error) {
	switch url {
	case "https://www.designtokens.org/schemas/draft.json":
		return Draft, nil
	case "https://www.designtokens.org/schemas/2025.10.json":
		return V2025_10, nil
	default:
		return Unknown, fmt.Errorf("unrecognized schema URL: %s", url)
	}
}

// FromString returns the schema version from a string representation.
func FromString(s string) (Version, error) {
	switch s {
	case "draft":
		return Draft, nil
	case "v2025.10", "v2025_10", "2025.10", "2025", "v2025":
		return V2025_10, nil
	default:
		return Unknown, fmt.Errorf("unrecognized schema version string: %s", s)
	}
}

// Detect determines the schema version of a raw token document.
// Priority order:
//  1. $schema field in the document root
//  2. Duck typing on 2025.10-only features ($ref)
//  3. Draft, for backward compatibility
func Detect(doc map[string]any) Version {
	if schemaURL, ok := doc["$schema"].(string); ok {
		if version, err := FromURL(schemaURL); err == nil {
			return version
		}
	}
	if hasFeature(doc, "$ref") {
		return V2025_10
	}
	return Draft
}

// hasFeature checks if a field name exists anywhere in the structure.
func hasFeature(data map[string]any, featureName string) bool {
	if _, exists := data[featureName]; exists {
		return true
	}
	for _, value := range data {
		switch v := value.(type) {
		case map[string]any:
			if hasFeature(v, featureName) {
				return true
			}
		case []any:
			for _, item := range v {
				if m, ok := item.(map[string]any); ok && hasFeature(m, featureName) {
					return true
				}
			}
		}
	}
	return false
}
