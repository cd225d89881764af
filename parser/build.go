/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package parser

import (
	"sort"
	"strings"

	"bennypowers.dev/tzerufim/fs"
	"bennypowers.dev/tzerufim/schema"
	"bennypowers.dev/tzerufim/token"
)

// Build constructs a FileAST from a raw token document.
//
// Build never fails: malformed shapes degrade to empty groups so downstream
// tooling can still report structural problems against a partial tree. Keys
// are visited in sorted order for deterministic output.
func Build(doc map[string]any, filePath string, opts Options) *token.FileAST {
	file := token.NewFileAST(filePath)
	if doc == nil {
		return file
	}

	version := opts.SchemaVersion
	if version == schema.Unknown {
		version = schema.Detect(doc)
	}
	file.Version = version

	buildGroup(file, file.Root, doc, nil, "", version)
	return file
}

// BuildFile reads, parses, and builds a file's AST in one step.
func BuildFile(filesystem fs.FileSystem, path string, opts Options) (*token.FileAST, error) {
	doc, err := ParseFile(filesystem, path)
	if err != nil {
		return nil, err
	}
	return Build(doc, path, opts), nil
}

// buildGroup populates group from the raw object data.
// inheritedType is the nearest ancestor $type.
func buildGroup(file *token.FileAST, group *token.Group, data map[string]any, jsonPath []string, inheritedType string, version schema.Version) {
	if groupType, ok := data["$type"].(string); ok {
		group.Type = groupType
		inheritedType = groupType
	}
	if desc, ok := data["$description"].(string); ok {
		group.Description = desc
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		if strings.HasPrefix(k, "$") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		valueMap, ok := data[key].(map[string]any)
		if !ok {
			// Unknown shape: degrade to an empty group rather than failing.
			childPath := joinPath(jsonPath, key)
			empty := token.NewGroup(childPath, key)
			group.Insert(key, empty)
			continue
		}

		childJSONPath := append(append([]string{}, jsonPath...), key)
		childPath := strings.Join(childJSONPath, ".")

		if value, hasValue := valueMap["$value"]; hasValue {
			t := buildToken(key, childPath, value, valueMap, inheritedType, version)
			group.Insert(key, t)
			for _, ref := range t.Refs {
				if ptr, err := token.ParsePointer(ref); err == nil && ptr.File != "" {
					file.CrossFileRefs[ref] = struct{}{}
				}
			}
			continue
		}

		child := token.NewGroup(childPath, key)
		group.Insert(key, child)
		buildGroup(file, child, valueMap, childJSONPath, inheritedType, version)
	}
}

// buildToken constructs a Token from a raw token object.
func buildToken(name, path string, value any, valueMap map[string]any, inheritedType string, version schema.Version) *token.Token {
	t := &token.Token{
		Path:       path,
		Name:       name,
		Value:      value,
		References: token.ExtractAliases(value),
	}

	// $ref pointers are resolved eagerly in the assembly phase, so they
	// are tracked apart from alias references. Draft documents do not
	// support $ref at all.
	if version.SupportsRef() {
		t.Refs = token.ExtractRefs(value)
	}

	if typeStr, ok := valueMap["$type"].(string); ok {
		t.Type = typeStr
	} else {
		t.Type = inheritedType
	}
	if desc, ok := valueMap["$description"].(string); ok {
		t.Description = desc
	}
	if deprecated, ok := valueMap["$deprecated"].(bool); ok {
		t.Deprecated = deprecated
	}
	if extensions, ok := valueMap["$extensions"].(map[string]any); ok {
		t.Extensions = extensions
	}

	return t
}

func joinPath(jsonPath []string, key string) string {
	if len(jsonPath) == 0 {
		return key
	}
	return strings.Join(jsonPath, ".") + "." + key
}
