/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest

import (
	"fmt"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"bennypowers.dev/tzerufim/fs"
	"bennypowers.dev/tzerufim/schema"
)

// Parse parses a manifest from JSON, JSONC, or YAML. Parsing goes through
// yaml.v3's node API rather than plain unmarshalling because modifier and
// set declaration order is semantically significant, and Go maps would
// discard it. yaml.v3 accepts JSON input directly; JSONC comments are
// stripped first.
func Parse(data []byte, filePath string) (*Manifest, error) {
	if isLikelyJSON(data) {
		data = jsonc.ToJSON(data)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %s", schema.ErrInvalidManifest, err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", schema.ErrInvalidManifest)
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: root must be an object", schema.ErrInvalidManifest)
	}

	m := &Manifest{FilePath: filePath}
	for key, value := range mappingPairs(doc) {
		switch key {
		case "sets":
			if err := parseSets(m, value); err != nil {
				return nil, err
			}
		case "modifiers":
			if err := parseModifiers(m, value); err != nil {
				return nil, err
			}
		case "generate":
			if err := parseGenerate(m, value); err != nil {
				return nil, err
			}
		case "options":
			parseOptions(m, value)
		}
	}
	return m, nil
}

// ParseFile reads and parses a manifest file.
func ParseFile(filesystem fs.FileSystem, path string) (*Manifest, error) {
	data, err := filesystem.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	m, err := Parse(data, path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return m, nil
}

func parseSets(m *Manifest, node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("%w: sets must be an array", schema.ErrInvalidManifest)
	}
	for _, entry := range node.Content {
		set := Set{}
		switch entry.Kind {
		case yaml.ScalarNode:
			// Shorthand: a bare string is an anonymous single-file set.
			set.Files = []string{entry.Value}
		case yaml.MappingNode:
			for key, value := range mappingPairs(entry) {
				switch key {
				case "name":
					set.Name = value.Value
				case "files", "values":
					set.Files = append(set.Files, stringSeq(value)...)
				}
			}
		default:
			return fmt.Errorf("%w: set entries must be objects or strings", schema.ErrInvalidManifest)
		}
		m.Sets = append(m.Sets, set)
	}
	return nil
}

func parseModifiers(m *Manifest, node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: modifiers must be an object", schema.ErrInvalidManifest)
	}
	m.hasModifiers = true
	for name, value := range mappingPairs(node) {
		if value.Kind != yaml.MappingNode {
			return fmt.Errorf("%w: modifier %q must be an object", schema.ErrInvalidManifest, name)
		}
		mod := Modifier{Name: name}
		var optionNames []string
		valueFiles := make(map[string][]string)
		for key, member := range mappingPairs(value) {
			switch key {
			case "oneOf":
				mod.Kind = OneOf
				optionNames = stringSeq(member)
			case "anyOf":
				mod.Kind = AnyOf
				optionNames = stringSeq(member)
			case "values":
				if member.Kind != yaml.MappingNode {
					return fmt.Errorf("%w: modifier %q values must be an object", schema.ErrInvalidManifest, name)
				}
				for option, files := range mappingPairs(member) {
					valueFiles[option] = stringSeq(files)
				}
			}
		}
		for _, optName := range optionNames {
			mod.Options = append(mod.Options, Option{
				Name:  optName,
				Files: valueFiles[optName],
			})
		}
		m.Modifiers = append(m.Modifiers, mod)
	}
	return nil
}

func parseGenerate(m *Manifest, node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("%w: generate must be an array", schema.ErrInvalidManifest)
	}
	for _, entry := range node.Content {
		if entry.Kind != yaml.MappingNode {
			return fmt.Errorf("%w: generate entries must be objects", schema.ErrInvalidManifest)
		}
		spec := GenerateSpec{Input: make(map[string]any)}
		for key, value := range mappingPairs(entry) {
			switch key {
			case "output":
				spec.Output = value.Value
			case "includeSets":
				spec.IncludeSets = stringSeq(value)
			case "excludeSets":
				spec.ExcludeSets = stringSeq(value)
			case "includeModifiers":
				spec.IncludeModifiers = stringSeq(value)
			case "excludeModifiers":
				spec.ExcludeModifiers = stringSeq(value)
			default:
				// A modifier selection: scalar or array.
				if value.Kind == yaml.SequenceNode {
					selections := stringSeq(value)
					anySel := make([]any, len(selections))
					for i, s := range selections {
						anySel[i] = s
					}
					spec.Input[key] = anySel
				} else {
					spec.Input[key] = value.Value
				}
			}
		}
		m.Generate = append(m.Generate, spec)
	}
	return nil
}

func parseOptions(m *Manifest, node *yaml.Node) {
	if node.Kind != yaml.MappingNode {
		return
	}
	for key, value := range mappingPairs(node) {
		if key == "resolveReferences" {
			m.Options.ResolveReferences = value.Value == "true"
		}
	}
}

// mappingPairs iterates a mapping node's key/value pairs in document order.
func mappingPairs(node *yaml.Node) func(func(string, *yaml.Node) bool) {
	return func(yield func(string, *yaml.Node) bool) {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if !yield(node.Content[i].Value, node.Content[i+1]) {
				return
			}
		}
	}
}

// stringSeq decodes a sequence of scalars; a lone scalar decodes as a
// single-element list.
func stringSeq(node *yaml.Node) []string {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			return nil
		}
		return []string{node.Value}
	case yaml.SequenceNode:
		out := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			out = append(out, item.Value)
		}
		return out
	default:
		return nil
	}
}

// isLikelyJSON checks if data appears to be JSON rather than YAML.
func isLikelyJSON(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r', 0xEF, 0xBB, 0xBF:
			continue
		case '{':
			return true
		default:
			return false
		}
	}
	return false
}
