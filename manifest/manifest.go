/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package manifest models token manifests: ordered sets of base files plus
// modifiers whose permutations expand into concrete, mergeable file lists.
package manifest

import "strings"

// ModifierKind distinguishes the two modifier shapes.
type ModifierKind int

const (
	// OneOf modifiers select exactly one option; the default is the
	// first declared option.
	OneOf ModifierKind = iota

	// AnyOf modifiers select zero or more options; the default is the
	// empty selection.
	AnyOf
)

// String returns the manifest keyword for the kind.
func (k ModifierKind) String() string {
	if k == AnyOf {
		return "anyOf"
	}
	return "oneOf"
}

// Set is a named or anonymous list of base token files, merged into every
// permutation in declaration order.
type Set struct {
	Name  string
	Files []string
}

// Option is one declared modifier value and the files it contributes.
type Option struct {
	Name  string
	Files []string
}

// Modifier is a declared axis of variation.
type Modifier struct {
	Name    string
	Kind    ModifierKind
	Options []Option
}

// Option returns the named option, or nil.
func (m *Modifier) Option(name string) *Option {
	for i := range m.Options {
		if m.Options[i].Name == name {
			return &m.Options[i]
		}
	}
	return nil
}

// OptionNames returns option names in declaration order.
func (m *Modifier) OptionNames() []string {
	names := make([]string, len(m.Options))
	for i, opt := range m.Options {
		names[i] = opt.Name
	}
	return names
}

// GenerateSpec is one entry of the manifest's generate list: a partial
// selection plus include/exclude filters on set and modifier names.
type GenerateSpec struct {
	// Input maps modifier names to selections. A OneOf selection is a
	// string, an AnyOf selection a []string; "*" fans the entry out over
	// every option (or, for AnyOf, every subset).
	Input map[string]any

	// Output is a target path template; "{id}" expands to the
	// permutation id.
	Output string

	IncludeSets      []string
	ExcludeSets      []string
	IncludeModifiers []string
	ExcludeModifiers []string
}

// SetIncluded reports whether a set participates under this spec's filters.
// Filters match by name or "*"; anonymous sets match only "*".
func (g *GenerateSpec) SetIncluded(name string) bool {
	if g == nil {
		return true
	}
	if matchFilter(g.ExcludeSets, name) {
		return false
	}
	if len(g.IncludeSets) > 0 {
		return matchFilter(g.IncludeSets, name)
	}
	return true
}

// ModifierIncluded reports whether a modifier participates under this
// spec's filters.
func (g *GenerateSpec) ModifierIncluded(name string) bool {
	if g == nil {
		return true
	}
	if matchFilter(g.ExcludeModifiers, name) {
		return false
	}
	if len(g.IncludeModifiers) > 0 {
		return matchFilter(g.IncludeModifiers, name)
	}
	return true
}

func matchFilter(filters []string, name string) bool {
	for _, f := range filters {
		if f == "*" || (f != "" && f == name) {
			return true
		}
	}
	return false
}

// Options are manifest-level resolution options.
type Options struct {
	// ResolveReferences requests a full alias-dereference pass on every
	// merged permutation.
	ResolveReferences bool
}

// Manifest is a parsed token manifest. Sets and modifiers keep their
// declaration order: file collection and permutation ids depend on it.
type Manifest struct {
	Sets      []Set
	Modifiers []Modifier
	Generate  []GenerateSpec
	Options   Options

	// FilePath is the manifest's own path; set file paths resolve
	// relative to its directory.
	FilePath string

	// hasModifiers distinguishes an absent modifiers object from an
	// empty one: absence is a validation error, emptiness is not.
	hasModifiers bool
}

// Modifier returns the declared modifier with the given name, or nil.
func (m *Manifest) Modifier(name string) *Modifier {
	for i := range m.Modifiers {
		if m.Modifiers[i].Name == name {
			return &m.Modifiers[i]
		}
	}
	return nil
}

// PermutationID derives the permutation id for an input: in modifier
// declaration order, "{name}-{value}" for OneOf and "{name}-{v1+v2}" for
// non-empty AnyOf selections, joined with "_". An input with no
// contributing modifiers yields "default".
func (m *Manifest) PermutationID(input map[string]any) string {
	var parts []string
	for i := range m.Modifiers {
		mod := &m.Modifiers[i]
		switch mod.Kind {
		case OneOf:
			parts = append(parts, mod.Name+"-"+m.SelectedOne(mod, input))
		case AnyOf:
			selected := m.SelectedAny(mod, input)
			if len(selected) > 0 {
				parts = append(parts, mod.Name+"-"+strings.Join(selected, "+"))
			}
		}
	}
	if len(parts) == 0 {
		return "default"
	}
	return strings.Join(parts, "_")
}

// SelectedOne returns the OneOf selection for an input, defaulting to the
// first declared option.
func (m *Manifest) SelectedOne(mod *Modifier, input map[string]any) string {
	if v, ok := input[mod.Name].(string); ok {
		return v
	}
	if len(mod.Options) > 0 {
		return mod.Options[0].Name
	}
	return ""
}

// SelectedAny returns the AnyOf selections for an input in selection
// order, defaulting to none.
func (m *Manifest) SelectedAny(mod *Modifier, input map[string]any) []string {
	switch v := input[mod.Name].(type) {
	case []string:
		return v
	case []any:
		selected := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				selected = append(selected, s)
			}
		}
		return selected
	default:
		return nil
	}
}

// CollectFiles builds the ordered file list for an input: base-set files in
// declaration order, then each modifier's selected option files in
// declaration order. File order is significant: later files override
// earlier ones wherever the merge engine finds overlapping paths.
func (m *Manifest) CollectFiles(input map[string]any, spec *GenerateSpec) []string {
	var files []string
	for _, set := range m.Sets {
		if spec.SetIncluded(set.Name) {
			files = append(files, set.Files...)
		}
	}
	for i := range m.Modifiers {
		mod := &m.Modifiers[i]
		if !spec.ModifierIncluded(mod.Name) {
			continue
		}
		switch mod.Kind {
		case OneOf:
			if opt := mod.Option(m.SelectedOne(mod, input)); opt != nil {
				files = append(files, opt.Files...)
			}
		case AnyOf:
			for _, name := range m.SelectedAny(mod, input) {
				if opt := mod.Option(name); opt != nil {
					files = append(files, opt.Files...)
				}
			}
		}
	}
	return files
}
