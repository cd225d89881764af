/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest

import (
	"fmt"
	"slices"
	"strings"

	"bennypowers.dev/tzerufim/schema"
)

// ValidationError describes one manifest or input violation.
type ValidationError struct {
	// Path locates the violation (e.g. "modifiers.theme" or "sets[1]").
	Path string

	// Message is the human-readable description.
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// ValidationErrors aggregates every violation found before the call fails.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	lines := make([]string, 0, len(e)+1)
	lines = append(lines, fmt.Sprintf("%d manifest validation errors:", len(e)))
	for _, err := range e {
		lines = append(lines, "  "+err.Error())
	}
	return strings.Join(lines, "\n")
}

// Unwrap lets callers errors.Is against the manifest sentinel.
func (e ValidationErrors) Unwrap() error {
	return schema.ErrInvalidManifest
}

func asValidationError(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	return ValidationErrors(errs)
}

// Validate checks the manifest's own declarations. All violations are
// collected before the call fails; nothing downstream (file I/O, merging)
// runs against an invalid manifest.
func (m *Manifest) Validate() error {
	var errs []ValidationError

	if len(m.Sets) == 0 {
		errs = append(errs, ValidationError{Path: "sets", Message: "manifest must declare a non-empty sets array"})
	}
	for i, set := range m.Sets {
		if len(set.Files) == 0 {
			errs = append(errs, ValidationError{
				Path:    fmt.Sprintf("sets[%d]", i),
				Message: "set declares no files",
			})
		}
	}

	if !m.hasModifiers {
		errs = append(errs, ValidationError{Path: "modifiers", Message: "manifest must declare a modifiers object (it may be empty)"})
	}
	for i := range m.Modifiers {
		mod := &m.Modifiers[i]
		path := "modifiers." + mod.Name
		if len(mod.Options) == 0 {
			errs = append(errs, ValidationError{Path: path, Message: "modifier declares no options"})
		}
		seen := make(map[string]bool)
		for _, opt := range mod.Options {
			if seen[opt.Name] {
				errs = append(errs, ValidationError{Path: path, Message: fmt.Sprintf("duplicate option %q", opt.Name)})
			}
			seen[opt.Name] = true
		}
	}

	for i := range m.Generate {
		errs = append(errs, m.validateGenerate(i)...)
	}

	return asValidationError(errs)
}

// validateGenerate checks one generate entry's filters and input keys
// against the declarations.
func (m *Manifest) validateGenerate(index int) []ValidationError {
	var errs []ValidationError
	spec := &m.Generate[index]
	path := fmt.Sprintf("generate[%d]", index)

	for name, value := range spec.Input {
		mod := m.Modifier(name)
		if mod == nil {
			errs = append(errs, ValidationError{
				Path:    path,
				Message: fmt.Sprintf("unknown modifier %q", name),
			})
			continue
		}
		if s, ok := value.(string); ok && s == "*" {
			continue // wildcard fans out during expansion
		}
		errs = append(errs, m.validateSelection(path, mod, value)...)
	}

	setNames := make([]string, 0, len(m.Sets))
	for _, set := range m.Sets {
		if set.Name != "" {
			setNames = append(setNames, set.Name)
		}
	}
	for _, f := range append(append([]string{}, spec.IncludeSets...), spec.ExcludeSets...) {
		if f != "*" && !slices.Contains(setNames, f) {
			errs = append(errs, ValidationError{Path: path, Message: fmt.Sprintf("set filter names unknown set %q", f)})
		}
	}
	for _, f := range append(append([]string{}, spec.IncludeModifiers...), spec.ExcludeModifiers...) {
		if f != "*" && m.Modifier(f) == nil {
			errs = append(errs, ValidationError{Path: path, Message: fmt.Sprintf("modifier filter names unknown modifier %q", f)})
		}
	}

	return errs
}

// ValidateInput checks a concrete permutation input. Any key that is
// neither a declared modifier nor the reserved "output" key is an
// unknown-modifier error; OneOf selections must be declared option
// strings; AnyOf selections must be arrays of declared option strings.
// All violations are collected before the call fails.
func (m *Manifest) ValidateInput(input map[string]any) error {
	var errs []ValidationError

	for name, value := range input {
		if name == "output" {
			if _, ok := value.(string); !ok {
				errs = append(errs, ValidationError{Path: "output", Message: "output must be a string"})
			}
			continue
		}
		mod := m.Modifier(name)
		if mod == nil {
			errs = append(errs, ValidationError{
				Path:    name,
				Message: fmt.Sprintf("%s: not declared in manifest", schema.ErrUnknownModifier),
			})
			continue
		}
		errs = append(errs, m.validateSelection(name, mod, value)...)
	}

	return asValidationError(errs)
}

// validateSelection checks a single modifier selection value.
func (m *Manifest) validateSelection(path string, mod *Modifier, value any) []ValidationError {
	var errs []ValidationError
	options := mod.OptionNames()

	switch mod.Kind {
	case OneOf:
		s, ok := value.(string)
		if !ok {
			errs = append(errs, ValidationError{
				Path:    path,
				Message: fmt.Sprintf("oneOf modifier %q requires a string value", mod.Name),
			})
			break
		}
		if !slices.Contains(options, s) {
			errs = append(errs, ValidationError{
				Path:    path,
				Message: fmt.Sprintf("%q is not an option of %q (options: %s)", s, mod.Name, strings.Join(options, ", ")),
			})
		}
	case AnyOf:
		selections, ok := anyStrings(value)
		if !ok {
			errs = append(errs, ValidationError{
				Path:    path,
				Message: fmt.Sprintf("anyOf modifier %q requires an array of strings", mod.Name),
			})
			break
		}
		for _, s := range selections {
			if !slices.Contains(options, s) {
				errs = append(errs, ValidationError{
					Path:    path,
					Message: fmt.Sprintf("%q is not an option of %q (options: %s)", s, mod.Name, strings.Join(options, ", ")),
				})
			}
		}
	}

	return errs
}

// anyStrings coerces []string or []any-of-strings.
func anyStrings(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
