/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest

// GenerateAllInputs enumerates every concrete permutation input. When the
// manifest declares an explicit generate list, each entry expands
// (wildcarded selections fan out); otherwise the full cartesian product
// over every modifier is enumerated: a OneOf with n options contributes a
// factor of n, an AnyOf with n options a factor of 2ⁿ (every subset,
// including the empty one). The exponential blowup is intentional and is
// expected to be bounded by policy outside this engine.
func (m *Manifest) GenerateAllInputs() []GeneratedInput {
	if len(m.Generate) > 0 {
		var inputs []GeneratedInput
		for i := range m.Generate {
			inputs = append(inputs, m.expandSpec(&m.Generate[i])...)
		}
		return inputs
	}

	var inputs []GeneratedInput
	for _, input := range m.cartesian(0, map[string]any{}) {
		inputs = append(inputs, GeneratedInput{Input: input})
	}
	return inputs
}

// GeneratedInput pairs a concrete input with the generate entry it came
// from, when any.
type GeneratedInput struct {
	Input map[string]any
	Spec  *GenerateSpec
}

// cartesian enumerates the full product over modifiers from index on,
// in declaration order.
func (m *Manifest) cartesian(index int, partial map[string]any) []map[string]any {
	if index == len(m.Modifiers) {
		return []map[string]any{copyInput(partial)}
	}
	mod := &m.Modifiers[index]

	var results []map[string]any
	for _, selection := range m.selections(mod) {
		partial[mod.Name] = selection
		results = append(results, m.cartesian(index+1, partial)...)
	}
	delete(partial, mod.Name)
	return results
}

// selections enumerates every concrete selection of one modifier: each
// option for OneOf; every subset, in bitmask order with the empty subset
// first, for AnyOf.
func (m *Manifest) selections(mod *Modifier) []any {
	switch mod.Kind {
	case OneOf:
		out := make([]any, len(mod.Options))
		for i, opt := range mod.Options {
			out[i] = opt.Name
		}
		return out
	case AnyOf:
		n := len(mod.Options)
		out := make([]any, 0, 1<<n)
		for mask := 0; mask < 1<<n; mask++ {
			subset := []string{}
			for i := 0; i < n; i++ {
				if mask&(1<<i) != 0 {
					subset = append(subset, mod.Options[i].Name)
				}
			}
			out = append(out, subset)
		}
		return out
	}
	return nil
}

// expandSpec expands one generate entry into concrete inputs. Fixed
// selections pass through; a "*" selection fans out over every option (or
// subset); absent modifiers keep their defaults. Modifiers expand in
// declaration order so fan-out order is stable.
func (m *Manifest) expandSpec(spec *GenerateSpec) []GeneratedInput {
	inputs := []map[string]any{{}}
	for i := range m.Modifiers {
		mod := &m.Modifiers[i]
		name := mod.Name
		value, ok := spec.Input[name]
		if !ok {
			continue
		}

		if s, ok := value.(string); ok && s == "*" {
			var expanded []map[string]any
			for _, selection := range m.selections(mod) {
				for _, input := range inputs {
					next := copyInput(input)
					next[name] = selection
					expanded = append(expanded, next)
				}
			}
			inputs = expanded
			continue
		}

		for _, input := range inputs {
			input[name] = value
		}
	}

	if spec.Output != "" {
		for _, input := range inputs {
			if _, ok := input["output"]; !ok {
				input["output"] = spec.Output
			}
		}
	}

	out := make([]GeneratedInput, len(inputs))
	for i, input := range inputs {
		out[i] = GeneratedInput{Input: input, Spec: spec}
	}
	return out
}

func copyInput(input map[string]any) map[string]any {
	out := make(map[string]any, len(input))
	for k, v := range input {
		out[k] = v
	}
	return out
}

// ResolveAll resolves every enumerated permutation independently. The
// first failure aborts: a partially resolved permutation set would be
// silently wrong rather than loudly incomplete.
func (r *Resolver) ResolveAll() ([]*ResolvedPermutation, error) {
	if err := r.manifest.Validate(); err != nil {
		return nil, err
	}

	generated := r.manifest.GenerateAllInputs()
	permutations := make([]*ResolvedPermutation, 0, len(generated))
	for _, g := range generated {
		perm, err := r.resolve(g.Input, g.Spec)
		if err != nil {
			return nil, err
		}
		permutations = append(permutations, perm)
	}
	return permutations, nil
}
