/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"fmt"
	"strings"

	"bennypowers.dev/tzerufim/graph"
	"bennypowers.dev/tzerufim/token"
)

// BuildAliasGraph builds the token dependency adjacency map for a file:
// each token's path maps to the paths it references.
func BuildAliasGraph(file *token.FileAST) map[string][]string {
	adjacency := make(map[string][]string)
	for _, tok := range file.Tokens() {
		adjacency[tok.Path] = append([]string{}, tok.References...)
	}
	return adjacency
}

// CheckFileCycles detects circular cross-file $ref dependencies before
// assembly descends into them. Like token cycles, file cycles surface as
// Circular reference errors, one per cycle.
func CheckFileCycles(project *token.ProjectAST) []ReferenceError {
	if project == nil {
		return nil
	}
	result := graph.Detect(project.FileGraph())
	var errs []ReferenceError
	for _, cycle := range result.Cycles {
		errs = append(errs, ReferenceError{
			Kind:    Circular,
			Path:    cycle[0],
			Message: "file dependency cycle: " + strings.Join(cycle, " -> "),
		})
	}
	return errs
}

// ResolveAliases substitutes {alias} references throughout the file,
// strictly in dependency order. Already-resolved tokens are memoized rather
// than recomputed. When the alias graph contains any cycle nothing is
// resolved: a partial order over a cyclic graph would be false.
//
// Errors are collected, not thrown; callers that require a fully
// dereferenced document promote a non-empty result via AsError.
func ResolveAliases(file *token.FileAST, opts Options) []ReferenceError {
	var errs []ReferenceError

	result := graph.Detect(BuildAliasGraph(file))
	if result.HasCycles {
		for _, cycle := range result.Cycles {
			errs = append(errs, ReferenceError{
				Kind:    Circular,
				Path:    cycle[0],
				Message: "cycle: " + strings.Join(cycle, " -> "),
			})
		}
		return errs
	}

	maxDepth := opts.maxDepth()
	depth := make(map[string]int)

	for _, path := range result.TopologicalOrder {
		tok := file.TokenAt(path)
		if tok == nil {
			// Dangling target: referencing tokens report the miss.
			continue
		}
		if tok.Resolved {
			depth[path] = 1
			continue
		}

		if !tok.HasReferences() {
			tok.ResolvedValue = tok.Value
			tok.Resolved = true
			depth[path] = 1
			continue
		}

		chain := 1
		failed := false
		for _, ref := range tok.References {
			target := file.TokenAt(ref)
			if target == nil {
				errs = append(errs, ReferenceError{Kind: Missing, Path: tok.Path, Ref: "{" + ref + "}"})
				failed = true
				continue
			}
			if !target.Resolved {
				errs = append(errs, ReferenceError{
					Kind: Missing, Path: tok.Path, Ref: "{" + ref + "}",
					Message: "target is itself unresolved",
				})
				failed = true
				continue
			}
			if d := depth[ref] + 1; d > chain {
				chain = d
			}
		}
		if failed {
			continue
		}
		if chain > maxDepth {
			errs = append(errs, ReferenceError{
				Kind: Depth, Path: tok.Path,
				Message: fmt.Sprintf("reference chain length %d exceeds limit %d", chain, maxDepth),
			})
			continue
		}

		tok.ResolvedValue = substitute(tok.Value, file)
		tok.Resolved = true
		tok.References = nil
		depth[path] = chain
	}

	return errs
}

// substitute replaces aliases within a raw value. A whole-string alias
// takes the referenced token's resolved value as-is (preserving its shape);
// aliases embedded in longer strings interpolate as text.
func substitute(value any, file *token.FileAST) any {
	switch v := value.(type) {
	case string:
		if path, ok := token.AliasPath(v); ok {
			if target := file.TokenAt(path); target != nil && target.Resolved {
				return deepCopy(target.ResolvedValue)
			}
			return v
		}
		if token.IsAliasString(v) {
			return interpolate(v, file)
		}
		return v
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, nested := range v {
			out[k] = substitute(nested, file)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, nested := range v {
			out[i] = substitute(nested, file)
		}
		return out
	default:
		return v
	}
}

// interpolate rewrites each embedded {alias} with the referenced token's
// resolved value rendered as text.
func interpolate(s string, file *token.FileAST) string {
	for _, ref := range token.ExtractAliases(s) {
		target := file.TokenAt(ref)
		if target == nil || !target.Resolved {
			continue
		}
		s = strings.ReplaceAll(s, "{"+ref+"}", stringify(target.ResolvedValue))
	}
	return s
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
