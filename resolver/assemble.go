/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package resolver

import (
	"path"
	"strconv"

	"bennypowers.dev/tzerufim/token"
)

// Options configures reference resolution.
type Options struct {
	// MaxDepth bounds reference chains so resolution terminates even
	// without a detected cycle. Zero means DefaultMaxDepth.
	MaxDepth int
}

// DefaultMaxDepth is the default bound on reference chain length.
const DefaultMaxDepth = 64

func (o Options) maxDepth() int {
	if o.MaxDepth > 0 {
		return o.MaxDepth
	}
	return DefaultMaxDepth
}

// AssembleRefs resolves every $ref pointer in the file by content
// inclusion: the pointer target's $value (or sub-value) is deep-copied into
// the referencing location. Intra-document pointers navigate the FileAST;
// inter-document pointers look up the target file in project by normalized
// path. Aliases pasted in by inclusion are added to the token's references,
// so the token stays unresolved until those are satisfied too.
//
// Structural errors are collected, not thrown, so one pass surfaces every
// broken pointer in the document.
func AssembleRefs(file *token.FileAST, project *token.ProjectAST, opts Options) []ReferenceError {
	var errs []ReferenceError
	for _, tok := range file.Tokens() {
		if len(tok.Refs) == 0 {
			continue
		}
		errs = append(errs, assembleToken(tok, file, project, opts.maxDepth())...)
	}
	return errs
}

// assembleToken resolves the pending $refs of one token. Inclusion can
// paste in further $refs, so the queue drains to a fixpoint bounded by
// maxDepth.
func assembleToken(tok *token.Token, file *token.FileAST, project *token.ProjectAST, maxDepth int) []ReferenceError {
	var errs []ReferenceError
	depth := 0

	for len(tok.Refs) > 0 {
		if depth >= maxDepth {
			errs = append(errs, ReferenceError{
				Kind:    Depth,
				Path:    tok.Path,
				Message: "chained $ref inclusion exceeded depth limit",
			})
			tok.Refs = nil
			break
		}
		depth++

		pending := tok.Refs
		tok.Refs = nil

		for _, ref := range pending {
			included, refErr := includeRef(ref, tok.Path, file, project)
			if refErr != nil {
				errs = append(errs, *refErr)
				continue
			}
			tok.Value = replaceRef(tok.Value, ref, included)
			for _, alias := range token.ExtractAliases(included) {
				tok.AddReference(alias)
			}
			// Chained pointers pasted by this inclusion.
			if file.Version.SupportsRef() {
				tok.Refs = append(tok.Refs, token.ExtractRefs(included)...)
			}
		}
	}

	return errs
}

// includeRef returns a deep copy of the pointer target's value.
func includeRef(ref, atPath string, file *token.FileAST, project *token.ProjectAST) (any, *ReferenceError) {
	ptr, err := token.ParsePointer(ref)
	if err != nil {
		return nil, &ReferenceError{Kind: Invalid, Path: atPath, Ref: ref, Message: err.Error()}
	}

	target := file
	if ptr.File != "" {
		if project == nil {
			return nil, &ReferenceError{Kind: Missing, Path: atPath, Ref: ref, Message: "no project loaded for cross-file pointer"}
		}
		targetPath := ptr.File
		if dir := path.Dir(token.NormalizePath(file.FilePath)); dir != "." {
			targetPath = path.Join(dir, ptr.File)
		}
		target = project.File(targetPath)
		if target == nil {
			// Fall back to a project-root-relative lookup.
			target = project.File(ptr.File)
		}
		if target == nil {
			return nil, &ReferenceError{Kind: Missing, Path: atPath, Ref: ref, Message: "file not found: " + ptr.File}
		}
	}

	value, ok := navigate(target, ptr.Segments)
	if !ok {
		return nil, &ReferenceError{Kind: Missing, Path: atPath, Ref: ref, Message: "no token at pointer target"}
	}
	return deepCopy(value), nil
}

// navigate walks pointer segments through groups, then optionally into a
// token's $value. The walk must terminate at a token or inside its value;
// a group terminal is a missing reference.
func navigate(file *token.FileAST, segments []string) (any, bool) {
	var current token.Node = file.Root
	for i, segment := range segments {
		switch n := current.(type) {
		case *token.Group:
			child := n.Child(segment)
			if child == nil {
				return nil, false
			}
			current = child
		case *token.Token:
			rest := segments[i:]
			if rest[0] != "$value" {
				return nil, false
			}
			return navigateValue(n.Value, rest[1:])
		}
	}
	if tok, ok := current.(*token.Token); ok {
		return tok.Value, true
	}
	return nil, false
}

// navigateValue descends into a raw value by object keys and array indices.
func navigateValue(value any, segments []string) (any, bool) {
	current := value
	for _, segment := range segments {
		switch v := current.(type) {
		case map[string]any:
			next, ok := v[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= len(v) {
				return nil, false
			}
			current = v[i]
		default:
			return nil, false
		}
	}
	return current, true
}

// replaceRef substitutes the included content at every location of ref:
// bare pointer strings and {"$ref": ...} objects.
func replaceRef(value any, ref string, included any) any {
	switch v := value.(type) {
	case string:
		if v == ref {
			return included
		}
		return v
	case map[string]any:
		if r, ok := v["$ref"].(string); ok && r == ref {
			return included
		}
		for key, nested := range v {
			v[key] = replaceRef(nested, ref, included)
		}
		return v
	case []any:
		for i, nested := range v {
			v[i] = replaceRef(nested, ref, included)
		}
		return v
	default:
		return v
	}
}

// deepCopy clones a raw value tree.
func deepCopy(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = deepCopy(val)
		}
		return out
	default:
		return v
	}
}
