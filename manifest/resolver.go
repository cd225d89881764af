/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest

import (
	"fmt"
	"path"
	"strings"

	"bennypowers.dev/tzerufim/internal/logger"
	"bennypowers.dev/tzerufim/merge"
	"bennypowers.dev/tzerufim/parser"
	"bennypowers.dev/tzerufim/resolver"
	"bennypowers.dev/tzerufim/token"
)

// ResolvedPermutation is one concrete modifier selection resolved into a
// merged token document.
type ResolvedPermutation struct {
	// ID identifies the permutation ("theme-light_density-compact").
	ID string

	// Input is the modifier selection used.
	Input map[string]any

	// Files is the ordered list of files actually merged.
	Files []string

	// Tokens is the merged raw document.
	Tokens map[string]any

	// ResolvedTokens is the alias-substituted document, present when
	// reference resolution was requested.
	ResolvedTokens map[string]any

	// Output is the target path, when one was configured.
	Output string
}

// ResolveOptions configures permutation resolution.
type ResolveOptions struct {
	// ResolveReferences requests full dereferencing of each merged
	// document; it defaults to the manifest's own options.
	ResolveReferences bool

	// MaxDepth bounds reference chains during dereferencing.
	MaxDepth int
}

// Resolver resolves manifest permutations into merged token documents.
// Each Resolve call operates on its own accumulator and AST; the only
// shared state is the read-only manifest and the loader's content cache,
// so permutations may be resolved in parallel.
type Resolver struct {
	manifest *Manifest
	loader   *parser.Loader
	options  ResolveOptions
}

// NewResolver creates a Resolver for a manifest.
func NewResolver(m *Manifest, loader *parser.Loader, opts ResolveOptions) *Resolver {
	opts.ResolveReferences = opts.ResolveReferences || m.Options.ResolveReferences
	return &Resolver{manifest: m, loader: loader, options: opts}
}

// Manifest returns the resolver's manifest.
func (r *Resolver) Manifest() *Manifest { return r.manifest }

// Resolve validates the input, collects the ordered file list, folds it
// through the merge engine, optionally dereferences aliases, and derives
// the permutation id. Validation failures and merge conflicts abort before
// any partial result escapes.
func (r *Resolver) Resolve(input map[string]any) (*ResolvedPermutation, error) {
	return r.resolve(input, nil)
}

func (r *Resolver) resolve(input map[string]any, spec *GenerateSpec) (*ResolvedPermutation, error) {
	if err := r.manifest.Validate(); err != nil {
		return nil, err
	}
	if err := r.manifest.ValidateInput(input); err != nil {
		return nil, err
	}

	files := r.manifest.CollectFiles(input, spec)
	warnDuplicates(files)

	tokens, err := r.mergeFiles(files)
	if err != nil {
		return nil, err
	}

	perm := &ResolvedPermutation{
		ID:     r.manifest.PermutationID(input),
		Input:  input,
		Files:  files,
		Tokens: tokens,
	}

	if r.options.ResolveReferences {
		resolved, err := r.dereference(tokens, files)
		if err != nil {
			return nil, fmt.Errorf("permutation %q: %w", perm.ID, err)
		}
		perm.ResolvedTokens = resolved
	}

	perm.Output = r.outputPath(input, spec, perm.ID)
	logger.Debug("resolved permutation %s from %d files", perm.ID, len(files))
	return perm, nil
}

// mergeFiles folds the ordered file list through the merge engine. The
// first file becomes the initial accumulator. Reads may complete in any
// order upstream; merging always follows the manifest-declared order.
func (r *Resolver) mergeFiles(files []string) (map[string]any, error) {
	acc := map[string]any{}
	for i, file := range files {
		doc, err := r.loader.Load(r.filePath(file))
		if err != nil {
			return nil, err
		}
		if i == 0 {
			acc = doc
			continue
		}
		merged, err := merge.Merge(acc, doc)
		if err != nil {
			return nil, fmt.Errorf("merging %s: %w", file, err)
		}
		acc = merged
	}
	return acc, nil
}

// dereference assembles $refs and resolves aliases over the merged
// document. Any reference left unresolved aborts the whole permutation
// with an aggregated error.
func (r *Resolver) dereference(tokens map[string]any, files []string) (map[string]any, error) {
	opts := resolver.Options{MaxDepth: r.options.MaxDepth}

	project := token.NewProjectAST()
	for _, file := range files {
		doc, err := r.loader.Load(r.filePath(file))
		if err != nil {
			return nil, err
		}
		project.Add(parser.Build(doc, r.filePath(file), parser.Options{}))
	}

	merged := parser.Build(tokens, r.manifest.FilePath, parser.Options{})
	var errs []resolver.ReferenceError
	errs = append(errs, resolver.CheckFileCycles(project)...)
	errs = append(errs, resolver.AssembleRefs(merged, project, opts)...)
	errs = append(errs, resolver.ResolveAliases(merged, opts)...)
	if err := resolver.AsError(errs); err != nil {
		return nil, err
	}

	return applyResolved(tokens, merged), nil
}

// applyResolved writes each token's resolved value back into a copy of the
// raw merged document.
func applyResolved(doc map[string]any, ast *token.FileAST) map[string]any {
	out := copyRaw(doc)
	for _, tok := range ast.Tokens() {
		if !tok.Resolved {
			continue
		}
		setValueAt(out, strings.Split(tok.Path, "."), tok.ResolvedValue)
	}
	return out
}

func setValueAt(doc map[string]any, segments []string, value any) {
	current := doc
	for _, segment := range segments {
		next, ok := current[segment].(map[string]any)
		if !ok {
			return
		}
		current = next
	}
	current["$value"] = value
}

// filePath resolves a manifest-relative file path.
func (r *Resolver) filePath(file string) string {
	dir := path.Dir(token.NormalizePath(r.manifest.FilePath))
	if dir == "." || path.IsAbs(file) {
		return file
	}
	return path.Join(dir, file)
}

// outputPath derives the output target: the input's reserved "output" key
// wins, then the generate entry's template. "{id}" expands to the id.
func (r *Resolver) outputPath(input map[string]any, spec *GenerateSpec, id string) string {
	template := ""
	if spec != nil {
		template = spec.Output
	}
	if s, ok := input["output"].(string); ok && s != "" {
		template = s
	}
	return strings.ReplaceAll(template, "{id}", id)
}

// warnDuplicates flags file paths that appear more than once in a
// permutation's file list. Merging a file with itself is an idempotent
// no-op, but it is wasted work worth surfacing.
func warnDuplicates(files []string) {
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if seen[f] {
			logger.Warn("file %s appears more than once in permutation file list", f)
		}
		seen[f] = true
	}
}

func copyRaw(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		switch x := v.(type) {
		case map[string]any:
			out[k] = copyRaw(x)
		case []any:
			arr := make([]any, len(x))
			for i, item := range x {
				if m, ok := item.(map[string]any); ok {
					arr[i] = copyRaw(m)
				} else {
					arr[i] = item
				}
			}
			out[k] = arr
		default:
			out[k] = v
		}
	}
	return out
}
