/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package schema

import "errors"

// Sentinel errors shared across the resolver, merge, and manifest packages.
var (
	// ErrInvalidReference indicates a token reference is malformed.
	ErrInvalidReference = errors.New("invalid token reference")

	// ErrMissingReference indicates a reference target does not exist.
	ErrMissingReference = errors.New("missing reference target")

	// ErrCircularReference indicates a circular reference was detected.
	ErrCircularReference = errors.New("circular reference detected")

	// ErrReferenceDepth indicates a reference chain exceeded the depth limit.
	ErrReferenceDepth = errors.New("reference chain too deep")

	// ErrUnresolvedReference indicates a reference could not be resolved.
	ErrUnresolvedReference = errors.New("unresolved token reference")

	// ErrMergeConflict indicates two documents could not be merged.
	ErrMergeConflict = errors.New("merge conflict")

	// ErrInvalidManifest indicates a manifest failed validation.
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrUnknownModifier indicates a permutation input named an undeclared modifier.
	ErrUnknownModifier = errors.New("unknown modifier")
)
