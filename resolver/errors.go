/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package resolver resolves $ref pointers and {alias} references in token
// documents.
package resolver

import (
	"fmt"
	"strings"

	"bennypowers.dev/tzerufim/schema"
)

// ErrorKind classifies a reference error.
type ErrorKind string

const (
	// Missing indicates a reference target that does not exist or is not
	// yet resolved.
	Missing ErrorKind = "missing"

	// Circular indicates the reference participates in a cycle.
	Circular ErrorKind = "circular"

	// Depth indicates a reference chain exceeded the configured maximum.
	Depth ErrorKind = "depth"

	// Invalid indicates malformed pointer or alias syntax.
	Invalid ErrorKind = "invalid"
)

// ReferenceError describes one broken reference. Errors are collected, not
// thrown, so a single pass can surface every broken reference at once.
type ReferenceError struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Path is the token path where the reference appears.
	Path string

	// Ref is the offending reference string.
	Ref string

	// Message is additional human-readable context.
	Message string
}

// Error implements the error interface.
func (e ReferenceError) Error() string {
	msg := fmt.Sprintf("%s reference at %q", e.Kind, e.Path)
	if e.Ref != "" {
		msg += fmt.Sprintf(": %q", e.Ref)
	}
	if e.Message != "" {
		msg += " (" + e.Message + ")"
	}
	return msg
}

// Unwrap maps the kind onto its schema sentinel so callers can errors.Is.
func (e ReferenceError) Unwrap() error {
	switch e.Kind {
	case Circular:
		return schema.ErrCircularReference
	case Depth:
		return schema.ErrReferenceDepth
	case Invalid:
		return schema.ErrInvalidReference
	default:
		return schema.ErrMissingReference
	}
}

// ReferenceErrors aggregates collected reference errors into one error
// value for callers that requested full dereferencing.
type ReferenceErrors []ReferenceError

// Error implements the error interface.
func (e ReferenceErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	lines := make([]string, 0, len(e)+1)
	lines = append(lines, fmt.Sprintf("%d unresolved references:", len(e)))
	for _, err := range e {
		lines = append(lines, "  "+err.Error())
	}
	return strings.Join(lines, "\n")
}

// Unwrap exposes the members so errors.Is sees through the aggregate.
func (e ReferenceErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}

// AsError returns the collected errors as a single error, or nil when the
// slice is empty.
func AsError(errs []ReferenceError) error {
	if len(errs) == 0 {
		return nil
	}
	return ReferenceErrors(errs)
}
