// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package merge combines partial fact records that share an identity
// into one canonical record. The same symbol is typically declared and
// used across many analysis units; each unit reports what it saw, and
// these rules reconcile the pieces.
//
// All functions here are total: merging never fails, and disagreement
// between inputs is resolved by preference rules rather than errors.
// Implements: prd004-merge-rules R1-R5.
package merge

import "github.com/petar-djukic/go-index/pkg/types"

// Symbols merges two symbol records with the same ID. The first
// argument is the record already accumulated; the second is the
// incoming one. Tie-breaks prefer the accumulated record so that
// output is stable regardless of how many units report the symbol.
//
// Name, scope, and kind should agree between inputs (same ID implies
// the same semantic entity); when they do not, the more complete value
// wins and the run carries on.
func Symbols(existing, incoming types.Symbol) types.Symbol {
	out := existing

	if out.Name == "" {
		out.Name = incoming.Name
	}
	if out.Scope == "" {
		out.Scope = incoming.Scope
	}
	if out.Kind == types.KindUnknown {
		out.Kind = incoming.Kind
	}

	// Definition: first one seen wins; either input having one means
	// the merged record has one.
	if out.Definition == nil && incoming.Definition != nil {
		def := *incoming.Definition
		out.Definition = &def
	}

	out.Declarations = unionLocations(existing.Declarations, incoming.Declarations)

	// Counts are accumulated, never recomputed: each unit counted its
	// own references before merging, and per-location deduplication
	// happens at the reference level, not here.
	out.References = existing.References + incoming.References

	out.Documentation = mergeDoc(existing.Documentation, incoming.Documentation)
	out.Flags = existing.Flags.Union(incoming.Flags)
	if out.Definition != nil {
		out.Flags = out.Flags.Union(types.FlagHasDefinition)
	}

	return out
}

// Refs merges two reference records at the same (target, location):
// the kind sets union.
func Refs(existing, incoming types.Ref) types.Ref {
	return types.Ref{
		Location: existing.Location,
		Kinds:    existing.Kinds.Union(incoming.Kinds),
	}
}

// unionLocations returns a's locations followed by those of b not
// already present, preserving first-seen order.
func unionLocations(a, b []types.Location) []types.Location {
	if len(b) == 0 {
		return a
	}
	seen := make(map[types.Location]bool, len(a))
	out := make([]types.Location, 0, len(a)+len(b))
	for _, loc := range a {
		if !seen[loc] {
			seen[loc] = true
			out = append(out, loc)
		}
	}
	for _, loc := range b {
		if !seen[loc] {
			seen[loc] = true
			out = append(out, loc)
		}
	}
	return out
}

// mergeDoc prefers the longer documentation string. On an equal-length
// difference the first-inserted wins, keeping output deterministic for
// a fixed input set.
func mergeDoc(existing, incoming string) string {
	if len(incoming) > len(existing) {
		return incoming
	}
	return existing
}
