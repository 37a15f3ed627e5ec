// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd003-slab-builders R2.
package slab

import (
	"github.com/petar-djukic/go-index/internal/merge"
	"github.com/petar-djukic/go-index/pkg/types"
)

// refKey is the identity of a reference: where it appears and what it
// points at.
type refKey struct {
	target types.SymbolID
	loc    types.Location
}

// RefBuilder accumulates references keyed by target symbol. Insertion
// is a set insert: duplicates at the same (target, location) union
// their kind sets instead of duplicating. Not safe for concurrent use.
type RefBuilder struct {
	targets []types.SymbolID              // first-insertion order
	refs    map[types.SymbolID][]types.Ref // per target, insertion order
	index   map[refKey]int                 // position within refs[target]
	count   int
	built   bool
}

// NewRefBuilder creates an empty reference builder.
func NewRefBuilder() *RefBuilder {
	return &RefBuilder{
		refs:  make(map[types.SymbolID][]types.Ref),
		index: make(map[refKey]int),
	}
}

// Insert adds one reference to the given target symbol.
func (b *RefBuilder) Insert(target types.SymbolID, ref types.Ref) {
	key := refKey{target: target, loc: ref.Location}
	if i, ok := b.index[key]; ok {
		b.refs[target][i] = merge.Refs(b.refs[target][i], ref)
		return
	}
	if _, ok := b.refs[target]; !ok {
		b.targets = append(b.targets, target)
	}
	b.index[key] = len(b.refs[target])
	b.refs[target] = append(b.refs[target], ref)
	b.count++
}

// Len returns the number of distinct (target, location) references.
func (b *RefBuilder) Len() int {
	return b.count
}

// Build consumes the builder and returns an immutable slab. A second
// call returns ErrBuilt.
func (b *RefBuilder) Build() (*RefSlab, error) {
	if b.built {
		return nil, ErrBuilt
	}
	b.built = true

	s := &RefSlab{targets: b.targets, refs: b.refs, count: b.count}
	b.targets = nil
	b.refs = nil
	b.index = nil
	return s, nil
}

// RefSlab is the finalized, immutable reference set. Targets and the
// references under each target iterate in first-insertion order.
type RefSlab struct {
	targets []types.SymbolID
	refs    map[types.SymbolID][]types.Ref
	count   int
}

// Targets returns the target symbol IDs in first-insertion order.
// Callers must not mutate the returned slice.
func (s *RefSlab) Targets() []types.SymbolID {
	return s.targets
}

// For returns the references to the given target in insertion order.
func (s *RefSlab) For(target types.SymbolID) []types.Ref {
	return s.refs[target]
}

// Len returns the total number of references across all targets.
func (s *RefSlab) Len() int {
	return s.count
}
