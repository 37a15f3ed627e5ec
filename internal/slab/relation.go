// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd003-slab-builders R3.
package slab

import "github.com/petar-djukic/go-index/pkg/types"

// RelationBuilder accumulates relation triples with set semantics:
// duplicates collapse and no merge logic applies. Not safe for
// concurrent use.
type RelationBuilder struct {
	relations []types.Relation
	seen      map[types.Relation]bool
	built     bool
}

// NewRelationBuilder creates an empty relation builder.
func NewRelationBuilder() *RelationBuilder {
	return &RelationBuilder{seen: make(map[types.Relation]bool)}
}

// Insert adds a relation triple. Re-inserting an existing triple is a
// no-op.
func (b *RelationBuilder) Insert(rel types.Relation) {
	if b.seen[rel] {
		return
	}
	b.seen[rel] = true
	b.relations = append(b.relations, rel)
}

// Len returns the number of distinct triples inserted so far.
func (b *RelationBuilder) Len() int {
	return len(b.relations)
}

// Build consumes the builder and returns an immutable slab. A second
// call returns ErrBuilt.
func (b *RelationBuilder) Build() (*RelationSlab, error) {
	if b.built {
		return nil, ErrBuilt
	}
	b.built = true

	s := &RelationSlab{relations: b.relations}
	b.relations = nil
	b.seen = nil
	return s, nil
}

// RelationSlab is the finalized, immutable relation set. Iteration
// order is first-insertion order.
type RelationSlab struct {
	relations []types.Relation
}

// All returns every relation in first-insertion order. Callers must
// not mutate the returned slice.
func (s *RelationSlab) All() []types.Relation {
	return s.relations
}

// Len returns the number of relations.
func (s *RelationSlab) Len() int {
	return len(s.relations)
}
