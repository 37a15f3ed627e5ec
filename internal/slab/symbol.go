// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd003-slab-builders R1.
package slab

import (
	"sort"

	"github.com/petar-djukic/go-index/internal/merge"
	"github.com/petar-djukic/go-index/pkg/types"
)

// SymbolBuilder accumulates symbol records, merging by SymbolID. It is
// not safe for concurrent use; the aggregator serializes access.
type SymbolBuilder struct {
	byID  map[types.SymbolID]types.Symbol
	built bool
}

// NewSymbolBuilder creates an empty symbol builder.
func NewSymbolBuilder() *SymbolBuilder {
	return &SymbolBuilder{byID: make(map[types.SymbolID]types.Symbol)}
}

// Insert adds a symbol record. When a record with the same ID already
// exists the two are merged into one canonical record.
func (b *SymbolBuilder) Insert(sym types.Symbol) {
	if existing, ok := b.byID[sym.ID]; ok {
		b.byID[sym.ID] = merge.Symbols(existing, sym)
		return
	}
	if sym.Definition != nil {
		sym.Flags = sym.Flags.Union(types.FlagHasDefinition)
	}
	b.byID[sym.ID] = sym
}

// Len returns the number of distinct symbols inserted so far.
func (b *SymbolBuilder) Len() int {
	return len(b.byID)
}

// Build consumes the builder and returns an immutable slab ordered by
// SymbolID. A second call returns ErrBuilt.
func (b *SymbolBuilder) Build() (*SymbolSlab, error) {
	if b.built {
		return nil, ErrBuilt
	}
	b.built = true

	s := &SymbolSlab{
		symbols: make([]types.Symbol, 0, len(b.byID)),
		byID:    make(map[types.SymbolID]int, len(b.byID)),
	}
	for _, sym := range b.byID {
		s.symbols = append(s.symbols, sym)
	}
	sort.Slice(s.symbols, func(i, j int) bool {
		return s.symbols[i].ID < s.symbols[j].ID
	})
	for i, sym := range s.symbols {
		s.byID[sym.ID] = i
	}

	b.byID = nil
	return s, nil
}

// SymbolSlab is the finalized, immutable symbol set. Iteration order is
// SymbolID order, so output derived from it is deterministic.
type SymbolSlab struct {
	symbols []types.Symbol
	byID    map[types.SymbolID]int
}

// All returns every symbol in ID order. Callers must not mutate the
// returned slice.
func (s *SymbolSlab) All() []types.Symbol {
	return s.symbols
}

// Lookup returns the symbol with the given ID.
func (s *SymbolSlab) Lookup(id types.SymbolID) (types.Symbol, bool) {
	i, ok := s.byID[id]
	if !ok {
		return types.Symbol{}, false
	}
	return s.symbols[i], true
}

// Len returns the number of symbols.
func (s *SymbolSlab) Len() int {
	return len(s.symbols)
}
