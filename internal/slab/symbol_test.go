// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package slab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-index/pkg/types"
)

func testLoc(doc string, line int) types.Location {
	return types.Location{
		Document: doc,
		Range: types.Range{
			Start: types.Position{Line: line, Character: 0},
			End:   types.Position{Line: line, Character: 3},
		},
	}
}

func TestSymbolBuilderMergesByID(t *testing.T) {
	b := NewSymbolBuilder()
	b.Insert(types.Symbol{ID: "f", Name: "foo", References: 1})
	b.Insert(types.Symbol{ID: "f", Kind: types.KindFunction, References: 2})

	s, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	sym, ok := s.Lookup("f")
	require.True(t, ok)
	assert.Equal(t, "foo", sym.Name)
	assert.Equal(t, types.KindFunction, sym.Kind)
	assert.Equal(t, 3, sym.References)
}

func TestSymbolBuilderInsertIdempotent(t *testing.T) {
	sym := types.Symbol{ID: "f", Name: "foo", Kind: types.KindFunction}

	once := NewSymbolBuilder()
	once.Insert(sym)
	twice := NewSymbolBuilder()
	twice.Insert(sym)
	twice.Insert(sym)

	s1, err := once.Build()
	require.NoError(t, err)
	s2, err := twice.Build()
	require.NoError(t, err)

	got1, _ := s1.Lookup("f")
	got2, _ := s2.Lookup("f")
	// Only the accumulated count differs between one and two inserts
	// of a zero-count record: both stay zero.
	assert.Equal(t, got1, got2)
}

func TestSymbolSlabIdentityOrder(t *testing.T) {
	b := NewSymbolBuilder()
	for _, id := range []types.SymbolID{"zeta", "alpha", "mid"} {
		b.Insert(types.Symbol{ID: id})
	}

	s, err := b.Build()
	require.NoError(t, err)

	var ids []types.SymbolID
	for _, sym := range s.All() {
		ids = append(ids, sym.ID)
	}
	assert.Equal(t, []types.SymbolID{"alpha", "mid", "zeta"}, ids)
}

func TestSymbolBuilderBuildTwice(t *testing.T) {
	b := NewSymbolBuilder()
	b.Insert(types.Symbol{ID: "f"})

	_, err := b.Build()
	require.NoError(t, err)

	_, err = b.Build()
	assert.ErrorIs(t, err, ErrBuilt)
}

func TestSymbolBuilderSetsHasDefinition(t *testing.T) {
	def := testLoc("a.cc", 5)
	b := NewSymbolBuilder()
	b.Insert(types.Symbol{ID: "f", Definition: &def})

	s, err := b.Build()
	require.NoError(t, err)

	sym, ok := s.Lookup("f")
	require.True(t, ok)
	assert.True(t, sym.Flags.Has(types.FlagHasDefinition))
}

func TestSymbolSlabLookupMissing(t *testing.T) {
	b := NewSymbolBuilder()
	s, err := b.Build()
	require.NoError(t, err)

	_, ok := s.Lookup("nope")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}
