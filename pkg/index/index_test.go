// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package index

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/go-index/pkg/types"
)

func TestNewRejectsBadProjectRoot(t *testing.T) {
	_, err := New(Config{ProjectRoot: "/no/such/directory"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewRejectsFileAsProjectRoot(t *testing.T) {
	file := filepath.Join(t.TempDir(), "afile")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := New(Config{ProjectRoot: file})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestIndexLifecycle(t *testing.T) {
	root := t.TempDir()
	idx, err := New(Config{ProjectRoot: root})
	require.NoError(t, err)

	def := types.Location{
		Document: root + "/b.cc",
		Range: types.Range{
			Start: types.Position{Line: 5, Character: 0},
			End:   types.Position{Line: 5, Character: 3},
		},
	}
	require.NoError(t, idx.IngestSymbols([]types.Symbol{
		{ID: "f", Name: "foo", Kind: types.KindFunction, Definition: &def, References: 1},
	}))
	require.NoError(t, idx.IngestRefs(map[types.SymbolID][]types.Ref{
		"f": {{
			Location: types.Location{
				Document: root + "/a.cc",
				Range: types.Range{
					Start: types.Position{Line: 1, Character: 0},
					End:   types.Position{Line: 1, Character: 3},
				},
			},
			Kinds: types.RefCall,
		}},
	}))
	require.NoError(t, idx.IngestRelations([]types.Relation{
		{Subject: "f", Kind: types.RelationOverrides, Object: "g"},
	}))

	snap, err := idx.Finalize()
	require.NoError(t, err)

	var out bytes.Buffer
	stats, err := snap.WriteLSIF(&out)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Documents)
	assert.Equal(t, 1, stats.Anomalies)
	assert.Equal(t, []string{"g"}, stats.MissingSymbols)
	assert.Greater(t, stats.Vertices, 0)
	assert.Greater(t, stats.Edges, 0)

	// Document URIs are relative to the configured root.
	assert.Contains(t, out.String(), `"uri":"a.cc"`)
	assert.Contains(t, out.String(), `"uri":"b.cc"`)
	assert.NotContains(t, out.String(), `"uri":"`+root)
}

func TestIngestAfterFinalize(t *testing.T) {
	idx, err := New(Config{ProjectRoot: t.TempDir()})
	require.NoError(t, err)

	_, err = idx.Finalize()
	require.NoError(t, err)

	assert.ErrorIs(t, idx.IngestSymbols(nil), ErrFinalized)
	assert.ErrorIs(t, idx.IngestRefs(nil), ErrFinalized)
	assert.ErrorIs(t, idx.IngestRelations(nil), ErrFinalized)

	_, err = idx.Finalize()
	assert.ErrorIs(t, err, ErrFinalized)
}

func TestWriteLSIFRepeatable(t *testing.T) {
	idx, err := New(Config{ProjectRoot: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, idx.IngestSymbols([]types.Symbol{{ID: "f", Name: "foo"}}))

	snap, err := idx.Finalize()
	require.NoError(t, err)

	var first, second bytes.Buffer
	_, err = snap.WriteLSIF(&first)
	require.NoError(t, err)
	_, err = snap.WriteLSIF(&second)
	require.NoError(t, err)

	assert.Equal(t, first.Bytes(), second.Bytes())
	assert.Equal(t, 1, strings.Count(first.String(), `"resultSet"`))
}
