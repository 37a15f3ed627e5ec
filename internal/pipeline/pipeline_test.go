// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFactFile drops a fact batch into dir and returns its path.
func writeFactFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const unitA = `{
  "symbols": [{"id": "f", "name": "foo", "kind": "function", "references": 1}],
  "refs": {"f": [{"document": "/proj/a.cc", "range": {"start": {"line": 1, "character": 0}, "end": {"line": 1, "character": 3}}, "kinds": ["call"]}]}
}`

const unitB = `{
  "symbols": [{"id": "f", "name": "foo", "kind": "function", "references": 2, "definition": {"document": "/proj/b.cc", "range": {"start": {"line": 5, "character": 0}, "end": {"line": 5, "character": 3}}}}],
  "relations": [{"subject": "f", "kind": "overrides", "object": "g"}]
}`

func TestRunTwoUnits(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFactFile(t, dir, "a.json", unitA),
		writeFactFile(t, dir, "b.json", unitB),
	}

	var out bytes.Buffer
	r := NewRunner(Deps{ProjectRoot: "/proj"})
	result, err := r.Run(context.Background(), files, &out)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Units)
	assert.Equal(t, 1, result.Symbols)
	assert.Equal(t, 1, result.Refs)
	assert.Equal(t, 1, result.Relations)
	assert.Equal(t, 1, result.Anomalies) // relation object "g" never reported
	assert.Greater(t, result.Vertices, 0)
	assert.Greater(t, result.Edges, 0)
	assert.NotEmpty(t, out.Bytes())
}

func TestRunDeterministicAcrossJobCounts(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i := 0; i < 6; i++ {
		content := fmt.Sprintf(`{"symbols": [{"id": "s%d", "name": "n%d", "kind": "variable"}]}`, i, i)
		files = append(files, writeFactFile(t, dir, fmt.Sprintf("u%d.json", i), content))
	}

	var serial, parallel bytes.Buffer
	_, err := NewRunner(Deps{ProjectRoot: "/proj", Jobs: 1}).Run(context.Background(), files, &serial)
	require.NoError(t, err)
	_, err = NewRunner(Deps{ProjectRoot: "/proj", Jobs: 6}).Run(context.Background(), files, &parallel)
	require.NoError(t, err)

	assert.Equal(t, serial.Bytes(), parallel.Bytes())
}

func TestRunMissingFactFile(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(Deps{ProjectRoot: "/proj"})
	_, err := r.Run(context.Background(), []string{filepath.Join(t.TempDir(), "gone.json")}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingesting facts")
	assert.Empty(t, out.Bytes()) // nothing streamed on ingestion failure
}

func TestRunMalformedFactFile(t *testing.T) {
	dir := t.TempDir()
	bad := writeFactFile(t, dir, "bad.json", `{"symbols": [{"kind": "function"}]}`)

	var out bytes.Buffer
	_, err := NewRunner(Deps{ProjectRoot: "/proj"}).Run(context.Background(), []string{bad}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing symbol id")
}

func TestRunCanceledContext(t *testing.T) {
	dir := t.TempDir()
	file := writeFactFile(t, dir, "a.json", unitA)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := NewRunner(Deps{ProjectRoot: "/proj"}).Run(ctx, []string{file}, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunNoUnits(t *testing.T) {
	// An empty run still produces a valid graph header.
	var out bytes.Buffer
	result, err := NewRunner(Deps{ProjectRoot: "/proj"}).Run(context.Background(), nil, &out)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Units)
	assert.Equal(t, 2, result.Vertices) // metaData and project
	assert.NotEmpty(t, out.Bytes())
}
