// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package gitutil

import (
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootFromWorktree(t *testing.T) {
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	got, err := Root(dir)
	require.NoError(t, err)
	assertSamePath(t, dir, got)
}

func TestRootFromSubdirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	sub := filepath.Join(dir, "src", "deep")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	got, err := Root(sub)
	require.NoError(t, err)
	assertSamePath(t, dir, got)
}

func TestRootOutsideRepository(t *testing.T) {
	_, err := Root(t.TempDir())
	assert.ErrorIs(t, err, ErrNoGit)
}

func TestRootBareRepository(t *testing.T) {
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, true)
	require.NoError(t, err)

	_, err = Root(dir)
	assert.ErrorIs(t, err, ErrNoGit)
}

// assertSamePath compares directories after resolving symlinks, since
// t.TempDir may hand out a symlinked path on some platforms.
func assertSamePath(t *testing.T, want, got string) {
	t.Helper()
	w, err := filepath.EvalSymlinks(want)
	require.NoError(t, err)
	g, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, w, g)
}
