// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package gitutil resolves the enclosing git worktree root, used as the
// default project root when none is configured.
// Implements: prd008-project-root R1;
//
//	docs/ARCHITECTURE § Project Root.
package gitutil

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
)

// ErrNoGit is returned when the directory is not inside a git worktree.
var ErrNoGit = errors.New("not a git repository")

// Root returns the absolute path of the git worktree enclosing dir. It
// walks parent directories the way git itself does. Returns ErrNoGit
// when dir is outside any worktree (callers then fall back to dir
// itself).
func Root(dir string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoGit, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repository: no worktree to anchor to.
		return "", fmt.Errorf("%w: %v", ErrNoGit, err)
	}
	return wt.Filesystem.Root(), nil
}
