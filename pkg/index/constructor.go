// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd001-index-interface R4;
//
//	docs/ARCHITECTURE § Index Interface.
package index

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/petar-djukic/go-index/internal/aggregate"
	"github.com/petar-djukic/go-index/internal/gitutil"
	"github.com/petar-djukic/go-index/internal/lsif"
	"github.com/petar-djukic/go-index/pkg/types"
)

// New validates the config, resolves the project root, and returns a
// ready-to-use Index. When no project root is configured it anchors to
// the enclosing git worktree, falling back to the working directory.
func New(cfg Config) (Index, error) {
	root, err := resolveRoot(cfg.ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	log, err := buildLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("%w: building logger: %v", ErrInvalidConfig, err)
	}

	return &indexAdapter{
		agg:  aggregate.New(log),
		root: root,
		log:  log,
	}, nil
}

// Snapshot holds the finalized, immutable fact slabs, ready for
// export. Safe for concurrent readers.
type Snapshot struct {
	snap *aggregate.Snapshot
	root string
	log  *zap.Logger
}

// WriteLSIF streams the graph to w. Output is byte-identical across
// repeated calls for the same snapshot.
func (s *Snapshot) WriteLSIF(w io.Writer) (*Stats, error) {
	stats, err := lsif.Write(w, s.snap, lsif.Options{
		ProjectRoot: s.root,
		Logger:      s.log,
	})
	out := &Stats{}
	if stats != nil {
		out.Vertices = stats.Vertices
		out.Edges = stats.Edges
		out.Documents = stats.Documents
		out.Anomalies = stats.Anomalies
		out.MissingSymbols = stats.MissingSymbols
	}
	return out, err
}

// indexAdapter adapts internal/aggregate.Aggregator to the public
// Index interface.
type indexAdapter struct {
	agg  *aggregate.Aggregator
	root string
	log  *zap.Logger
}

func (a *indexAdapter) IngestSymbols(batch []types.Symbol) error {
	return publicErr(a.agg.IngestSymbols(batch))
}

func (a *indexAdapter) IngestRefs(batch map[types.SymbolID][]types.Ref) error {
	return publicErr(a.agg.IngestRefs(batch))
}

func (a *indexAdapter) IngestRelations(batch []types.Relation) error {
	return publicErr(a.agg.IngestRelations(batch))
}

func (a *indexAdapter) Finalize() (*Snapshot, error) {
	snap, err := a.agg.Finalize()
	if err != nil {
		return nil, publicErr(err)
	}
	return &Snapshot{snap: snap, root: a.root, log: a.log}, nil
}

// publicErr maps internal state-misuse errors to the public sentinel.
func publicErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, aggregate.ErrFinalized) {
		return fmt.Errorf("%w: %v", ErrFinalized, err)
	}
	return err
}

// resolveRoot picks the project root: the configured path when given,
// else the enclosing git worktree root, else the working directory.
func resolveRoot(configured string) (string, error) {
	if configured != "" {
		info, err := os.Stat(configured)
		if err != nil || !info.IsDir() {
			return "", fmt.Errorf("ProjectRoot %q does not exist or is not a directory", configured)
		}
		abs, err := filepath.Abs(configured)
		if err != nil {
			return "", fmt.Errorf("resolving ProjectRoot: %v", err)
		}
		return abs, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %v", err)
	}
	if root, err := gitutil.Root(wd); err == nil {
		return root, nil
	}
	return wd, nil
}

// buildLogger creates the diagnostic logger: warnings and errors by
// default, everything under Debug. Output goes to stderr so the graph
// stream on stdout stays clean.
func buildLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return cfg.Build()
}
