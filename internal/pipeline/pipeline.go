// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package pipeline wires the internal components into the full
// indexing lifecycle: load fact files concurrently, ingest them into
// the aggregator, finalize, and export the graph.
// Implements: prd001-index-interface R2;
//
//	docs/ARCHITECTURE § Pipeline.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/petar-djukic/go-index/internal/aggregate"
	"github.com/petar-djukic/go-index/internal/factfile"
	"github.com/petar-djukic/go-index/internal/lsif"
)

const defaultJobs = 4

// Deps holds injected dependencies for the runner.
type Deps struct {
	ProjectRoot string      // Base path for document relativization
	Jobs        int         // Concurrent ingestion jobs (default 4)
	ToolVersion string      // Reported in the metaData vertex
	Logger      *zap.Logger // nil disables logging
}

// RunResult holds the outcome of a Runner.Run invocation. This is the
// internal result type; pkg/index converts it to the public Result.
type RunResult struct {
	Units     int // Fact files ingested
	Symbols   int // Distinct symbols after merging
	Refs      int // Distinct references after deduplication
	Relations int // Distinct relation triples
	Vertices  int // Graph vertices emitted
	Edges     int // Graph edges emitted
	Anomalies int // Unresolved target occurrences
}

// Runner orchestrates the indexing lifecycle.
type Runner struct {
	deps Deps
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(deps Deps) *Runner {
	if deps.Jobs <= 0 {
		deps.Jobs = defaultJobs
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Runner{deps: deps}
}

// Run ingests every fact file, finalizes the aggregate, and streams
// the graph to out. Each fact file is one job; jobs run concurrently
// up to the configured limit, and a batch is fully ingested before its
// job completes.
func (r *Runner) Run(ctx context.Context, factFiles []string, out io.Writer) (*RunResult, error) {
	result := &RunResult{}
	agg := aggregate.New(r.deps.Logger)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.deps.Jobs)
	for _, path := range factFiles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			batch, err := factfile.Load(path)
			if err != nil {
				return err
			}
			if err := agg.IngestSymbols(batch.Symbols); err != nil {
				return err
			}
			if err := agg.IngestRefs(batch.Refs); err != nil {
				return err
			}
			if err := agg.IngestRelations(batch.Relations); err != nil {
				return err
			}
			r.deps.Logger.Debug("unit ingested", zap.String("file", path))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, fmt.Errorf("ingesting facts: %w", err)
	}
	result.Units = len(factFiles)

	snap, err := agg.Finalize()
	if err != nil {
		return result, fmt.Errorf("finalizing: %w", err)
	}
	result.Symbols = snap.Symbols.Len()
	result.Refs = snap.Refs.Len()
	result.Relations = snap.Relations.Len()

	stats, err := lsif.Write(out, snap, lsif.Options{
		ProjectRoot: r.deps.ProjectRoot,
		ToolVersion: r.deps.ToolVersion,
		Logger:      r.deps.Logger,
	})
	if stats != nil {
		result.Vertices = stats.Vertices
		result.Edges = stats.Edges
		result.Anomalies = stats.Anomalies
	}
	if err != nil {
		return result, fmt.Errorf("writing graph: %w", err)
	}

	return result, nil
}
