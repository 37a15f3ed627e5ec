// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package index defines the public interface for go-index, a
// concurrent code-index aggregation and graph-export library.
//
// One Index is constructed before analysis jobs are dispatched; each
// job delivers its fact batches through the ingest methods; once every
// job has completed the owner calls Finalize and writes the graph.
// Implements: prd001-index-interface R1, R2, R3, R6;
//
//	docs/ARCHITECTURE § Index Interface.
package index

import (
	"errors"
	"io"

	"github.com/petar-djukic/go-index/pkg/types"
)

// Error types for the Index API.
var (
	// ErrInvalidConfig is returned by New for an unusable configuration.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrFinalized is returned when ingesting after Finalize or
	// finalizing twice. This is a contract violation by the caller.
	ErrFinalized = errors.New("index already finalized")
)

// Config configures an Index instance.
type Config struct {
	ProjectRoot string // Base path for the export; default: enclosing git worktree root, else the working directory
	Debug       bool   // Verbose diagnostics on stderr; never affects graph output
}

// Stats summarizes a graph export.
type Stats struct {
	Vertices       int      // Graph vertices emitted
	Edges          int      // Graph edges emitted
	Documents      int      // Distinct document vertices
	Anomalies      int      // References/relations to symbols never reported
	MissingSymbols []string // Distinct unresolved symbol IDs, sorted
}

// Index accepts fact batches from concurrent analysis producers and
// finalizes them into an immutable snapshot. All methods are safe for
// concurrent use.
type Index interface {
	// IngestSymbols merges a batch of symbol records.
	IngestSymbols(batch []types.Symbol) error

	// IngestRefs merges a batch of references keyed by target symbol.
	IngestRefs(batch map[types.SymbolID][]types.Ref) error

	// IngestRelations merges a batch of relation triples.
	IngestRelations(batch []types.Relation) error

	// Finalize drains the accumulated facts into an immutable
	// Snapshot. Must be called exactly once, after all producers have
	// completed.
	Finalize() (*Snapshot, error)
}

// Exporter writes a finalized snapshot to a sink.
type Exporter interface {
	// WriteLSIF streams the graph as line-delimited JSON. On a sink
	// failure the export aborts with the underlying error; partial
	// output is not retracted.
	WriteLSIF(w io.Writer) (*Stats, error)
}
