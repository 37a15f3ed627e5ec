// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package aggregate provides the thread-safe ingestion boundary between
// concurrent analysis jobs and the slab builders. One Aggregator is
// constructed before jobs are dispatched, every job calls its ingest
// methods on completion, and the owner calls Finalize once all jobs
// have joined.
// Implements: prd005-aggregator R1-R4;
//
//	docs/ARCHITECTURE § Aggregator.
package aggregate

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/petar-djukic/go-index/internal/slab"
	"github.com/petar-djukic/go-index/pkg/types"
)

// ErrFinalized is returned by any ingest call after Finalize, and by a
// second Finalize. This is a contract violation by the caller.
var ErrFinalized = errors.New("aggregator already finalized")

// Snapshot holds the three finalized slabs. It is immutable and safe
// for concurrent readers.
type Snapshot struct {
	Symbols   *slab.SymbolSlab
	Refs      *slab.RefSlab
	Relations *slab.RelationSlab
}

// Aggregator owns one builder per fact type behind a single mutex.
// One lock, not three: batches from a completing job arrive together,
// and contention is dominated by job completion rate rather than
// per-builder granularity.
type Aggregator struct {
	mu        sync.Mutex
	symbols   *slab.SymbolBuilder
	refs      *slab.RefBuilder
	relations *slab.RelationBuilder
	finalized bool
	log       *zap.Logger
}

// New creates an Aggregator with empty builders. A nil logger disables
// debug output.
func New(log *zap.Logger) *Aggregator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{
		symbols:   slab.NewSymbolBuilder(),
		refs:      slab.NewRefBuilder(),
		relations: slab.NewRelationBuilder(),
		log:       log,
	}
}

// IngestSymbols merges a batch of symbol records. Safe to call from any
// number of goroutines.
func (a *Aggregator) IngestSymbols(batch []types.Symbol) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finalized {
		return fmt.Errorf("%w: ingest symbols", ErrFinalized)
	}
	for _, sym := range batch {
		a.symbols.Insert(sym)
	}
	a.log.Debug("ingested symbols", zap.Int("batch", len(batch)), zap.Int("total", a.symbols.Len()))
	return nil
}

// IngestRefs merges a batch of references keyed by target symbol.
// References naming a symbol the aggregator never sees are accepted
// as-is; resolution is the serializer's concern.
func (a *Aggregator) IngestRefs(batch map[types.SymbolID][]types.Ref) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finalized {
		return fmt.Errorf("%w: ingest refs", ErrFinalized)
	}
	n := 0
	for target, refs := range batch {
		for _, ref := range refs {
			a.refs.Insert(target, ref)
			n++
		}
	}
	a.log.Debug("ingested refs", zap.Int("batch", n), zap.Int("total", a.refs.Len()))
	return nil
}

// IngestRelations merges a batch of relation triples.
func (a *Aggregator) IngestRelations(batch []types.Relation) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finalized {
		return fmt.Errorf("%w: ingest relations", ErrFinalized)
	}
	for _, rel := range batch {
		a.relations.Insert(rel)
	}
	a.log.Debug("ingested relations", zap.Int("batch", len(batch)), zap.Int("total", a.relations.Len()))
	return nil
}

// Finalize drains the builders into immutable slabs. It must be called
// exactly once, after every producer has completed; the caller is
// responsible for that ordering (e.g. via an errgroup join). A second
// call returns ErrFinalized.
func (a *Aggregator) Finalize() (*Snapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finalized {
		return nil, ErrFinalized
	}
	a.finalized = true

	symbols, err := a.symbols.Build()
	if err != nil {
		return nil, fmt.Errorf("building symbol slab: %w", err)
	}
	refs, err := a.refs.Build()
	if err != nil {
		return nil, fmt.Errorf("building ref slab: %w", err)
	}
	relations, err := a.relations.Build()
	if err != nil {
		return nil, fmt.Errorf("building relation slab: %w", err)
	}

	a.log.Debug("finalized",
		zap.Int("symbols", symbols.Len()),
		zap.Int("refs", refs.Len()),
		zap.Int("relations", relations.Len()))

	return &Snapshot{Symbols: symbols, Refs: refs, Relations: relations}, nil
}
