// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package lsif serializes finalized fact slabs into an LSIF-flavored
// graph: an ordered stream of vertices and edges representing
// documents, ranges, symbols, and their relationships, anchored to a
// project root. Output is byte-identical across runs for identical
// slabs and root.
// Implements: prd006-lsif-export R1-R6;
//
//	docs/ARCHITECTURE § Graph Export.
package lsif

import (
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/petar-djukic/go-index/internal/aggregate"
	"github.com/petar-djukic/go-index/pkg/types"
)

const (
	defaultToolName    = "go-index"
	defaultToolVersion = "0.1.0"
)

// Options configures one export run.
type Options struct {
	ProjectRoot string      // Base path or file:// URI; documents under it get relative URIs
	ToolName    string      // Defaults to "go-index"
	ToolVersion string      // Defaults to the build version
	Logger      *zap.Logger // Diagnostics only; never affects output bytes
}

// Stats summarizes an export run. Producer anomalies (references or
// relations naming a symbol absent from the symbol slab) are aggregated
// here rather than reported per occurrence.
type Stats struct {
	Vertices       int      // Vertices emitted
	Edges          int      // Edges emitted
	Documents      int      // Distinct documents emitted
	Anomalies      int      // Unresolved target occurrences
	MissingSymbols []string // Distinct unresolved symbol IDs, sorted
}

// Write streams the graph for the given snapshot to w.
//
// Emission order: metaData, project, one vertex per distinct document
// (first-appearance order over the symbol slab then the ref slab), per
// symbol a resultSet plus its declaration/definition ranges with
// contains and next edges, per reference its range and one reference
// edge, per relation one edge between the two resultSets. Unresolved
// targets get a shared externalSymbol placeholder per distinct ID.
func Write(w io.Writer, snap *aggregate.Snapshot, opts Options) (*Stats, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	toolName := opts.ToolName
	if toolName == "" {
		toolName = defaultToolName
	}
	toolVersion := opts.ToolVersion
	if toolVersion == "" {
		toolVersion = defaultToolVersion
	}
	rootURI, rootPath := normalizeRoot(opts.ProjectRoot)

	em := NewEmitter(w)
	stats := &Stats{}

	if _, err := em.Emit(&metaDataVertex{
		element:          vertex(labelMetaData),
		Version:          lsifVersion,
		ProjectRoot:      rootURI,
		PositionEncoding: positionEncoding,
		ToolInfo:         toolInfo{Name: toolName, Version: toolVersion},
	}); err != nil {
		return stats, err
	}
	if _, err := em.Emit(&projectVertex{element: vertex(labelProject)}); err != nil {
		return stats, err
	}

	// Documents, in first-appearance order across both slabs.
	docIDs := make(map[string]int)
	var docOrder []string
	collect := func(doc string) {
		if _, ok := docIDs[doc]; ok {
			return
		}
		docIDs[doc] = 0 // placeholder until emitted
		docOrder = append(docOrder, doc)
	}
	for _, sym := range snap.Symbols.All() {
		for _, loc := range sym.Locations() {
			collect(loc.Document)
		}
	}
	for _, target := range snap.Refs.Targets() {
		for _, ref := range snap.Refs.For(target) {
			collect(ref.Location.Document)
		}
	}
	for _, doc := range docOrder {
		id, err := em.Emit(&documentVertex{
			element: vertex(labelDocument),
			URI:     relativeTo(doc, rootPath),
		})
		if err != nil {
			return stats, err
		}
		docIDs[doc] = id
	}
	stats.Documents = len(docOrder)

	// Ranges are deduplicated by location: a reference at a location
	// already emitted for a declaration reuses that range vertex.
	rangeIDs := make(map[types.Location]int)
	ensureRange := func(loc types.Location) (id int, created bool, err error) {
		if id, ok := rangeIDs[loc]; ok {
			return id, false, nil
		}
		id, err = em.Emit(&rangeVertex{
			element: vertex(labelRange),
			Start:   loc.Range.Start,
			End:     loc.Range.End,
		})
		if err != nil {
			return 0, false, err
		}
		rangeIDs[loc] = id
		_, err = em.Emit(&containsEdge{
			element: edge(labelContains),
			OutV:    docIDs[loc.Document],
			InVs:    []int{id},
		})
		return id, true, err
	}

	// Symbols, in ID order.
	resultSets := make(map[types.SymbolID]int, snap.Symbols.Len())
	for _, sym := range snap.Symbols.All() {
		rsID, err := em.Emit(&resultSetVertex{
			element:    vertex(labelResultSet),
			Identifier: string(sym.ID),
		})
		if err != nil {
			return stats, err
		}
		resultSets[sym.ID] = rsID

		for _, loc := range sym.Locations() {
			rID, created, err := ensureRange(loc)
			if err != nil {
				return stats, err
			}
			if !created {
				continue
			}
			if _, err := em.Emit(&nextEdge{
				element: edge(labelNext),
				OutV:    rID,
				InV:     rsID,
			}); err != nil {
				return stats, err
			}
		}
	}

	// Unresolved targets share one placeholder per distinct ID; every
	// unresolved occurrence counts as an anomaly.
	external := make(map[types.SymbolID]int)
	resolve := func(id types.SymbolID) (int, error) {
		if rsID, ok := resultSets[id]; ok {
			return rsID, nil
		}
		stats.Anomalies++
		if vID, ok := external[id]; ok {
			return vID, nil
		}
		vID, err := em.Emit(&externalSymbolVertex{
			element:    vertex(labelExternalSymbol),
			Identifier: string(id),
		})
		if err != nil {
			return 0, err
		}
		external[id] = vID
		return vID, nil
	}

	// References, in insertion order.
	for _, target := range snap.Refs.Targets() {
		for _, ref := range snap.Refs.For(target) {
			rID, _, err := ensureRange(ref.Location)
			if err != nil {
				return stats, err
			}
			tID, err := resolve(target)
			if err != nil {
				return stats, err
			}
			if _, err := em.Emit(&referenceEdge{
				element: edge(labelReference),
				OutV:    rID,
				InV:     tID,
				Kinds:   ref.Kinds.Names(),
			}); err != nil {
				return stats, err
			}
		}
	}

	// Relations, in insertion order.
	for _, rel := range snap.Relations.All() {
		sID, err := resolve(rel.Subject)
		if err != nil {
			return stats, err
		}
		oID, err := resolve(rel.Object)
		if err != nil {
			return stats, err
		}
		if _, err := em.Emit(&relationEdge{
			element: edge(rel.Kind.String()),
			OutV:    sID,
			InV:     oID,
		}); err != nil {
			return stats, err
		}
	}

	stats.Vertices = em.Vertices()
	stats.Edges = em.Edges()
	for id := range external {
		stats.MissingSymbols = append(stats.MissingSymbols, string(id))
	}
	sort.Strings(stats.MissingSymbols)

	if stats.Anomalies > 0 {
		log.Warn("references to symbols absent from the index",
			zap.Int("occurrences", stats.Anomalies),
			zap.Strings("symbols", stats.MissingSymbols))
	}
	log.Debug("export complete",
		zap.Int("vertices", stats.Vertices),
		zap.Int("edges", stats.Edges),
		zap.Int("documents", stats.Documents))

	return stats, nil
}

// normalizeRoot splits a project root given as a path or file:// URI
// into the URI form (for the metaData vertex) and the bare path form
// (for relativizing document paths).
func normalizeRoot(root string) (uri, path string) {
	path = strings.TrimPrefix(root, "file://")
	path = strings.TrimRight(path, "/")
	return "file://" + path, path
}

// relativeTo makes a document path relative to the project root when
// it lies under it, and leaves it untouched otherwise.
func relativeTo(doc, rootPath string) string {
	p := strings.TrimPrefix(doc, "file://")
	if rootPath == "" {
		return p
	}
	if rest, ok := strings.CutPrefix(p, rootPath+"/"); ok {
		return rest
	}
	return p
}
