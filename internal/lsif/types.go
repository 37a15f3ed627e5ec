// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd006-lsif-export R1, R2;
//
//	docs/ARCHITECTURE § Graph Export.
package lsif

import "github.com/petar-djukic/go-index/pkg/types"

const (
	lsifVersion      = "0.4.3"
	positionEncoding = "utf-16"

	typeVertex = "vertex"
	typeEdge   = "edge"

	labelMetaData       = "metaData"
	labelProject        = "project"
	labelDocument       = "document"
	labelResultSet      = "resultSet"
	labelRange          = "range"
	labelExternalSymbol = "externalSymbol"
	labelContains       = "contains"
	labelNext           = "next"
	labelReference      = "reference"
)

// element carries the fields common to every emitted graph element.
// The ID is run-local and assigned in emission order; only the
// (document path, range, symbol ID) tuples are stable across runs.
type element struct {
	ID    int    `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label"`
}

func (e *element) base() *element { return e }

// payload is anything the emitter can write.
type payload interface {
	base() *element
}

func vertex(label string) element { return element{Type: typeVertex, Label: label} }
func edge(label string) element   { return element{Type: typeEdge, Label: label} }

// toolInfo identifies the producing tool in the metaData vertex.
type toolInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type metaDataVertex struct {
	element
	Version          string   `json:"version"`
	ProjectRoot      string   `json:"projectRoot"`
	PositionEncoding string   `json:"positionEncoding"`
	ToolInfo         toolInfo `json:"toolInfo"`
}

type projectVertex struct {
	element
	Kind string `json:"kind,omitempty"`
}

type documentVertex struct {
	element
	URI string `json:"uri"`
}

// resultSetVertex is the symbol-result vertex. Identifier carries the
// stable SymbolID so consumers can correlate across runs.
type resultSetVertex struct {
	element
	Identifier string `json:"identifier"`
}

type rangeVertex struct {
	element
	Start types.Position `json:"start"`
	End   types.Position `json:"end"`
}

// externalSymbolVertex stands in for a symbol that was referenced but
// never reported, so the export never fails on incomplete producer
// coverage.
type externalSymbolVertex struct {
	element
	Identifier string `json:"identifier"`
}

type containsEdge struct {
	element
	OutV int   `json:"outV"`
	InVs []int `json:"inVs"`
}

type nextEdge struct {
	element
	OutV int `json:"outV"`
	InV  int `json:"inV"`
}

// referenceEdge links an occurrence range to the target symbol-result
// vertex. A multi-kind occurrence is encoded as one edge carrying the
// kind list in canonical enumeration order; this is the single
// canonical encoding for the format.
type referenceEdge struct {
	element
	OutV  int      `json:"outV"`
	InV   int      `json:"inV"`
	Kinds []string `json:"kinds"`
}

// relationEdge links two symbol-result vertices; its label is the
// relation kind.
type relationEdge struct {
	element
	OutV int `json:"outV"`
	InV  int `json:"inV"`
}
