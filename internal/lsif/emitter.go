// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd006-lsif-export R3.
package lsif

import (
	"encoding/json"
	"fmt"
	"io"
)

// Emitter writes graph elements to a sink as line-delimited JSON,
// assigning each element a fresh sequential ID in emission order. A
// write failure aborts the export; partial output already written is
// not retracted, and a failed run is wholly invalid downstream.
type Emitter struct {
	enc      *json.Encoder
	next     int
	vertices int
	edges    int
}

// NewEmitter creates an emitter writing to w. IDs start at 1.
func NewEmitter(w io.Writer) *Emitter {
	return &Emitter{enc: json.NewEncoder(w), next: 1}
}

// Emit assigns the next ID to the element, writes it as one JSON line,
// and returns the assigned ID.
func (e *Emitter) Emit(p payload) (int, error) {
	b := p.base()
	b.ID = e.next
	if err := e.enc.Encode(p); err != nil {
		return 0, fmt.Errorf("writing %s %s: %w", b.Type, b.Label, err)
	}
	e.next++
	switch b.Type {
	case typeVertex:
		e.vertices++
	case typeEdge:
		e.edges++
	}
	return b.ID, nil
}

// Vertices returns the number of vertices emitted so far.
func (e *Emitter) Vertices() int { return e.vertices }

// Edges returns the number of edges emitted so far.
func (e *Emitter) Edges() int { return e.edges }
