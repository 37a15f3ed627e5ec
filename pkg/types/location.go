// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd002-fact-model R1;
//
//	docs/ARCHITECTURE § Fact Model.
package types

// Position is a zero-based line/character offset within a document.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open span [Start, End) within a single document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location identifies a span of text in a document. Document is a
// filesystem path or URI as reported by the producer; this package does
// not interpret it.
type Location struct {
	Document string `json:"document"`
	Range    Range  `json:"range"`
}

// Less orders positions by line, then character.
func (p Position) Less(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Character < o.Character
}

// Less orders ranges by start position, then end position.
func (r Range) Less(o Range) bool {
	if r.Start != o.Start {
		return r.Start.Less(o.Start)
	}
	return r.End.Less(o.End)
}

// Less orders locations by document, then range. Used wherever a
// deterministic location order is required.
func (l Location) Less(o Location) bool {
	if l.Document != o.Document {
		return l.Document < o.Document
	}
	return l.Range.Less(o.Range)
}
