// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package factfile decodes one analysis unit's fact batch from JSON
// into typed records. A fact file is what an analysis frontend emits
// per translation unit: symbols, references keyed by target, and
// relations. This package validates shape and enum names; it does not
// check cross-fact consistency (a reference may name a symbol no file
// reports — the serializer resolves that later).
// Implements: prd007-fact-files R1-R3;
//
//	docs/ARCHITECTURE § Fact Files.
package factfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/petar-djukic/go-index/pkg/types"
)

// Batch holds the decoded facts of one analysis unit.
type Batch struct {
	Symbols   []types.Symbol
	Refs      map[types.SymbolID][]types.Ref
	Relations []types.Relation
}

// ParseError describes a malformed record in a fact file.
type ParseError struct {
	Section string // "symbols", "refs", or "relations"
	Index   int    // Record position within the section (0-based)
	Message string // What went wrong
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("fact file: %s[%d]: %s", e.Section, e.Index, e.Message)
}

// Wire format. Kinds and flags travel as names, not numbers, so fact
// files stay readable and stable across enum reordering.
type fileBatch struct {
	Symbols   []fileSymbol         `json:"symbols"`
	Refs      map[string][]fileRef `json:"refs"`
	Relations []fileRelation       `json:"relations"`
}

type fileSymbol struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Scope         string           `json:"scope,omitempty"`
	Kind          string           `json:"kind"`
	Definition    *types.Location  `json:"definition,omitempty"`
	Declarations  []types.Location `json:"declarations,omitempty"`
	References    int              `json:"references,omitempty"`
	Documentation string           `json:"documentation,omitempty"`
	Flags         []string         `json:"flags,omitempty"`
}

type fileRef struct {
	Document string      `json:"document"`
	Range    types.Range `json:"range"`
	Kinds    []string    `json:"kinds"`
}

type fileRelation struct {
	Subject string `json:"subject"`
	Kind    string `json:"kind"`
	Object  string `json:"object"`
}

// Load reads and parses the fact file at path.
func Load(path string) (*Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening fact file: %w", err)
	}
	defer f.Close()

	batch, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return batch, nil
}

// Parse decodes a fact batch from r.
func Parse(r io.Reader) (*Batch, error) {
	var raw fileBatch
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding fact file: %w", err)
	}

	batch := &Batch{Refs: make(map[types.SymbolID][]types.Ref, len(raw.Refs))}

	for i, fs := range raw.Symbols {
		sym, err := parseSymbol(fs)
		if err != nil {
			return nil, &ParseError{Section: "symbols", Index: i, Message: err.Error()}
		}
		batch.Symbols = append(batch.Symbols, sym)
	}

	for target, frs := range raw.Refs {
		if target == "" {
			return nil, &ParseError{Section: "refs", Index: 0, Message: "empty target symbol id"}
		}
		for i, fr := range frs {
			ref, err := parseRef(fr)
			if err != nil {
				return nil, &ParseError{Section: "refs", Index: i, Message: fmt.Sprintf("target %q: %v", target, err)}
			}
			batch.Refs[types.SymbolID(target)] = append(batch.Refs[types.SymbolID(target)], ref)
		}
	}

	for i, fr := range raw.Relations {
		rel, err := parseRelation(fr)
		if err != nil {
			return nil, &ParseError{Section: "relations", Index: i, Message: err.Error()}
		}
		batch.Relations = append(batch.Relations, rel)
	}

	return batch, nil
}

func parseSymbol(fs fileSymbol) (types.Symbol, error) {
	if fs.ID == "" {
		return types.Symbol{}, fmt.Errorf("missing symbol id")
	}
	kind, err := types.ParseSymbolKind(fs.Kind)
	if err != nil {
		return types.Symbol{}, err
	}
	var flags types.SymbolFlags
	for _, name := range fs.Flags {
		f, err := types.ParseSymbolFlag(name)
		if err != nil {
			return types.Symbol{}, err
		}
		flags = flags.Union(f)
	}
	return types.Symbol{
		ID:            types.SymbolID(fs.ID),
		Name:          fs.Name,
		Scope:         fs.Scope,
		Kind:          kind,
		Definition:    fs.Definition,
		Declarations:  fs.Declarations,
		References:    fs.References,
		Documentation: fs.Documentation,
		Flags:         flags,
	}, nil
}

func parseRef(fr fileRef) (types.Ref, error) {
	if fr.Document == "" {
		return types.Ref{}, fmt.Errorf("missing document")
	}
	if len(fr.Kinds) == 0 {
		return types.Ref{}, fmt.Errorf("missing kinds")
	}
	var kinds types.RefKinds
	for _, name := range fr.Kinds {
		k, err := types.ParseRefKind(name)
		if err != nil {
			return types.Ref{}, err
		}
		kinds = kinds.Union(k)
	}
	return types.Ref{
		Location: types.Location{Document: fr.Document, Range: fr.Range},
		Kinds:    kinds,
	}, nil
}

func parseRelation(fr fileRelation) (types.Relation, error) {
	if fr.Subject == "" || fr.Object == "" {
		return types.Relation{}, fmt.Errorf("missing subject or object symbol id")
	}
	kind, err := types.ParseRelationKind(fr.Kind)
	if err != nil {
		return types.Relation{}, err
	}
	return types.Relation{
		Subject: types.SymbolID(fr.Subject),
		Kind:    kind,
		Object:  types.SymbolID(fr.Object),
	}, nil
}
