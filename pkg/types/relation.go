// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd002-fact-model R3;
//
//	docs/ARCHITECTURE § Fact Model.
package types

import "fmt"

// RelationKind identifies the type of a directed symbol-to-symbol edge.
type RelationKind int

const (
	RelationUnknown RelationKind = iota
	RelationBaseOf
	RelationOverrides
	RelationContains
)

// String returns the human-readable name of the relation kind.
func (k RelationKind) String() string {
	switch k {
	case RelationBaseOf:
		return "baseOf"
	case RelationOverrides:
		return "overrides"
	case RelationContains:
		return "contains"
	default:
		return "unknown"
	}
}

// ParseRelationKind converts a kind name back into a RelationKind.
func ParseRelationKind(s string) (RelationKind, error) {
	for k := RelationBaseOf; k <= RelationContains; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return RelationUnknown, fmt.Errorf("unknown relation kind %q", s)
}

// Relation is a typed directed edge between two symbols, independent of
// any source location. The triple is its own identity: relations carry
// no payload and deduplicate by set insertion.
type Relation struct {
	Subject SymbolID     // Source symbol
	Kind    RelationKind // Edge type
	Object  SymbolID     // Target symbol
}
