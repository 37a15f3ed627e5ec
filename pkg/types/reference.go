// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Implements: prd002-fact-model R2;
//
//	docs/ARCHITECTURE § Fact Model.
package types

import "fmt"

// RefKinds is a set of reference kinds. A single occurrence may carry
// several kinds at once (e.g. a write that is also a read); sets at the
// same (target, location) merge by union.
type RefKinds uint8

const (
	RefDeclaration RefKinds = 1 << iota
	RefDefinition
	RefReference
	RefCall
	RefRead
	RefWrite
)

// refKindOrder fixes the canonical enumeration order for Names output.
// Serialization relies on this order being stable.
var refKindOrder = []struct {
	kind RefKinds
	name string
}{
	{RefDeclaration, "declaration"},
	{RefDefinition, "definition"},
	{RefReference, "reference"},
	{RefCall, "call"},
	{RefRead, "read"},
	{RefWrite, "write"},
}

// Has reports whether every kind in k is set in r.
func (r RefKinds) Has(k RefKinds) bool {
	return r&k == k
}

// Union returns the set of kinds present in either operand.
func (r RefKinds) Union(o RefKinds) RefKinds {
	return r | o
}

// Names returns the set members in canonical enumeration order.
func (r RefKinds) Names() []string {
	var names []string
	for _, e := range refKindOrder {
		if r.Has(e.kind) {
			names = append(names, e.name)
		}
	}
	return names
}

// ParseRefKind converts a kind name back into its RefKinds bit.
func ParseRefKind(s string) (RefKinds, error) {
	for _, e := range refKindOrder {
		if e.name == s {
			return e.kind, nil
		}
	}
	return 0, fmt.Errorf("unknown reference kind %q", s)
}

// Ref is one occurrence of a symbol at a source location. Its identity
// is the (target SymbolID, Location) pair; the target is carried by the
// enclosing batch or slab keying, not by the record itself.
type Ref struct {
	Location Location // Where the occurrence appears
	Kinds    RefKinds // How the symbol is used there
}
