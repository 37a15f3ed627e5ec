// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines the fact record model shared across go-index
// packages: symbols, references, and relations as reported by analysis
// producers, plus their identity keys.
// Implements: prd002-fact-model R1-R4.
package types

import (
	"fmt"
	"strings"
)

// SymbolID is the stable identity of a symbol. It is derived upstream
// from the fully-qualified name and signature; this package treats it
// as opaque.
type SymbolID string

// SymbolKind identifies the category of a code symbol.
type SymbolKind int

const (
	KindUnknown SymbolKind = iota
	KindFunction
	KindMethod
	KindType
	KindVariable
	KindConstant
	KindMacro
	KindNamespace
	KindField
	KindEnumConstant
)

// String returns the human-readable name of the symbol kind.
func (k SymbolKind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	case KindType:
		return "type"
	case KindVariable:
		return "variable"
	case KindConstant:
		return "constant"
	case KindMacro:
		return "macro"
	case KindNamespace:
		return "namespace"
	case KindField:
		return "field"
	case KindEnumConstant:
		return "enumConstant"
	default:
		return "unknown"
	}
}

// ParseSymbolKind converts a kind name (as found in fact batch files)
// back into a SymbolKind.
func ParseSymbolKind(s string) (SymbolKind, error) {
	for k := KindFunction; k <= KindEnumConstant; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	if s == "" || s == "unknown" {
		return KindUnknown, nil
	}
	return KindUnknown, fmt.Errorf("unknown symbol kind %q", s)
}

// SymbolFlags is a set of named boolean properties of a symbol. Flags
// merge by union: a property true in any analysis unit is true overall.
type SymbolFlags uint8

const (
	FlagDeprecated SymbolFlags = 1 << iota
	FlagImplementationDetail
	FlagHasDefinition
)

// flagOrder fixes the canonical enumeration order for Names output.
var flagOrder = []struct {
	flag SymbolFlags
	name string
}{
	{FlagDeprecated, "deprecated"},
	{FlagImplementationDetail, "implementationDetail"},
	{FlagHasDefinition, "hasDefinition"},
}

// Has reports whether every flag in f is set in s.
func (s SymbolFlags) Has(f SymbolFlags) bool {
	return s&f == f
}

// Union returns the set of flags present in either operand.
func (s SymbolFlags) Union(o SymbolFlags) SymbolFlags {
	return s | o
}

// Names returns the set members in canonical enumeration order.
func (s SymbolFlags) Names() []string {
	var names []string
	for _, e := range flagOrder {
		if s.Has(e.flag) {
			names = append(names, e.name)
		}
	}
	return names
}

// ParseSymbolFlag converts a flag name back into its SymbolFlags bit.
func ParseSymbolFlag(s string) (SymbolFlags, error) {
	for _, e := range flagOrder {
		if e.name == s {
			return e.flag, nil
		}
	}
	return 0, fmt.Errorf("unknown symbol flag %q", s)
}

// Symbol is the canonical record for one code entity. One Symbol exists
// per SymbolID in a finalized slab; partial records from different
// analysis units are merged along the way.
type Symbol struct {
	ID            SymbolID    // Stable identity (opaque)
	Name          string      // Canonical name
	Scope         string      // Enclosing scope/container qualifier
	Kind          SymbolKind  // Category (function, type, etc.)
	Definition    *Location   // Definition location; nil when none seen
	Declarations  []Location  // Declaration locations (deduplicated)
	References    int         // Accumulated reference count
	Documentation string      // Doc comment text
	Flags         SymbolFlags // Named boolean properties
}

// Locations returns the definition (if any) followed by declarations.
// The definition comes first so serialization emits it before the
// declaration ranges.
func (s Symbol) Locations() []Location {
	var locs []Location
	if s.Definition != nil {
		locs = append(locs, *s.Definition)
	}
	return append(locs, s.Declarations...)
}

// QualifiedName joins scope and name for display.
func (s Symbol) QualifiedName() string {
	if s.Scope == "" {
		return s.Name
	}
	if strings.HasSuffix(s.Scope, "::") || strings.HasSuffix(s.Scope, ".") {
		return s.Scope + s.Name
	}
	return s.Scope + "." + s.Name
}
