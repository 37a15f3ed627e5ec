// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package slab provides one builder/slab pair per fact type. A builder
// accumulates records from arbitrarily many insertions, deduplicating
// and merging by identity; Build consumes it exactly once and returns
// an immutable, indexed slab safe for concurrent readers.
// Implements: prd003-slab-builders R1-R4;
//
//	docs/ARCHITECTURE § Slabs.
package slab

import "errors"

// ErrBuilt is returned when Build is called on an already-consumed
// builder. Hitting it is a programming error in the caller, not a
// recoverable condition.
var ErrBuilt = errors.New("slab builder already consumed")
