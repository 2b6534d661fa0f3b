/*
 *	Copyright 2023 Jan Pfeifer
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

// Package shapecheck provides runtime shape contracts for array-like values.
//
// It verifies that the shapes of tensors (or anything else with a shape)
// conform to declared specifications, and unifies symbolic dimension names
// across multiple values within one validation episode. Shape mismatches
// are a common class of bug in numeric code; shapecheck surfaces them at
// the boundary where they happen, with a diagnostic that names the axis,
// the conflicting values and where each came from, instead of an opaque
// failure several operations downstream.
//
// ## Glossary
//
//   - Rank: number of axes (dimensions) of a shape.
//   - Axis: the index of a dimension in a multidimensional shape. Its size
//     is the dimension of that axis.
//   - Dim: a symbolic dimension, standing for an unknown-but-consistent
//     axis size. Two Dims unify if and only if they are the same object.
//   - Binding: the concrete value a Dim has been fixed to within one
//     episode, plus the provenance of that value.
//   - Episode: one validation pass using one Store, spanning one or more
//     related checks.
//   - Ellipsis: specification element matching zero or more unconstrained
//     axes.
//
// ## Basic usage
//
// Build a Spec out of literal sizes, symbolic dims, the Any wildcard and
// (at most once) the Ellipsis marker, then match shapes against it. Checks
// that share a Store also share dimension bindings:
//
//	n, m, k := shapecheck.NewDim("n"), shapecheck.NewDim("m"), shapecheck.NewDim("k")
//	store := shapecheck.NewStore()
//	err := shapecheck.Match(a, shapecheck.MakeSpec(n, m), store, "a")
//	...
//	err = shapecheck.Match(b, shapecheck.MakeSpec(m, k), store, "b")
//
// If `a` is (3, 4) and `b` is (5, 6) the second Match fails: `m` was bound
// to 4 by a[1] and cannot also be 5.
//
// The Scope type wraps the same machinery for grouped checks, and every
// Check-style function has an Assert-style twin that panics with the
// diagnostic instead of returning it -- convenient inside model code where
// a shape mismatch is not recoverable anyway.
package shapecheck

import (
	"fmt"
	"slices"
	"strings"
)

// Shape is the dimensions of an array-like value: an ordered sequence of
// non-negative axis sizes. A nil or empty Shape is a scalar.
//
// Shape carries no dtype: shapecheck validates geometry only.
type Shape []int

// HasShape is an interface for objects that have an associated Shape.
// Concrete tensor types are expected to implement it; Shape implements it
// itself, so a plain Shape can be checked directly.
type HasShape interface {
	Shape() Shape
}

// Rank of the shape, that is, the number of axes.
func (s Shape) Rank() int { return len(s) }

// IsScalar returns whether the shape has no axes (rank 0).
func (s Shape) IsScalar() bool { return len(s) == 0 }

// Size returns the number of elements a value of this shape holds, the
// product of all dimensions. A scalar has size 1.
func (s Shape) Size() int {
	size := 1
	for _, dim := range s {
		size *= dim
	}
	return size
}

// Dim returns the dimension of the given axis. axis can take negative
// numbers, in which case it counts from the end -- so axis=-1 refers to
// the last axis. Like slice indexing, it panics for an out-of-bound axis.
func (s Shape) Dim(axis int) int {
	adjusted := axis
	if adjusted < 0 {
		adjusted += s.Rank()
	}
	if adjusted < 0 || adjusted >= s.Rank() {
		panic(fmt.Sprintf("shapecheck: Shape.Dim(%d) out-of-bounds for rank %d (shape=%s)", axis, s.Rank(), s))
	}
	return s[adjusted]
}

// Shape returns the shape itself. It implements the HasShape interface.
func (s Shape) Shape() Shape { return s }

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape { return slices.Clone(s) }

// Equal compares two shapes for equality of rank and dimensions.
func (s Shape) Equal(s2 Shape) bool { return slices.Equal(s, s2) }

// String implements fmt.Stringer, pretty-prints the shape as "(3, 4)".
// A scalar prints as "()".
func (s Shape) String() string {
	if s.IsScalar() {
		return "()"
	}
	parts := make([]string, len(s))
	for ii, dim := range s {
		parts[ii] = fmt.Sprintf("%d", dim)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
