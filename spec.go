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

package shapecheck

import (
	"fmt"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// SpecElem is one element of a shape specification. It is a sealed
// interface: the implementations are Lit (exact size), *Dim (symbolic
// dimension), Any (wildcard) and Ellipsis (variable-length marker).
type SpecElem interface {
	specElem()
}

// Lit is an integer literal specification element: the axis must have
// exactly this size.
type Lit int

func (Lit) specElem() {}

// String implements fmt.Stringer.
func (l Lit) String() string { return fmt.Sprintf("%d", int(l)) }

type anyElem struct{}

func (anyElem) specElem() {}

func (anyElem) String() string { return "*" }

// Any is the wildcard specification element: it matches an axis of any
// size and binds nothing. A nil SpecElem passed to MakeSpec or NewSpec is
// normalized to Any.
var Any SpecElem = anyElem{}

type ellipsisElem struct{}

func (ellipsisElem) specElem() {}

func (ellipsisElem) String() string { return "..." }

// Ellipsis is the variable-length marker: it matches zero or more
// unconstrained axes. A Spec may contain at most one Ellipsis.
var Ellipsis SpecElem = ellipsisElem{}

// Spec is a shape specification: an ordered sequence of specification
// elements a concrete Shape is matched against.
//
// Use MakeSpec or NewSpec to build one -- they validate the "at most one
// Ellipsis" rule up front, so an invalid spec is rejected where it is
// authored rather than at the first check that uses it.
type Spec []SpecElem

// MakeSpec returns a Spec with the given elements. Nil elements are
// normalized to Any.
//
// It panics if the spec contains more than one Ellipsis or a negative
// literal. See NewSpec for a version that returns an error instead.
func MakeSpec(elements ...SpecElem) Spec {
	spec, err := NewSpec(elements...)
	if err != nil {
		exceptions.Panicf("shapecheck.MakeSpec: %v", err)
	}
	return spec
}

// NewSpec returns a Spec with the given elements, or an error if the spec
// contains more than one Ellipsis or a negative literal. Nil elements are
// normalized to Any.
func NewSpec(elements ...SpecElem) (Spec, error) {
	spec := make(Spec, len(elements))
	copy(spec, elements)
	for ii, elem := range spec {
		if elem == nil {
			spec[ii] = Any
		}
	}
	if err := spec.validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// validate enforces the construction-time invariants. Match also calls it,
// to defend against a Spec assembled by hand as a plain slice.
func (s Spec) validate() error {
	seenEllipsis := false
	for ii, elem := range s {
		switch e := elem.(type) {
		case ellipsisElem:
			if seenEllipsis {
				return errors.Errorf("spec %s has more than one Ellipsis (second at position %d), at most one is allowed", s, ii)
			}
			seenEllipsis = true
		case Lit:
			if e < 0 {
				return errors.Errorf("spec %s has negative literal %d at position %d", s, int(e), ii)
			}
		case *Dim, anyElem:
			// Always valid.
		default:
			return errors.Errorf("invalid spec element at position %d: %T (expected Lit, *Dim, Any or Ellipsis)", ii, elem)
		}
	}
	return nil
}

// ellipsisAt returns the position of the Ellipsis marker, or -1 if the
// spec has none. Assumes the spec validated.
func (s Spec) ellipsisAt() int {
	for ii, elem := range s {
		if _, ok := elem.(ellipsisElem); ok {
			return ii
		}
	}
	return -1
}

// HasEllipsis returns whether the spec contains the Ellipsis marker.
func (s Spec) HasEllipsis() bool { return s.ellipsisAt() >= 0 }

// MinRank returns the smallest rank a shape can have and still match: the
// number of elements, not counting an Ellipsis.
func (s Spec) MinRank() int {
	if s.HasEllipsis() {
		return len(s) - 1
	}
	return len(s)
}

// String implements fmt.Stringer, pretty-prints the spec as
// "(n, ..., 3, *)".
func (s Spec) String() string {
	parts := make([]string, len(s))
	for ii, elem := range s {
		switch e := elem.(type) {
		case nil:
			parts[ii] = "*"
		case fmt.Stringer:
			parts[ii] = e.String()
		default:
			parts[ii] = fmt.Sprintf("%v", elem)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
