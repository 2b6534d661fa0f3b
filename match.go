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
)

// Match checks that actual conforms to spec, binding symbolic dimensions
// into store as it goes. source labels the value in diagnostics and in
// binding provenance (a dim matched at spec position i is recorded as
// bound "from source[i]").
//
// Matching is fail-fast: the first violation is returned as a ShapeError
// and no further axes are examined. Bindings made before the failure stay
// in the store -- they are still true, and the diagnostic quotes them.
//
// Without an Ellipsis in the spec, rank must match exactly and axes pair
// up position by position. With an Ellipsis, elements before it pair with
// the leading axes and elements after it with the trailing axes; the
// Ellipsis consumes whatever is left in the middle, unconstrained and
// unbound. Axis indices in diagnostics always refer to positions in the
// original spec.
func Match(actual Shape, spec Spec, store *Store, source string) error {
	if err := spec.validate(); err != nil {
		return err
	}
	ellipsisPos := spec.ellipsisAt()

	// Rank check.
	if ellipsisPos < 0 {
		if len(actual) != len(spec) {
			return &RankError{
				Expected: len(spec),
				Actual:   len(actual),
				Spec:     spec,
				Shape:    actual.Clone(),
				Bindings: store.Bindings(),
			}
		}
	} else if len(actual) < len(spec)-1 {
		return &RankError{
			Expected: len(spec) - 1,
			AtLeast:  true,
			Actual:   len(actual),
			Spec:     spec,
			Shape:    actual.Clone(),
			Bindings: store.Bindings(),
		}
	}

	// Pair axes with spec elements and match each pair. With an Ellipsis
	// the prefix anchors to the front of the shape and the suffix to the
	// back; the middle axes are skipped.
	if ellipsisPos < 0 {
		for ii, elem := range spec {
			if err := matchElem(actual, spec, ii, actual[ii], elem, store, source); err != nil {
				return err
			}
		}
		return nil
	}
	prefix := spec[:ellipsisPos]
	suffix := spec[ellipsisPos+1:]
	for ii, elem := range prefix {
		if err := matchElem(actual, spec, ii, actual[ii], elem, store, source); err != nil {
			return err
		}
	}
	offset := len(actual) - len(suffix)
	for ii, elem := range suffix {
		specPos := ellipsisPos + 1 + ii
		if err := matchElem(actual, spec, specPos, actual[offset+ii], elem, store, source); err != nil {
			return err
		}
	}
	return nil
}

// matchElem matches one axis size against one spec element. specPos is the
// element's position in the original (pre-split) spec, used both for
// diagnostics and binding provenance.
func matchElem(actual Shape, spec Spec, specPos, value int, elem SpecElem, store *Store, source string) error {
	switch e := elem.(type) {
	case anyElem:
		return nil
	case Lit:
		if value != int(e) {
			return &DimensionError{
				Axis:     specPos,
				Expected: int(e),
				Actual:   value,
				Spec:     spec,
				Shape:    actual.Clone(),
				Bindings: store.Bindings(),
			}
		}
		return nil
	case *Dim:
		return store.Bind(e, value, fmt.Sprintf("%s[%d]", source, specPos))
	}
	// validate() rejects anything else before we get here.
	return nil
}
