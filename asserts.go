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

// Assert-style twins of the Check-style API: same semantics, but they
// panic with the diagnostic instead of returning it. A shape mismatch is
// a programmer error, and inside model-building code threading the error
// up is often just noise -- these follow the same Check/Assert split used
// elsewhere in gomlx.
//
// The panic value is the ShapeError itself (not a formatted string), so
// exceptions.TryCatch[shapecheck.ShapeError] recovers the typed diagnostic.

// AssertMatch is like Match but panics with the ShapeError on mismatch.
func AssertMatch(actual Shape, spec Spec, store *Store, source string) {
	if err := Match(actual, spec, store, source); err != nil {
		panic(err)
	}
}

// AssertTree is like MatchTree but panics with the ShapeError on mismatch.
func AssertTree(value any, spec TreeSpec, store *Store, source string) {
	if err := MatchTree(value, spec, store, source); err != nil {
		panic(err)
	}
}

// MustBroadcast is like BroadcastShapes but panics with the
// *BroadcastError on incompatibility.
func MustBroadcast(shapes ...Shape) Shape {
	result, err := BroadcastShapes(shapes...)
	if err != nil {
		panic(err)
	}
	return result
}
