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
)

// Binding records the concrete value a Dim was fixed to, plus where the
// value came from (e.g. "x[1]"), for diagnostics.
type Binding struct {
	Value  int
	Source string
}

// Store tracks dimension bindings during one validation episode.
//
// Bindings are write-once: the first Bind of a Dim fixes its value, and
// every later Bind of the same Dim must agree or the episode fails with a
// *UnificationError. A Store only grows -- there is no unbind.
//
// Create a fresh Store per episode. To let dimensions unify across a
// sequence of related checks (say, inputs then outputs of one call), pass
// the same Store through all of them. A Store is not safe for concurrent
// use; concurrent episodes must each own their Store.
type Store struct {
	bindings map[*Dim]Binding
	order    []*Dim // Insertion order, for stable formatting.
}

// NewStore creates an empty binding store for one validation episode.
func NewStore() *Store {
	return &Store{bindings: make(map[*Dim]Binding)}
}

// Bind fixes dim to value, recording source as the provenance.
//
// If dim is already bound to the same value this is a no-op. If it is
// bound to a different value, Bind returns a *UnificationError reporting
// both values and both provenances, and the store is left unchanged.
func (st *Store) Bind(dim *Dim, value int, source string) error {
	if existing, found := st.bindings[dim]; found {
		if existing.Value != value {
			return &UnificationError{
				Dim:         dim,
				BoundValue:  existing.Value,
				BoundSource: existing.Source,
				NewValue:    value,
				NewSource:   source,
			}
		}
		return nil
	}
	st.bindings[dim] = Binding{Value: value, Source: source}
	st.order = append(st.order, dim)
	return nil
}

// Resolve returns the value dim is bound to, and whether it is bound.
func (st *Store) Resolve(dim *Dim) (value int, found bool) {
	binding, found := st.bindings[dim]
	return binding.Value, found
}

// Source returns the provenance of dim's binding, and whether it is bound.
func (st *Store) Source(dim *Dim) (source string, found bool) {
	binding, found := st.bindings[dim]
	return binding.Source, found
}

// Len returns the number of bound dimensions.
func (st *Store) Len() int { return len(st.order) }

// Each calls fn for every binding, in insertion order.
func (st *Store) Each(fn func(dim *Dim, binding Binding)) {
	for _, dim := range st.order {
		fn(dim, st.bindings[dim])
	}
}

// Values returns the current bindings as a name to value map, for
// inspection. If two distinct Dims share a display name, the later binding
// wins -- use Resolve with the Dim object when that matters.
func (st *Store) Values() map[string]int {
	values := make(map[string]int, len(st.order))
	for _, dim := range st.order {
		values[dim.name] = st.bindings[dim].Value
	}
	return values
}

// Bindings formats the current bindings for diagnostics, as
// "{n=3 (from x[0]), m=4 (from x[1])}" in insertion order.
func (st *Store) Bindings() string {
	if len(st.order) == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(st.order))
	for _, dim := range st.order {
		binding := st.bindings[dim]
		parts = append(parts, fmt.Sprintf("%s=%d (from %s)", dim.name, binding.Value, binding.Source))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
