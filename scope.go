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
	"k8s.io/klog/v2"
)

// Scope groups a sequence of related checks into one validation episode:
// all checks share one Store, so dimensions unify across them.
//
//	n, m, k := shapecheck.NewDim("n"), shapecheck.NewDim("m"), shapecheck.NewDim("k")
//	sc := shapecheck.NewScope()
//	sc.Assert(x, shapecheck.MakeSpec(n, m), "x").
//		Assert(y, shapecheck.MakeSpec(m, k), "y").
//		Assert(z, shapecheck.MakeSpec(n, k), "z")
//
// Scope is the layer that honors the global Mode: under ModeWarn failures
// are logged and swallowed, under ModeSkip checks are no-ops. A Scope must
// not be used from multiple goroutines at once -- give each concurrent
// episode its own Scope.
type Scope struct {
	store    *Store
	function string
}

// NewScope creates a Scope with a fresh Store.
func NewScope() *Scope {
	return &Scope{store: NewStore()}
}

// NewScopeWith creates a Scope that continues an existing episode: checks
// made through it see (and add to) the bindings already in store.
func NewScopeWith(store *Store) *Scope {
	return &Scope{store: store}
}

// Named sets the function label attached to diagnostics raised by this
// Scope. It returns the Scope for chaining.
func (sc *Scope) Named(function string) *Scope {
	sc.function = function
	return sc
}

// Check validates value's shape against spec, using name as the argument
// label. Returns nil on success, or the annotated ShapeError.
func (sc *Scope) Check(value HasShape, spec Spec, name string) error {
	return sc.dispatch(func() error {
		return Match(value.Shape(), spec, sc.store, name)
	}, name)
}

// CheckShape is Check for a bare shape, when there is no value at hand.
func (sc *Scope) CheckShape(shape Shape, spec Spec, name string) error {
	return sc.dispatch(func() error {
		return Match(shape, spec, sc.store, name)
	}, name)
}

// CheckTree validates a nested structure of named arrays against a
// TreeSpec, using name as the argument label.
func (sc *Scope) CheckTree(value any, spec TreeSpec, name string) error {
	return sc.dispatch(func() error {
		return MatchTree(value, spec, sc.store, name)
	}, name)
}

// Assert is like Check but panics with the diagnostic; it returns the
// Scope so checks chain.
func (sc *Scope) Assert(value HasShape, spec Spec, name string) *Scope {
	if err := sc.Check(value, spec, name); err != nil {
		panic(err)
	}
	return sc
}

// AssertTree is like CheckTree but panics with the diagnostic; it returns
// the Scope so checks chain.
func (sc *Scope) AssertTree(value any, spec TreeSpec, name string) *Scope {
	if err := sc.CheckTree(value, spec, name); err != nil {
		panic(err)
	}
	return sc
}

// dispatch runs one check under the current Mode and annotates any
// diagnostic with this Scope's call-site labels.
func (sc *Scope) dispatch(check func() error, name string) error {
	if CurrentMode() == ModeSkip {
		return nil
	}
	err := check()
	if err == nil {
		return nil
	}
	AnnotateCall(err, sc.function, name)
	if CurrentMode() == ModeWarn {
		klog.Warningf("shapecheck: %v", err)
		return nil
	}
	return err
}

// Store returns the Scope's binding store, e.g. to hand to a follow-up
// episode via NewScopeWith.
func (sc *Scope) Store() *Store { return sc.store }

// Resolve returns the value dim was bound to during this episode, and
// whether it is bound.
func (sc *Scope) Resolve(dim *Dim) (int, bool) { return sc.store.Resolve(dim) }

// BindingValues returns the episode's bindings as a name to value map.
func (sc *Scope) BindingValues() map[string]int { return sc.store.Values() }

// Bindings formats the episode's bindings for display.
func (sc *Scope) Bindings() string { return sc.store.Bindings() }
