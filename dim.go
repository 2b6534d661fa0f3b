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

// Dim is a symbolic dimension that unifies at runtime.
//
// Two Dims unify if and only if they are the same object (the same *Dim
// pointer). This makes dimension sharing explicit:
//
//	n, m := shapecheck.NewDim("n"), shapecheck.NewDim("m")
//	specA := shapecheck.MakeSpec(n, m)  // same m object below: must match
//	specB := shapecheck.MakeSpec(m)
//
// Two Dims constructed independently never unify, even with the same name.
// The name is used for diagnostics only.
//
// A Dim is immutable after construction and safe to share across stores.
type Dim struct {
	name  string
	batch bool
}

// NewDim creates a new symbolic dimension with the given display name.
func NewDim(name string) *Dim {
	return &Dim{name: name}
}

// NewBatch creates a symbolic dimension marked as a batch axis. It behaves
// exactly like any other Dim during matching; the marker is purely
// semantic. An empty name defaults to "batch".
func NewBatch(name string) *Dim {
	if name == "" {
		name = "batch"
	}
	return &Dim{name: name, batch: true}
}

// Name returns the display name, used in diagnostics.
func (d *Dim) Name() string { return d.name }

// IsBatch returns whether the dimension was created with NewBatch.
func (d *Dim) IsBatch() bool { return d.batch }

// String implements fmt.Stringer, it returns the display name.
func (d *Dim) String() string { return d.name }

// specElem marks *Dim as a valid Spec element.
func (d *Dim) specElem() {}
