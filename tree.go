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
	"slices"
)

// TreeSpec describes the shapes of a nested structure of named arrays
// ("pytree"): a tree of string-keyed mappings with shape specifications at
// the leaves. It is a sealed tagged variant, built with Leaf and Node:
//
//	spec := shapecheck.Node(map[string]shapecheck.TreeSpec{
//		"w": shapecheck.Leaf(n, m),
//		"b": shapecheck.Leaf(m),
//	})
//
// One MatchTree walk uses one Store throughout, so a dimension bound deep
// in one branch constrains every sibling branch.
type TreeSpec interface {
	treeSpec()
}

type leafSpec struct {
	spec Spec
}

func (leafSpec) treeSpec() {}

type nodeSpec map[string]TreeSpec

func (nodeSpec) treeSpec() {}

// Leaf returns a TreeSpec leaf matching a single array against the given
// spec elements. Like MakeSpec, it panics on an invalid spec.
func Leaf(elements ...SpecElem) TreeSpec {
	return leafSpec{spec: MakeSpec(elements...)}
}

// LeafSpec returns a TreeSpec leaf matching a single array against an
// already-built Spec.
func LeafSpec(spec Spec) TreeSpec {
	return leafSpec{spec: spec}
}

// Node returns a TreeSpec node: every key in children must be present in
// the checked value, and each child value is matched against the
// corresponding child spec. Keys present in the value but not in the spec
// are ignored.
func Node(children map[string]TreeSpec) TreeSpec {
	return nodeSpec(children)
}

// MatchTree recursively checks a nested structure of values against a
// TreeSpec, sharing store across the whole walk.
//
// At a Node, value must be a map[string]any (or map[string]HasShape, or
// map[string]Shape); at a Leaf, value must implement HasShape -- a plain
// Shape qualifies. Anything else fails with a *StructureError. source is
// extended with the key at each level, so diagnostics read like
// `params["layer1"]["w"]`.
func MatchTree(value any, spec TreeSpec, store *Store, source string) error {
	switch node := spec.(type) {
	case nodeSpec:
		mapping, ok := asMapping(value)
		if !ok {
			return &StructureError{
				ExpectedKind: "mapping",
				ActualKind:   kindOf(value),
			}
		}
		// Walk spec keys in sorted order so the first diagnostic is
		// deterministic.
		keys := make([]string, 0, len(node))
		for key := range node {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		for _, key := range keys {
			child, present := mapping[key]
			if !present {
				available := make([]string, 0, len(mapping))
				for have := range mapping {
					available = append(available, have)
				}
				slices.Sort(available)
				return &StructureError{
					ExpectedKind:  "mapping",
					ActualKind:    "mapping",
					MissingKey:    key,
					AvailableKeys: available,
				}
			}
			childSource := fmt.Sprintf("%s[%q]", source, key)
			if err := MatchTree(child, node[key], store, childSource); err != nil {
				return err
			}
		}
		return nil

	case leafSpec:
		shaped, ok := value.(HasShape)
		if !ok {
			return &StructureError{
				ExpectedKind: "array",
				ActualKind:   kindOf(value),
			}
		}
		return Match(shaped.Shape(), node.spec, store, source)
	}
	// TreeSpec is sealed; only a hand-rolled implementation reaches here.
	return &StructureError{
		ExpectedKind: "mapping",
		ActualKind:   fmt.Sprintf("unsupported spec type %T", spec),
	}
}

// asMapping converts the supported mapping types to a uniform view.
func asMapping(value any) (map[string]any, bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case map[string]HasShape:
		converted := make(map[string]any, len(m))
		for key, child := range m {
			converted[key] = child
		}
		return converted, true
	case map[string]Shape:
		converted := make(map[string]any, len(m))
		for key, child := range m {
			converted[key] = child
		}
		return converted, true
	}
	return nil, false
}

// kindOf describes a value's type for StructureError messages.
func kindOf(value any) string {
	if value == nil {
		return "nil"
	}
	if _, ok := value.(HasShape); ok {
		return fmt.Sprintf("array (%T)", value)
	}
	return fmt.Sprintf("%T", value)
}
