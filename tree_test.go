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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchTreeSimple(t *testing.T) {
	n, m := NewDim("n"), NewDim("m")
	spec := Node(map[string]TreeSpec{
		"w": Leaf(n, m),
		"b": Leaf(m),
	})
	store := NewStore()
	value := map[string]any{
		"w": Shape{3, 4},
		"b": Shape{4},
	}
	require.NoError(t, MatchTree(value, spec, store, "params"))
	require.Equal(t, map[string]int{"n": 3, "m": 4}, store.Values())
}

func TestMatchTreeNested(t *testing.T) {
	n, m := NewDim("n"), NewDim("m")
	spec := Node(map[string]TreeSpec{
		"layer1": Node(map[string]TreeSpec{
			"w": Leaf(n, m),
			"b": Leaf(m),
		}),
		"layer2": Node(map[string]TreeSpec{
			"w": Leaf(m, Lit(10)),
			"b": Leaf(Lit(10)),
		}),
	})
	store := NewStore()
	value := map[string]any{
		"layer1": map[string]any{"w": Shape{5, 8}, "b": Shape{8}},
		"layer2": map[string]any{"w": Shape{8, 10}, "b": Shape{10}},
	}
	require.NoError(t, MatchTree(value, spec, store, "params"))
	require.Equal(t, map[string]int{"n": 5, "m": 8}, store.Values())
}

func TestMatchTreeCrossBranchUnification(t *testing.T) {
	// A dim bound deep in one branch constrains a sibling branch.
	m := NewDim("m")
	spec := Node(map[string]TreeSpec{
		"b": Leaf(m),
		"w": Leaf(Lit(5), m),
	})
	store := NewStore()
	err := MatchTree(map[string]any{
		"b": Shape{5},
		"w": Shape{5, 4},
	}, spec, store, "params")
	var unifErr *UnificationError
	require.ErrorAs(t, err, &unifErr)
	require.Same(t, m, unifErr.Dim)
	require.Equal(t, 5, unifErr.BoundValue)
	require.Equal(t, `params["b"][0]`, unifErr.BoundSource)
	require.Equal(t, 4, unifErr.NewValue)
	require.Equal(t, `params["w"][1]`, unifErr.NewSource)
}

func TestMatchTreeMissingKey(t *testing.T) {
	n, m := NewDim("n"), NewDim("m")
	spec := Node(map[string]TreeSpec{
		"w": Leaf(n, m),
		"b": Leaf(m),
	})
	err := MatchTree(map[string]any{"w": Shape{3, 4}}, spec, NewStore(), "params")
	var structErr *StructureError
	require.ErrorAs(t, err, &structErr)
	require.Equal(t, "b", structErr.MissingKey)
	require.Equal(t, []string{"w"}, structErr.AvailableKeys)
	require.Contains(t, structErr.Error(), `missing key "b"`)
	require.Contains(t, structErr.Error(), "[w]")
}

func TestMatchTreeExtraKeysIgnored(t *testing.T) {
	n, m := NewDim("n"), NewDim("m")
	spec := Node(map[string]TreeSpec{"w": Leaf(n, m)})
	value := map[string]any{
		"w":     Shape{3, 4},
		"b":     Shape{4},
		"extra": 123,
	}
	require.NoError(t, MatchTree(value, spec, NewStore(), "params"))
}

func TestMatchTreeKindMismatch(t *testing.T) {
	n := NewDim("n")

	{ // Node spec against a non-mapping.
		err := MatchTree(Shape{3, 4}, Node(map[string]TreeSpec{"w": Leaf(n)}), NewStore(), "params")
		var structErr *StructureError
		require.ErrorAs(t, err, &structErr)
		require.Equal(t, "mapping", structErr.ExpectedKind)
		require.Empty(t, structErr.MissingKey)
	}
	{ // Leaf spec against a non-array.
		err := MatchTree(42, Leaf(n), NewStore(), "x")
		var structErr *StructureError
		require.ErrorAs(t, err, &structErr)
		require.Equal(t, "array", structErr.ExpectedKind)
		require.Equal(t, "int", structErr.ActualKind)
	}
}

func TestMatchTreeTypedMaps(t *testing.T) {
	n, m := NewDim("n"), NewDim("m")
	spec := Node(map[string]TreeSpec{
		"w": Leaf(n, m),
		"b": Leaf(m),
	})
	value := map[string]Shape{
		"w": {3, 4},
		"b": {4},
	}
	store := NewStore()
	require.NoError(t, MatchTree(value, spec, store, "params"))
	require.Equal(t, map[string]int{"n": 3, "m": 4}, store.Values())
}

func TestMatchTreeSharedStoreAcrossArgs(t *testing.T) {
	// One store spanning a tree check and a plain check, like validating a
	// params structure together with the input it is applied to.
	n, m := NewDim("n"), NewDim("m")
	spec := Node(map[string]TreeSpec{"w": Leaf(n, m)})
	store := NewStore()
	require.NoError(t, MatchTree(map[string]any{"w": Shape{3, 4}}, spec, store, "params"))
	require.NoError(t, Match(Shape{3}, MakeSpec(n), store, "x"))

	err := Match(Shape{9}, MakeSpec(m), store, "y")
	var unifErr *UnificationError
	require.ErrorAs(t, err, &unifErr)
	require.Equal(t, 4, unifErr.BoundValue)
	require.Equal(t, 9, unifErr.NewValue)
}
