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

func TestBroadcastShapes(t *testing.T) {
	got, err := BroadcastShapes(Shape{3, 1}, Shape{1, 4})
	require.NoError(t, err)
	require.True(t, Shape{3, 4}.Equal(got))

	got, err = BroadcastShapes(Shape{8, 1, 6, 1}, Shape{7, 1, 5})
	require.NoError(t, err)
	require.True(t, Shape{8, 7, 6, 5}.Equal(got))

	got, err = BroadcastShapes(Shape{2, 3, 4}, Shape{4})
	require.NoError(t, err)
	require.True(t, Shape{2, 3, 4}.Equal(got))

	// Scalars broadcast with anything.
	got, err = BroadcastShapes(Shape{}, Shape{3, 4})
	require.NoError(t, err)
	require.True(t, Shape{3, 4}.Equal(got))

	// A single shape is its own result.
	got, err = BroadcastShapes(Shape{5, 2})
	require.NoError(t, err)
	require.True(t, Shape{5, 2}.Equal(got))

	_, err = BroadcastShapes()
	require.ErrorContains(t, err, "at least one shape")
}

func TestBroadcastIncompatible(t *testing.T) {
	_, err := BroadcastShapes(Shape{3, 4}, Shape{5, 4})
	require.Error(t, err)
	var bcErr *BroadcastError
	require.ErrorAs(t, err, &bcErr)
	require.Equal(t, -2, bcErr.Axis)
	require.Equal(t, []int{3, 5}, bcErr.Sizes)
	require.Len(t, bcErr.Shapes, 2)
	require.True(t, Shape{3, 4}.Equal(bcErr.Shapes[0]))
	require.True(t, Shape{5, 4}.Equal(bcErr.Shapes[1]))
	require.Contains(t, bcErr.Error(), "axis -2")
}

// broadcastFold applies the two-shape rule left-to-right, for comparing
// against the N-ary rule.
func broadcastFold(t *testing.T, shapes ...Shape) (Shape, error) {
	t.Helper()
	result := shapes[0]
	for _, shape := range shapes[1:] {
		folded, err := BroadcastShapes(result, shape)
		if err != nil {
			return nil, err
		}
		result = folded
	}
	return result, nil
}

func TestBroadcastPairwiseFoldAgrees(t *testing.T) {
	cases := [][]Shape{
		{{3, 1}, {1, 4}, {3, 4}},
		{{8, 1, 6, 1}, {7, 1, 5}, {1}},
		{{2, 1}, {1, 3}, {2, 3}, {1, 1}},
		{{5}, {1, 5}, {4, 1}},
		{{}, {2, 2}, {2, 1, 1}},
		{{3, 4}, {5, 4}, {1, 4}}, // incompatible
		{{2}, {3}, {4}},          // incompatible
		{{1, 2}, {2, 1}, {2, 3}}, // incompatible at the last axis
	}
	for _, shapes := range cases {
		nary, naryErr := BroadcastShapes(shapes...)
		folded, foldErr := broadcastFold(t, shapes...)
		if naryErr != nil {
			require.Error(t, foldErr, "fold must also fail for %v", shapes)
			continue
		}
		require.NoError(t, foldErr, "fold must also succeed for %v", shapes)
		require.True(t, nary.Equal(folded), "N-ary %s != folded %s for %v", nary, folded, shapes)
	}
}

func TestMustBroadcast(t *testing.T) {
	require.True(t, Shape{3, 4}.Equal(MustBroadcast(Shape{3, 1}, Shape{1, 4})))
	require.Panics(t, func() { MustBroadcast(Shape{3}, Shape{4}) })
}

func TestExplainBroadcast(t *testing.T) {
	require.Equal(t, "No shapes provided", ExplainBroadcast())
	require.Equal(t, "Single shape (3, 4), no broadcasting needed", ExplainBroadcast(Shape{3, 4}))

	explained := ExplainBroadcast(Shape{3, 1, 4}, Shape{5, 4})
	require.Contains(t, explained, "Broadcasting (3, 1, 4) with (5, 4):")
	require.Contains(t, explained, "align shapes from the right")
	require.Contains(t, explained, "axis -3: 1 → 3 (broadcast)")
	require.Contains(t, explained, "axis -2: 1 → 5 (broadcast)")
	require.Contains(t, explained, "axis -1: 4 = 4 (match)")
	require.Contains(t, explained, "Result: (3, 5, 4)")

	failed := ExplainBroadcast(Shape{3, 4}, Shape{5, 4})
	require.Contains(t, failed, "axis -2: 3, 5 (INCOMPATIBLE)")
	require.Contains(t, failed, "Error: shapes are not broadcast-compatible")
	require.NotContains(t, failed, "Result:")

	allOnes := ExplainBroadcast(Shape{1, 1}, Shape{1})
	require.Contains(t, allOnes, "axis -1: 1 = 1 (match)")
	require.Contains(t, allOnes, "Result: (1, 1)")
}
