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

func TestMakeSpecValidation(t *testing.T) {
	n := NewDim("n")

	// One Ellipsis anywhere is fine.
	require.NotPanics(t, func() { MakeSpec(Ellipsis, n) })
	require.NotPanics(t, func() { MakeSpec(n, Ellipsis, Lit(3)) })
	require.NotPanics(t, func() { MakeSpec(Ellipsis) })

	// More than one is rejected at construction, not at match time.
	require.Panics(t, func() { MakeSpec(Ellipsis, n, Ellipsis) })
	require.Panics(t, func() { MakeSpec(Lit(-1)) })

	_, err := NewSpec(Ellipsis, Ellipsis)
	require.ErrorContains(t, err, "more than one Ellipsis")
	_, err = NewSpec(Lit(-2))
	require.ErrorContains(t, err, "negative literal")
}

func TestSpecNilNormalizesToAny(t *testing.T) {
	spec := MakeSpec(Lit(3), nil, Lit(4))
	require.Equal(t, Any, spec[1])
	require.NoError(t, Match(Shape{3, 999, 4}, spec, NewStore(), "x"))
}

func TestSpecString(t *testing.T) {
	n := NewDim("n")
	require.Equal(t, "(n, ..., 3, *)", MakeSpec(n, Ellipsis, Lit(3), Any).String())
	require.Equal(t, "()", MakeSpec().String())
}

func TestSpecMinRank(t *testing.T) {
	n, m := NewDim("n"), NewDim("m")
	require.Equal(t, 2, MakeSpec(n, m).MinRank())
	require.Equal(t, 2, MakeSpec(Ellipsis, n, m).MinRank())
	require.Equal(t, 0, MakeSpec(Ellipsis).MinRank())
	require.False(t, MakeSpec(n, m).HasEllipsis())
	require.True(t, MakeSpec(Ellipsis, n).HasEllipsis())
}

func TestShapeBasics(t *testing.T) {
	scalar := Shape{}
	require.True(t, scalar.IsScalar())
	require.Equal(t, 0, scalar.Rank())
	require.Equal(t, 1, scalar.Size())
	require.Equal(t, "()", scalar.String())

	shape := Shape{4, 3, 2}
	require.Equal(t, 3, shape.Rank())
	require.Equal(t, 24, shape.Size())
	require.Equal(t, "(4, 3, 2)", shape.String())
	require.Equal(t, 4, shape.Dim(0))
	require.Equal(t, 2, shape.Dim(-1))
	require.Panics(t, func() { shape.Dim(3) })
	require.Panics(t, func() { shape.Dim(-4) })

	clone := shape.Clone()
	require.True(t, shape.Equal(clone))
	clone[0] = 9
	require.False(t, shape.Equal(clone))

	// Shape implements HasShape itself.
	var shaped HasShape = shape
	require.True(t, shape.Equal(shaped.Shape()))
}
