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

	"github.com/pkg/errors"
)

// BroadcastShapes computes the NumPy-style broadcast result of the given
// shapes. Shapes are aligned from the right, shorter shapes padded on the
// left with size-1 axes; at each axis, all non-1 sizes must agree and the
// result takes that size (or 1 if every input has 1 there).
//
// It requires at least one shape. On incompatibility it returns a
// *BroadcastError naming the axis (right-relative, negative) and the
// conflicting sizes.
//
// The rule is evaluated over all shapes at once, but it agrees with a
// pairwise left-to-right fold: same result on success, same
// success/failure classification otherwise.
func BroadcastShapes(shapes ...Shape) (Shape, error) {
	if len(shapes) == 0 {
		return nil, errors.Errorf("BroadcastShapes requires at least one shape")
	}
	maxRank := 0
	for _, shape := range shapes {
		maxRank = max(maxRank, shape.Rank())
	}
	result := make(Shape, maxRank)
	for axis := 0; axis < maxRank; axis++ {
		sizes := axisSizes(shapes, axis-maxRank)
		distinct := distinctNonOne(sizes)
		switch len(distinct) {
		case 0:
			result[axis] = 1
		case 1:
			result[axis] = distinct[0]
		default:
			originals := make([]Shape, len(shapes))
			for ii, shape := range shapes {
				originals[ii] = shape.Clone()
			}
			return nil, &BroadcastError{
				Shapes: originals,
				Axis:   axis - maxRank,
				Sizes:  distinct,
			}
		}
	}
	return result, nil
}

// axisSizes returns the size each shape contributes at a right-relative
// axis (negative, -1 is the last), treating missing leading axes as 1.
func axisSizes(shapes []Shape, axis int) []int {
	sizes := make([]int, len(shapes))
	for ii, shape := range shapes {
		pos := shape.Rank() + axis
		if pos < 0 {
			sizes[ii] = 1
		} else {
			sizes[ii] = shape[pos]
		}
	}
	return sizes
}

// distinctNonOne returns the distinct sizes other than 1, in order of
// first appearance.
func distinctNonOne(sizes []int) []int {
	var distinct []int
	for _, size := range sizes {
		if size == 1 {
			continue
		}
		seen := false
		for _, have := range distinct {
			if have == size {
				seen = true
				break
			}
		}
		if !seen {
			distinct = append(distinct, size)
		}
	}
	return distinct
}

// ExplainBroadcast renders a step-by-step, human-readable account of
// broadcasting the given shapes: the right-aligned inputs, a per-axis
// verdict (match, broadcast or incompatible) and the result or failure.
// It is purely informational and never fails; use BroadcastShapes for the
// pass/fail answer.
func ExplainBroadcast(shapes ...Shape) string {
	if len(shapes) == 0 {
		return "No shapes provided"
	}
	if len(shapes) == 1 {
		return fmt.Sprintf("Single shape %s, no broadcasting needed", shapes[0])
	}

	var sb strings.Builder
	shapeStrs := make([]string, len(shapes))
	width := 0
	for ii, shape := range shapes {
		shapeStrs[ii] = shape.String()
		width = max(width, len(shapeStrs[ii]))
	}
	fmt.Fprintf(&sb, "Broadcasting %s:\n", strings.Join(shapeStrs, " with "))

	sb.WriteString("  Step 1: align shapes from the right\n")
	for _, str := range shapeStrs {
		fmt.Fprintf(&sb, "    %*s\n", width, str)
	}

	maxRank := 0
	for _, shape := range shapes {
		maxRank = max(maxRank, shape.Rank())
	}
	sb.WriteString("  Step 2: compare axes\n")
	result := make(Shape, maxRank)
	failed := false
	for axis := 0; axis < maxRank; axis++ {
		relative := axis - maxRank
		sizes := axisSizes(shapes, relative)
		distinct := distinctNonOne(sizes)
		switch len(distinct) {
		case 0:
			result[axis] = 1
			fmt.Fprintf(&sb, "    axis %d: 1 = 1 (match)\n", relative)
		case 1:
			result[axis] = distinct[0]
			if countNonOne(sizes) < len(sizes) {
				// Some input had a 1 stretched to the result size.
				fmt.Fprintf(&sb, "    axis %d: 1 → %d (broadcast)\n", relative, distinct[0])
			} else {
				fmt.Fprintf(&sb, "    axis %d: %d = %d (match)\n", relative, distinct[0], distinct[0])
			}
		default:
			failed = true
			sizeParts := make([]string, len(sizes))
			for ii, size := range sizes {
				sizeParts[ii] = fmt.Sprintf("%d", size)
			}
			fmt.Fprintf(&sb, "    axis %d: %s (INCOMPATIBLE)\n", relative, strings.Join(sizeParts, ", "))
		}
	}

	if failed {
		sb.WriteString("  Error: shapes are not broadcast-compatible")
	} else {
		fmt.Fprintf(&sb, "  Result: %s", result)
	}
	return sb.String()
}

// countNonOne returns how many of the sizes differ from 1.
func countNonOne(sizes []int) int {
	count := 0
	for _, size := range sizes {
		if size != 1 {
			count++
		}
	}
	return count
}
