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

// Package mldims provides pre-defined dimensions and shape-spec helpers
// for common ML patterns.
//
// The package-level dims are shared objects: using mldims.D in two specs
// means "the same embedding size in both places". Construct your own Dims
// with shapecheck.NewDim when two axes merely happen to share a letter.
package mldims

import (
	"github.com/gomlx/shapecheck"
	"github.com/pkg/errors"
)

// Pre-defined dimensions for common axes.
var (
	// B is the batch axis.
	B = shapecheck.NewBatch("B")

	// T is the sequence (time) axis.
	T = shapecheck.NewDim("T")

	// C is the channels axis.
	C = shapecheck.NewDim("C")

	// H is the image height axis.
	H = shapecheck.NewDim("H")

	// W is the image width axis.
	W = shapecheck.NewDim("W")

	// D is the feature (embedding) axis.
	D = shapecheck.NewDim("D")
)

// AttentionSpecs returns the shape specs for multi-head attention Q, K
// and V tensors, keyed "q", "k" and "v". Each parameter may be a *Dim, a
// shapecheck.Lit, or shapecheck.Any.
//
// Q is (batch, heads, seqQ, dK); K and V are (batch, heads, seqK, dK).
func AttentionSpecs(batch, heads, seqQ, seqK, dK shapecheck.SpecElem) map[string]shapecheck.Spec {
	return map[string]shapecheck.Spec{
		"q": shapecheck.MakeSpec(batch, heads, seqQ, dK),
		"k": shapecheck.MakeSpec(batch, heads, seqK, dK),
		"v": shapecheck.MakeSpec(batch, heads, seqK, dK),
	}
}

// AttentionTreeSpec is AttentionSpecs packaged as a TreeSpec, for checking
// a {"q": ..., "k": ..., "v": ...} structure in one call.
func AttentionTreeSpec(batch, heads, seqQ, seqK, dK shapecheck.SpecElem) shapecheck.TreeSpec {
	specs := AttentionSpecs(batch, heads, seqQ, seqK, dK)
	children := make(map[string]shapecheck.TreeSpec, len(specs))
	for key, spec := range specs {
		children[key] = shapecheck.LeafSpec(spec)
	}
	return shapecheck.Node(children)
}

// ConvOutputShape computes the output shape of a convolution over input,
// which must be (batch, channels, *spatial) with at least one spatial
// axis. Each spatial axis i becomes
//
//	floor((spatial[i] + 2*padding[i] - kernel[i]) / stride[i]) + 1
//
// kernel, stride and padding may each have one element (applied to every
// spatial axis) or one element per spatial axis. It returns an error for
// mismatched parameter lengths or a non-positive output size.
func ConvOutputShape(input shapecheck.Shape, kernel, stride, padding []int) (shapecheck.Shape, error) {
	if input.Rank() < 3 {
		return nil, errors.Errorf("input must have at least 3 axes (batch, channels, *spatial), got rank %d", input.Rank())
	}
	spatial := input[2:]
	numSpatial := len(spatial)
	kernelT, err := perAxis("kernel", kernel, numSpatial)
	if err != nil {
		return nil, err
	}
	strideT, err := perAxis("stride", stride, numSpatial)
	if err != nil {
		return nil, err
	}
	paddingT, err := perAxis("padding", padding, numSpatial)
	if err != nil {
		return nil, err
	}

	output := make(shapecheck.Shape, 0, input.Rank())
	output = append(output, input[0], input[1])
	for ii := 0; ii < numSpatial; ii++ {
		span := spatial[ii] + 2*paddingT[ii] - kernelT[ii]
		size := 0
		if span >= 0 {
			size = span/strideT[ii] + 1
		}
		if size <= 0 {
			return nil, errors.Errorf(
				"non-positive output size %d at spatial axis %d: input=%d, kernel=%d, stride=%d, padding=%d",
				size, ii, spatial[ii], kernelT[ii], strideT[ii], paddingT[ii])
		}
		output = append(output, size)
	}
	return output, nil
}

// perAxis broadcasts a single value to n spatial axes, or validates that
// exactly n values were given.
func perAxis(name string, values []int, n int) ([]int, error) {
	if len(values) == 1 {
		broadcasted := make([]int, n)
		for ii := range broadcasted {
			broadcasted[ii] = values[0]
		}
		return broadcasted, nil
	}
	if len(values) != n {
		return nil, errors.Errorf("%s has length %d, expected 1 or %d (number of spatial axes)", name, len(values), n)
	}
	return values, nil
}
