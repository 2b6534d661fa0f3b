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

// ShapeError is implemented by every diagnostic this package produces:
// *RankError, *DimensionError, *UnificationError, *StructureError and
// *BroadcastError. The taxonomy is closed and flat; every kind is fatal to
// the check that produced it.
//
// Diagnostics carry structured fields rather than only a formatted string,
// so callers can enrich and re-render them. Use AnnotateCall to attach the
// enclosing function and argument name after catching one.
type ShapeError interface {
	error
	shapeError()
}

// CallSite optionally identifies where a failed check was made. The core
// matchers leave it empty; call-boundary wrappers fill it in after the
// fact via AnnotateCall.
type CallSite struct {
	Function string
	Argument string
}

func (c *CallSite) shapeError() {}

func (c *CallSite) annotate(function, argument string) {
	if function != "" {
		c.Function = function
	}
	if argument != "" {
		c.Argument = argument
	}
}

// at renders the call-site prefix for error messages, or "" if unset.
func (c *CallSite) at() string {
	switch {
	case c.Function != "" && c.Argument != "":
		return fmt.Sprintf("%s: argument %q: ", c.Function, c.Argument)
	case c.Function != "":
		return c.Function + ": "
	case c.Argument != "":
		return fmt.Sprintf("argument %q: ", c.Argument)
	}
	return ""
}

type callAnnotated interface {
	annotate(function, argument string)
}

// AnnotateCall attaches the enclosing function and argument name to a
// diagnostic, in place, and returns it. Empty strings leave the
// corresponding field untouched. Non-diagnostic errors pass through
// unchanged, so it can be applied unconditionally:
//
//	if err := shapecheck.Match(shape, spec, store, "x"); err != nil {
//		return shapecheck.AnnotateCall(err, "Dense.Forward", "x")
//	}
func AnnotateCall(err error, function, argument string) error {
	if annotated, ok := err.(callAnnotated); ok {
		annotated.annotate(function, argument)
	}
	return err
}

// RankError reports a shape whose number of axes does not match the spec.
// When the spec contains an Ellipsis, Expected is the minimum required
// rank and AtLeast is set.
type RankError struct {
	CallSite
	Expected int
	AtLeast  bool
	Actual   int
	Spec     Spec
	Shape    Shape
	Bindings string // Store snapshot at the time of failure.
}

// Error implements the error interface.
func (e *RankError) Error() string {
	wanted := fmt.Sprintf("%d", e.Expected)
	if e.AtLeast {
		wanted = "at least " + wanted
	}
	return fmt.Sprintf("%srank mismatch: expected rank %s, got rank %d (spec=%s, shape=%s, bindings=%s)",
		e.at(), wanted, e.Actual, e.Spec, e.Shape, e.Bindings)
}

// DimensionError reports an axis whose size does not match a literal in
// the spec. Axis is the element's position in the original spec, before
// any Ellipsis split.
type DimensionError struct {
	CallSite
	Axis     int
	Expected int
	Actual   int
	Spec     Spec
	Shape    Shape
	Bindings string // Store snapshot at the time of failure.
}

// Error implements the error interface.
func (e *DimensionError) Error() string {
	return fmt.Sprintf("%sdim[%d] expected %d, got %d (spec=%s, shape=%s, bindings=%s)",
		e.at(), e.Axis, e.Expected, e.Actual, e.Spec, e.Shape, e.Bindings)
}

// UnificationError reports a symbolic dimension constrained to two
// different values within one episode.
type UnificationError struct {
	CallSite
	Dim         *Dim
	BoundValue  int
	BoundSource string
	NewValue    int
	NewSource   string
}

// Error implements the error interface.
func (e *UnificationError) Error() string {
	return fmt.Sprintf("%sdimension %q bound to %d from %s, but got %d from %s",
		e.at(), e.Dim.Name(), e.BoundValue, e.BoundSource, e.NewValue, e.NewSource)
}

// StructureError reports a value whose structure does not match a tree
// spec: either the wrong kind of value (ExpectedKind is "mapping" or
// "array"), or a mapping missing a key the spec requires.
type StructureError struct {
	CallSite
	ExpectedKind  string
	ActualKind    string
	MissingKey    string
	AvailableKeys []string // Sorted, set when the value is a mapping.
}

// Error implements the error interface.
func (e *StructureError) Error() string {
	if e.MissingKey != "" {
		return fmt.Sprintf("%smissing key %q (available keys: [%s])",
			e.at(), e.MissingKey, strings.Join(e.AvailableKeys, ", "))
	}
	return fmt.Sprintf("%sexpected %s, got %s", e.at(), e.ExpectedKind, e.ActualKind)
}

// BroadcastError reports shapes that are not broadcast-compatible. Axis is
// right-relative and negative (-1 is the last axis); Sizes lists the
// distinct conflicting non-1 sizes found at that axis, in order of first
// appearance; Shapes are the original shapes, before padding.
type BroadcastError struct {
	CallSite
	Shapes []Shape
	Axis   int
	Sizes  []int
}

// Error implements the error interface.
func (e *BroadcastError) Error() string {
	shapeParts := make([]string, len(e.Shapes))
	for ii, shape := range e.Shapes {
		shapeParts[ii] = shape.String()
	}
	sizeParts := make([]string, len(e.Sizes))
	for ii, size := range e.Sizes {
		sizeParts[ii] = fmt.Sprintf("%d", size)
	}
	return fmt.Sprintf("%scannot broadcast shapes %s: axis %d has sizes %s (must be equal or 1)",
		e.at(), strings.Join(shapeParts, ", "), e.Axis, strings.Join(sizeParts, ", "))
}
