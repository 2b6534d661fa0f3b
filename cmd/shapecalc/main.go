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

// shapecalc broadcasts shapes given on the command line and explains how.
//
// Each argument is one shape as comma-separated axis sizes; "()" or an
// empty argument is a scalar. Example:
//
//	$ shapecalc 8,1,6,1 7,1,5
//
// prints the aligned axes table and the result (8, 7, 6, 5). With
// incompatible shapes it prints the diagnostic and exits non-zero.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/gomlx/shapecheck"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

var flagPlain = flag.Bool("plain", false,
	"Print the plain text explanation (shapecheck.ExplainBroadcast) instead of the axes table.")

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		klog.Errorf("Missing shapes to broadcast. Usage: shapecalc <shape> [<shape>...], e.g. shapecalc 3,1 1,4")
		os.Exit(1)
	}
	shapes := make([]shapecheck.Shape, len(args))
	for ii, arg := range args {
		shapes[ii] = parseShape(arg)
	}

	if *flagPlain {
		fmt.Println(shapecheck.ExplainBroadcast(shapes...))
		if _, err := shapecheck.BroadcastShapes(shapes...); err != nil {
			os.Exit(1)
		}
		return
	}
	report(shapes)
}

// parseShape converts "8,1,6" to a Shape. "()" and "" parse as a scalar.
func parseShape(arg string) shapecheck.Shape {
	trimmed := strings.Trim(arg, "()")
	if trimmed == "" {
		return shapecheck.Shape{}
	}
	parts := strings.Split(trimmed, ",")
	shape := make(shapecheck.Shape, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		dim := must.M1(strconv.Atoi(part))
		if dim < 0 {
			klog.Errorf("Axis sizes must be non-negative, got %d in shape %q.", dim, arg)
			os.Exit(1)
		}
		shape = append(shape, dim)
	}
	return shape
}

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)

	cellStyle = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1).
			Align(lipgloss.Right)

	conflictStyle = cellStyle.Foreground(lipgloss.Color("9")) // red

	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 0, 4)
)

// report prints one row per input shape plus a result row, one column per
// right-aligned axis. On failure the conflicting column is highlighted
// and the diagnostic printed below the table.
func report(shapes []shapecheck.Shape) {
	result, err := shapecheck.BroadcastShapes(shapes...)

	maxRank := 0
	for _, shape := range shapes {
		maxRank = max(maxRank, shape.Rank())
	}
	conflictCol := -1
	if bcErr, ok := err.(*shapecheck.BroadcastError); ok {
		conflictCol = maxRank + bcErr.Axis
	}

	fmt.Println(titleStyle.Render("Broadcast"))
	table := lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == 1 {
				return headerRowStyle
			}
			if col-1 == conflictCol {
				return conflictStyle
			}
			return cellStyle
		})

	header := make([]string, maxRank+1)
	header[0] = "shape"
	for axis := 0; axis < maxRank; axis++ {
		header[axis+1] = fmt.Sprintf("axis %d", axis-maxRank)
	}
	table.Row(header...)

	for _, shape := range shapes {
		row := make([]string, maxRank+1)
		row[0] = shape.String()
		pad := maxRank - shape.Rank()
		for axis := 0; axis < maxRank; axis++ {
			if axis < pad {
				row[axis+1] = "·"
			} else {
				row[axis+1] = strconv.Itoa(shape[axis-pad])
			}
		}
		table.Row(row...)
	}
	if err == nil {
		row := make([]string, maxRank+1)
		row[0] = "result"
		for axis, dim := range result {
			row[axis+1] = strconv.Itoa(dim)
		}
		table.Row(row...)
	}
	fmt.Println(table.Render())

	if err != nil {
		fmt.Println(conflictStyle.Render(err.Error()))
		os.Exit(1)
	}
	fmt.Printf("Result: %s\n", result)
}
