// Package spec defines the declarative figure model rendered by package
// subplots.
//
// A figure is a rectangular [Grid] of [Cell] values. A nil cell is blank and
// renders as an empty, hidden region. A non-blank cell holds one or more
// [Axis] values: the first is the primary (left) y-axis, the rest are
// secondary y-axes stacked on the right and sharing the primary's x-axis.
// Each axis draws an ordered list of [Series].
//
// # Documents
//
// Figures are usually written as JSON, YAML or TOML documents and read with
// [Load] or [Decode]:
//
//	grid:
//	  - yaxes:
//	      - lines:
//	          - {type: curve, y: [1, 2, 3], spec: {label: speed}}
//	        ylabel: speed
//	        legend: {visible: true, loc: upper left}
//	      - lines:
//	          - {type: scatter, x: [0, 1, 2], y: [3, 1, 2], spec: {label: load}}
//	    xlim: [0, 2]
//	    xlabel: time
//	  - {}
//	figure:
//	  width: 8
//	  height: 2
//
// A flat list of cells is a single column. Nested lists are rows of cells.
// Deeper nesting is rejected with errors.ErrCodeDimensionality.
//
// Limits accept two forms: a [low, high] pair or
// a mapping with named bounds ({left: 0, right: 10}, {bottom: -1},
// {low: 0, high: 1}). A named form may omit either bound, which then keeps
// its automatic value.
package spec
