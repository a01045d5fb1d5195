// Package surface is the drawing surface plotspec renders onto: a figure
// holding a grid of axes, built on gonum.org/v1/plot.
//
// # Figures and Axes
//
// [NewFigure] creates rows × cols primary [Axes]. Each axes draws series,
// labels, limits, grid lines and a legend. [Axes.TwinX] adds secondary
// y-axes that share the x-axis of their primary and draw their own y-axis
// to the right of the data area, at a configurable spine offset.
//
// # Series Kinds
//
// Series are drawn through a per-figure method table keyed by [spec.Kind].
// The built-in kinds are curve, scatter, step, fill and linepoints.
// [WithMethod] registers more:
//
//	fig, err := surface.NewFigure(1, 1, surface.WithMethod("bar", surface.Bars))
//
// Calling a kind that has no method fails with
// errors.ErrCodeUnsupportedKind.
//
// # Style Options
//
// Series style options follow matplotlib's keyword names; see [Style] and
// [ParseColor] for the accepted keys and values.
//
// # Export
//
// [Figure.WriterTo] and [Figure.Save] encode the figure as png, jpg, tif
// (at the figure DPI), svg, pdf or eps.
package surface
