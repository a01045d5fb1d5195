// Package subplots renders a declarative grid of subplot specifications
// onto a [surface.Figure].
//
// Rendering runs strictly top-down:
//
//   - [Render] validates the grid, sizes the canvas and creates one figure
//     cell per grid position, then renders the cells in row-major order.
//   - [RenderCell] renders one cell: it hides blank cells, stacks secondary
//     y-axes to the right of the primary one, merges their legend entries
//     into one legend and applies the shared x-axis settings.
//   - [RenderAxis] draws the series of one y-axis and applies its y-label,
//     y-limits, grid lines and legend.
//
// # Usage
//
//	grid := spec.Column(
//	    &spec.Cell{YAxes: []spec.Axis{{
//	        Series: []spec.Series{{Y: []float64{1, 2, 3}}},
//	    }}},
//	    nil, // blank
//	)
//	fig, axes, err := subplots.Render(ctx, grid, subplots.WithCellSize(6, 2))
//	if err != nil {
//	    return err
//	}
//	axes[0][0].SetTitle("speed")
//	err = fig.Save("speed.png")
//
// # Legends
//
// A single-axis cell draws its own legend unless the axis legend is
// configured with visible=false; a missing legend configuration means a
// legend at the best location. A cell with several axes draws exactly one
// legend, on its last secondary axis, holding the entries of the primary
// axis followed by those of every secondary axis. It follows the legend
// configuration of the primary axis; the legend configuration of secondary
// axes is ignored.
package subplots
