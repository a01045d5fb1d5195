package spec

// Grid is a rectangular arrangement of cells in row-major order.
// A nil *Cell is a blank position.
type Grid [][]*Cell

// Column arranges cells as a single column, one cell per row.
// This is how a flat list of cells is interpreted.
func Column(cells ...*Cell) Grid {
	g := make(Grid, len(cells))
	for i, c := range cells {
		g[i] = []*Cell{c}
	}
	return g
}

// Row arranges cells as a single row.
func Row(cells ...*Cell) Grid {
	return Grid{append([]*Cell(nil), cells...)}
}

// Shape returns the number of rows and the number of columns of the first
// row. Use Validate to check that the grid is rectangular.
func (g Grid) Shape() (rows, cols int) {
	if len(g) == 0 {
		return 0, 0
	}
	return len(g), len(g[0])
}

// Size returns the total number of positions in the grid.
func (g Grid) Size() int {
	n := 0
	for _, row := range g {
		n += len(row)
	}
	return n
}

// Cell is one subplot of the grid.
type Cell struct {
	// YAxes lists the y-axes of the subplot. The first entry is the primary
	// axis; later entries become secondary axes on the right.
	YAxes []Axis

	// XLim, XLabel and Title apply to the shared x-axis of the primary axis.
	XLim   *Limits
	XLabel string
	Title  string
}

// Blank reports whether the cell renders nothing.
// Both a nil cell and a zero-valued cell are blank.
func (c *Cell) Blank() bool {
	return c == nil || (len(c.YAxes) == 0 && c.XLim == nil && c.XLabel == "" && c.Title == "")
}

// Axis is one y-axis within a cell.
type Axis struct {
	Series []Series
	YLabel string
	YLim   *Limits
	Grid   *GridLines

	// Legend configures the legend of this axis. For cells with several
	// axes only the primary axis' legend is honored, and it controls the
	// consolidated legend.
	Legend *Legend
}

// Series is one drawn data series.
type Series struct {
	// Kind names the drawing method. The zero value draws a curve.
	Kind Kind

	// X is optional; when empty, points are placed at 0, 1, 2, ...
	X []float64
	Y []float64

	// Style is passed to the drawing surface unchanged.
	Style Options
}

// Legend configures whether and where a legend is drawn.
type Legend struct {
	Visible  bool
	Location Location
}

// GridAxis selects which grid lines are drawn.
type GridAxis string

const (
	GridBoth GridAxis = "both"
	GridX    GridAxis = "x"
	GridY    GridAxis = "y"
)

// GridLines configures grid lines on an axis.
type GridLines struct {
	Visible bool
	Axis    GridAxis
	Style   Options
}

// Document is a figure as read from a file: the grid plus figure settings.
type Document struct {
	Grid   Grid
	Figure Figure
}

// Figure holds figure-level settings from a document. Zero values mean
// "use the renderer default".
type Figure struct {
	// Width and Height are per-cell sizes in inches.
	Width, Height float64

	// AxisInterval is the spine spacing between stacked secondary axes,
	// in fractions of the data area width.
	AxisInterval float64

	DPI    int
	Layout string

	// Options are pass-through figure options such as "title" or
	// "background".
	Options Options
}
