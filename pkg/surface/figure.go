package surface

import (
	"image/color"
	"maps"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/plotspec/pkg/errors"
	"github.com/matzehuels/plotspec/pkg/spec"
)

// Layout selects how cells share the figure canvas.
type Layout string

const (
	// LayoutConstrained aligns the data areas of all cells.
	LayoutConstrained Layout = "constrained"
	// LayoutTight splits the canvas into equal tiles with a small padding.
	LayoutTight Layout = "tight"
	// LayoutNone splits the canvas into equal tiles without padding.
	LayoutNone Layout = "none"
)

// ParseLayout parses a layout mode name. The empty string selects
// LayoutConstrained.
func ParseLayout(s string) (Layout, error) {
	switch l := Layout(strings.ToLower(strings.TrimSpace(s))); l {
	case "":
		return LayoutConstrained, nil
	case LayoutConstrained, LayoutTight, LayoutNone:
		return l, nil
	}
	return "", errors.New(errors.ErrCodeInvalidLayoutMode,
		"unknown layout %q (use constrained, tight or none)", s)
}

// Figure defaults.
const (
	DefaultWidth  = 8 * vg.Inch
	DefaultHeight = 6 * vg.Inch
	DefaultDPI    = 100
)

const (
	tightPadding       = 4 // points
	constrainedPadding = 6 // points
	titleSize          = 14
)

// Figure is a grid of axes sharing one canvas.
type Figure struct {
	rows, cols    int
	width, height vg.Length
	dpi           int
	layout        Layout
	options       spec.Options
	title         string
	background    color.Color
	methods       map[spec.Kind]Method
	axes          [][]*Axes
}

// Option configures a Figure.
type Option func(*Figure)

// WithSize sets the canvas size.
func WithSize(w, h vg.Length) Option { return func(f *Figure) { f.width, f.height = w, h } }

// WithDPI sets the resolution of raster exports.
func WithDPI(dpi int) Option { return func(f *Figure) { f.dpi = dpi } }

// WithLayout sets the layout mode.
func WithLayout(l Layout) Option { return func(f *Figure) { f.layout = l } }

// WithOptions sets figure options: "title" (a figure title above all
// cells) and "background" or "facecolor" (the canvas color).
func WithOptions(o spec.Options) Option { return func(f *Figure) { f.options = o } }

// WithMethod adds or replaces the drawing method for a series kind.
// A nil method removes the kind.
func WithMethod(kind spec.Kind, m Method) Option {
	return func(f *Figure) {
		if m == nil {
			delete(f.methods, kind)
			return
		}
		f.methods[kind] = m
	}
}

// NewFigure creates a figure with rows × cols primary axes.
func NewFigure(rows, cols int, opts ...Option) (*Figure, error) {
	if rows < 1 || cols < 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "figure needs at least one row and column, got %dx%d", rows, cols)
	}
	f := &Figure{
		rows:       rows,
		cols:       cols,
		width:      DefaultWidth,
		height:     DefaultHeight,
		dpi:        DefaultDPI,
		layout:     LayoutConstrained,
		background: color.White,
		methods:    maps.Clone(builtinMethods),
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.width <= 0 || f.height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "figure size must be positive, got %vx%v", f.width, f.height)
	}
	if f.dpi <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dpi must be positive, got %d", f.dpi)
	}
	layout, err := ParseLayout(string(f.layout))
	if err != nil {
		return nil, err
	}
	f.layout = layout
	if err := f.applyOptions(); err != nil {
		return nil, err
	}

	f.axes = make([][]*Axes, rows)
	for r := range f.axes {
		f.axes[r] = make([]*Axes, cols)
		for c := range f.axes[r] {
			f.axes[r][c] = newAxes(f)
		}
	}
	return f, nil
}

func (f *Figure) applyOptions() error {
	for _, key := range f.options.Keys() {
		v := f.options[key]
		switch key {
		case "title":
			s, ok := v.(string)
			if !ok {
				return errors.New(errors.ErrCodeInvalidStyle, "figure title must be a string, got %v", v)
			}
			f.title = s
		case "background", "facecolor":
			c, err := ParseColor(v)
			if err != nil {
				return errors.Within(err, "figure %s", key)
			}
			f.background = c
		default:
			return errors.New(errors.ErrCodeInvalidStyle, "unknown figure option %q", key)
		}
	}
	return nil
}

// Axes returns the primary axes at (row, col), or nil when out of range.
func (f *Figure) Axes(row, col int) *Axes {
	if row < 0 || row >= f.rows || col < 0 || col >= f.cols {
		return nil
	}
	return f.axes[row][col]
}

// Grid returns the primary axes in row-major order.
func (f *Figure) Grid() [][]*Axes {
	out := make([][]*Axes, f.rows)
	for r := range out {
		out[r] = append([]*Axes(nil), f.axes[r]...)
	}
	return out
}

// Shape returns the number of rows and columns.
func (f *Figure) Shape() (rows, cols int) { return f.rows, f.cols }

// Size returns the canvas size.
func (f *Figure) Size() (w, h vg.Length) { return f.width, f.height }

// DPI returns the resolution of raster exports.
func (f *Figure) DPI() int { return f.dpi }

// Layout returns the layout mode.
func (f *Figure) Layout() Layout { return f.layout }

// Title returns the figure title.
func (f *Figure) Title() string { return f.title }

// Draw draws the figure onto c.
func (f *Figure) Draw(c draw.Canvas) {
	if f.background != nil {
		c.SetColor(f.background)
		c.Fill(c.Rectangle.Path())
	}
	if f.title != "" {
		sty := text.Style{
			Color:   color.Black,
			Font:    font.From(plot.DefaultFont, titleSize),
			XAlign:  draw.XCenter,
			YAlign:  draw.YTop,
			Handler: plot.DefaultTextHandler,
		}
		c.FillText(sty, vg.Point{X: c.Center().X, Y: c.Max.Y}, f.title)
		c.Max.Y -= sty.Height(f.title) + vg.Points(constrainedPadding)
	}

	for _, row := range f.axes {
		for _, a := range row {
			if !a.hidden {
				a.finalize()
			}
		}
	}

	cells := f.cells(c)
	for r, row := range f.axes {
		for col, a := range row {
			if !a.hidden {
				a.draw(cells[r][col])
			}
		}
	}
}

// cells splits c into one canvas per axes according to the layout, then
// narrows every column so the twin axes of its cells fit.
func (f *Figure) cells(c draw.Canvas) [][]draw.Canvas {
	tiles := draw.Tiles{Rows: f.rows, Cols: f.cols}
	var cells [][]draw.Canvas

	switch f.layout {
	case LayoutConstrained:
		pad := vg.Points(constrainedPadding)
		tiles.PadTop, tiles.PadBottom, tiles.PadLeft, tiles.PadRight = pad, pad, pad, pad
		tiles.PadX, tiles.PadY = 2*pad, 2*pad
		plots := make([][]*plot.Plot, f.rows)
		for r, row := range f.axes {
			plots[r] = make([]*plot.Plot, f.cols)
			for col, a := range row {
				if !a.hidden {
					plots[r][col] = a.plot
				}
			}
		}
		cells = plot.Align(plots, tiles, c)
	default:
		if f.layout == LayoutTight {
			pad := vg.Points(tightPadding)
			tiles.PadTop, tiles.PadBottom, tiles.PadLeft, tiles.PadRight = pad, pad, pad, pad
			tiles.PadX, tiles.PadY = pad, pad
		}
		cells = make([][]draw.Canvas, f.rows)
		for r := range cells {
			cells[r] = make([]draw.Canvas, f.cols)
			for col := range cells[r] {
				cells[r][col] = tiles.At(c, col, r)
			}
		}
	}

	for col := 0; col < f.cols; col++ {
		var reserve vg.Length
		for r := 0; r < f.rows; r++ {
			if a := f.axes[r][col]; !a.hidden {
				reserve = max(reserve, a.rightReserve(cells[r][col]))
			}
		}
		for r := 0; r < f.rows; r++ {
			cells[r][col].Max.X -= reserve
		}
	}
	return cells
}
