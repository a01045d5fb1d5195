package subplots

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/plotspec/pkg/errors"
	"github.com/matzehuels/plotspec/pkg/observability"
	"github.com/matzehuels/plotspec/pkg/spec"
	"github.com/matzehuels/plotspec/pkg/surface"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultCellWidth is the width of one grid cell in inches.
	DefaultCellWidth = 8.0

	// DefaultCellHeight is the height of one grid cell in inches.
	DefaultCellHeight = 2.0

	// DefaultAxisInterval is the spine spacing between stacked secondary
	// y-axes, in fractions of the data area width.
	DefaultAxisInterval = 0.2

	// DefaultDPI is the resolution of raster exports.
	DefaultDPI = 300

	// DefaultLayout is the layout mode of the figure.
	DefaultLayout = surface.LayoutConstrained
)

// =============================================================================
// Options
// =============================================================================

type config struct {
	cellWidth    float64
	cellHeight   float64
	axisInterval float64
	dpi          int
	layout       surface.Layout
	extra        spec.Options
	logger       *log.Logger
	kinds        []kindMethod
}

type kindMethod struct {
	kind   spec.Kind
	method surface.Method
}

// Option configures Render.
type Option func(*config)

// WithCellSize sets the size of one grid cell in inches, before the
// single-row and single-column doubling.
func WithCellSize(width, height float64) Option {
	return func(c *config) { c.cellWidth, c.cellHeight = width, height }
}

// WithAxisInterval sets the spine spacing between stacked secondary y-axes.
func WithAxisInterval(v float64) Option {
	return func(c *config) { c.axisInterval = v }
}

// WithDPI sets the resolution of raster exports.
func WithDPI(dpi int) Option {
	return func(c *config) { c.dpi = dpi }
}

// WithLayout sets the layout mode.
func WithLayout(l surface.Layout) Option {
	return func(c *config) { c.layout = l }
}

// WithExtra passes figure options such as "title" or "background" to the
// drawing surface.
func WithExtra(o spec.Options) Option {
	return func(c *config) { c.extra = o }
}

// WithLogger sets the logger that receives per-cell debug messages.
func WithLogger(l *log.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithSeriesKind makes a custom series kind available to the grid.
func WithSeriesKind(kind spec.Kind, m surface.Method) Option {
	return func(c *config) { c.kinds = append(c.kinds, kindMethod{kind, m}) }
}

// FromFigure returns the options described by the figure settings of a
// document. Zero values are skipped so the defaults stay in effect.
func FromFigure(f spec.Figure) []Option {
	var opts []Option
	if f.Width != 0 || f.Height != 0 {
		w, h := f.Width, f.Height
		opts = append(opts, func(c *config) {
			if w != 0 {
				c.cellWidth = w
			}
			if h != 0 {
				c.cellHeight = h
			}
		})
	}
	if f.AxisInterval != 0 {
		opts = append(opts, WithAxisInterval(f.AxisInterval))
	}
	if f.DPI != 0 {
		opts = append(opts, WithDPI(f.DPI))
	}
	if f.Layout != "" {
		opts = append(opts, WithLayout(surface.Layout(f.Layout)))
	}
	if len(f.Options) > 0 {
		opts = append(opts, WithExtra(f.Options))
	}
	return opts
}

func newConfig(opts []Option) (*config, error) {
	c := &config{
		cellWidth:    DefaultCellWidth,
		cellHeight:   DefaultCellHeight,
		axisInterval: DefaultAxisInterval,
		dpi:          DefaultDPI,
		layout:       DefaultLayout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := errors.ValidatePositive("cell width", c.cellWidth); err != nil {
		return nil, err
	}
	if err := errors.ValidatePositive("cell height", c.cellHeight); err != nil {
		return nil, err
	}
	if math.IsNaN(c.axisInterval) || math.IsInf(c.axisInterval, 0) || c.axisInterval < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "axis interval must be a non-negative number, got %v", c.axisInterval)
	}
	if c.dpi <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dpi must be positive, got %d", c.dpi)
	}
	return c, nil
}

// =============================================================================
// Grid Builder
// =============================================================================

// Render draws grid onto a new figure and returns the figure together with
// the primary axes of every cell, in the shape of the grid. The grid is
// validated before anything is drawn; on error no figure is returned.
//
// A grid with a single row doubles the cell height, a grid with a single
// column doubles the cell width. The canvas is the cell size times the
// number of columns and rows.
func Render(ctx context.Context, grid spec.Grid, opts ...Option) (fig *surface.Figure, axes [][]*surface.Axes, err error) {
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, nil, err
	}
	if err := spec.Validate(grid); err != nil {
		return nil, nil, err
	}

	rows, cols := grid.Shape()
	w, h := cfg.cellWidth, cfg.cellHeight
	if rows == 1 {
		h *= 2
	}
	if cols == 1 {
		w *= 2
	}

	figOpts := []surface.Option{
		surface.WithSize(vg.Length(w*float64(cols))*vg.Inch, vg.Length(h*float64(rows))*vg.Inch),
		surface.WithDPI(cfg.dpi),
		surface.WithLayout(cfg.layout),
		surface.WithOptions(cfg.extra),
	}
	for _, k := range cfg.kinds {
		figOpts = append(figOpts, surface.WithMethod(k.kind, k.method))
	}
	fig, err = surface.NewFigure(rows, cols, figOpts...)
	if err != nil {
		return nil, nil, err
	}

	hooks := observability.Render()
	start := time.Now()
	hooks.OnRenderStart(ctx, rows, cols)
	defer func() {
		hooks.OnRenderComplete(ctx, rows*cols, time.Since(start), err)
	}()

	cfg.logger.Debug("rendering grid", "rows", rows, "cols", cols,
		"width", w*float64(cols), "height", h*float64(rows))

	for r, row := range grid {
		for c, cell := range row {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
			err := RenderCell(fig.Axes(r, c), cell, cfg.axisInterval)
			n := 0
			if cell != nil {
				n = len(cell.YAxes)
			}
			hooks.OnCellRendered(ctx, r, c, n, err)
			if err != nil {
				return nil, nil, errors.Within(err, "cell[%d][%d]", r, c)
			}
			cfg.logger.Debug("rendered cell", "row", r, "col", c, "axes", n, "blank", cell.Blank())
		}
	}
	return fig, fig.Grid(), nil
}

// RenderDocument renders a document, applying its figure settings before
// opts so that explicit options win.
func RenderDocument(ctx context.Context, doc *spec.Document, opts ...Option) (*surface.Figure, [][]*surface.Axes, error) {
	if doc == nil {
		return nil, nil, errors.New(errors.ErrCodeEmptyInput, "no document")
	}
	return Render(ctx, doc.Grid, append(FromFigure(doc.Figure), opts...)...)
}
