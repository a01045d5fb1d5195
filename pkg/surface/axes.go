package surface

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/plotspec/pkg/errors"
	"github.com/matzehuels/plotspec/pkg/spec"
)

// Axes is one drawing region of a figure: a primary axes created by the
// figure, or a twin created by TwinX. Axes methods mutate the axes in place;
// nothing is drawn until the figure is drawn or exported.
type Axes struct {
	fig    *Figure
	plot   *plot.Plot
	parent *Axes
	twins  []*Axes

	plotters []plot.Plotter
	entries  []LegendEntry
	xr, yr   span
	count    int
	cycle    int

	xlim, ylim *spec.Limits
	grid       *plotter.Grid
	legend     *legendState
	offset     float64
	hidden     bool
}

type legendState struct {
	loc     spec.Location
	entries []LegendEntry
}

// span is the data extent along one axis.
type span struct{ min, max float64 }

func emptySpan() span { return span{min: math.Inf(1), max: math.Inf(-1)} }

func (s span) union(o span) span {
	return span{min: math.Min(s.min, o.min), max: math.Max(s.max, o.max)}
}

func newAxes(f *Figure) *Axes {
	p := plot.New()
	p.BackgroundColor = nil
	return &Axes{fig: f, plot: p, xr: emptySpan(), yr: emptySpan()}
}

func (a *Axes) root() *Axes {
	if a.parent != nil {
		return a.parent
	}
	return a
}

// Figure returns the figure a belongs to.
func (a *Axes) Figure() *Figure { return a.fig }

// Add draws ps on a and records one legend entry for them, drawn with
// handle. An empty label becomes "series N", numbered per primary axes and
// its twins.
func (a *Axes) Add(label string, handle plot.Thumbnailer, ps ...plot.Plotter) {
	root := a.root()
	root.count++
	if label == "" {
		label = fmt.Sprintf("series %d", root.count)
	}
	for _, p := range ps {
		if dr, ok := p.(plot.DataRanger); ok {
			xmin, xmax, ymin, ymax := dr.DataRange()
			a.xr = a.xr.union(span{xmin, xmax})
			a.yr = a.yr.union(span{ymin, ymax})
		}
		a.plotters = append(a.plotters, p)
	}
	a.entries = append(a.entries, LegendEntry{Label: label, Handle: handle})
}

// nextColor returns the next color of the axes' cycle.
func (a *Axes) nextColor() color.Color {
	c := tab10[a.cycle%len(tab10)]
	a.cycle++
	return c
}

// seriesColor resolves the color a series is drawn in.
func (a *Axes) seriesColor(st Style) color.Color {
	c := st.Color
	if c == nil {
		c = a.nextColor()
	}
	return withAlpha(c, st.Alpha)
}

// LegendEntries returns the entries of every series drawn on a, in drawing
// order. Series whose label starts with "_" are left out. The entries are
// available whether or not a legend is drawn.
func (a *Axes) LegendEntries() []LegendEntry {
	var out []LegendEntry
	for _, e := range a.entries {
		if !excluded(e.Label) {
			out = append(out, e)
		}
	}
	return out
}

// SetLegend requests a legend at loc. With no entries the legend shows the
// axes' own entries at draw time.
func (a *Axes) SetLegend(loc spec.Location, entries ...LegendEntry) {
	a.legend = &legendState{loc: loc, entries: slices.Clone(entries)}
}

// RemoveLegend removes a legend requested with SetLegend.
func (a *Axes) RemoveLegend() { a.legend = nil }

// Legend reports the legend that will be drawn on a. ok is false when no
// legend was requested, the axes are hidden or there is nothing to show.
func (a *Axes) Legend() (loc spec.Location, entries []LegendEntry, ok bool) {
	if a.legend == nil || a.root().hidden {
		return spec.LocBest, nil, false
	}
	entries = a.legend.entries
	if entries == nil {
		entries = a.LegendEntries()
	}
	var shown []LegendEntry
	for _, e := range entries {
		if !excluded(e.Label) {
			shown = append(shown, e)
		}
	}
	return a.legend.loc, shown, len(shown) > 0
}

// SetXLabel sets the label of the shared x-axis.
func (a *Axes) SetXLabel(s string) { a.root().plot.X.Label.Text = s }

// XLabel returns the label of the shared x-axis.
func (a *Axes) XLabel() string { return a.root().plot.X.Label.Text }

// SetYLabel sets the label of the y-axis of a.
func (a *Axes) SetYLabel(s string) { a.plot.Y.Label.Text = s }

// YLabel returns the label of the y-axis of a.
func (a *Axes) YLabel() string { return a.plot.Y.Label.Text }

// SetTitle sets the title drawn above the axes.
func (a *Axes) SetTitle(s string) { a.root().plot.Title.Text = s }

// Title returns the title of the axes.
func (a *Axes) Title() string { return a.root().plot.Title.Text }

// SetXLim sets the limits of the shared x-axis. A nil bound keeps the
// automatic value; low above high inverts the axis. nil clears the limits.
func (a *Axes) SetXLim(l *spec.Limits) error {
	if err := l.Validate(); err != nil {
		return err
	}
	a.root().xlim = l
	return nil
}

// SetYLim sets the limits of the y-axis of a, like SetXLim.
func (a *Axes) SetYLim(l *spec.Limits) error {
	if err := l.Validate(); err != nil {
		return err
	}
	a.ylim = l
	return nil
}

// XLim returns the current x range in the order it is displayed, so an
// inverted axis reports low > high.
func (a *Axes) XLim() (low, high float64) {
	root := a.root()
	return resolve(root.xspan(), root.xlim)
}

// YLim returns the current y range of a, like XLim.
func (a *Axes) YLim() (low, high float64) {
	return resolve(a.yr, a.ylim)
}

func (a *Axes) xspan() span {
	s := a.xr
	for _, t := range a.twins {
		s = s.union(t.xr)
	}
	return s
}

// resolve merges automatic data bounds with limits. Empty or degenerate
// ranges are widened the way gonum/plot does.
func resolve(auto span, l *spec.Limits) (low, high float64) {
	lo, hi := auto.min, auto.max
	if math.IsInf(lo, 0) {
		lo = 0
	}
	if math.IsInf(hi, 0) {
		hi = 0
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	low, high = l.Resolve(lo, hi)
	if low == high {
		low, high = low-1, high+1
	}
	return low, high
}

// applyRange sets the range of ax, inverting the scale when low > high.
func applyRange(ax *plot.Axis, low, high float64) {
	ax.Scale = plot.LinearScale{}
	if low > high {
		low, high = high, low
		ax.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	}
	ax.Min, ax.Max = low, high
}

// finalize resolves the ranges of a primary axes and its twins.
func (a *Axes) finalize() {
	lo, hi := a.XLim()
	applyRange(&a.plot.X, lo, hi)
	lo, hi = a.YLim()
	applyRange(&a.plot.Y, lo, hi)
	for _, t := range a.twins {
		t.plot.X.Min, t.plot.X.Max, t.plot.X.Scale = a.plot.X.Min, a.plot.X.Max, a.plot.X.Scale
		lo, hi = t.YLim()
		applyRange(&t.plot.Y, lo, hi)
	}
}

// Grid line defaults match matplotlib.
var (
	gridColor = color.NRGBA{R: 176, G: 176, B: 176, A: 255}
	gridWidth = vg.Points(0.8)
)

var gridStyleKeys = []string{"color", "c", "linestyle", "ls", "linewidth", "lw", "alpha"}

// SetGrid configures grid lines. nil or g.Visible == false removes them.
func (a *Axes) SetGrid(g *spec.GridLines) error {
	if g == nil || !g.Visible {
		a.grid = nil
		return nil
	}
	for _, k := range g.Style.Keys() {
		if !slices.Contains(gridStyleKeys, k) {
			return errors.New(errors.ErrCodeInvalidStyle, "unknown grid option %q", k)
		}
	}
	st, err := ParseStyle(g.Style)
	if err != nil {
		return err
	}
	if _, _, set := g.Style.Lookup("linewidth", "lw"); !set {
		st.LineWidth = gridWidth
	}
	c := st.Color
	if c == nil {
		c = gridColor
	}
	ls := st.lineStyle(withAlpha(c, st.Alpha))

	grid := plotter.NewGrid()
	grid.Vertical, grid.Horizontal = ls, ls
	switch g.Axis {
	case spec.GridX:
		grid.Horizontal.Color = nil
	case spec.GridY:
		grid.Vertical.Color = nil
	}
	a.grid = grid
	return nil
}

// GridVisible reports which grid lines are drawn.
func (a *Axes) GridVisible() (x, y bool) {
	if a.grid == nil {
		return false, false
	}
	return a.grid.Vertical.Color != nil, a.grid.Horizontal.Color != nil
}

// Hide removes a from the figure: no ticks, border or content are drawn.
// Hiding a twin hides its primary.
func (a *Axes) Hide() { a.root().hidden = true }

// Hidden reports whether a is hidden.
func (a *Axes) Hidden() bool { return a.root().hidden }

// Len returns the number of series drawn on a.
func (a *Axes) Len() int { return len(a.entries) }

// draw draws a primary axes and its twins into c.
func (a *Axes) draw(c draw.Canvas) {
	p := a.plot
	p.Draw(c)
	dc := p.DataCanvas(c)

	if a.grid != nil {
		a.grid.Plot(dc, p)
	}
	for _, t := range a.twins {
		if t.grid != nil {
			t.grid.Plot(dc, t.plot)
		}
	}
	for _, ax := range append([]*Axes{a}, a.twins...) {
		for _, pl := range ax.plotters {
			pl.Plot(dc, ax.plot)
		}
	}
	for _, t := range a.twins {
		drawRightAxis(dc, t)
	}

	pts := dataPoints(a, dc)
	for _, ax := range append([]*Axes{a}, a.twins...) {
		if loc, entries, ok := ax.Legend(); ok {
			drawLegend(dc, loc, entries, pts)
		}
	}
}
