package surface

import (
	"image/color"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/plotspec/pkg/errors"
	"github.com/matzehuels/plotspec/pkg/spec"
)

// Method draws one series onto ax. Implementations parse opts (usually
// with ParseStyle) and register what they draw with ax.Add so the series
// gets a legend entry.
type Method func(ax *Axes, xys plotter.XYs, opts spec.Options) error

// builtinMethods is the method table every figure starts with.
var builtinMethods = map[spec.Kind]Method{
	spec.KindCurve:      curve,
	spec.KindScatter:    scatter,
	spec.KindStep:       step,
	spec.KindFill:       fill,
	spec.KindLinePoints: linePoints,
}

// Call draws a series of the given kind. An empty kind draws a curve.
// Kinds are resolved through the figure's method table; a kind with no
// method fails with errors.ErrCodeUnsupportedKind. When x is empty the
// points are placed at 0, 1, 2, ...
func (a *Axes) Call(kind spec.Kind, x, y []float64, opts spec.Options) error {
	k := kind.OrDefault()
	m, ok := a.fig.methods[k]
	if !ok {
		return errors.New(errors.ErrCodeUnsupportedKind,
			"series kind %q is not supported (available: %v)", string(k), a.fig.Kinds())
	}
	xys, err := points(x, y)
	if err != nil {
		return err
	}
	return m(a, xys, opts)
}

// Plot draws a curve.
func (a *Axes) Plot(x, y []float64, opts spec.Options) error {
	return a.Call(spec.KindCurve, x, y, opts)
}

// Scatter draws unconnected markers.
func (a *Axes) Scatter(x, y []float64, opts spec.Options) error {
	return a.Call(spec.KindScatter, x, y, opts)
}

// Step draws a step curve that changes value at each x.
func (a *Axes) Step(x, y []float64, opts spec.Options) error {
	return a.Call(spec.KindStep, x, y, opts)
}

// Fill draws a curve with the area below it filled.
func (a *Axes) Fill(x, y []float64, opts spec.Options) error {
	return a.Call(spec.KindFill, x, y, opts)
}

// LinePoints draws a curve with a marker at every point.
func (a *Axes) LinePoints(x, y []float64, opts spec.Options) error {
	return a.Call(spec.KindLinePoints, x, y, opts)
}

func points(x, y []float64) (plotter.XYs, error) {
	if len(y) == 0 {
		return nil, errors.New(errors.ErrCodeMissingField, "series has no y values")
	}
	if len(x) > 0 && len(x) != len(y) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "x has %d values but y has %d", len(x), len(y))
	}
	xys := make(plotter.XYs, len(y))
	for i, v := range y {
		xys[i].X = float64(i)
		if len(x) > 0 {
			xys[i].X = x[i]
		}
		xys[i].Y = v
	}
	return xys, nil
}

// handles draws several thumbnails on top of each other.
type handles []plot.Thumbnailer

func (h handles) Thumbnail(c *draw.Canvas) {
	for _, t := range h {
		t.Thumbnail(c)
	}
}

func newLine(xys plotter.XYs) (*plotter.Line, error) {
	l, err := plotter.NewLine(xys)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid points")
	}
	return l, nil
}

func newScatter(xys plotter.XYs) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid points")
	}
	return s, nil
}

// addLine adds l, plus markers when st or marker asks for them.
func addLine(ax *Axes, xys plotter.XYs, l *plotter.Line, st Style, c color.Color, marker draw.GlyphDrawer) error {
	g := st.glyphStyle(c, marker)
	if g.Shape == nil {
		ax.Add(st.Label, l, l)
		return nil
	}
	s, err := newScatter(xys)
	if err != nil {
		return err
	}
	s.GlyphStyle = g
	ax.Add(st.Label, handles{l, s}, l, s)
	return nil
}

func curve(ax *Axes, xys plotter.XYs, opts spec.Options) error {
	st, err := ParseStyle(opts)
	if err != nil {
		return err
	}
	l, err := newLine(xys)
	if err != nil {
		return err
	}
	c := ax.seriesColor(st)
	l.LineStyle = st.lineStyle(c)
	if st.FillColor != nil {
		l.FillColor = withAlpha(st.FillColor, st.Alpha)
	}
	return addLine(ax, xys, l, st, c, nil)
}

func scatter(ax *Axes, xys plotter.XYs, opts spec.Options) error {
	st, err := ParseStyle(opts)
	if err != nil {
		return err
	}
	s, err := newScatter(xys)
	if err != nil {
		return err
	}
	s.GlyphStyle = st.glyphStyle(ax.seriesColor(st), draw.CircleGlyph{})
	ax.Add(st.Label, s, s)
	return nil
}

func step(ax *Axes, xys plotter.XYs, opts spec.Options) error {
	st, err := ParseStyle(opts)
	if err != nil {
		return err
	}
	l, err := newLine(xys)
	if err != nil {
		return err
	}
	c := ax.seriesColor(st)
	l.StepStyle = plotter.PreStep
	l.LineStyle = st.lineStyle(c)
	return addLine(ax, xys, l, st, c, nil)
}

func fill(ax *Axes, xys plotter.XYs, opts spec.Options) error {
	st, err := ParseStyle(opts)
	if err != nil {
		return err
	}
	l, err := newLine(xys)
	if err != nil {
		return err
	}
	c := ax.seriesColor(st)
	l.LineStyle = st.lineStyle(c)
	l.FillColor = withAlpha(c, defaultFillAlpha)
	if st.FillColor != nil {
		l.FillColor = withAlpha(st.FillColor, st.Alpha)
	}
	return addLine(ax, xys, l, st, c, nil)
}

func linePoints(ax *Axes, xys plotter.XYs, opts spec.Options) error {
	st, err := ParseStyle(opts)
	if err != nil {
		return err
	}
	l, err := newLine(xys)
	if err != nil {
		return err
	}
	c := ax.seriesColor(st)
	l.LineStyle = st.lineStyle(c)
	return addLine(ax, xys, l, st, c, draw.CircleGlyph{})
}

// barWidth is the width of a bar drawn by Bars.
var barWidth = vg.Points(10)

// Bars draws a bar chart. It is not part of the default method table;
// register it with WithMethod("bar", Bars). Bars are placed at x[0],
// x[0]+1, x[0]+2, ...
func Bars(ax *Axes, xys plotter.XYs, opts spec.Options) error {
	st, err := ParseStyle(opts)
	if err != nil {
		return err
	}
	b, err := plotter.NewBarChart(plotter.YValues{XYer: xys}, barWidth)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid bar values")
	}
	b.XMin = xys[0].X
	b.Color = ax.seriesColor(st)
	b.LineStyle.Width = 0
	ax.Add(st.Label, b, b)
	return nil
}

// Kinds returns the series kinds the figure can draw, sorted.
func (f *Figure) Kinds() []spec.Kind {
	kinds := make([]spec.Kind, 0, len(f.methods))
	for k := range f.methods {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}
