package surface

import (
	"image/color"
	"math"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/plotspec/pkg/spec"
)

// LegendEntry is one labeled handle of a drawn series.
type LegendEntry struct {
	Label  string
	Handle plot.Thumbnailer
}

// excluded reports whether a label is hidden from legends. Labels starting
// with an underscore are never shown.
func excluded(label string) bool {
	return label == "" || strings.HasPrefix(label, "_")
}

const (
	legendInset   = 4 // distance from the data area border, in points
	legendPadding = 3 // frame padding around the entries, in points
)

var (
	legendFill = color.NRGBA{R: 255, G: 255, B: 255, A: 204}
	legendEdge = color.NRGBA{R: 204, G: 204, B: 204, A: 255}
)

// legendLayout is the resolved geometry of a legend.
type legendLayout struct {
	legend plot.Legend
	width  vg.Length
	height vg.Length
}

func newLegendLayout(entries []LegendEntry) legendLayout {
	l := plot.NewLegend()
	l.Top, l.Left = true, true
	l.TextStyle.Font.Size = vg.Points(9)
	l.ThumbnailWidth = vg.Points(18)
	l.Padding = vg.Points(1)

	ll := legendLayout{legend: l}
	var entryHeight vg.Length
	for _, e := range entries {
		ll.legend.Add(e.Label, e.Handle)
		if w := l.ThumbnailWidth + l.TextStyle.Rectangle(" "+e.Label).Max.X; w > ll.width {
			ll.width = w
		}
		if h := l.TextStyle.Rectangle(e.Label).Max.Y; h > entryHeight {
			entryHeight = h
		}
	}
	n := vg.Length(len(entries))
	ll.height = n*entryHeight + (n-1)*l.Padding + l.TextStyle.FontExtents().Descent
	return ll
}

// legendBox returns the rectangle a legend of size (w, h) occupies at loc within
// the data canvas c. LocBest must be resolved beforehand.
func legendBox(c draw.Canvas, loc spec.Location, w, h vg.Length) vg.Rectangle {
	inset := vg.Points(legendInset)
	var x0, y0 vg.Length
	switch loc {
	case spec.LocUpperLeft, spec.LocLowerLeft, spec.LocCenterLeft:
		x0 = c.Min.X + inset
	case spec.LocUpperCenter, spec.LocLowerCenter, spec.LocCenter:
		x0 = c.Min.X + (c.Max.X-c.Min.X-w)/2
	default:
		x0 = c.Max.X - inset - w
	}
	switch loc {
	case spec.LocLowerLeft, spec.LocLowerRight, spec.LocLowerCenter:
		y0 = c.Min.Y + inset
	case spec.LocRight, spec.LocCenterLeft, spec.LocCenterRight, spec.LocCenter:
		y0 = c.Min.Y + (c.Max.Y-c.Min.Y-h)/2
	default:
		y0 = c.Max.Y - inset - h
	}
	return vg.Rectangle{Min: vg.Point{X: x0, Y: y0}, Max: vg.Point{X: x0 + w, Y: y0 + h}}
}

// bestCandidates are tried in order by LocBest; the first location with the
// fewest covered points wins.
var bestCandidates = []spec.Location{
	spec.LocUpperRight, spec.LocUpperLeft, spec.LocLowerLeft, spec.LocLowerRight,
	spec.LocRight, spec.LocCenterLeft, spec.LocCenterRight,
	spec.LocLowerCenter, spec.LocUpperCenter, spec.LocCenter,
}

// bestLocation picks the location whose legend box covers the fewest of the
// given canvas points.
func bestLocation(c draw.Canvas, pts []vg.Point, w, h vg.Length) spec.Location {
	best, bestCount := bestCandidates[0], math.MaxInt
	for _, loc := range bestCandidates {
		box := legendBox(c, loc, w, h)
		n := 0
		for _, p := range pts {
			if p.X >= box.Min.X && p.X <= box.Max.X && p.Y >= box.Min.Y && p.Y <= box.Max.Y {
				n++
			}
		}
		if n < bestCount {
			best, bestCount = loc, n
		}
	}
	return best
}

// drawLegend draws entries inside the data canvas c at loc. pts are the
// canvas positions of the data, used to resolve LocBest.
func drawLegend(c draw.Canvas, loc spec.Location, entries []LegendEntry, pts []vg.Point) {
	if len(entries) == 0 {
		return
	}
	ll := newLegendLayout(entries)
	if loc == spec.LocBest {
		loc = bestLocation(c, pts, ll.width, ll.height)
	}
	box := legendBox(c, loc, ll.width, ll.height)

	pad := vg.Points(legendPadding)
	frame := []vg.Point{
		{X: box.Min.X - pad, Y: box.Min.Y - pad},
		{X: box.Max.X + pad, Y: box.Min.Y - pad},
		{X: box.Max.X + pad, Y: box.Max.Y + pad},
		{X: box.Min.X - pad, Y: box.Max.Y + pad},
	}
	c.FillPolygon(legendFill, frame)
	c.StrokeLines(draw.LineStyle{Color: legendEdge, Width: vg.Points(0.8)}, append(frame, frame[0]))

	ll.legend.Draw(draw.Canvas{Canvas: c.Canvas, Rectangle: box})
}

// dataPoints returns the canvas positions of every point drawn by a and its
// twins, for LocBest placement.
func dataPoints(a *Axes, c draw.Canvas) []vg.Point {
	var pts []vg.Point
	for _, ax := range append([]*Axes{a}, a.twins...) {
		for _, p := range ax.plotters {
			xy, ok := p.(plotter.XYer)
			if !ok {
				continue
			}
			for i, n := 0, xy.Len(); i < n; i++ {
				x, y := xy.XY(i)
				pts = append(pts, vg.Point{
					X: c.X(ax.plot.X.Norm(x)),
					Y: c.Y(ax.plot.Y.Norm(y)),
				})
			}
		}
	}
	return pts
}
