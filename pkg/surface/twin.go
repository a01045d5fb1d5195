package surface

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// TwinX creates a secondary y-axis sharing the x-axis of a. The twin draws
// its y-axis on the right edge of the data area (spine offset 1) and has
// its own y-range, color cycle and legend. Calling TwinX on a twin adds
// another twin to the same primary.
func (a *Axes) TwinX() *Axes {
	root := a.root()
	t := newAxes(root.fig)
	t.parent = root
	t.offset = 1
	root.twins = append(root.twins, t)
	return t
}

// Twins returns the secondary axes created by TwinX, in creation order.
func (a *Axes) Twins() []*Axes {
	return append([]*Axes(nil), a.root().twins...)
}

// Parent returns the primary axes of a twin, or nil for a primary.
func (a *Axes) Parent() *Axes { return a.parent }

// SetSpineOffset moves the y-axis of a twin to the given position, in
// fractions of the data area width measured from its left edge. 1 is the
// right edge. It has no effect on a primary axes.
func (a *Axes) SetSpineOffset(offset float64) {
	if a.parent != nil {
		a.offset = offset
	}
}

// SpineOffset returns the spine position of a twin, or 0 for a primary.
func (a *Axes) SpineOffset() float64 { return a.offset }

// rightReserve returns the width to keep free on the right of c so that the
// spine and labels of every twin of a fit inside c.
func (a *Axes) rightReserve(c draw.Canvas) vg.Length {
	if len(a.twins) == 0 {
		return 0
	}
	dc := a.plot.DataCanvas(c)
	span := c.Max.X - dc.Min.X
	var reserve vg.Length
	for _, t := range a.twins {
		if t.offset <= 0 {
			continue
		}
		w := rightAxisWidth(t.plot.Y)
		if r := span - (span-w)/vg.Length(t.offset); r > reserve {
			reserve = r
		}
	}
	return min(reserve, span*0.8)
}

// rightAxisWidth returns the width a right-hand y-axis occupies to the
// right of its spine.
func rightAxisWidth(ax plot.Axis) vg.Length {
	w := ax.Width / 2
	marks := ax.Tick.Marker.Ticks(ax.Min, ax.Max)
	if ax.Tick.Width > 0 && ax.Tick.Length > 0 && len(marks) > 0 {
		w += ax.Tick.Length
	}
	if lw := tickLabelWidth(ax.Tick.Label, marks); lw > 0 {
		w += ax.Tick.Label.Width(" ") + lw
	}
	if ax.Label.Text != "" {
		w += ax.Label.Padding + ax.Label.TextStyle.Height(ax.Label.Text)
	}
	return w
}

func tickLabelWidth(sty text.Style, marks []plot.Tick) vg.Length {
	var w vg.Length
	for _, m := range marks {
		if m.IsMinor() {
			continue
		}
		if lw := sty.Width(m.Label); lw > w {
			w = lw
		}
	}
	return w
}

// drawRightAxis draws the y-axis of twin t with its spine at the twin's
// offset within the data canvas dc.
func drawRightAxis(dc draw.Canvas, t *Axes) {
	ax := t.plot.Y
	x := dc.Min.X + vg.Length(t.offset)*(dc.Max.X-dc.Min.X)
	dc.StrokeLine2(ax.LineStyle, x, dc.Min.Y, x, dc.Max.Y)
	x += ax.Width / 2

	marks := ax.Tick.Marker.Ticks(ax.Min, ax.Max)
	if ax.Tick.Width > 0 && ax.Tick.Length > 0 {
		for _, m := range marks {
			y := dc.Y(ax.Norm(m.Value))
			if !dc.ContainsY(y) {
				continue
			}
			l := ax.Tick.Length
			if m.IsMinor() {
				l /= 2
			}
			dc.StrokeLine2(ax.Tick.LineStyle, x, y, x+l, y)
		}
		if len(marks) > 0 {
			x += ax.Tick.Length
		}
	}

	labelWidth := tickLabelWidth(ax.Tick.Label, marks)
	if labelWidth > 0 {
		x += ax.Tick.Label.Width(" ")
		sty := ax.Tick.Label
		sty.XAlign, sty.YAlign = draw.XLeft, draw.YCenter
		for _, m := range marks {
			y := dc.Y(ax.Norm(m.Value))
			if !dc.ContainsY(y) || m.IsMinor() {
				continue
			}
			dc.FillText(sty, vg.Point{X: x, Y: y}, m.Label)
		}
		x += labelWidth
	}

	if ax.Label.Text != "" {
		sty := ax.Label.TextStyle
		sty.Rotation += math.Pi / 2
		sty.XAlign, sty.YAlign = draw.XCenter, draw.YTop
		dc.FillText(sty, vg.Point{X: x + ax.Label.Padding, Y: dc.Center().Y}, ax.Label.Text)
	}
}
