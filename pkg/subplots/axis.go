package subplots

import (
	"github.com/matzehuels/plotspec/pkg/errors"
	"github.com/matzehuels/plotspec/pkg/spec"
	"github.com/matzehuels/plotspec/pkg/surface"
)

// RenderAxis draws the series of one axis onto ax, then applies its
// y-label, y-limits and grid lines. Unless suppressLegend is set the axis
// gets its own legend: a missing legend configuration draws one at the best
// location, visible=false draws none.
//
// The legend entries of the drawn series are available from
// ax.LegendEntries whether or not a legend is drawn.
func RenderAxis(ax *surface.Axes, axis spec.Axis, suppressLegend bool) error {
	for i, s := range axis.Series {
		if err := ax.Call(s.Kind, s.X, s.Y, s.Style); err != nil {
			return errors.Within(err, "lines[%d]", i)
		}
	}

	if axis.YLabel != "" {
		ax.SetYLabel(axis.YLabel)
	}
	if axis.YLim != nil {
		if err := ax.SetYLim(axis.YLim); err != nil {
			return errors.Within(err, "ylim")
		}
	}
	if axis.Grid != nil {
		if err := ax.SetGrid(axis.Grid); err != nil {
			return errors.Within(err, "grid")
		}
	}

	if !suppressLegend {
		applyLegend(ax, axis.Legend, nil)
	}
	return nil
}

// applyLegend requests a legend on ax according to cfg. nil entries show the
// entries of ax itself.
func applyLegend(ax *surface.Axes, cfg *spec.Legend, entries []surface.LegendEntry) {
	switch {
	case cfg == nil:
		ax.SetLegend(spec.LocBest, entries...)
	case !cfg.Visible:
		ax.RemoveLegend()
	default:
		ax.SetLegend(cfg.Location, entries...)
	}
}
