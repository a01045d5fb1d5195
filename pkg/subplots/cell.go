package subplots

import (
	"github.com/matzehuels/plotspec/pkg/errors"
	"github.com/matzehuels/plotspec/pkg/spec"
	"github.com/matzehuels/plotspec/pkg/surface"
)

// RenderCell renders one grid cell onto its primary axes.
//
// A blank cell hides ax. Otherwise the first axis of the cell is drawn on
// ax and every further axis on a new twin, whose spine sits at
// 1 + i*axisInterval for the i-th twin. With more than one axis the
// per-axis legends are replaced by one legend holding the entries of all
// axes in order, drawn on the last twin and configured by the legend of the
// first axis. The x-limits, x-label and title of the cell are applied to ax.
func RenderCell(ax *surface.Axes, cell *spec.Cell, axisInterval float64) error {
	if cell.Blank() {
		ax.Hide()
		return nil
	}
	if len(cell.YAxes) == 0 {
		return errors.New(errors.ErrCodeMissingField, "cell has no yaxes")
	}

	primary := cell.YAxes[0]
	multi := len(cell.YAxes) > 1
	if err := RenderAxis(ax, primary, multi); err != nil {
		return errors.Within(err, "yaxes[0]")
	}

	if multi {
		entries := ax.LegendEntries()
		var last *surface.Axes
		for i, a := range cell.YAxes[1:] {
			twin := ax.TwinX()
			twin.SetSpineOffset(1 + float64(i)*axisInterval)
			if err := RenderAxis(twin, a, true); err != nil {
				return errors.Within(err, "yaxes[%d]", i+1)
			}
			entries = append(entries, twin.LegendEntries()...)
			last = twin
		}
		applyLegend(last, primary.Legend, entries)
	}

	if cell.XLim != nil {
		if err := ax.SetXLim(cell.XLim); err != nil {
			return errors.Within(err, "xlim")
		}
	}
	if cell.XLabel != "" {
		ax.SetXLabel(cell.XLabel)
	}
	if cell.Title != "" {
		ax.SetTitle(cell.Title)
	}
	return nil
}
