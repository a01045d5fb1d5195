package subplots

import (
	"slices"
	"testing"

	"github.com/matzehuels/plotspec/pkg/errors"
	"github.com/matzehuels/plotspec/pkg/spec"
)

func TestRenderAxisSeries(t *testing.T) {
	ax := newAxes(t)
	axis := spec.Axis{Series: []spec.Series{
		{Y: []float64{1, 2, 3}},
		{Kind: spec.KindScatter, X: []float64{10, 20}, Y: []float64{0, 5}, Style: spec.Options{"label": "pts", "marker": "x"}},
		{Kind: spec.KindStep, Y: []float64{4}, Style: spec.Options{"label": "_hidden"}},
	}}
	if err := RenderAxis(ax, axis, false); err != nil {
		t.Fatal(err)
	}

	if ax.Len() != 3 {
		t.Errorf("Len() = %d, want 3", ax.Len())
	}
	if got := entryLabels(ax.LegendEntries()); !slices.Equal(got, []string{"series 1", "pts"}) {
		t.Errorf("LegendEntries() = %v", got)
	}
	if lo, hi := ax.XLim(); lo != 0 || hi != 20 {
		t.Errorf("XLim() = %v, %v, want index and explicit x combined", lo, hi)
	}
}

func TestRenderAxisProperties(t *testing.T) {
	ax := newAxes(t)
	axis := spec.Axis{
		Series: []spec.Series{curve(1, 2)},
		YLabel: "speed",
		YLim:   spec.Named(spec.Bound(0), nil),
		Grid:   &spec.GridLines{Visible: true, Axis: spec.GridY},
	}
	if err := RenderAxis(ax, axis, false); err != nil {
		t.Fatal(err)
	}

	if ax.YLabel() != "speed" {
		t.Errorf("YLabel() = %q", ax.YLabel())
	}
	if lo, hi := ax.YLim(); lo != 0 || hi != 2 {
		t.Errorf("YLim() = %v, %v, want 0, 2", lo, hi)
	}
	if x, y := ax.GridVisible(); x || !y {
		t.Errorf("GridVisible() = %v, %v, want y only", x, y)
	}
}

func TestRenderAxisLegend(t *testing.T) {
	tests := []struct {
		name     string
		legend   *spec.Legend
		suppress bool
		drawn    bool
		loc      spec.Location
	}{
		{"absent", nil, false, true, spec.LocBest},
		{"visible", &spec.Legend{Visible: true, Location: spec.LocCenterRight}, false, true, spec.LocCenterRight},
		{"hidden", &spec.Legend{Visible: false}, false, false, 0},
		{"suppressed", &spec.Legend{Visible: true, Location: spec.LocCenterRight}, true, false, 0},
		{"suppressed absent", nil, true, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ax := newAxes(t)
			axis := spec.Axis{Series: []spec.Series{labeled("s", 1, 2)}, Legend: tt.legend}
			if err := RenderAxis(ax, axis, tt.suppress); err != nil {
				t.Fatal(err)
			}
			loc, entries, ok := ax.Legend()
			if ok != tt.drawn {
				t.Fatalf("legend drawn = %v, want %v", ok, tt.drawn)
			}
			if ok && (loc != tt.loc || !slices.Equal(entryLabels(entries), []string{"s"})) {
				t.Errorf("Legend() = %v, %v", loc, entryLabels(entries))
			}
			if got := entryLabels(ax.LegendEntries()); !slices.Equal(got, []string{"s"}) {
				t.Errorf("LegendEntries() = %v, want entries regardless of the legend", got)
			}
		})
	}
}

func TestRenderAxisErrors(t *testing.T) {
	tests := []struct {
		name string
		axis spec.Axis
		want errors.Code
	}{
		{"unsupported kind", spec.Axis{Series: []spec.Series{{Kind: "bar", Y: []float64{1, 2, 3}}}}, errors.ErrCodeUnsupportedKind},
		{"missing y", spec.Axis{Series: []spec.Series{{X: []float64{1}}}}, errors.ErrCodeMissingField},
		{"length mismatch", spec.Axis{Series: []spec.Series{{X: []float64{1}, Y: []float64{1, 2}}}}, errors.ErrCodeInvalidInput},
		{"bad grid style", spec.Axis{Series: []spec.Series{curve(1)}, Grid: &spec.GridLines{Visible: true, Style: spec.Options{"marker": "o"}}}, errors.ErrCodeInvalidStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RenderAxis(newAxes(t), tt.axis, false)
			if !errors.Is(err, tt.want) {
				t.Errorf("RenderAxis() error = %v, want %v", err, tt.want)
			}
		})
	}
}
