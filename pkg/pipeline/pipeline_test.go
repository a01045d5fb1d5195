package pipeline

import (
	"context"
	"slices"
	"testing"

	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/plotspec/pkg/errors"
	"github.com/matzehuels/plotspec/pkg/spec"
	"github.com/matzehuels/plotspec/pkg/subplots"
)

func TestValidateFormats(t *testing.T) {
	tests := []struct {
		in      []string
		want    []string
		wantErr bool
	}{
		{[]string{"svg", "png"}, []string{"svg", "png"}, false},
		{[]string{"SVG", ".pdf", "jpeg", "tiff"}, []string{"svg", "pdf", "jpg", "tif"}, false},
		{[]string{"png", "PNG", "svg", "png"}, []string{"png", "svg"}, false},
		{nil, []string{}, false},
		{[]string{"svg", "gif"}, nil, true},
		{[]string{""}, nil, true},
	}

	for _, tt := range tests {
		got, err := ValidateFormats(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormats(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !slices.Equal(got, tt.want) {
			t.Errorf("ValidateFormats(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Path: "figure.yaml"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Valid options should pass: %v", err)
	}
	if !slices.Equal(opts.Formats, []string{DefaultFormat}) {
		t.Errorf("Formats = %v, want [%s]", opts.Formats, DefaultFormat)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent
	opts.Formats = []string{"not-a-format"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should be a no-op, got %v", err)
	}
}

func TestOptionsNormalizeLayout(t *testing.T) {
	opts := Options{Path: "f.json", Layout: " Tight "}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Layout != "tight" {
		t.Errorf("Layout = %q, want tight", opts.Layout)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want errors.Code
	}{
		{"no source", Options{}, errors.ErrCodeEmptyInput},
		{"source without format", Options{Source: []byte("grid: []")}, errors.ErrCodeMissingField},
		{"bad format", Options{Path: "f.json", Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"negative width", Options{Path: "f.json", CellWidth: -1}, errors.ErrCodeInvalidInput},
		{"negative interval", Options{Path: "f.json", AxisInterval: -0.2}, errors.ErrCodeInvalidInput},
		{"negative dpi", Options{Path: "f.json", DPI: -72}, errors.ErrCodeInvalidInput},
		{"bad layout", Options{Path: "f.json", Layout: "loose"}, errors.ErrCodeInvalidLayoutMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.want) {
				t.Errorf("ValidateAndSetDefaults() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{CellWidth: 4, DPI: 72, Layout: "none"}
	k := opts.ArtifactKeyOpts("svg")
	if k.Format != "svg" || k.CellWidth != 4 || k.CellHeight != 0 || k.DPI != 72 || k.Layout != "none" {
		t.Errorf("ArtifactKeyOpts() = %+v", k)
	}
}

func TestRenderOptionsOverrideDocument(t *testing.T) {
	doc := &spec.Document{
		Grid:   spec.Grid{{{YAxes: []spec.Axis{{Series: []spec.Series{{Y: []float64{1, 2}}}}}}}, {nil}},
		Figure: spec.Figure{Width: 3, Height: 1, DPI: 50},
	}
	opts := Options{CellHeight: 2.5, DPI: 20}
	opts.SetRenderDefaults()

	fig, _, err := subplots.RenderDocument(context.Background(), doc, opts.RenderOptions()...)
	if err != nil {
		t.Fatal(err)
	}
	if fig.DPI() != 20 {
		t.Errorf("DPI() = %d, want the option to win", fig.DPI())
	}
	// One column: the document width of 3in is doubled; the height comes
	// from the option.
	if w, h := fig.Size(); w != 6*vg.Inch || h != 5*vg.Inch {
		t.Errorf("Size() = %vin x %vin, want 6in x 5in", w/vg.Inch, h/vg.Inch)
	}
}
