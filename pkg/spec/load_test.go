package spec

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/plotspec/pkg/errors"
)

const jsonDoc = `{
  "grid": [
    {"yaxes": [
      {"lines": [{"type": "curve", "y": [1, 2, 3], "spec": {"label": "speed", "lw": 2}}],
       "ylabel": "speed",
       "legend": {"visible": true, "loc": "upper left"}},
      {"lines": [{"type": "scatter", "x": [0, 1, 2], "y": [3, 1, 2], "spec": {"label": "load"}}],
       "ylim": {"bottom": 0}}
    ],
     "xlim": [0, 2],
     "xlabel": "time"},
    {}
  ],
  "figure": {"width": 8, "height": 2, "dpi": 100}
}`

const yamlDoc = `
grid:
  - yaxes:
      - lines:
          - {type: curve, y: [1, 2, 3], spec: {label: speed, lw: 2}}
        ylabel: speed
        legend: {visible: true, loc: upper left}
      - lines:
          - {type: scatter, x: [0, 1, 2], y: [3, 1, 2], spec: {label: load}}
        ylim: {bottom: 0}
    xlim: [0, 2]
    xlabel: time
  - {}
figure:
  width: 8
  height: 2
  dpi: 100
`

const tomlDoc = `
[figure]
width = 8
height = 2
dpi = 100

[[grid]]
xlim = [0, 2]
xlabel = "time"

  [[grid.yaxes]]
  ylabel = "speed"
  legend = { visible = true, loc = "upper left" }

    [[grid.yaxes.lines]]
    type = "curve"
    y = [1, 2, 3]
    spec = { label = "speed", lw = 2 }

  [[grid.yaxes]]
  ylim = { bottom = 0 }

    [[grid.yaxes.lines]]
    type = "scatter"
    x = [0, 1, 2]
    y = [3, 1, 2]
    spec = { label = "load" }

[[grid]]
`

func TestDecodeFormatsAgree(t *testing.T) {
	want, err := Decode(strings.NewReader(jsonDoc), FormatJSON)
	if err != nil {
		t.Fatalf("Decode(json) error = %v", err)
	}
	if err := Validate(want.Grid); err != nil {
		t.Fatalf("Validate(json) error = %v", err)
	}
	if r, c := want.Grid.Shape(); r != 2 || c != 1 {
		t.Fatalf("json shape = %dx%d, want 2x1", r, c)
	}

	for _, tt := range []struct {
		format Format
		input  string
	}{
		{FormatYAML, yamlDoc},
		{FormatTOML, tomlDoc},
	} {
		t.Run(string(tt.format), func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Decode(%s) = %+v\nwant %+v", tt.format, got, want)
			}
		})
	}
}

func TestDecodeContent(t *testing.T) {
	doc, err := Decode(strings.NewReader(yamlDoc), FormatYAML)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	cell := doc.Grid[0][0]
	if len(cell.YAxes) != 2 {
		t.Fatalf("len(YAxes) = %d, want 2", len(cell.YAxes))
	}
	primary := cell.YAxes[0]
	if primary.Legend == nil || primary.Legend.Location != LocUpperLeft {
		t.Errorf("primary legend = %+v, want upper left", primary.Legend)
	}
	if primary.Series[0].Style["lw"] != 2.0 {
		t.Errorf("lw = %#v, want 2.0", primary.Series[0].Style["lw"])
	}
	secondary := cell.YAxes[1]
	if secondary.YLim == nil || secondary.YLim.Form != FormNamed || *secondary.YLim.Low != 0 || secondary.YLim.High != nil {
		t.Errorf("secondary ylim = %v", secondary.YLim)
	}
	if cell.XLim.Form != FormPair {
		t.Errorf("xlim form = %v, want pair", cell.XLim.Form)
	}
	if !doc.Grid[1][0].Blank() {
		t.Error("second cell should be blank")
	}
	if doc.Figure.DPI != 100 {
		t.Errorf("DPI = %d, want 100", doc.Figure.DPI)
	}
}

func TestDecodeBareList(t *testing.T) {
	doc, err := Decode(strings.NewReader(`[[null, {"yaxes": [{"lines": [{"y": [1]}]}]}]]`), FormatJSON)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if r, c := doc.Grid.Shape(); r != 1 || c != 2 {
		t.Errorf("shape = %dx%d, want 1x2", r, c)
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		format Format
		input  string
	}{
		{FormatJSON, `{"grid": [`},
		{FormatYAML, "grid: [\n  - a"},
		{FormatTOML, "grid = ["},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Decode() error = %v, want %v", err, errors.ErrCodeInvalidInput)
			}
		})
	}

	if _, err := Decode(strings.NewReader("{}"), Format("xml")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown format error = %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"fig.json", FormatJSON, false},
		{"dir/fig.YAML", FormatYAML, false},
		{"fig.yml", FormatYAML, false},
		{"fig.toml", FormatTOML, false},
		{"fig.txt", "", true},
		{"fig", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "figure.yaml")
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Grid.Size() != 2 {
		t.Errorf("Size() = %d, want 2", doc.Grid.Size())
	}

	_, err = Load(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %v", err, errors.ErrCodeFileNotFound)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`[[[{}]]]`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad)
	if !errors.Is(err, errors.ErrCodeDimensionality) {
		t.Errorf("Load(bad) error = %v, want %v", err, errors.ErrCodeDimensionality)
	}
	if msg := errors.UserMessage(err); !strings.HasPrefix(msg, bad+": ") {
		t.Errorf("UserMessage() = %q, want prefix %q", msg, bad)
	}
}
