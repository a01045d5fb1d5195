package surface

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/plotspec/pkg/errors"
	"github.com/matzehuels/plotspec/pkg/spec"
)

func exportFigure(t *testing.T) *Figure {
	t.Helper()
	f := newTestFigure(t, 1, 2, WithSize(3*vg.Inch, 2*vg.Inch), WithDPI(30))
	ax := f.Axes(0, 0)
	if err := ax.Plot([]float64{0, 1, 2}, []float64{1, 3, 2}, spec.Options{"label": "a", "ls": "--"}); err != nil {
		t.Fatal(err)
	}
	if err := ax.TwinX().Fill(nil, []float64{5, 4, 6}, spec.Options{"label": "b", "c": "tab:red"}); err != nil {
		t.Fatal(err)
	}
	ax.SetLegend(spec.LocBest)
	f.Axes(0, 1).Hide()
	return f
}

func TestNormalizeFormat(t *testing.T) {
	tests := map[string]string{
		"png":   FormatPNG,
		".PNG":  FormatPNG,
		"jpeg":  FormatJPEG,
		"jpg":   FormatJPEG,
		"tiff":  FormatTIFF,
		" svg ": FormatSVG,
		"pdf":   FormatPDF,
		"eps":   FormatEPS,
	}
	for in, want := range tests {
		got, err := NormalizeFormat(in)
		if err != nil || got != want {
			t.Errorf("NormalizeFormat(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	for _, in := range []string{"", "gif", "docx"} {
		if _, err := NormalizeFormat(in); !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("NormalizeFormat(%q) error = %v", in, err)
		}
	}
}

func TestRaster(t *testing.T) {
	for format, want := range map[string]bool{"png": true, "jpeg": true, "tif": true, "svg": false, "pdf": false, "eps": false, "bmp": false} {
		if got := Raster(format); got != want {
			t.Errorf("Raster(%q) = %v, want %v", format, got, want)
		}
	}
}

func TestWriterTo(t *testing.T) {
	magic := map[string][]byte{
		FormatPNG:  []byte("\x89PNG"),
		FormatJPEG: {0xff, 0xd8},
		FormatTIFF: []byte("II*\x00"),
		FormatSVG:  []byte("<?xml"),
		FormatPDF:  []byte("%PDF"),
		FormatEPS:  []byte("%%!PS-Adobe"),
	}
	for _, format := range Formats() {
		t.Run(format, func(t *testing.T) {
			w, err := exportFigure(t).WriterTo(format)
			if err != nil {
				t.Fatalf("WriterTo(%q) error = %v", format, err)
			}
			var buf bytes.Buffer
			if _, err := w.WriteTo(&buf); err != nil {
				t.Fatalf("WriteTo() error = %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), magic[format]) {
				t.Errorf("%s output starts with %q", format, buf.Bytes()[:min(8, buf.Len())])
			}
		})
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "figure.svg")
	if err := exportFigure(t).Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("saved file is empty")
	}
}

func TestSaveErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		path string
		want errors.Code
	}{
		{"", errors.ErrCodeInvalidPath},
		{filepath.Join(dir, "figure.gif"), errors.ErrCodeInvalidFormat},
		{filepath.Join(dir, "missing", "figure.png"), errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		if err := exportFigure(t).Save(tt.path); !errors.Is(err, tt.want) {
			t.Errorf("Save(%q) error = %v, want %v", tt.path, err, tt.want)
		}
	}
}
