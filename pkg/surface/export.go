package surface

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/matzehuels/plotspec/pkg/errors"
)

// Export formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpg"
	FormatTIFF = "tif"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatEPS  = "eps"
)

var formatAliases = map[string]string{
	"jpeg": FormatJPEG,
	"tiff": FormatTIFF,
}

var formats = []string{FormatPNG, FormatJPEG, FormatTIFF, FormatSVG, FormatPDF, FormatEPS}

// Formats returns the canonical export format names.
func Formats() []string { return slices.Clone(formats) }

// Raster reports whether format is rendered at the figure DPI.
func Raster(format string) bool {
	f, err := NormalizeFormat(format)
	return err == nil && (f == FormatPNG || f == FormatJPEG || f == FormatTIFF)
}

// NormalizeFormat returns the canonical name of an export format. It accepts
// any case, a leading dot and the aliases "jpeg" and "tiff".
func NormalizeFormat(format string) (string, error) {
	f := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
	if alias, ok := formatAliases[f]; ok {
		f = alias
	}
	if !slices.Contains(formats, f) {
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"unsupported export format %q (use %s)", format, strings.Join(formats, ", "))
	}
	return f, nil
}

// WriterTo draws the figure in the given format and returns the encoded
// result.
func (f *Figure) WriterTo(format string) (io.WriterTo, error) {
	format, err := NormalizeFormat(format)
	if err != nil {
		return nil, err
	}
	switch format {
	case FormatSVG:
		c := vgsvg.New(f.width, f.height)
		f.Draw(draw.New(c))
		return c, nil
	case FormatPDF:
		c := vgpdf.New(f.width, f.height)
		f.Draw(draw.New(c))
		return c, nil
	case FormatEPS:
		c := vgeps.New(f.width, f.height)
		f.Draw(draw.New(c))
		return c, nil
	}

	c := vgimg.NewWith(vgimg.UseWH(f.width, f.height), vgimg.UseDPI(f.dpi))
	f.Draw(draw.New(c))
	switch format {
	case FormatJPEG:
		return vgimg.JpegCanvas{Canvas: c}, nil
	case FormatTIFF:
		return vgimg.TiffCanvas{Canvas: c}, nil
	default:
		return vgimg.PngCanvas{Canvas: c}, nil
	}
}

// Save writes the figure to path. The format is chosen by the file
// extension.
func (f *Figure) Save(path string) (err error) {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}
	w, err := f.WriterTo(filepath.Ext(path))
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = w.WriteTo(out)
	return err
}
