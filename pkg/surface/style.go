package surface

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/plotspec/pkg/errors"
	"github.com/matzehuels/plotspec/pkg/spec"
)

// Default series style, in points.
const (
	defaultLineWidth  = 1.5
	defaultMarkerSize = 6
	defaultFillAlpha  = 0.35
)

// Style is the parsed form of a series' style options.
//
// Recognized keys are label, color (c), alpha, linewidth (lw),
// linestyle (ls), marker, markersize (ms, s) and fillcolor. Any other key
// fails with errors.ErrCodeInvalidStyle.
type Style struct {
	Label string

	// Color is nil when the series takes the next color of the axes' cycle.
	Color color.Color
	Alpha float64

	LineWidth vg.Length
	Dashes    []vg.Length
	NoLine    bool

	// Marker is nil when no marker was requested.
	Marker     draw.GlyphDrawer
	NoMarker   bool
	MarkerSize vg.Length

	FillColor color.Color
}

// styleAliases maps every accepted key to its canonical name.
var styleAliases = map[string]string{
	"label":      "label",
	"color":      "color",
	"c":          "color",
	"alpha":      "alpha",
	"linewidth":  "linewidth",
	"lw":         "linewidth",
	"linestyle":  "linestyle",
	"ls":         "linestyle",
	"marker":     "marker",
	"markersize": "markersize",
	"ms":         "markersize",
	"s":          "markerarea",
	"fillcolor":  "fillcolor",
}

// ParseStyle parses series style options.
func ParseStyle(o spec.Options) (Style, error) {
	st := Style{
		Alpha:      1,
		LineWidth:  vg.Points(defaultLineWidth),
		MarkerSize: vg.Points(defaultMarkerSize) / 2,
	}
	seen := make(map[string]string, len(o))
	for _, key := range o.Keys() {
		canon, ok := styleAliases[key]
		if !ok {
			return st, errors.New(errors.ErrCodeInvalidStyle, "unknown style option %q", key)
		}
		size := canon
		if canon == "markerarea" {
			size = "markersize"
		}
		if prev, dup := seen[size]; dup {
			return st, errors.New(errors.ErrCodeInvalidStyle, "style options %q and %q are aliases", prev, key)
		}
		seen[size] = key

		if err := st.set(canon, o[key]); err != nil {
			return st, errors.Within(err, "style %q", key)
		}
	}
	return st, nil
}

func (st *Style) set(canon string, v any) error {
	switch canon {
	case "label":
		s, ok := v.(string)
		if !ok {
			return errors.New(errors.ErrCodeInvalidStyle, "label must be a string, got %v", v)
		}
		st.Label = s
	case "color":
		c, err := ParseColor(v)
		if err != nil {
			return err
		}
		st.Color = c
	case "fillcolor":
		c, err := ParseColor(v)
		if err != nil {
			return err
		}
		st.FillColor = c
	case "alpha":
		f, err := number(v)
		if err != nil {
			return err
		}
		if f < 0 || f > 1 {
			return errors.New(errors.ErrCodeInvalidStyle, "alpha must be within [0, 1], got %v", f)
		}
		st.Alpha = f
	case "linewidth":
		f, err := nonNegative(v)
		if err != nil {
			return err
		}
		st.LineWidth = vg.Points(f)
	case "linestyle":
		s, ok := v.(string)
		if !ok {
			return errors.New(errors.ErrCodeInvalidStyle, "linestyle must be a string, got %v", v)
		}
		dashes, none, err := parseDashes(s)
		if err != nil {
			return err
		}
		st.Dashes, st.NoLine = dashes, none
	case "marker":
		s, ok := v.(string)
		if !ok {
			return errors.New(errors.ErrCodeInvalidStyle, "marker must be a string, got %v", v)
		}
		g, none, err := parseMarker(s)
		if err != nil {
			return err
		}
		st.Marker, st.NoMarker = g, none
	case "markersize":
		f, err := nonNegative(v)
		if err != nil {
			return err
		}
		st.MarkerSize = vg.Points(f) / 2
	case "markerarea":
		f, err := nonNegative(v)
		if err != nil {
			return err
		}
		st.MarkerSize = vg.Points(math.Sqrt(f)) / 2
	}
	return nil
}

func number(v any) (float64, error) {
	f, ok := spec.AsFloat(v)
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidStyle, "expected a number, got %v", v)
	}
	return f, nil
}

func nonNegative(v any) (float64, error) {
	f, err := number(v)
	if err != nil {
		return 0, err
	}
	if f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, errors.New(errors.ErrCodeInvalidStyle, "expected a non-negative number, got %v", f)
	}
	return f, nil
}

// lineStyle returns the stroke for a series drawn in c.
func (st Style) lineStyle(c color.Color) draw.LineStyle {
	if st.NoLine {
		return draw.LineStyle{Color: color.Transparent}
	}
	ls := draw.LineStyle{Color: c, Width: st.LineWidth}
	for _, d := range st.Dashes {
		ls.Dashes = append(ls.Dashes, d*st.LineWidth/vg.Points(1))
	}
	return ls
}

// glyphStyle returns the marker for a series drawn in c, falling back to
// shape when the style names none.
func (st Style) glyphStyle(c color.Color, shape draw.GlyphDrawer) draw.GlyphStyle {
	if st.Marker != nil {
		shape = st.Marker
	}
	if st.NoMarker {
		shape = nil
	}
	return draw.GlyphStyle{Color: c, Radius: st.MarkerSize, Shape: shape}
}

// withAlpha scales the opacity of c by alpha.
func withAlpha(c color.Color, alpha float64) color.Color {
	if c == nil || alpha >= 1 {
		return c
	}
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	nc.A = uint8(math.Round(float64(nc.A) * alpha))
	return nc
}

// tab10 is matplotlib's default color cycle.
var tab10 = mustHex(
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
)

var tabNames = []string{"blue", "orange", "green", "red", "purple", "brown", "pink", "gray", "olive", "cyan"}

// baseColors are matplotlib's single-letter colors.
var baseColors = map[string]color.Color{
	"b": color.NRGBA{0, 0, 255, 255},
	"g": color.NRGBA{0, 128, 0, 255},
	"r": color.NRGBA{255, 0, 0, 255},
	"c": color.NRGBA{0, 191, 191, 255},
	"m": color.NRGBA{191, 0, 191, 255},
	"y": color.NRGBA{191, 191, 0, 255},
	"k": color.Black,
	"w": color.White,
}

func mustHex(hexes ...string) []color.Color {
	out := make([]color.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}

// ParseColor parses a color option. Accepted forms are matplotlib
// single letters ("r"), cycle references ("C0" to "C9"), "tab:" names,
// CSS/X11 names ("steelblue"), hex ("#1f77b4", "#abc", "#1f77b480"),
// gray levels as numeric strings ("0.5") and "none".
func ParseColor(v any) (color.Color, error) {
	s, ok := v.(string)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidStyle, "color must be a string, got %v", v)
	}
	name := strings.ToLower(strings.TrimSpace(s))

	if c, ok := baseColors[name]; ok {
		return c, nil
	}
	if len(name) == 2 && name[0] == 'c' && name[1] >= '0' && name[1] <= '9' {
		return tab10[name[1]-'0'], nil
	}
	if tab, ok := strings.CutPrefix(name, "tab:"); ok {
		for i, n := range tabNames {
			if n == tab || (tab == "grey" && n == "gray") {
				return tab10[i], nil
			}
		}
	}
	if strings.HasPrefix(name, "#") {
		return parseHex(name)
	}
	if name == "none" || name == "transparent" {
		return color.Transparent, nil
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	if f, err := strconv.ParseFloat(name, 64); err == nil && f >= 0 && f <= 1 {
		return color.Gray{Y: uint8(math.Round(f * 255))}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown color %q", s)
}

func parseHex(h string) (color.Color, error) {
	switch len(h) {
	case 4, 7:
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidStyle, err, "invalid hex color %q", h)
		}
		return c, nil
	case 9:
		c, err := colorful.Hex(h[:7])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidStyle, err, "invalid hex color %q", h)
		}
		a, err := strconv.ParseUint(h[7:], 16, 8)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidStyle, err, "invalid alpha in hex color %q", h)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "invalid hex color %q", h)
}

// parseDashes converts a matplotlib line style to a dash pattern for a
// one point wide line.
func parseDashes(s string) (dashes []vg.Length, none bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "-", "solid":
		return nil, false, nil
	case "--", "dashed":
		return []vg.Length{vg.Points(3.7), vg.Points(1.6)}, false, nil
	case ":", "dotted":
		return []vg.Length{vg.Points(1), vg.Points(1.65)}, false, nil
	case "-.", "dashdot":
		return []vg.Length{vg.Points(6.4), vg.Points(1.6), vg.Points(1), vg.Points(1.6)}, false, nil
	case "none", "", " ":
		return nil, true, nil
	}
	return nil, false, errors.New(errors.ErrCodeInvalidStyle, "unknown linestyle %q", s)
}

func parseMarker(s string) (g draw.GlyphDrawer, none bool, err error) {
	switch strings.TrimSpace(s) {
	case "o":
		return draw.CircleGlyph{}, false, nil
	case ".":
		return pointGlyph{}, false, nil
	case "s":
		return draw.BoxGlyph{}, false, nil
	case "^":
		return draw.PyramidGlyph{}, false, nil
	case "v":
		return downTriangleGlyph{}, false, nil
	case "+":
		return draw.PlusGlyph{}, false, nil
	case "x":
		return draw.CrossGlyph{}, false, nil
	case "*":
		return starGlyph{}, false, nil
	case "D":
		return diamondGlyph{}, false, nil
	case "none", "None", "":
		return nil, true, nil
	}
	return nil, false, errors.New(errors.ErrCodeInvalidStyle, "unknown marker %q", s)
}

// pointGlyph is a small filled circle.
type pointGlyph struct{}

func (pointGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	sty.Radius /= 2
	draw.CircleGlyph{}.DrawGlyph(c, sty, pt)
}

// downTriangleGlyph is a filled triangle pointing down.
type downTriangleGlyph struct{}

func (downTriangleGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	r := sty.Radius
	var p vg.Path
	p.Move(vg.Point{X: pt.X, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X - r*vg.Length(math.Sqrt(3)/2), Y: pt.Y + r/2})
	p.Line(vg.Point{X: pt.X + r*vg.Length(math.Sqrt(3)/2), Y: pt.Y + r/2})
	p.Close()
	c.Fill(p)
}

// diamondGlyph is a filled square rotated by 45 degrees.
type diamondGlyph struct{}

func (diamondGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	r := sty.Radius
	var p vg.Path
	p.Move(vg.Point{X: pt.X, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y})
	p.Line(vg.Point{X: pt.X, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X - r, Y: pt.Y})
	p.Close()
	c.Fill(p)
}

// starGlyph overlays a plus and a cross.
type starGlyph struct{}

func (starGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	draw.PlusGlyph{}.DrawGlyph(c, sty, pt)
	draw.CrossGlyph{}.DrawGlyph(c, sty, pt)
}
