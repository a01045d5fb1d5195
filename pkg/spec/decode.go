package spec

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/plotspec/pkg/errors"
)

// FromValue decodes a generic grid value, as produced by a JSON, YAML or
// TOML decoder, into a Grid.
//
// A flat list of cells becomes a single column. A list of lists becomes rows
// of cells. A cell is null, an empty mapping (blank) or a cell mapping.
// Lists nested deeper than two levels fail with ErrCodeDimensionality.
func FromValue(v any) (Grid, error) {
	items, ok := asList(v)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "grid must be a list, got %s", typeName(v))
	}
	if len(items) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "grid has no cells")
	}

	nested := 0
	for _, it := range items {
		if _, isList := asList(it); isList {
			nested++
		}
	}

	switch nested {
	case 0:
		cells := make([]*Cell, len(items))
		for i, it := range items {
			c, err := decodeCell(it)
			if err != nil {
				return nil, errors.Within(err, "cell[%d][0]", i)
			}
			cells[i] = c
		}
		return Column(cells...), nil
	case len(items):
		g := make(Grid, len(items))
		for r, it := range items {
			row, _ := asList(it)
			g[r] = make([]*Cell, len(row))
			for c, cv := range row {
				if _, isList := asList(cv); isList {
					return nil, errors.New(errors.ErrCodeDimensionality,
						"grid has more than 2 dimensions (cell[%d][%d] is a list)", r, c)
				}
				cell, err := decodeCell(cv)
				if err != nil {
					return nil, errors.Within(err, "cell[%d][%d]", r, c)
				}
				g[r][c] = cell
			}
		}
		return g, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "grid mixes rows and cells at the top level")
	}
}

// DecodeDocument decodes a generic document value. The value is either a
// mapping with a "grid" (or "subplots") entry and an optional "figure"
// mapping, or a bare grid list.
func DecodeDocument(v any) (*Document, error) {
	if _, isList := asList(v); isList {
		g, err := FromValue(v)
		if err != nil {
			return nil, err
		}
		return &Document{Grid: g}, nil
	}

	m, ok := asMap(v)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document must be a mapping or a list, got %s", typeName(v))
	}
	if err := checkKeys(m, "document", "grid", "subplots", "figure"); err != nil {
		return nil, err
	}

	gv, _, found := lookup(m, "grid", "subplots")
	if !found {
		return nil, errors.New(errors.ErrCodeMissingField, "document has no grid")
	}
	g, err := FromValue(gv)
	if err != nil {
		return nil, err
	}

	doc := &Document{Grid: g}
	if fv, ok := m["figure"]; ok {
		fig, err := decodeFigure(fv)
		if err != nil {
			return nil, errors.Within(err, "figure")
		}
		doc.Figure = fig
	}
	return doc, nil
}

func decodeFigure(v any) (Figure, error) {
	var fig Figure
	m, ok := asMap(v)
	if !ok {
		return fig, errors.New(errors.ErrCodeInvalidInput, "figure must be a mapping, got %s", typeName(v))
	}
	if err := checkKeys(m, "figure", "width", "height", "axis_interval", "dpi", "layout", "options"); err != nil {
		return fig, err
	}

	for key, dst := range map[string]*float64{
		"width":         &fig.Width,
		"height":        &fig.Height,
		"axis_interval": &fig.AxisInterval,
	} {
		if raw, ok := m[key]; ok {
			f, ok := AsFloat(raw)
			if !ok {
				return fig, errors.New(errors.ErrCodeInvalidInput, "%s must be a number, got %s", key, typeName(raw))
			}
			*dst = f
		}
	}
	if raw, ok := m["dpi"]; ok {
		n, ok := AsInt(raw)
		if !ok {
			return fig, errors.New(errors.ErrCodeInvalidInput, "dpi must be an integer, got %v", raw)
		}
		fig.DPI = n
	}
	if raw, ok := m["layout"]; ok {
		s, ok := AsString(raw)
		if !ok {
			return fig, errors.New(errors.ErrCodeInvalidInput, "layout must be a string, got %s", typeName(raw))
		}
		fig.Layout = s
	}
	if raw, ok := m["options"]; ok {
		opts, err := decodeOptions(raw)
		if err != nil {
			return fig, errors.Within(err, "options")
		}
		fig.Options = opts
	}
	return fig, nil
}

func decodeCell(v any) (*Cell, error) {
	if v == nil {
		return nil, nil
	}
	m, ok := asMap(v)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cell must be a mapping or null, got %s", typeName(v))
	}
	if len(m) == 0 {
		return nil, nil
	}
	if err := checkKeys(m, "cell", "yaxes", "xlim", "xlabel", "title"); err != nil {
		return nil, err
	}

	c := &Cell{}
	if raw, ok := m["yaxes"]; ok && raw != nil {
		axes, ok := asList(raw)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "yaxes must be a list, got %s", typeName(raw))
		}
		for i, av := range axes {
			a, err := decodeAxis(av)
			if err != nil {
				return nil, errors.Within(err, "yaxes[%d]", i)
			}
			c.YAxes = append(c.YAxes, a)
		}
	}
	if len(c.YAxes) == 0 {
		return nil, errors.New(errors.ErrCodeMissingField, "cell has no yaxes")
	}

	var err error
	if c.XLim, err = optionalLimits(m, "xlim"); err != nil {
		return nil, err
	}
	if c.XLabel, err = optionalString(m, "xlabel"); err != nil {
		return nil, err
	}
	if c.Title, err = optionalString(m, "title"); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeAxis(v any) (Axis, error) {
	var a Axis
	m, ok := asMap(v)
	if !ok {
		return a, errors.New(errors.ErrCodeInvalidInput, "axis must be a mapping, got %s", typeName(v))
	}
	if err := checkKeys(m, "axis", "lines", "series", "ylabel", "ylim", "grid", "legend"); err != nil {
		return a, err
	}

	raw, key, found := lookup(m, "lines", "series")
	if !found || raw == nil {
		return a, errors.New(errors.ErrCodeMissingField, "axis has no lines")
	}
	items, ok := asList(raw)
	if !ok {
		return a, errors.New(errors.ErrCodeInvalidInput, "%s must be a list, got %s", key, typeName(raw))
	}
	for i, sv := range items {
		s, err := decodeSeries(sv)
		if err != nil {
			return a, errors.Within(err, "%s[%d]", key, i)
		}
		a.Series = append(a.Series, s)
	}

	var err error
	if a.YLabel, err = optionalString(m, "ylabel"); err != nil {
		return a, err
	}
	if a.YLim, err = optionalLimits(m, "ylim"); err != nil {
		return a, err
	}
	if raw, ok := m["grid"]; ok && raw != nil {
		if a.Grid, err = decodeGridLines(raw); err != nil {
			return a, errors.Within(err, "grid")
		}
	}
	if raw, ok := m["legend"]; ok && raw != nil {
		if a.Legend, err = decodeLegend(raw); err != nil {
			return a, errors.Within(err, "legend")
		}
	}
	return a, nil
}

func decodeSeries(v any) (Series, error) {
	var s Series
	m, ok := asMap(v)
	if !ok {
		return s, errors.New(errors.ErrCodeInvalidInput, "series must be a mapping, got %s", typeName(v))
	}
	if err := checkKeys(m, "series", "type", "kind", "x", "y", "spec", "style"); err != nil {
		return s, err
	}

	if raw, key, found := lookup(m, "type", "kind"); found && raw != nil {
		name, ok := AsString(raw)
		if !ok {
			return s, errors.New(errors.ErrCodeInvalidInput, "%s must be a string, got %s", key, typeName(raw))
		}
		s.Kind = Kind(strings.TrimSpace(name))
	}

	raw, ok := m["y"]
	if !ok || raw == nil {
		return s, errors.New(errors.ErrCodeMissingField, "series has no y values")
	}
	y, err := decodeFloats(raw)
	if err != nil {
		return s, errors.Within(err, "y")
	}
	s.Y = y

	if raw, ok := m["x"]; ok && raw != nil {
		if s.X, err = decodeFloats(raw); err != nil {
			return s, errors.Within(err, "x")
		}
	}

	if raw, _, found := lookup(m, "spec", "style"); found && raw != nil {
		if s.Style, err = decodeOptions(raw); err != nil {
			return s, errors.Within(err, "spec")
		}
	}
	return s, nil
}

func decodeLegend(v any) (*Legend, error) {
	if b, ok := AsBool(v); ok {
		return &Legend{Visible: b, Location: LocBest}, nil
	}
	m, ok := asMap(v)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "legend must be a mapping or a bool, got %s", typeName(v))
	}
	if err := checkKeys(m, "legend", "visible", "loc", "location"); err != nil {
		return nil, err
	}

	l := &Legend{Visible: true, Location: LocBest}
	if raw, ok := m["visible"]; ok {
		b, ok := AsBool(raw)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "visible must be a bool, got %s", typeName(raw))
		}
		l.Visible = b
	}
	if raw, _, found := lookup(m, "loc", "location"); found && raw != nil {
		loc, err := decodeLocation(raw)
		if err != nil {
			return nil, err
		}
		l.Location = loc
	}
	return l, nil
}

func decodeLocation(v any) (Location, error) {
	if s, ok := AsString(v); ok {
		return ParseLocation(s)
	}
	if n, ok := AsInt(v); ok {
		return LocationFromCode(n)
	}
	return LocBest, errors.New(errors.ErrCodeInvalidLocation, "legend location must be a name or a code, got %s", typeName(v))
}

// gridStyleKeys are forwarded to the surface as grid line style.
var gridStyleKeys = []string{"color", "c", "linestyle", "ls", "linewidth", "lw", "alpha"}

func decodeGridLines(v any) (*GridLines, error) {
	if b, ok := AsBool(v); ok {
		return &GridLines{Visible: b, Axis: GridBoth}, nil
	}
	m, ok := asMap(v)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "grid must be a mapping or a bool, got %s", typeName(v))
	}

	g := &GridLines{Visible: true, Axis: GridBoth}
	style := Options{}
	for _, key := range sortedKeys(m) {
		raw := m[key]
		switch key {
		case "visible", "b":
			b, ok := AsBool(raw)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidInput, "%s must be a bool, got %s", key, typeName(raw))
			}
			g.Visible = b
		case "axis":
			s, _ := AsString(raw)
			switch GridAxis(s) {
			case GridBoth, GridX, GridY:
				g.Axis = GridAxis(s)
			default:
				return nil, errors.New(errors.ErrCodeInvalidInput, "grid axis must be both, x or y, got %v", raw)
			}
		case "which":
			if s, _ := AsString(raw); s != "major" {
				return nil, errors.New(errors.ErrCodeInvalidInput, "only major grid lines are supported, got %v", raw)
			}
		default:
			if !slices.Contains(gridStyleKeys, key) {
				return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown grid option %q", key)
			}
			val, ok := normalizeOption(raw)
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidStyle, "grid option %q must be a scalar, got %s", key, typeName(raw))
			}
			if val != nil {
				style[key] = val
			}
		}
	}
	if len(style) > 0 {
		g.Style = style
	}
	return g, nil
}

func decodeOptions(v any) (Options, error) {
	m, ok := asMap(v)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "options must be a mapping, got %s", typeName(v))
	}
	opts := make(Options, len(m))
	for k, raw := range m {
		val, ok := normalizeOption(raw)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidStyle, "option %q must be a string, number or bool, got %s", k, typeName(raw))
		}
		if val != nil {
			opts[k] = val
		}
	}
	return opts, nil
}

func decodeFloats(v any) ([]float64, error) {
	items, ok := asList(v)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "values must be a list of numbers, got %s", typeName(v))
	}
	out := make([]float64, len(items))
	for i, it := range items {
		f, ok := AsFloat(it)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "value %d is not a number: %v", i, it)
		}
		out[i] = f
	}
	return out, nil
}

func decodeLimits(v any) (*Limits, error) {
	if items, ok := asList(v); ok {
		if len(items) != 2 {
			return nil, errors.New(errors.ErrCodeInvalidLimits, "limits pair must have 2 values, got %d", len(items))
		}
		l := &Limits{Form: FormPair}
		for i, dst := range []**float64{&l.Low, &l.High} {
			if items[i] == nil {
				continue
			}
			f, ok := AsFloat(items[i])
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidLimits, "limit %v is not a number", items[i])
			}
			*dst = Bound(f)
		}
		return l, l.Validate()
	}

	m, ok := asMap(v)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidLimits, "limits must be a pair or a mapping, got %s", typeName(v))
	}
	if err := checkKeys(m, "limits", append(append([]string(nil), lowKeys...), highKeys...)...); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidLimits, err, "limits")
	}
	l := &Limits{Form: FormNamed}
	for _, side := range []struct {
		keys []string
		dst  **float64
	}{{lowKeys, &l.Low}, {highKeys, &l.High}} {
		var set []string
		for _, k := range side.keys {
			if _, ok := m[k]; ok {
				set = append(set, k)
			}
		}
		if len(set) > 1 {
			return nil, errors.New(errors.ErrCodeInvalidLimits, "limits set the same bound twice (%s)", strings.Join(set, ", "))
		}
		if len(set) == 0 || m[set[0]] == nil {
			continue
		}
		f, ok := AsFloat(m[set[0]])
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidLimits, "%s is not a number: %v", set[0], m[set[0]])
		}
		*side.dst = Bound(f)
	}
	return l, l.Validate()
}

func optionalLimits(m map[string]any, key string) (*Limits, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, nil
	}
	l, err := decodeLimits(raw)
	if err != nil {
		return nil, errors.Within(err, "%s", key)
	}
	return l, nil
}

func optionalString(m map[string]any, key string) (string, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := AsString(raw)
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidInput, "%s must be a string, got %s", key, typeName(raw))
	}
	return s, nil
}

// checkKeys rejects keys outside allowed so typos fail loudly instead of
// being ignored.
func checkKeys(m map[string]any, what string, allowed ...string) error {
	for _, k := range sortedKeys(m) {
		if !slices.Contains(allowed, k) {
			return errors.New(errors.ErrCodeInvalidInput, "unknown %s key %q", what, k)
		}
	}
	return nil
}

func lookup(m map[string]any, keys ...string) (any, string, bool) {
	return Options(m).Lookup(keys...)
}

func sortedKeys(m map[string]any) []string {
	return Options(m).Keys()
}

// asList accepts the list shapes produced by the supported decoders.
// BurntSushi/toml decodes arrays of tables as []map[string]any.
func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	case []float64:
		out := make([]any, len(l))
		for i, f := range l {
			out[i] = f
		}
		return out, true
	}
	return nil, false
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Options:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	}
	if _, ok := AsFloat(v); ok {
		return "number"
	}
	if _, ok := asList(v); ok {
		return "list"
	}
	if _, ok := asMap(v); ok {
		return "mapping"
	}
	return fmt.Sprintf("%T", v)
}
