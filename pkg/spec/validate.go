package spec

import (
	"github.com/matzehuels/plotspec/pkg/errors"
)

// Validate checks the structural rules a grid must satisfy before it is
// rendered:
//   - the grid has at least one position
//   - every row has the same number of positions
//   - every non-blank cell has at least one axis
//   - every series has y values, and x values of the same length if any
//   - all values and limits are finite
//
// Errors carry the position of the offending element, for example
// "cell[1][0]: yaxes[1]: lines[0]".
func Validate(g Grid) error {
	if g.Size() == 0 {
		return errors.New(errors.ErrCodeEmptyInput, "grid has no cells")
	}
	cols := len(g[0])
	for r, row := range g {
		if len(row) != cols {
			return errors.New(errors.ErrCodeInvalidInput,
				"grid is not rectangular: row %d has %d cells, row 0 has %d", r, len(row), cols)
		}
	}
	for r, row := range g {
		for c, cell := range row {
			if err := ValidateCell(cell); err != nil {
				return errors.Within(err, "cell[%d][%d]", r, c)
			}
		}
	}
	return nil
}

// ValidateCell checks a single cell. Blank cells are always valid.
func ValidateCell(c *Cell) error {
	if c.Blank() {
		return nil
	}
	if len(c.YAxes) == 0 {
		return errors.New(errors.ErrCodeMissingField, "cell has no yaxes")
	}
	if err := c.XLim.Validate(); err != nil {
		return errors.Within(err, "xlim")
	}
	for i, a := range c.YAxes {
		if err := ValidateAxis(a); err != nil {
			return errors.Within(err, "yaxes[%d]", i)
		}
	}
	return nil
}

// ValidateAxis checks one axis and its series.
func ValidateAxis(a Axis) error {
	if err := a.YLim.Validate(); err != nil {
		return errors.Within(err, "ylim")
	}
	if a.Legend != nil && !a.Legend.Location.Valid() {
		return errors.New(errors.ErrCodeInvalidLocation, "legend location %d is not valid", int(a.Legend.Location))
	}
	if a.Grid != nil {
		switch a.Grid.Axis {
		case "", GridBoth, GridX, GridY:
		default:
			return errors.New(errors.ErrCodeInvalidInput, "grid axis must be both, x or y, got %q", a.Grid.Axis)
		}
	}
	for i, s := range a.Series {
		if err := ValidateSeries(s); err != nil {
			return errors.Within(err, "lines[%d]", i)
		}
	}
	return nil
}

// ValidateSeries checks one series.
func ValidateSeries(s Series) error {
	if len(s.Y) == 0 {
		return errors.New(errors.ErrCodeMissingField, "series has no y values")
	}
	if len(s.X) > 0 && len(s.X) != len(s.Y) {
		return errors.New(errors.ErrCodeInvalidInput, "x has %d values but y has %d", len(s.X), len(s.Y))
	}
	if err := errors.ValidateFinite("y", s.Y); err != nil {
		return err
	}
	return errors.ValidateFinite("x", s.X)
}
