package spec

import (
	"fmt"
	"math"

	"github.com/matzehuels/plotspec/pkg/errors"
)

// LimitsForm records how limits were written.
type LimitsForm int

const (
	// FormPair is the [low, high] sequence form.
	FormPair LimitsForm = iota
	// FormNamed is the {low, high} mapping form, where either bound may be
	// omitted.
	FormNamed
)

func (f LimitsForm) String() string {
	if f == FormNamed {
		return "named"
	}
	return "pair"
}

// Limits is the range of an axis. A nil bound keeps the automatic value
// computed from the data.
//
// Low greater than High is allowed and inverts the axis.
type Limits struct {
	Form      LimitsForm
	Low, High *float64
}

// Pair returns pair-form limits with both bounds set.
func Pair(low, high float64) *Limits {
	return &Limits{Form: FormPair, Low: &low, High: &high}
}

// Named returns named-form limits. Either bound may be nil.
func Named(low, high *float64) *Limits {
	return &Limits{Form: FormNamed, Low: low, High: high}
}

// Bound returns a pointer to v, for use with Named.
func Bound(v float64) *float64 { return &v }

// Resolve merges the limits with automatic bounds.
func (l *Limits) Resolve(autoLow, autoHigh float64) (low, high float64) {
	low, high = autoLow, autoHigh
	if l == nil {
		return low, high
	}
	if l.Low != nil {
		low = *l.Low
	}
	if l.High != nil {
		high = *l.High
	}
	return low, high
}

// Inverted reports whether both bounds are set and Low exceeds High.
func (l *Limits) Inverted() bool {
	return l != nil && l.Low != nil && l.High != nil && *l.Low > *l.High
}

// Validate checks that every set bound is finite.
func (l *Limits) Validate() error {
	if l == nil {
		return nil
	}
	for _, b := range []*float64{l.Low, l.High} {
		if b != nil && (math.IsNaN(*b) || math.IsInf(*b, 0)) {
			return errors.New(errors.ErrCodeInvalidLimits, "limit %v is not a finite number", *b)
		}
	}
	return nil
}

func (l *Limits) String() string {
	if l == nil {
		return "auto"
	}
	f := func(b *float64) string {
		if b == nil {
			return "auto"
		}
		return fmt.Sprintf("%g", *b)
	}
	return fmt.Sprintf("[%s, %s]", f(l.Low), f(l.High))
}

// lowKeys and highKeys are the accepted names of the named form. The x and y
// spellings follow the keyword arguments of matplotlib's set_xlim and
// set_ylim.
var (
	lowKeys  = []string{"low", "left", "bottom", "min", "xmin", "ymin"}
	highKeys = []string{"high", "right", "top", "max", "xmax", "ymax"}
)
