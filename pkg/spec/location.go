package spec

import (
	"strings"

	"github.com/matzehuels/plotspec/pkg/errors"
)

// Location is a legend placement. Values and names match matplotlib's
// legend location codes.
type Location int

const (
	LocBest Location = iota
	LocUpperRight
	LocUpperLeft
	LocLowerLeft
	LocLowerRight
	LocRight
	LocCenterLeft
	LocCenterRight
	LocLowerCenter
	LocUpperCenter
	LocCenter
)

var locationNames = []string{
	LocBest:        "best",
	LocUpperRight:  "upper right",
	LocUpperLeft:   "upper left",
	LocLowerLeft:   "lower left",
	LocLowerRight:  "lower right",
	LocRight:       "right",
	LocCenterLeft:  "center left",
	LocCenterRight: "center right",
	LocLowerCenter: "lower center",
	LocUpperCenter: "upper center",
	LocCenter:      "center",
}

func (l Location) String() string {
	if l < 0 || int(l) >= len(locationNames) {
		return "unknown"
	}
	return locationNames[l]
}

// Valid reports whether l is a known location.
func (l Location) Valid() bool {
	return l >= 0 && int(l) < len(locationNames)
}

// ParseLocation parses a location name such as "upper left".
// Names are case-insensitive; underscores and hyphens are accepted in place
// of spaces.
func ParseLocation(s string) (Location, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", " ", "-", " ").Replace(norm)
	for i, name := range locationNames {
		if norm == name {
			return Location(i), nil
		}
	}
	return LocBest, errors.New(errors.ErrCodeInvalidLocation, "unknown legend location %q", s)
}

// LocationFromCode converts a numeric matplotlib location code.
func LocationFromCode(code int) (Location, error) {
	l := Location(code)
	if !l.Valid() {
		return LocBest, errors.New(errors.ErrCodeInvalidLocation, "unknown legend location code %d", code)
	}
	return l, nil
}
