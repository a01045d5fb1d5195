package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple file", "figure.png", false},
		{"nested path", "out/figures/figure.svg", false},
		{"absolute path", "/tmp/figure.pdf", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 1100), true},
		{"null byte", "fig\x00.png", true},
		{"newline", "fig\n.png", true},
		{"directory", "out/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateOutputPath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateFinite(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		wantErr bool
	}{
		{"empty", nil, false},
		{"finite", []float64{1, -2, 3.5}, false},
		{"nan", []float64{1, math.NaN()}, true},
		{"positive inf", []float64{math.Inf(1)}, true},
		{"negative inf", []float64{0, math.Inf(-1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFinite("y", tt.values)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFinite(%v) error = %v, wantErr %v", tt.values, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFiniteNamesIndex(t *testing.T) {
	err := ValidateFinite("x", []float64{0, 1, math.NaN()})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "x[2]") {
		t.Errorf("error %q should name x[2]", err.Error())
	}
}

func TestValidatePositive(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"positive", 2, false},
		{"fraction", 0.2, false},
		{"zero", 0, true},
		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositive("width", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePositive(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeEmptyInput,
		ErrCodeDimensionality,
		ErrCodeMissingField,
		ErrCodeInvalidLimits,
		ErrCodeInvalidLocation,
		ErrCodeInvalidStyle,
		ErrCodeInvalidFormat,
		ErrCodeInvalidPath,
		ErrCodeInvalidLayoutMode,
		ErrCodeFileNotFound,
		ErrCodeUnsupportedKind,
		ErrCodeInternal,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
