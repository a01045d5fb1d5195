package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/plotspec/pkg/pipeline"
)

// captureStdout redirects user-facing output to a buffer for the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestPrintStats(t *testing.T) {
	stats := pipeline.Stats{Rows: 2, Cols: 3, Blank: 1, Series: 7, RenderTime: 400 * time.Millisecond, ExportTime: 12 * time.Millisecond}

	tests := []struct {
		name   string
		stats  pipeline.Stats
		cached bool
		want   []string
	}{
		{"fresh", stats, false, []string{"2×3 grid", "1 blank", "7 series", "fresh 412ms"}},
		{"cached", stats, true, []string{"2×3 grid", "cached"}},
		{"single series", pipeline.Stats{Rows: 1, Cols: 1, Series: 1}, false, []string{"1×1 grid", "1 series"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureStdout(t)
			printStats(tt.stats, tt.cached)
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("printStats() = %q, missing %q", out.String(), w)
				}
			}
			if tt.cached && strings.Contains(out.String(), "fresh") {
				t.Errorf("cached stats should not report a render time: %q", out.String())
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestPrintStatus(t *testing.T) {
	out := captureStdout(t)
	printSuccess("Rendered %s", "fig.yaml")
	printFile("fig.png")
	printKeyValue("grid", "2 × 1")

	for _, w := range []string{iconSuccess + " Rendered fig.yaml", iconArrow + " fig.png", "grid", "2 × 1"} {
		if !strings.Contains(out.String(), w) {
			t.Errorf("output %q missing %q", out.String(), w)
		}
	}
}
