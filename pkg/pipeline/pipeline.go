// Package pipeline provides the load → validate → render → export pipeline
// for plotspec documents.
//
// The CLI and library users share this package so that defaults, caching
// and logging behave the same everywhere.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: Read a JSON, YAML or TOML document from a file or from memory
//  2. Validate: Check the grid structure and every series
//  3. Render: Draw the grid with [subplots.RenderDocument]
//  4. Export: Encode the figure in each requested format
//
// Encoded artifacts are cached by the hash of the document source and the
// effective render settings. When every requested format is cached the
// render and export stages are skipped.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "figure.yaml",
//	    Formats: []string{"png", "svg"},
//	})
//	if err != nil {
//	    return err
//	}
//	png := result.Artifacts["png"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/plotspec/pkg/cache"
	"github.com/matzehuels/plotspec/pkg/errors"
	"github.com/matzehuels/plotspec/pkg/spec"
	"github.com/matzehuels/plotspec/pkg/subplots"
	"github.com/matzehuels/plotspec/pkg/surface"
)

// =============================================================================
// Default Values
// =============================================================================

// DefaultFormat is the export format used when none is requested.
const DefaultFormat = surface.FormatPNG

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
//
// Render settings left at their zero value are taken from the document's
// figure table, then from the [subplots] defaults.
type Options struct {
	// Path is the document file. Its extension selects the decoder.
	Path string `json:"path,omitempty"`

	// Source is an in-memory document, used when Path is empty.
	Source       []byte      `json:"-"`
	SourceFormat spec.Format `json:"source_format,omitempty"`

	Formats []string `json:"formats,omitempty"`

	CellWidth    float64 `json:"cell_width,omitempty"`
	CellHeight   float64 `json:"cell_height,omitempty"`
	AxisInterval float64 `json:"axis_interval,omitempty"`
	DPI          int     `json:"dpi,omitempty"`
	Layout       string  `json:"layout,omitempty"`

	// Refresh bypasses cached artifacts; fresh results are still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the decoded document.
	Document *spec.Document

	// DocumentHash is the content hash of the document source.
	DocumentHash string

	// Figure is the rendered figure. It is nil when every artifact came
	// from the cache.
	Figure *surface.Figure

	// Artifacts contains encoded outputs keyed by canonical format name.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows, Cols int
	Cells      int
	Blank      int
	Series     int
	LoadTime   time.Duration
	RenderTime time.Duration
	ExportTime time.Duration
}

// CacheInfo tracks cache hits for the export stage.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats normalizes formats to their canonical names and drops
// duplicates, keeping the first occurrence.
func ValidateFormats(formats []string) ([]string, error) {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		canon, err := surface.NormalizeFormat(f)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, canon) {
			out = append(out, canon)
		}
	}
	return out, nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks that a document source is set.
func (o *Options) ValidateForLoad() error {
	if o.Path == "" && len(o.Source) == 0 {
		return errors.New(errors.ErrCodeEmptyInput, "a document path or source is required")
	}
	if o.Path == "" && o.SourceFormat == "" {
		return errors.New(errors.ErrCodeMissingField, "source_format is required for in-memory documents")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ValidateForRender applies format defaults and checks the render settings.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	formats, err := ValidateFormats(o.Formats)
	if err != nil {
		return err
	}
	o.Formats = formats

	for name, v := range map[string]float64{"cell width": o.CellWidth, "cell height": o.CellHeight, "axis interval": o.AxisInterval} {
		if v < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "%s must not be negative, got %g", name, v)
		}
	}
	if o.DPI < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "dpi must not be negative, got %d", o.DPI)
	}
	if o.Layout != "" {
		l, err := surface.ParseLayout(o.Layout)
		if err != nil {
			return err
		}
		o.Layout = string(l)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// RenderOptions returns the subplots options for the settings that
// override the document.
func (o *Options) RenderOptions() []subplots.Option {
	overrides := spec.Figure{
		Width:        o.CellWidth,
		Height:       o.CellHeight,
		AxisInterval: o.AxisInterval,
		DPI:          o.DPI,
		Layout:       o.Layout,
	}
	return append(subplots.FromFigure(overrides), subplots.WithLogger(o.Logger))
}

// ArtifactKeyOpts returns cache key options for one export format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:       format,
		CellWidth:    o.CellWidth,
		CellHeight:   o.CellHeight,
		AxisInterval: o.AxisInterval,
		DPI:          o.DPI,
		Layout:       o.Layout,
	}
}
