package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/plotspec/pkg/cache"
	"github.com/matzehuels/plotspec/pkg/errors"
	"github.com/matzehuels/plotspec/pkg/observability"
	"github.com/matzehuels/plotspec/pkg/spec"
	"github.com/matzehuels/plotspec/pkg/subplots"
	"github.com/matzehuels/plotspec/pkg/surface"
)

// cacheKeyType labels artifact entries in cache hook events.
const cacheKeyType = "artifact"

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → validate → render → export pipeline
// with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	doc, hash, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Document = doc
	result.DocumentHash = hash
	result.Stats.LoadTime = time.Since(loadStart)

	// Stage 2: Validate
	if err := spec.Validate(doc.Grid); err != nil {
		return nil, err
	}
	result.Stats.count(doc.Grid)

	r.Logger.Info("loaded document",
		"rows", result.Stats.Rows,
		"cols", result.Stats.Cols,
		"series", result.Stats.Series,
		"duration", result.Stats.LoadTime)

	// Stages 3 and 4: Render and Export
	fig, artifacts, hit, err := r.RenderWithCacheInfo(ctx, doc, hash, opts, &result.Stats)
	if err != nil {
		return nil, err
	}
	result.Figure = fig
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("exported figure",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime+result.Stats.ExportTime)

	return result, nil
}

// Load reads and decodes the document named by opts and returns it with the
// hash of its source.
func (r *Runner) Load(ctx context.Context, opts Options) (*spec.Document, string, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, "", err
	}

	src, format := opts.Source, opts.SourceFormat
	name := "<source>"
	if opts.Path != "" {
		var err error
		if format, err = spec.FormatFromPath(opts.Path); err != nil {
			return nil, "", err
		}
		src, err = os.ReadFile(opts.Path)
		if os.IsNotExist(err) {
			return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", opts.Path)
		}
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", opts.Path, err)
		}
		name = opts.Path
	}

	doc, err := spec.Decode(bytes.NewReader(src), format)
	if err != nil {
		return nil, "", errors.Within(err, "%s", name)
	}
	r.Logger.Debug("decoded document", "source", name, "format", format, "bytes", len(src))
	return doc, cache.Hash(src), nil
}

// RenderWithCacheInfo renders doc and exports it in every requested format.
// When all formats are cached it returns them without rendering, with a nil
// figure and hit set. stats may be nil.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc *spec.Document, docHash string, opts Options, stats *Stats) (*surface.Figure, map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, nil, false, err
	}
	r.applyLogger(&opts)
	if stats == nil {
		stats = &Stats{}
	}

	if !opts.Refresh {
		if artifacts, ok := r.cached(ctx, docHash, opts); ok {
			return nil, artifacts, true, nil
		}
	}

	renderStart := time.Now()
	fig, _, err := subplots.RenderDocument(ctx, doc, opts.RenderOptions()...)
	if err != nil {
		return nil, nil, false, err
	}
	stats.RenderTime = time.Since(renderStart)

	exportStart := time.Now()
	artifacts, err := Export(ctx, fig, opts.Formats)
	if err != nil {
		return nil, nil, false, err
	}
	stats.ExportTime = time.Since(exportStart)

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
	}
	return fig, artifacts, false, nil
}

// cached returns every requested artifact from the cache, or false when any
// of them is missing.
func (r *Runner) cached(ctx context.Context, docHash string, opts Options) (map[string][]byte, bool) {
	hooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			hooks.OnCacheMiss(ctx, cacheKeyType)
			return nil, false
		}
		hooks.OnCacheHit(ctx, cacheKeyType)
		artifacts[format] = data
	}
	return artifacts, true
}

// Export encodes fig in each format. Formats must be canonical names.
func Export(ctx context.Context, fig *surface.Figure, formats []string) (map[string][]byte, error) {
	hooks := observability.Render()
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		data, err := encode(fig, format)
		hooks.OnExport(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, errors.Within(err, "export %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func encode(fig *surface.Figure, format string) ([]byte, error) {
	w, err := fig.WriterTo(format)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
	}
	return buf.Bytes(), nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// count fills the grid statistics.
func (s *Stats) count(g spec.Grid) {
	s.Rows, s.Cols = g.Shape()
	s.Cells = g.Size()
	for _, row := range g {
		for _, c := range row {
			if c.Blank() {
				s.Blank++
				continue
			}
			for _, a := range c.YAxes {
				s.Series += len(a.Series)
			}
		}
	}
}
