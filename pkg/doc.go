// Package pkg provides the core libraries for plotspec figure rendering.
//
// # Overview
//
// plotspec turns a declarative description of a grid of subplots into a
// figure drawn with gonum/plot. Every subplot stacks one or more y-axes over
// a single shared x-axis, and the legend entries of all its axes are merged
// into one legend.
//
// # Architecture
//
// The data flow through plotspec:
//
//	JSON / YAML / TOML document
//	         ↓
//	    [spec] package (decode + validate the grid)
//	         ↓
//	    [subplots] package (lay out cells, twin axes, consolidate legends)
//	         ↓
//	    [surface] package (gonum/plot axes, series, legend, canvas)
//	         ↓
//	    PNG/JPEG/TIFF/SVG/PDF/EPS output
//
// [pipeline] runs these stages with a [cache] in front of the export step.
//
// # Quick Start
//
//	doc, _ := spec.Load("figure.yaml")
//	fig, _, _ := subplots.RenderDocument(ctx, doc)
//	_ = fig.Save("figure.svg")
//
// Or through the pipeline, which also validates and caches:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Path:    "figure.yaml",
//	    Formats: []string{"svg", "png"},
//	})
//
// # Main Packages
//
// [spec] - The document model: grid of cells, axes, series, limits, legend
// and grid-line properties. Decodes JSON, YAML and TOML and reports errors
// with their position, for example "cell[1][0]: yaxes[1]: lines[0]".
//
// [surface] - Drawing primitives on top of gonum/plot: twin axes with offset
// spines, series methods, legends and multi-format export.
//
// [subplots] - The grid renderer. Places cells in a shared canvas, skips
// blank cells and honors figure options such as cell size and DPI.
//
// [pipeline] - Load, validate, render and export with artifact caching. Used
// by the CLI.
//
// [cache] - Artifact cache interface with file and no-op implementations.
//
// [errors] - Coded errors with user-facing messages.
//
// [observability] - Hooks for render and cache events.
//
// [buildinfo] - Version information set at build time.
//
// [spec]: https://pkg.go.dev/github.com/matzehuels/plotspec/pkg/spec
// [surface]: https://pkg.go.dev/github.com/matzehuels/plotspec/pkg/surface
// [subplots]: https://pkg.go.dev/github.com/matzehuels/plotspec/pkg/subplots
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/plotspec/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/plotspec/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/plotspec/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/plotspec/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/plotspec/pkg/buildinfo
package pkg
