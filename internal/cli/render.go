package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/plotspec/pkg/errors"
	"github.com/matzehuels/plotspec/pkg/pipeline"
	"github.com/matzehuels/plotspec/pkg/subplots"
	"github.com/matzehuels/plotspec/pkg/surface"
)

// renderOpts holds the command-line flags of the render command that are
// not pipeline options.
type renderOpts struct {
	output  string // output file (single format) or base path
	formats string // comma-separated export formats
	noCache bool
	watch   bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var ro renderOpts
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a figure document to image files",
		Long: `Render a figure document to image files.

The document is a JSON, YAML or TOML file holding a grid of subplots. Flags
override the settings of the document's figure table.

Without --format the format is taken from the --output extension, or PNG.
With several formats, --output is used as the base path of every file.

Results are cached locally for faster subsequent runs.`,
		Example: `  plotspec render figure.yaml
  plotspec render figure.yaml -o report/figure.svg
  plotspec render figure.toml -f png,pdf --dpi 150
  plotspec render figure.json --watch`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocument,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Path = args[0]
			opts.Logger = c.Logger
			opts.Formats = outputFormats(ro.formats, ro.output)
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			if ro.watch {
				return c.watchRender(cmd.Context(), opts, ro)
			}
			return c.runRender(cmd.Context(), opts, ro)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): "+strings.Join(surface.Formats(), ", ")+" (comma-separated)")
	cmd.Flags().BoolVar(&ro.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVarP(&ro.watch, "watch", "w", false, "re-render whenever the document changes")

	cmd.Flags().Float64Var(&opts.CellWidth, "width", 0, fmt.Sprintf("cell width in inches (default %g)", subplots.DefaultCellWidth))
	cmd.Flags().Float64Var(&opts.CellHeight, "height", 0, fmt.Sprintf("cell height in inches (default %g)", subplots.DefaultCellHeight))
	cmd.Flags().Float64Var(&opts.AxisInterval, "axis-interval", 0, fmt.Sprintf("spine spacing of stacked y-axes (default %g)", subplots.DefaultAxisInterval))
	cmd.Flags().IntVar(&opts.DPI, "dpi", 0, fmt.Sprintf("raster resolution (default %d)", subplots.DefaultDPI))
	cmd.Flags().StringVar(&opts.Layout, "layout", "", "layout mode: constrained (default), tight, none")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")

	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("layout", completeLayouts)

	return cmd
}

// runRender runs the pipeline once and writes every artifact.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, ro renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, os.Stderr, fmt.Sprintf("Rendering %s...", filepath.Base(opts.Path)))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	if ctx.Err() != nil {
		spinner.Stop()
		return ctx.Err()
	}

	spinner.SetMessage("Writing files...")
	paths, err := writeArtifacts(result.Artifacts, opts.Formats, opts.Path, ro.output)
	spinner.Stop()
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", opts.Path)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats, result.CacheInfo.RenderHit)
	prog.done("render complete", "files", len(paths), "cached", result.CacheInfo.RenderHit)
	return nil
}

// =============================================================================
// Output Paths
// =============================================================================

// outputFormats returns the requested formats. Without --format, the
// extension of --output selects the format when it names one.
func outputFormats(formats, output string) []string {
	if formats == "" && output != "" {
		if f, err := surface.NormalizeFormat(filepath.Ext(output)); err == nil {
			return []string{f}
		}
	}
	return parseFormats(formats)
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := surface.NormalizeFormat(ext); err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns the file an artifact is written to. A single format
// with an explicit output is written exactly there.
func outputPath(format string, formats []string, input, output string) string {
	if len(formats) == 1 && output != "" && filepath.Ext(output) != "" {
		return output
	}
	return basePath(output, input) + "." + format
}

// writeArtifacts writes each artifact in format order and returns the paths.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := outputPath(format, formats, input, output)
		if err := errors.ValidateOutputPath(path); err != nil {
			return nil, err
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
