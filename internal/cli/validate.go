package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/plotspec/pkg/pipeline"
	"github.com/matzehuels/plotspec/pkg/spec"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a figure document without rendering it",
		Long: `Check a figure document without rendering it.

The document is decoded and every cell, axis and series is validated. Errors
name the offending position, for example "cell[1][0]: yaxes[1]: lines[0]".`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDocument,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0])
		},
	}
}

// runValidate loads and validates a document and prints a summary.
func (c *CLI) runValidate(ctx context.Context, input string) error {
	runner := pipeline.NewRunner(nil, nil, loggerFromContext(ctx))
	doc, _, err := runner.Load(ctx, pipeline.Options{Path: input})
	if err != nil {
		return err
	}
	if err := spec.Validate(doc.Grid); err != nil {
		return err
	}

	rows, cols := doc.Grid.Shape()
	printSuccess("%s is valid", input)
	printKeyValue("grid", fmt.Sprintf("%d × %d", rows, cols))
	for r, row := range doc.Grid {
		for col, cell := range row {
			printKeyValue(fmt.Sprintf("cell[%d][%d]", r, col), describeCell(cell))
		}
	}
	return nil
}

// describeCell summarizes a cell on one line.
func describeCell(c *spec.Cell) string {
	if c.Blank() {
		return StyleDim.Render("blank")
	}
	series := 0
	var kinds []string
	for _, a := range c.YAxes {
		series += len(a.Series)
		for _, s := range a.Series {
			if k := s.Kind.String(); !slices.Contains(kinds, k) {
				kinds = append(kinds, k)
			}
		}
	}
	parts := []string{
		plural(len(c.YAxes), "axis", "axes"),
		plural(series, "series", "series"),
	}
	if len(kinds) > 0 {
		parts = append(parts, strings.Join(kinds, ", "))
	}
	if c.Title != "" {
		parts = append(parts, fmt.Sprintf("%q", c.Title))
	}
	return strings.Join(parts, " · ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
