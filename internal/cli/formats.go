package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/plotspec/pkg/surface"
)

var formatDescriptions = map[string]string{
	surface.FormatPNG:  "Portable Network Graphics",
	surface.FormatJPEG: "JPEG (alias: jpeg)",
	surface.FormatTIFF: "Tagged Image File Format (alias: tiff)",
	surface.FormatSVG:  "Scalable Vector Graphics",
	surface.FormatPDF:  "Portable Document Format",
	surface.FormatEPS:  "Encapsulated PostScript",
}

// formatsCommand creates the formats command.
func (c *CLI) formatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported export formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(stdout, StyleTitle.Render("Export formats"))
			for _, f := range surface.Formats() {
				kind := "vector"
				if surface.Raster(f) {
					kind = "raster"
				}
				printKeyValue(f, formatDescriptions[f]+" "+StyleDim.Render("("+kind+")"))
			}
			return nil
		},
	}
}
