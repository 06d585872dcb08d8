package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/rectscreen/internal/fsops"
)

var (
	renderFlags  screenFlags
	renderOutput string
	renderPNG    string
)

// renderResult is the JSON form of a render.
type renderResult struct {
	Source string  `json:"source"`
	Loaded int     `json:"loaded"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	SVG    string  `json:"svg"`
	PNG    string  `json:"png,omitempty"`

	// Replaced is true when an earlier SVG at the same path was overwritten.
	Replaced bool `json:"replaced"`
}

var renderCmd = &cobra.Command{
	Use:   "render <batch-file>",
	Short: "Load a batch file and export it as SVG",
	Long: `Load every record of a batch file onto an empty screen and export the result.

The SVG is written to --output, or to <out-dir>/<batch-name>.svg by default.
Use --png to also write a raster image. Nothing is written if the batch fails to load.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := renderFlags.settings(cmd)
		if err != nil {
			return err
		}

		path := args[0]
		sc, n, err := loadScreen(settings, path)
		if err != nil {
			if !jsonOutput {
				PrintError("Batch load failed; nothing was exported")
				describeLoadError(err)
			}
			return err
		}

		svgPath := renderOutput
		if svgPath == "" {
			svgPath = defaultOutput(settings, path, ".svg")
		}

		replaced, err := fsops.NewRealFS().Exists(svgPath)
		if err != nil {
			return err
		}

		exp := newExporter()
		if err := exp.ExportSVG(svgPath, sc); err != nil {
			return err
		}
		if renderPNG != "" {
			if err := exp.ExportPNG(renderPNG, sc); err != nil {
				return err
			}
		}

		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), renderResult{
				Source:   path,
				Loaded:   n,
				Width:    sc.Width(),
				Height:   sc.Height(),
				SVG:      svgPath,
				PNG:      renderPNG,
				Replaced: replaced,
			})
		}

		PrintSuccess(fmt.Sprintf("Rendered %s", PrintCount(n, "shape", "shapes")))
		PrintLabelValue("Screen", fmt.Sprintf("%gx%g", sc.Width(), sc.Height()))
		if replaced {
			PrintLabelValue("SVG", svgPath+" (replaced)")
		} else {
			PrintLabelValue("SVG", svgPath)
		}
		if renderPNG != "" {
			PrintLabelValue("PNG", renderPNG)
		}
		return nil
	},
}

func init() {
	renderFlags.register(renderCmd)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "SVG output path")
	renderCmd.Flags().StringVar(&renderPNG, "png", "", "Also write a PNG to this path")
}
