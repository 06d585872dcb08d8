package cli

import (
	"github.com/spf13/cobra"

	"github.com/danieljhkim/rectscreen/internal/shape"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "List the accepted shape colors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		colors := shape.Palette()
		if jsonOutput {
			return outputJSON(cmd.OutOrStdout(), colors)
		}

		PrintSection("Palette")
		PrintList(colors, 1)
		PrintInfo("\nA shape without a color is drawn as a black outline.")
		return nil
	},
}
