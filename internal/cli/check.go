package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkFlags screenFlags

// checkResult is the JSON form of a check.
type checkResult struct {
	Source string `json:"source"`
	Valid  bool   `json:"valid"`
	Loaded int    `json:"loaded"`
	Line   int    `json:"line,omitempty"`
	Error  string `json:"error,omitempty"`
}

var checkCmd = &cobra.Command{
	Use:   "check <batch-file>",
	Short: "Validate a batch file without exporting",
	Long: `Parse and validate a batch file against an empty screen.

Reports the number of records that would be loaded, or the first failing line.
A line of -1 means a shape failed the bounds check that runs after parsing.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := checkFlags.settings(cmd)
		if err != nil {
			return err
		}

		path := args[0]
		_, n, loadErr := loadScreen(settings, path)

		if jsonOutput {
			res := checkResult{Source: path, Valid: loadErr == nil, Loaded: n}
			if loadErr != nil {
				res.Line = errorLine(loadErr)
				res.Error = loadErr.Error()
			}
			if err := outputJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			return loadErr
		}

		if loadErr != nil {
			PrintError("Batch file is invalid")
			describeLoadError(loadErr)
			return loadErr
		}

		PrintSuccess(fmt.Sprintf("%s is valid: %s", path, PrintCount(n, "record", "records")))
		return nil
	},
}

func init() {
	checkFlags.register(checkCmd)
}
