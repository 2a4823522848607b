package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const asciiLogo = `
 ___ _ __   _____      _| |__   __ _| |_ ___| |__
/ __| '_ \ / _ \ \ /\ / / '_ \ / _` + "`" + ` | __/ __| '_ \
\__ \ | | | (_) \ V  V /| |_) | (_| | || (__| | | |
|___/_| |_|\___/ \_/\_/ |_.__/ \__,_|\__\___|_| |_|`

var rootCmd = &cobra.Command{
	Use:   "snowbatch",
	Short: "One-shot batch loader for Snowflake",
	Long: asciiLogo + `

snowbatch uploads gzipped CSV exports to an internal Snowflake stage and
bulk-loads them table by table with COPY INTO. Files move from the
not_processed/ prefix to processed/ as each table succeeds; a failed load
aborts the run and leaves the file in place for inspection.

Exit Codes:
  0  - Success (skipped tables allowed)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Snowflake connection failed
  12 - User denied load approval
  13 - COPY INTO or stage operation failed
  14 - Data directory not found`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for snowbatch")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
