package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

// Build-time variables set via ldflags
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		printVersionInfo()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// versionLine is the machine-parseable version string.
func versionLine() string {
	return fmt.Sprintf("snowbatch %s (%s, %s) %s/%s", version, commit, date, runtime.GOOS, runtime.GOARCH)
}

// printVersionInfo writes the version line to stdout for pipeline
// consumption; everything decorative goes to stderr.
func printVersionInfo() {
	fmt.Fprintln(os.Stderr, asciiLogo)
	fmt.Fprintln(os.Stderr)
	fmt.Println(versionLine())
	fmt.Fprintln(os.Stderr, "Snowflake batch load tool")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Repository: https://github.com/vvka-141/snowbatch")
}
