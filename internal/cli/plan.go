package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/snowbatch/internal/config"
	"github.com/vvka-141/snowbatch/internal/services"
	"github.com/vvka-141/snowbatch/internal/tui"
	"github.com/vvka-141/snowbatch/pkg/snowbatch"
)

var planCmd = &cobra.Command{
	Use:   "plan [project_path]",
	Short: "Preview a load run without connecting to Snowflake",
	Long: `Plan resolves the per-table work a load run would perform and prints it.

Nothing is uploaded and no connection is made: plan only inspects the local
data directory. Use it to verify the table list and spot missing archives
before running 'snowbatch load'.

Examples:
  snowbatch plan ./migration
  snowbatch plan ./migration --table customers`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlan,
}

type planFlagValues struct {
	conn    connFlagValues
	dataDir string
	tables  []string
	stage   string
}

var planFlags planFlagValues

func init() {
	rootCmd.AddCommand(planCmd)
	addConnectionFlags(planCmd, &planFlags.conn)

	planCmd.Flags().StringVar(&planFlags.dataDir, "data-dir", "",
		"Directory containing <table>.csv.gz archives")
	planCmd.Flags().StringSliceVarP(&planFlags.tables, "table", "t", nil,
		"Restrict the preview to the named table(s); repeatable")
	planCmd.Flags().StringVar(&planFlags.stage, "stage", "",
		"Internal stage for uploads (default: MIGRATION_LOAD_STAGE, or snowbatch.yaml)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	projectPath := "."
	if len(args) > 0 {
		projectPath = args[0]
	}
	verbose := getVerboseFlag(cmd)

	_ = godotenv.Load()

	projectCfg, err := config.Load(projectPath)
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			return fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
		}
		projectCfg = nil
	}

	conn := resolveConnection(&planFlags.conn, projectCfg, verbose)

	var configured []string
	if projectCfg != nil {
		configured = projectCfg.Tables
	}
	tables := planFlags.tables
	if len(configured) > 0 {
		tables, err = services.SelectTables(configured, planFlags.tables)
		if err != nil {
			return err
		}
	}

	dataDir := planFlags.dataDir
	if dataDir == "" && projectCfg != nil {
		dataDir = projectCfg.DataDir
	}
	if dataDir == "" {
		dataDir = "data"
	}
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(projectPath, dataDir)
	}

	stageName := planFlags.stage
	if stageName == "" && projectCfg != nil {
		stageName = projectCfg.Stage
	}

	cfg := snowbatch.LoadConfig{
		Connection: conn,
		Tables:     tables,
		DataDir:    dataDir,
		Stage:      stageName,
	}

	jobs, err := services.BuildPlan(&cfg)
	if err != nil {
		return err
	}

	printPlan(&cfg, jobs)
	return nil
}

// printPlan renders the resolved jobs to stderr.
func printPlan(cfg *snowbatch.LoadConfig, jobs []snowbatch.TableJob) {
	target := cfg.Connection.Database
	if cfg.Connection.Schema != "" {
		target += "." + cfg.Connection.Schema
	}

	fmt.Fprintln(os.Stderr, tui.TitleStyle.Render(fmt.Sprintf("Load plan for %s", target)))
	fmt.Fprintln(os.Stderr, tui.SubtitleStyle.Render(fmt.Sprintf("Data directory: %s", cfg.DataDir)))

	present := 0
	for _, job := range jobs {
		if job.FileExists {
			present++
			fmt.Fprintln(os.Stderr, tui.SuccessStyle.Render(
				fmt.Sprintf("  %s %s", tui.SymbolCheck, job.Table)))
			fmt.Fprintf(os.Stderr, "      %s %s\n", tui.SymbolArrowRight, job.PendingPath)
		} else {
			fmt.Fprintln(os.Stderr, tui.WarningStyle.Render(
				fmt.Sprintf("  %s %s: %s not found, will be skipped", tui.SymbolBullet, job.Table, job.LocalPath)))
		}
	}

	fmt.Fprintf(os.Stderr, "\n%d table(s) configured, %d will be loaded, %d skipped\n",
		len(jobs), present, len(jobs)-present)
}
