package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/snowbatch/internal/config"
	"github.com/vvka-141/snowbatch/internal/db"
	"github.com/vvka-141/snowbatch/internal/logging"
	"github.com/vvka-141/snowbatch/internal/services"
	"github.com/vvka-141/snowbatch/internal/tui"
	"github.com/vvka-141/snowbatch/internal/tui/components"
	"github.com/vvka-141/snowbatch/internal/ui"
	"github.com/vvka-141/snowbatch/pkg/snowbatch"
)

var loadCmd = &cobra.Command{
	Use:   "load [project_path]",
	Short: "Stage and bulk-load gzipped CSV files into Snowflake",
	Long: `Load uploads each table's <table>.csv.gz archive to an internal stage and
bulk-loads it with COPY INTO.

The load command:
1. Reads snowbatch.yaml from the project directory (default: current directory)
2. Connects to Snowflake and pins the session to the target schema
3. For each configured table, in order:
   - Skips the table with a warning if data/<table>.csv.gz is missing
   - Uploads the archive to @<stage>/not_processed/
   - Runs COPY INTO <table> with SKIP_HEADER=1 and gzip compression
   - Archives the file to @<stage>/processed/ and removes the pending copy
4. Aborts the run on the first failed table, leaving its staged file in
   not_processed/ for inspection

Loaded rows are appended; nothing is rolled back when a later table fails.

Password Authentication:
  For security, the password is NOT accepted as a CLI flag. Use one of:
    1. $SNOWFLAKE_PASSWORD environment variable (also read from .env)
    2. Interactive terminal prompt
  Never put passwords in shell commands (visible in history and process list)

Examples:
  # Load every configured table
  snowbatch load ./migration

  # Load a subset
  snowbatch load ./migration --table customers --table orders

  # Pick tables interactively
  snowbatch load ./migration --interactive

  # Unattended run for CI/CD
  SNOWFLAKE_PASSWORD=... snowbatch load ./migration --force

  # Strict per-row error handling
  snowbatch load ./migration --on-error ABORT_STATEMENT`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoad,
}

type loadFlagValues struct {
	conn        connFlagValues
	dataDir     string
	tables      []string
	stage       string
	onError     string
	force       bool
	interactive bool
	timeout     time.Duration
}

var loadFlags loadFlagValues

func init() {
	rootCmd.AddCommand(loadCmd)
	addConnectionFlags(loadCmd, &loadFlags.conn)

	loadCmd.Flags().StringVar(&loadFlags.dataDir, "data-dir", "",
		"Directory containing <table>.csv.gz archives\n"+
			"Precedence: --data-dir > snowbatch.yaml data_dir > <project_path>/data")
	loadCmd.Flags().StringSliceVarP(&loadFlags.tables, "table", "t", nil,
		"Restrict the run to the named table(s); repeatable\n"+
			"Tables must appear in the configured table list\n"+
			"Example: --table customers --table orders")
	loadCmd.Flags().StringVar(&loadFlags.stage, "stage", "",
		"Internal stage for uploads (default: MIGRATION_LOAD_STAGE, or snowbatch.yaml)")
	loadCmd.Flags().StringVar(&loadFlags.onError, "on-error", "",
		"COPY INTO error tolerance: CONTINUE|ABORT_STATEMENT|SKIP_FILE\n"+
			"(default: CONTINUE, or snowbatch.yaml)")
	loadCmd.Flags().BoolVar(&loadFlags.force, "force", false,
		"Skip the interactive approval prompt\n"+
			"Use for CI/CD pipelines")
	loadCmd.Flags().BoolVarP(&loadFlags.interactive, "interactive", "i", false,
		"Pick the tables to load in a terminal UI before starting")
	loadCmd.Flags().DurationVar(&loadFlags.timeout, "timeout", snowbatch.DefaultTimeout,
		"Catastrophic failure protection timeout (default 30m)\n"+
			"Prevents indefinite hangs from network issues\n"+
			"Examples: 30s, 5m, 1h30m")
}

// addConnectionFlags registers the granular connection flags on a command.
// Shared between load and plan.
func addConnectionFlags(cmd *cobra.Command, flags *connFlagValues) {
	cmd.Flags().StringVar(&flags.account, "account", "",
		"Snowflake account identifier, e.g. myorg-myaccount\n"+
			"Precedence: --account > $SNOWFLAKE_ACCOUNT > snowbatch.yaml")
	cmd.Flags().StringVarP(&flags.user, "user", "u", "",
		"Snowflake user (default: $SNOWFLAKE_USER or snowbatch.yaml)")
	cmd.Flags().StringVar(&flags.warehouse, "warehouse", "",
		"Virtual warehouse to run the load (default: $SNOWFLAKE_WAREHOUSE or snowbatch.yaml)")
	cmd.Flags().StringVarP(&flags.database, "database", "d", "",
		"Target database (default: $SNOWFLAKE_DATABASE or snowbatch.yaml)")
	cmd.Flags().StringVar(&flags.schema, "schema", "",
		"Target schema (default: $SNOWFLAKE_SCHEMA or snowbatch.yaml)")
	cmd.Flags().StringVar(&flags.role, "role", "",
		"Role to assume (default: $SNOWFLAKE_ROLE or snowbatch.yaml)")
}

// buildLoadConfig builds a LoadConfig from CLI flags, environment variables,
// and snowbatch.yaml. The password is resolved separately because it may
// require an interactive prompt.
//
// Extracted from runLoad for testability.
func buildLoadConfig(cmd *cobra.Command, projectPath string, verbose bool) (snowbatch.LoadConfig, error) {
	_ = godotenv.Load()

	projectCfg, err := config.Load(projectPath)
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			return snowbatch.LoadConfig{}, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
		}
		// No snowbatch.yaml: flags and environment must carry everything.
		projectCfg = nil
	}

	conn := resolveConnection(&loadFlags.conn, projectCfg, verbose)

	// Table list: yaml order is authoritative; --table restricts it.
	var configured []string
	if projectCfg != nil {
		configured = projectCfg.Tables
	}
	tables := loadFlags.tables
	if len(configured) > 0 {
		tables, err = services.SelectTables(configured, loadFlags.tables)
		if err != nil {
			return snowbatch.LoadConfig{}, err
		}
	}

	dataDir := resolveDataDir(projectPath, loadFlags.dataDir, projectCfg)

	stageName := loadFlags.stage
	if stageName == "" && projectCfg != nil {
		stageName = projectCfg.Stage
	}

	onError := loadFlags.onError
	if onError == "" && projectCfg != nil {
		onError = projectCfg.OnError
	}

	// Apply timeout from snowbatch.yaml if --timeout wasn't explicitly set
	timeout := loadFlags.timeout
	if projectCfg != nil && projectCfg.Timeout != "" && !cmd.Flags().Changed("timeout") {
		parsed, parseErr := time.ParseDuration(projectCfg.Timeout)
		if parseErr != nil {
			return snowbatch.LoadConfig{}, fmt.Errorf("invalid timeout in %s: %w: %w",
				config.ConfigFileName, parseErr, snowbatch.ErrInvalidConfig)
		}
		timeout = parsed
	}

	return snowbatch.LoadConfig{
		Connection: conn,
		Tables:     tables,
		DataDir:    dataDir,
		Stage:      stageName,
		OnError:    onError,
		Force:      loadFlags.force,
		Timeout:    timeout,
		Verbose:    verbose,
	}, nil
}

// resolveDataDir applies the data directory precedence and anchors relative
// paths at the project directory.
func resolveDataDir(projectPath, flagDataDir string, projectCfg *config.ProjectConfig) string {
	dir := flagDataDir
	if dir == "" && projectCfg != nil {
		dir = projectCfg.DataDir
	}
	if dir == "" {
		dir = "data"
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(projectPath, dir)
	}
	return dir
}

func runLoad(cmd *cobra.Command, args []string) error {
	projectPath := "."
	if len(args) > 0 {
		projectPath = args[0]
	}
	verbose := getVerboseFlag(cmd)

	cfg, err := buildLoadConfig(cmd, projectPath, verbose)
	if err != nil {
		return err
	}

	if loadFlags.interactive {
		picked, err := pickTablesInteractively(&cfg)
		if err != nil {
			return err
		}
		cfg.Tables = picked
	}

	password, err := resolvePassword(cfg.Connection.User)
	if err != nil {
		return err
	}
	cfg.Connection.Password = password

	// Select approver implementation based on --force flag
	var approver snowbatch.Approver
	if cfg.Force {
		approver = ui.NewForcedApprover(verbose)
	} else {
		approver = ui.NewInteractiveApprover(verbose)
	}
	logger := logging.NewConsoleLogger(verbose)

	loader := services.NewLoadService(db.NewConnector, approver, logger)

	// Setup context with timeout and signal handling for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling load...")
		cancel()
	}()

	report, err := loader.Run(ctx, cfg)
	if report != nil {
		printReport(report)
	}
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	return nil
}

// pickTablesInteractively runs the terminal picker over the planned tables.
// Requires an interactive terminal.
func pickTablesInteractively(cfg *snowbatch.LoadConfig) ([]string, error) {
	if !tui.IsInteractive() {
		return nil, fmt.Errorf("--interactive requires a terminal: %w", snowbatch.ErrInvalidConfig)
	}

	jobs, err := services.BuildPlan(cfg)
	if err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no tables configured to pick from: %w", snowbatch.ErrInvalidConfig)
	}

	items := make([]components.Item, 0, len(jobs))
	for _, job := range jobs {
		item := components.Item{Label: job.Table, Checked: job.FileExists}
		if job.FileExists {
			item.Description = job.LocalPath
		} else {
			item.Description = "no local file (will be skipped)"
			item.Disabled = true
		}
		items = append(items, item)
	}

	picked, err := tui.PickTables("Select tables to load", items)
	if err != nil {
		if errors.Is(err, tui.ErrPickerCancelled) {
			return nil, snowbatch.ErrApprovalDenied
		}
		return nil, err
	}
	if len(picked) == 0 {
		return nil, fmt.Errorf("no tables selected: %w", snowbatch.ErrApprovalDenied)
	}
	return picked, nil
}

// printReport renders the per-table outcomes after a run.
func printReport(report *snowbatch.LoadReport) {
	if len(report.Results) == 0 {
		return
	}

	fmt.Fprintln(os.Stderr)
	for _, res := range report.Results {
		switch res.Status {
		case snowbatch.StatusLoaded:
			fmt.Fprintln(os.Stderr, tui.SuccessStyle.Render(fmt.Sprintf("  %s %s: loaded", tui.SymbolCheck, res.Table)))
		case snowbatch.StatusSkipped:
			fmt.Fprintln(os.Stderr, tui.WarningStyle.Render(fmt.Sprintf("  %s %s: skipped (no local file)", tui.SymbolBullet, res.Table)))
		case snowbatch.StatusFailed:
			fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render(fmt.Sprintf("  %s %s: failed: %v", tui.SymbolCross, res.Table, res.Err)))
		}
	}
	fmt.Fprintf(os.Stderr, "\nRun ID: %s\n", report.RunID)
}
