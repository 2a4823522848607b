package cli

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/vvka-141/snowbatch/internal/config"
	"github.com/vvka-141/snowbatch/internal/tui"
	"github.com/vvka-141/snowbatch/pkg/snowbatch"
)

// Environment variables honored for connection settings. These follow the
// names the Snowflake connectors conventionally use.
const (
	envAccount   = "SNOWFLAKE_ACCOUNT"
	envUser      = "SNOWFLAKE_USER"
	envPassword  = "SNOWFLAKE_PASSWORD"
	envWarehouse = "SNOWFLAKE_WAREHOUSE"
	envDatabase  = "SNOWFLAKE_DATABASE"
	envSchema    = "SNOWFLAKE_SCHEMA"
	envRole      = "SNOWFLAKE_ROLE"
)

// connFlagValues holds the granular connection flags shared by load and plan.
type connFlagValues struct {
	account   string
	user      string
	warehouse string
	database  string
	schema    string
	role      string
}

// resolveConnection builds the connection parameters from three layers with
// fixed precedence: CLI flag > SNOWFLAKE_* environment variable > snowbatch.yaml.
// The password is resolved separately; see resolvePassword.
func resolveConnection(flags *connFlagValues, projectCfg *config.ProjectConfig, verbose bool) snowbatch.ConnectionConfig {
	var fileCfg config.ConnectionConfig
	if projectCfg != nil {
		fileCfg = projectCfg.Connection
	}

	conn := snowbatch.ConnectionConfig{
		Account:   firstNonEmpty(flags.account, os.Getenv(envAccount), fileCfg.Account),
		User:      firstNonEmpty(flags.user, os.Getenv(envUser), fileCfg.User),
		Warehouse: firstNonEmpty(flags.warehouse, os.Getenv(envWarehouse), fileCfg.Warehouse),
		Database:  firstNonEmpty(flags.database, os.Getenv(envDatabase), fileCfg.Database),
		Schema:    firstNonEmpty(flags.schema, os.Getenv(envSchema), fileCfg.Schema),
		Role:      firstNonEmpty(flags.role, os.Getenv(envRole), fileCfg.Role),
		AppName:   "snowbatch",
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Connection resolved:\n")
		fmt.Fprintf(os.Stderr, "  Account: %s\n", conn.Account)
		fmt.Fprintf(os.Stderr, "  User: %s\n", conn.User)
		fmt.Fprintf(os.Stderr, "  Warehouse: %s\n", conn.Warehouse)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", conn.Database)
		fmt.Fprintf(os.Stderr, "  Schema: %s\n", conn.Schema)
		fmt.Fprintf(os.Stderr, "  Role: %s\n", conn.Role)
	}

	return conn
}

// resolvePassword returns the Snowflake password from the environment, or
// prompts for it on an interactive terminal. The password is never accepted
// as a CLI flag: flags leak into shell history and process lists.
func resolvePassword(user string) (string, error) {
	if pw := os.Getenv(envPassword); pw != "" {
		return pw, nil
	}

	if !tui.IsInteractive() {
		return "", fmt.Errorf("no password available: set %s or run on an interactive terminal: %w",
			envPassword, snowbatch.ErrInvalidConfig)
	}

	fmt.Fprintf(os.Stderr, "Password for %s: ", user)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	pw := strings.TrimSpace(string(bytePassword))
	if pw == "" {
		return "", fmt.Errorf("empty password: %w", snowbatch.ErrInvalidConfig)
	}
	return pw, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
