package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/snowbatch/internal/config"
	"github.com/vvka-141/snowbatch/pkg/snowbatch"
)

// writeProject creates a temp project directory with the given snowbatch.yaml.
func writeProject(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	if yaml != "" {
		err := os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte(yaml), 0644)
		require.NoError(t, err)
	}
	return dir
}

// resetLoadFlags restores the package flag state after a test mutated it.
func resetLoadFlags(t *testing.T) {
	t.Helper()
	saved := loadFlags
	t.Cleanup(func() { loadFlags = saved })
	loadFlags = loadFlagValues{timeout: snowbatch.DefaultTimeout}
}

const minimalYaml = `
connection:
  account: "myorg-myaccount"
  user: "LOADER"
  database: "ANALYTICS"
  schema: "PUBLIC"
tables:
  - customers
  - orders
data_dir: "data"
`

func TestBuildLoadConfig_FromYaml(t *testing.T) {
	resetLoadFlags(t)
	clearConnectionEnv(t)
	dir := writeProject(t, minimalYaml)

	cfg, err := buildLoadConfig(loadCmd, dir, false)

	require.NoError(t, err)
	assert.Equal(t, "myorg-myaccount", cfg.Connection.Account)
	assert.Equal(t, "ANALYTICS", cfg.Connection.Database)
	assert.Equal(t, []string{"customers", "orders"}, cfg.Tables)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir)
	assert.Equal(t, snowbatch.DefaultTimeout, cfg.Timeout)
}

func TestBuildLoadConfig_TableSubset(t *testing.T) {
	resetLoadFlags(t)
	clearConnectionEnv(t)
	dir := writeProject(t, minimalYaml)

	loadFlags.tables = []string{"orders"}

	cfg, err := buildLoadConfig(loadCmd, dir, false)

	require.NoError(t, err)
	assert.Equal(t, []string{"orders"}, cfg.Tables)
}

func TestBuildLoadConfig_UnknownTable(t *testing.T) {
	resetLoadFlags(t)
	clearConnectionEnv(t)
	dir := writeProject(t, minimalYaml)

	loadFlags.tables = []string{"no_such_table"}

	_, err := buildLoadConfig(loadCmd, dir, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, snowbatch.ErrUnknownTable)
}

func TestBuildLoadConfig_TimeoutFromYaml(t *testing.T) {
	resetLoadFlags(t)
	clearConnectionEnv(t)
	dir := writeProject(t, minimalYaml+`timeout: "45m"`)

	cfg, err := buildLoadConfig(loadCmd, dir, false)

	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, cfg.Timeout)
}

func TestBuildLoadConfig_InvalidTimeoutInYaml(t *testing.T) {
	resetLoadFlags(t)
	clearConnectionEnv(t)
	dir := writeProject(t, minimalYaml+`timeout: "soon"`)

	_, err := buildLoadConfig(loadCmd, dir, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, snowbatch.ErrInvalidConfig)
}

func TestBuildLoadConfig_MissingConfigUsesFlags(t *testing.T) {
	resetLoadFlags(t)
	clearConnectionEnv(t)
	dir := writeProject(t, "")

	loadFlags.conn = connFlagValues{
		account:  "flag-account",
		user:     "flag-user",
		database: "FLAG_DB",
		schema:   "PUBLIC",
	}
	loadFlags.tables = []string{"customers"}

	cfg, err := buildLoadConfig(loadCmd, dir, false)

	require.NoError(t, err)
	assert.Equal(t, "flag-account", cfg.Connection.Account)
	assert.Equal(t, []string{"customers"}, cfg.Tables)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir)
}

func TestBuildLoadConfig_MalformedYaml(t *testing.T) {
	resetLoadFlags(t)
	clearConnectionEnv(t)
	dir := writeProject(t, "connection: [not a map")

	_, err := buildLoadConfig(loadCmd, dir, false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ConfigFileName)
}

func TestResolveDataDir(t *testing.T) {
	tests := []struct {
		name        string
		flagDataDir string
		projectCfg  *config.ProjectConfig
		want        string
	}{
		{
			name:        "flag wins",
			flagDataDir: "exports",
			projectCfg:  &config.ProjectConfig{DataDir: "data"},
			want:        filepath.Join("/proj", "exports"),
		},
		{
			name:       "yaml when no flag",
			projectCfg: &config.ProjectConfig{DataDir: "dumps"},
			want:       filepath.Join("/proj", "dumps"),
		},
		{
			name: "default when nothing set",
			want: filepath.Join("/proj", "data"),
		},
		{
			name:        "absolute path left alone",
			flagDataDir: "/var/exports",
			want:        "/var/exports",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveDataDir("/proj", tt.flagDataDir, tt.projectCfg)
			assert.Equal(t, tt.want, got)
		})
	}
}
