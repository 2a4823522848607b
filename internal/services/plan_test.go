package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/snowbatch/pkg/snowbatch"
)

func TestBuildPlan_ResolvesJobs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.csv.gz"), []byte("x"), 0644))

	cfg := snowbatch.LoadConfig{
		Tables:  []string{"users", "orders"},
		DataDir: dir,
	}

	jobs, err := BuildPlan(&cfg)
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	users := jobs[0]
	assert.Equal(t, "users", users.Table)
	assert.True(t, filepath.IsAbs(users.LocalPath))
	assert.Equal(t, "@MIGRATION_LOAD_STAGE/not_processed/users.csv.gz", users.PendingPath)
	assert.Equal(t, "@MIGRATION_LOAD_STAGE/processed/users.csv.gz", users.DonePath)
	assert.True(t, users.FileExists)

	orders := jobs[1]
	assert.Equal(t, "orders", orders.Table)
	assert.False(t, orders.FileExists)
}

func TestBuildPlan_CustomStage(t *testing.T) {
	cfg := snowbatch.LoadConfig{
		Tables:  []string{"users"},
		DataDir: t.TempDir(),
		Stage:   "IMPORT_STAGE",
	}

	jobs, err := BuildPlan(&cfg)
	require.NoError(t, err)
	assert.Equal(t, "@IMPORT_STAGE/not_processed/users.csv.gz", jobs[0].PendingPath)
}

func TestBuildPlan_MissingDataDir(t *testing.T) {
	cfg := snowbatch.LoadConfig{
		Tables:  []string{"users"},
		DataDir: filepath.Join(t.TempDir(), "does-not-exist"),
	}

	jobs, err := BuildPlan(&cfg)
	assert.Nil(t, jobs)
	assert.ErrorIs(t, err, snowbatch.ErrNoData)
}

func TestSelectTables(t *testing.T) {
	configured := []string{"users", "orders", "events"}

	tests := []struct {
		name      string
		requested []string
		want      []string
		wantErr   bool
	}{
		{"empty selects all", nil, configured, false},
		{"subset preserves configured order", []string{"events", "users"}, []string{"users", "events"}, false},
		{"single", []string{"orders"}, []string{"orders"}, false},
		{"unknown table", []string{"users", "payments"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectTables(configured, tt.requested)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, snowbatch.ErrUnknownTable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
