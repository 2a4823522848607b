package services

import (
	"fmt"
	"os"

	"github.com/vvka-141/snowbatch/internal/stage"
	"github.com/vvka-141/snowbatch/pkg/snowbatch"
)

// BuildPlan resolves the per-table jobs for a run: local archive path, stage
// paths, and whether the archive exists right now. The plan touches only the
// local filesystem; it never connects to the warehouse.
func BuildPlan(config *snowbatch.LoadConfig) ([]snowbatch.TableJob, error) {
	stageName := config.Stage
	if stageName == "" {
		stageName = snowbatch.DefaultStageName
	}

	if info, err := os.Stat(config.DataDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("data directory %q does not exist: %w", config.DataDir, snowbatch.ErrNoData)
	}

	jobs := make([]snowbatch.TableJob, 0, len(config.Tables))
	for _, table := range config.Tables {
		localPath, err := stage.LocalPath(config.DataDir, table)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path for table %q: %w", table, err)
		}

		_, statErr := os.Stat(localPath)

		jobs = append(jobs, snowbatch.TableJob{
			Table:       table,
			LocalPath:   localPath,
			PendingPath: stage.PendingPath(stageName, table),
			DonePath:    stage.DonePath(stageName, table),
			FileExists:  statErr == nil,
		})
	}

	return jobs, nil
}

// SelectTables restricts the configured table list to the requested subset,
// preserving configured order. An empty request selects everything. A
// requested table that is not configured is an error: loading an arbitrary
// table name would silently target the wrong data.
func SelectTables(configured, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return configured, nil
	}

	want := make(map[string]bool, len(requested))
	for _, t := range requested {
		want[t] = true
	}

	selected := make([]string, 0, len(requested))
	for _, t := range configured {
		if want[t] {
			selected = append(selected, t)
			delete(want, t)
		}
	}

	for t := range want {
		return nil, fmt.Errorf("table %q is not in the configured table list: %w", t, snowbatch.ErrUnknownTable)
	}

	return selected, nil
}
