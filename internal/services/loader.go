package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vvka-141/snowbatch/internal/stage"
	"github.com/vvka-141/snowbatch/pkg/snowbatch"
)

// connectFunc opens a statement-execution surface for a run and returns a
// cleanup that releases it. Overridable in tests.
type connectFunc func(ctx context.Context, config *snowbatch.ConnectionConfig) (snowbatch.DBConn, func() error, error)

// LoadService runs the batch load workflow: stage each table's archive,
// bulk-load it, and archive it from the pending to the done prefix.
//
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance.
// Create separate instances for concurrent runs.
type LoadService struct {
	connectorFactory func(*snowbatch.ConnectionConfig) (snowbatch.Connector, error)
	approver         snowbatch.Approver
	logger           snowbatch.Logger
	connect          connectFunc
}

// NewLoadService creates a new LoadService with all dependencies injected.
//
// Panics on nil dependencies: these are programmer errors that should fail
// loudly at application startup. Runtime conditions (bad config, connection
// failures, load failures) are returned as errors from Run.
func NewLoadService(
	connectorFactory func(*snowbatch.ConnectionConfig) (snowbatch.Connector, error),
	approver snowbatch.Approver,
	logger snowbatch.Logger,
) *LoadService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	svc := &LoadService{
		connectorFactory: connectorFactory,
		approver:         approver,
		logger:           logger,
	}
	svc.connect = svc.defaultConnect
	return svc
}

func (s *LoadService) defaultConnect(ctx context.Context, config *snowbatch.ConnectionConfig) (snowbatch.DBConn, func() error, error) {
	connector, err := s.connectorFactory(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connector: %w", err)
	}

	db, err := connector.Connect(ctx)
	if err != nil {
		return nil, nil, err
	}

	return db, db.Close, nil
}

// Run executes a batch load using the provided configuration.
//
// Tables are processed strictly in order. A missing local archive skips the
// table; any other failure aborts the remaining tables immediately, leaving
// the failed table's file in the pending prefix for inspection. The report
// covers every table that was reached before the run ended.
func (s *LoadService) Run(ctx context.Context, config snowbatch.LoadConfig) (*snowbatch.LoadReport, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	stageName := config.Stage
	if stageName == "" {
		stageName = snowbatch.DefaultStageName
	}
	onError := config.OnError
	if onError == "" {
		onError = snowbatch.DefaultOnError
	}

	jobs, err := BuildPlan(&config)
	if err != nil {
		return nil, err
	}

	present := 0
	for _, job := range jobs {
		if job.FileExists {
			present++
		}
	}

	s.logger.Verbose("Planned %d table(s), %d with local archives in %s",
		len(jobs), present, config.DataDir)

	approved, err := s.approver.RequestApproval(ctx, config.Connection.Database, present)
	if err != nil {
		return nil, fmt.Errorf("approval request failed: %w", err)
	}
	if !approved {
		return nil, snowbatch.ErrApprovalDenied
	}

	s.logger.Info("Connecting to account %s...", config.Connection.Account)
	conn, release, err := s.connect(ctx, &config.Connection)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := release(); cerr != nil {
			s.logger.Error("failed to close connection: %v", cerr)
		}
	}()

	report := &snowbatch.LoadReport{RunID: uuid.New().String()}
	s.logger.Verbose("Run ID (QUERY_TAG): %s", report.RunID)

	if err := s.prepareSession(ctx, conn, &config, stageName, report.RunID); err != nil {
		return report, err
	}

	for _, job := range jobs {
		if !job.FileExists {
			s.logger.Info("Skipping %s: file not found locally (%s)", job.Table, job.LocalPath)
			report.Results = append(report.Results, snowbatch.TableResult{
				Table:  job.Table,
				Status: snowbatch.StatusSkipped,
			})
			continue
		}

		if err := s.processTable(ctx, conn, job, onError); err != nil {
			report.Results = append(report.Results, snowbatch.TableResult{
				Table:  job.Table,
				Status: snowbatch.StatusFailed,
				Err:    err,
			})
			s.logger.Error("LOAD FAILED for %s", job.Table)
			s.logger.Error("File remains in: %s", job.PendingPath)
			return report, err
		}

		report.Results = append(report.Results, snowbatch.TableResult{
			Table:  job.Table,
			Status: snowbatch.StatusLoaded,
		})
	}

	loaded, skipped, _ := report.Counts()
	s.logger.Info("✓ Load completed: %d table(s) loaded, %d skipped", loaded, skipped)
	return report, nil
}

// prepareSession pins the session to the target schema, tags the run, and
// ensures the stage exists.
func (s *LoadService) prepareSession(ctx context.Context, conn snowbatch.DBConn, config *snowbatch.LoadConfig, stageName, runID string) error {
	if _, err := conn.ExecContext(ctx, stage.QueryTagSQL(runID)); err != nil {
		return fmt.Errorf("failed to set query tag: %w", err)
	}

	useSchema := stage.UseSchemaSQL(config.Connection.Database, config.Connection.Schema)
	if _, err := conn.ExecContext(ctx, useSchema); err != nil {
		return fmt.Errorf("failed to select schema %s.%s: %w",
			config.Connection.Database, config.Connection.Schema, err)
	}

	s.logger.Verbose("Ensuring stage %s exists", stageName)
	if _, err := conn.ExecContext(ctx, stage.CreateStageSQL(stageName)); err != nil {
		return fmt.Errorf("failed to create stage %s: %w", stageName, err)
	}

	return nil
}

// processTable uploads, loads, and archives a single table's archive.
// Any error aborts the run; the caller handles reporting.
func (s *LoadService) processTable(ctx context.Context, conn snowbatch.DBConn, job snowbatch.TableJob, onError string) error {
	s.logger.Info("Processing table: %s", job.Table)

	pendingDir := stageDirOf(job.PendingPath)
	s.logger.Verbose("Uploading %s to %s", job.LocalPath, pendingDir)
	if _, err := conn.ExecContext(ctx, stage.PutSQL(job.LocalPath, pendingDir)); err != nil {
		return fmt.Errorf("failed to upload %s: %w: %w", job.LocalPath, err, snowbatch.ErrLoadFailed)
	}

	s.logger.Verbose("Loading into %s", job.Table)
	if _, err := conn.ExecContext(ctx, stage.CopyIntoSQL(job.Table, job.PendingPath, onError)); err != nil {
		return fmt.Errorf("COPY INTO %s failed: %w: %w", job.Table, err, snowbatch.ErrLoadFailed)
	}

	// Archive: upload to done first, then remove from pending. A crash in
	// between leaves the file in both prefixes, never in neither.
	doneDir := stageDirOf(job.DonePath)
	s.logger.Verbose("Archiving to %s", doneDir)
	if _, err := conn.ExecContext(ctx, stage.PutSQL(job.LocalPath, doneDir)); err != nil {
		return fmt.Errorf("failed to archive %s: %w: %w", job.Table, err, snowbatch.ErrLoadFailed)
	}
	if _, err := conn.ExecContext(ctx, stage.RemoveSQL(job.PendingPath)); err != nil {
		return fmt.Errorf("failed to remove staged file %s: %w: %w", job.PendingPath, err, snowbatch.ErrLoadFailed)
	}

	s.logger.Info("✓ %s loaded and archived", job.Table)
	return nil
}

// stageDirOf strips the file name from a full stage path, returning the
// directory form a PUT command targets.
func stageDirOf(stagePath string) string {
	for i := len(stagePath) - 1; i >= 0; i-- {
		if stagePath[i] == '/' {
			return stagePath[:i+1]
		}
	}
	return stagePath
}
