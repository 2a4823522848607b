package snowbatch

import (
	"context"
	"database/sql"
)

// DBConn abstracts the statement execution surface the loader needs.
// This interface decouples the public API from database/sql so the loader
// can be exercised against recording fakes in tests.
//
// Thread-Safety: Implementations should follow their underlying connection's
// thread-safety guarantees. *sql.DB-backed implementations are safe for
// concurrent use, though the loader itself is strictly sequential.
type DBConn interface {
	// ExecContext executes a statement without returning any rows.
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
