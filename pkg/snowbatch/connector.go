package snowbatch

import (
	"context"
	"database/sql"
)

// Connector is a unified interface for establishing Snowflake connections.
type Connector interface {
	// Connect opens and pings a database handle.
	// The returned handle should be closed by the caller when done.
	Connect(ctx context.Context) (*sql.DB, error)
}
