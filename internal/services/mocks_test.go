package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/vvka-141/snowbatch/pkg/snowbatch"
)

type mockApprover struct {
	approved bool
	err      error

	gotDatabase   string
	gotTableCount int
	calls         int
}

func (m *mockApprover) RequestApproval(_ context.Context, dbName string, tableCount int) (bool, error) {
	m.calls++
	m.gotDatabase = dbName
	m.gotTableCount = tableCount
	return m.approved, m.err
}

type mockLogger struct{}

func (m *mockLogger) Verbose(_ string, _ ...interface{}) {}
func (m *mockLogger) Info(_ string, _ ...interface{})    {}
func (m *mockLogger) Error(_ string, _ ...interface{})   {}

// fakeConn records every executed statement and can fail statements whose
// text starts with a configured prefix.
type fakeConn struct {
	executed []string
	failOn   map[string]error
}

func newFakeConn() *fakeConn {
	return &fakeConn{failOn: make(map[string]error)}
}

func (f *fakeConn) ExecContext(_ context.Context, query string, _ ...any) (sql.Result, error) {
	f.executed = append(f.executed, query)
	for prefix, err := range f.failOn {
		if strings.HasPrefix(query, prefix) {
			return nil, err
		}
	}
	return nil, nil
}

// statementsWithPrefix returns the executed statements starting with prefix,
// in execution order.
func (f *fakeConn) statementsWithPrefix(prefix string) []string {
	var out []string
	for _, q := range f.executed {
		if strings.HasPrefix(q, prefix) {
			out = append(out, q)
		}
	}
	return out
}

// indexOfPrefix returns the position of the first executed statement starting
// with prefix, or -1.
func (f *fakeConn) indexOfPrefix(prefix string) int {
	for i, q := range f.executed {
		if strings.HasPrefix(q, prefix) {
			return i
		}
	}
	return -1
}

// stubConnect wires a fakeConn into a LoadService and counts connections and
// releases.
type stubConnect struct {
	conn        *fakeConn
	connectErr  error
	connects    int
	releases    int
	releaseErr  error
}

func (s *stubConnect) fn(_ context.Context, _ *snowbatch.ConnectionConfig) (snowbatch.DBConn, func() error, error) {
	s.connects++
	if s.connectErr != nil {
		return nil, nil, s.connectErr
	}
	return s.conn, func() error {
		s.releases++
		return s.releaseErr
	}, nil
}

func validConnectorFactory(_ *snowbatch.ConnectionConfig) (snowbatch.Connector, error) {
	return nil, nil
}
