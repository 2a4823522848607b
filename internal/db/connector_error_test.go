package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/snowbatch/pkg/snowbatch"
)

func TestWrapConnectionError_Classification(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantHint string
	}{
		{
			"unresolvable account",
			errors.New("dial tcp: lookup bad.snowflakecomputing.com: no such host"),
			"check the account identifier",
		},
		{
			"bad credentials",
			errors.New("390100: Incorrect username or password was specified"),
			"SNOWFLAKE_USER / SNOWFLAKE_PASSWORD",
		},
		{
			"timeout",
			errors.New("dial tcp 1.2.3.4:443: i/o timeout"),
			"check network access",
		},
		{
			"other",
			errors.New("tls handshake failure"),
			"failed to connect",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := wrapConnectionError(tt.err, "xy12345")

			assert.ErrorIs(t, wrapped, snowbatch.ErrConnectionFailed)
			assert.ErrorIs(t, wrapped, tt.err)
			assert.Contains(t, wrapped.Error(), tt.wantHint)
			assert.Contains(t, wrapped.Error(), "xy12345")
		})
	}
}

func TestNewConnector_ReturnsStandardConnector(t *testing.T) {
	conn, err := NewConnector(&snowbatch.ConnectionConfig{Account: "xy12345"})

	assert.NoError(t, err)
	assert.IsType(t, &StandardConnector{}, conn)
}
