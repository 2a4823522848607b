package retry

import (
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/snowflakedb/gosnowflake"
)

// SnowflakeErrorClassifier implements ErrorClassifier for Snowflake-specific errors.
type SnowflakeErrorClassifier struct{}

// NewSnowflakeErrorClassifier creates a new Snowflake error classifier.
func NewSnowflakeErrorClassifier() *SnowflakeErrorClassifier {
	return &SnowflakeErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
func (c *SnowflakeErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	// Check for Snowflake driver errors
	var sfErr *gosnowflake.SnowflakeError
	if errors.As(err, &sfErr) {
		return c.isTransientSnowflakeError(sfErr)
	}

	// Check for network-level errors
	if c.isNetworkError(err) {
		return true
	}

	// Check for connection error patterns
	if c.isConnectionError(err) {
		return true
	}

	return false
}

// isTransientSnowflakeError checks SQLSTATE classes for transient conditions.
// SQLSTATE class 08 is Connection Exception; class 53 is Insufficient
// Resources (e.g. warehouse queueing limits). Anything else from the driver
// is a real statement or authentication failure and must not be retried.
func (c *SnowflakeErrorClassifier) isTransientSnowflakeError(sfErr *gosnowflake.SnowflakeError) bool {
	if strings.HasPrefix(sfErr.SQLState, "08") {
		return true
	}
	if strings.HasPrefix(sfErr.SQLState, "53") {
		return true
	}
	return false
}

// isNetworkError checks for network-level errors.
func (c *SnowflakeErrorClassifier) isNetworkError(err error) bool {
	// DNS errors
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary() || dnsErr.Timeout()
	}

	// Network operation errors
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Temporary() || opErr.Timeout() {
			return true
		}

		if opErr.Err != nil {
			if errors.Is(opErr.Err, syscall.ECONNREFUSED) {
				return true
			}
			if errors.Is(opErr.Err, syscall.ECONNRESET) {
				return true
			}
			if errors.Is(opErr.Err, syscall.ENETUNREACH) {
				return true
			}
			if errors.Is(opErr.Err, syscall.EHOSTUNREACH) {
				return true
			}
		}
	}

	return false
}

// isConnectionError checks for connection-related error messages.
func (c *SnowflakeErrorClassifier) isConnectionError(err error) bool {
	errMsg := strings.ToLower(err.Error())

	transientPatterns := []string{
		"connection refused",
		"connection reset",
		"connection timeout",
		"no such host",
		"network is unreachable",
		"i/o timeout",
		"broken pipe",
		"unexpected eof",
		"service unavailable",
		"gateway timeout",
	}

	for _, pattern := range transientPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return false
}
