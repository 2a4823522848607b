package db

import (
	"fmt"
	"net/url"

	"github.com/vvka-141/snowbatch/pkg/snowbatch"
)

// BuildDSN assembles a gosnowflake data source name from resolved connection
// parameters.
//
// Format: user:password@account/database/schema?warehouse=wh&role=role
func BuildDSN(config *snowbatch.ConnectionConfig) string {
	dsn := fmt.Sprintf("%s:%s@%s/%s/%s",
		url.QueryEscape(config.User),
		url.QueryEscape(config.Password),
		config.Account,
		url.PathEscape(config.Database),
		url.PathEscape(config.Schema),
	)

	params := url.Values{}
	if config.Warehouse != "" {
		params.Set("warehouse", config.Warehouse)
	}
	if config.Role != "" {
		params.Set("role", config.Role)
	}
	if config.AppName != "" {
		params.Set("application", config.AppName)
	}
	if config.LoginTimeout > 0 {
		params.Set("loginTimeout", fmt.Sprintf("%d", int(config.LoginTimeout.Seconds())))
	}

	if encoded := params.Encode(); encoded != "" {
		dsn += "?" + encoded
	}
	return dsn
}
