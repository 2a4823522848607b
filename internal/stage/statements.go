package stage

import (
	"fmt"
	"regexp"
	"strings"
)

// Statement builders for the fixed SQL surface of a load run. Snowflake does
// not support bind parameters for stage commands or session parameters, so
// these are assembled as text; identifiers and literals are escaped here and
// nowhere else.

// QuoteIdent wraps an identifier in double quotes, escaping embedded quotes.
// A quoted identifier is case-sensitive in Snowflake.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

var plainIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

// identSQL renders an identifier for a statement. Plain names pass through
// unquoted so Snowflake case-folds them to uppercase, matching how the tables
// and schemas are usually created; anything else is quoted exactly.
func identSQL(name string) string {
	if plainIdent.MatchString(name) {
		return name
	}
	return QuoteIdent(name)
}

// escapeLiteral escapes single quotes for use inside a SQL string literal.
func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, `'`, `''`)
}

// UseSchemaSQL returns the USE SCHEMA statement that pins the session to the
// target database and schema.
func UseSchemaSQL(database, schema string) string {
	return fmt.Sprintf("USE SCHEMA %s.%s", identSQL(database), identSQL(schema))
}

// CreateStageSQL returns the idempotent stage creation statement.
func CreateStageSQL(stageName string) string {
	return fmt.Sprintf(
		`CREATE STAGE IF NOT EXISTS %s FILE_FORMAT=(TYPE='CSV' FIELD_OPTIONALLY_ENCLOSED_BY='"')`,
		stageName,
	)
}

// QueryTagSQL returns the session parameter statement that tags every
// statement of the run with the run ID for QUERY_HISTORY attribution.
func QueryTagSQL(tag string) string {
	return fmt.Sprintf("ALTER SESSION SET QUERY_TAG = '%s'", escapeLiteral(tag))
}

// PutSQL returns the PUT statement uploading a local archive to a stage
// prefix, overwriting any prior copy.
func PutSQL(localPath, stageDir string) string {
	return fmt.Sprintf("PUT %s %s OVERWRITE=TRUE", FileURL(localPath), stageDir)
}

// CopyIntoSQL returns the bulk load statement for a staged archive.
//
// The format mirrors the export side: header row skipped, quoted fields, the
// NULL tokens produced by the exporter ('NULL', 'nan', '\N') mapped to SQL
// NULL. PURGE=FALSE keeps the staged file so it can be archived afterwards.
func CopyIntoSQL(table, stagedPath, onError string) string {
	return fmt.Sprintf(`COPY INTO %s
FROM %s
FILE_FORMAT = (
    TYPE='CSV'
    SKIP_HEADER=1
    FIELD_OPTIONALLY_ENCLOSED_BY='"'
    NULL_IF=('NULL', 'nan', '\\N')
)
ON_ERROR = '%s'
PURGE = FALSE`, identSQL(table), stagedPath, escapeLiteral(onError))
}

// RemoveSQL returns the REMOVE statement deleting a staged file.
func RemoveSQL(stagedPath string) string {
	return "REMOVE " + stagedPath
}
