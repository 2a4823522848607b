package stage

import (
	"path/filepath"
	"strings"

	"github.com/vvka-141/snowbatch/pkg/snowbatch"
)

// FileName returns the expected archive name for a table, e.g. "users.csv.gz".
func FileName(table string) string {
	return table + snowbatch.DataFileSuffix
}

// LocalPath returns the absolute path of a table's archive inside dataDir.
func LocalPath(dataDir, table string) (string, error) {
	abs, err := filepath.Abs(filepath.Join(dataDir, FileName(table)))
	if err != nil {
		return "", err
	}
	return abs, nil
}

// PendingDir returns the pending prefix as a PUT target,
// e.g. "@MIGRATION_LOAD_STAGE/not_processed/".
func PendingDir(stageName string) string {
	return "@" + stageName + "/" + snowbatch.StagePrefixPending + "/"
}

// DoneDir returns the done prefix as a PUT target.
func DoneDir(stageName string) string {
	return "@" + stageName + "/" + snowbatch.StagePrefixDone + "/"
}

// PendingPath returns the full stage path of a table's archive in the
// pending prefix, e.g. "@MIGRATION_LOAD_STAGE/not_processed/users.csv.gz".
func PendingPath(stageName, table string) string {
	return PendingDir(stageName) + FileName(table)
}

// DonePath returns the full stage path of a table's archive in the done prefix.
func DonePath(stageName, table string) string {
	return DoneDir(stageName) + FileName(table)
}

// FileURL converts a local path into the file:// URL form the PUT command
// expects. Windows backslashes become forward slashes.
func FileURL(localPath string) string {
	return "file://" + strings.ReplaceAll(localPath, `\`, "/")
}
