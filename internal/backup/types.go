package backup

import (
	"time"

	"github.com/cockroachdb/errors"
)

// Default configuration values.
const (
	// DefaultRetentionCount is the default number of backups to retain per
	// config file.
	DefaultRetentionCount = 5
)

// marker separates the original filename from the timestamp suffix.
const marker = ".backup."

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no backups exist for the specified config file.
	ErrNoBackupsFound = errors.New("no backups found")
)

// Info describes a single backup file found on disk.
type Info struct {
	// Path is the absolute path of the backup file.
	Path string

	// Source is the config file this backup protects.
	Source string

	// CreatedAt is the creation time parsed from the filename timestamp.
	CreatedAt time.Time

	// Size is the backup file size in bytes.
	Size int64
}
