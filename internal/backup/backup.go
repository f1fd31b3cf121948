package backup

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// Create copies a config file to a timestamped sibling before it is
// overwritten. The backup is named <path>.backup.<unix-millis> and keeps the
// source file's content and permission bits.
//
// A missing source is not an error: there is nothing to protect, so Create
// returns ("", nil) and the caller proceeds without a backup.
func Create(fsys afero.Fs, path string) (string, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", errors.Wrapf(err, "stat %s", path)
	}
	if info.IsDir() {
		return "", errors.Newf("cannot back up directory %s", path)
	}

	src, err := fsys.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening source file")
	}
	defer src.Close()

	dstPath, dst, err := claimBackupFile(fsys, path, time.Now())
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		fsys.Remove(dstPath)
		return "", errors.Wrap(err, "copying file")
	}
	if err := dst.Close(); err != nil {
		return "", errors.Wrap(err, "closing backup file")
	}

	// Match the source permissions so a restored file behaves the same
	if err := fsys.Chmod(dstPath, info.Mode().Perm()); err != nil {
		return "", errors.Wrap(err, "setting permissions")
	}

	return dstPath, nil
}

// claimBackupFile opens a fresh backup file, bumping the millisecond
// timestamp until it finds an unused name. Two backups of the same file in
// the same millisecond must not clobber each other.
func claimBackupFile(fsys afero.Fs, path string, at time.Time) (string, afero.File, error) {
	ms := at.UnixMilli()
	for {
		candidate := path + marker + strconv.FormatInt(ms, 10)
		f, err := fsys.OpenFile(candidate, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return candidate, f, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", nil, errors.Wrap(err, "creating backup file")
		}
		ms++
	}
}

// List returns all backups of the given config file, newest first.
// Returns ErrNoBackupsFound when the file has no backups at all.
func List(fsys afero.Fs, path string) ([]Info, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoBackupsFound
		}
		return nil, errors.Wrap(err, "reading config directory")
	}

	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		createdAt, ok := parseTimestamp(entry.Name(), base)
		if !ok {
			continue
		}
		infos = append(infos, Info{
			Path:      filepath.Join(dir, entry.Name()),
			Source:    path,
			CreatedAt: createdAt,
			Size:      entry.Size(),
		})
	}

	if len(infos) == 0 {
		return nil, ErrNoBackupsFound
	}

	slices.SortFunc(infos, func(a, b Info) int {
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		if a.CreatedAt.Before(b.CreatedAt) {
			return 1
		}
		return strings.Compare(a.Path, b.Path)
	})

	return infos, nil
}

// Prune removes backups of the given config file beyond the retention count,
// keeping the 'keep' most recent ones. Returns the number removed.
func Prune(fsys afero.Fs, path string, keep int) (int, error) {
	if keep < 0 {
		return 0, errors.New("keep must be non-negative")
	}

	infos, err := List(fsys, path)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, info := range infos[min(keep, len(infos)):] {
		if err := fsys.Remove(info.Path); err != nil {
			return removed, errors.Wrapf(err, "removing backup %s", info.Path)
		}
		removed++
	}

	return removed, nil
}

// parseTimestamp extracts the creation time from a backup filename.
// The second return is false when the name does not belong to a backup of
// the given base file.
func parseTimestamp(name, base string) (time.Time, bool) {
	if !strings.HasPrefix(name, base+marker) {
		return time.Time{}, false
	}
	digits := strings.TrimPrefix(name, base+marker)
	ms, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || ms <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}
