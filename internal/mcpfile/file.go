package mcpfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"

	"github.com/spectatorcontext/spectator-cli/internal/errors"
	"github.com/spectatorcontext/spectator-cli/pkg/fileutil"
)

// MalformedConfigError reports a config file that exists but does not parse
// as JSON. The file on disk is left untouched.
type MalformedConfigError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *MalformedConfigError) Error() string {
	return fmt.Sprintf("malformed config %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *MalformedConfigError) Unwrap() error {
	return e.Err
}

// Read loads the config document at path. A missing or empty file yields an
// empty document, not an error. Content is run through a JSONC pass first so
// comments and trailing commas in hand-edited files parse. Content that
// still fails to parse yields a *MalformedConfigError.
func Read(fsys afero.Fs, path string) (*Document, error) {
	data, err := fileutil.ReadFileWithLimit(fsys, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewDocument(), nil
		}
		return nil, errors.Wrap(err, "reading config")
	}

	doc := NewDocument()
	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}

	if err := json.Unmarshal(jsonc.ToJSON(data), doc); err != nil {
		return nil, &MalformedConfigError{Path: path, Err: err}
	}

	return doc, nil
}

// Write persists doc to path, creating missing parent directories. The file
// is written atomically, pretty-printed with 2-space indentation and a
// trailing newline, mode 0644.
func Write(fsys afero.Fs, path string, doc *Document) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	if err := fileutil.AtomicWriteJSON(fsys, path, doc); err != nil {
		return errors.Wrap(err, "writing config")
	}

	return nil
}
