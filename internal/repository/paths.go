package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Path joins segments under the metadata directory. It performs no I/O.
func (r *Repository) Path(segments ...string) string {
	return filepath.Join(append([]string{r.metadataDir}, segments...)...)
}

// Dir resolves segments as a directory under the metadata directory.
//
// An existing directory is returned with ok set. An existing non-directory
// fails with ErrNotADirectory. A missing directory is created together with
// any missing parents when create is set; otherwise Dir returns ok == false
// and no error, so callers can check for optional directories.
func (r *Repository) Dir(create bool, segments ...string) (path string, ok bool, err error) {
	path = r.Path(segments...)

	fi, err := os.Stat(path)
	switch {
	case err == nil:
		if !fi.IsDir() {
			return "", false, &NotADirectoryError{Path: path}
		}

		return path, true, nil
	case !errors.Is(err, fs.ErrNotExist):
		return "", false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !create {
		return "", false, nil
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	return path, true, nil
}

// File resolves segments as a file under the metadata directory. With
// createParent set, the directory holding the file is created first. The
// file itself is never created or opened.
func (r *Repository) File(createParent bool, segments ...string) (string, error) {
	if createParent && len(segments) > 0 {
		if _, _, err := r.Dir(true, segments[:len(segments)-1]...); err != nil {
			return "", err
		}
	}

	return r.Path(segments...), nil
}
