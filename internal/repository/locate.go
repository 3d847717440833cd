package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Locate finds the repository enclosing start by walking up the directory
// tree. The first directory holding a .nexus directory is opened with Open and
// any validation error is returned as is.
//
// When the filesystem root is reached without a match, Locate returns
// ErrNotARepository if required is set, and a nil repository with a nil error
// otherwise.
func Locate(start string, required bool) (*Repository, error) {
	dir, err := canonicalize(start)
	if err != nil {
		return nil, err
	}

	for {
		if fi, err := os.Stat(filepath.Join(dir, MetadataDirName)); err == nil && fi.IsDir() {
			log.Debug().Str("start", start).Str("worktree", dir).Msg("found repository")

			return Open(dir)
		}

		parent, err := canonicalize(filepath.Join(dir, ".."))
		if err != nil {
			return nil, err
		}

		// canonical root is its own parent
		if parent == dir {
			break
		}

		dir = parent
	}

	if required {
		return nil, fmt.Errorf("%w (or any of the parent directories): %s", ErrNotARepository, start)
	}

	return nil, nil
}

// canonicalize returns the absolute path of p with symlinks resolved. A
// missing tail is kept as written below its deepest existing ancestor.
func canonicalize(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path: %w", err)
	}

	var tail []string

	for {
		resolved, err := filepath.EvalSymlinks(abs)
		if err == nil {
			return filepath.Join(append([]string{resolved}, tail...)...), nil
		}

		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("cannot resolve path %s: %w", abs, err)
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return filepath.Join(append([]string{abs}, tail...)...), nil
		}

		tail = append([]string{filepath.Base(abs)}, tail...)
		abs = parent
	}
}
