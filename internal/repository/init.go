package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/inovacc/nexus/internal/config"
	"github.com/rs/zerolog/log"
)

// Create scaffolds a new repository with its worktree at path.
//
// Checks run before anything is written:
//   - path must be a directory if it exists (ErrNotADirectory)
//   - path/.nexus must be absent or empty (ErrAlreadyInitialized); an
//     existing non-empty metadata directory is left untouched
//
// Then the worktree is created if needed, followed by the directory skeleton
// (branches, objects, refs/tags, refs/heads) and the description, HEAD and
// config files.
//
// Create is not atomic. A failure after the checks leaves a partially
// populated metadata directory behind, and a later Create on the same path
// fails with ErrAlreadyInitialized instead of repairing it. Concurrent calls
// on one path are not serialized.
//
// The returned handle is not validated; the config it carries is the one
// just written.
func Create(path string) (*Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path: %w", err)
	}

	log.Debug().Str("path", abs).Msg("creating repository")

	r := bootstrap(abs)

	worktreeExists, err := checkWorktree(r.worktree)
	if err != nil {
		return nil, err
	}

	if err := checkMetadataDir(r.metadataDir); err != nil {
		return nil, err
	}

	if !worktreeExists {
		if err := os.MkdirAll(r.worktree, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", r.worktree, err)
		}

		log.Debug().Str("worktree", r.worktree).Msg("created worktree")
	}

	for _, segments := range skeleton {
		if _, _, err := r.Dir(true, segments...); err != nil {
			return nil, err
		}
	}

	if err := r.writeFile(DescriptionFile, DefaultDescription); err != nil {
		return nil, err
	}

	if err := r.writeFile(HeadFile, DefaultHead); err != nil {
		return nil, err
	}

	if err := r.SaveConfig(config.Default()); err != nil {
		return nil, err
	}

	log.Debug().Str("metadata", r.metadataDir).Msg("repository created")

	return r, nil
}

// checkWorktree reports whether the worktree exists, failing when it is not
// a directory.
func checkWorktree(worktree string) (bool, error) {
	fi, err := os.Stat(worktree)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", worktree, err)
	}

	if !fi.IsDir() {
		return false, &NotADirectoryError{Path: worktree}
	}

	return true, nil
}

func checkMetadataDir(metadataDir string) error {
	entries, err := os.ReadDir(metadataDir)
	switch {
	case err == nil:
		if len(entries) > 0 {
			return &AlreadyInitializedError{Path: metadataDir}
		}

		return nil
	case errors.Is(err, fs.ErrNotExist):
		return nil
	}

	if fi, serr := os.Stat(metadataDir); serr == nil && !fi.IsDir() {
		return &NotADirectoryError{Path: metadataDir}
	}

	return fmt.Errorf("failed to read %s: %w", metadataDir, err)
}

func (r *Repository) writeFile(name, content string) error {
	path, err := r.File(true, name)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
