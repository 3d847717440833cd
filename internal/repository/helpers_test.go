package repository

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// tempDir returns a fresh directory with symlinks resolved, so it compares
// equal to the paths Locate reports.
func tempDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	return dir
}

func writeConfig(t *testing.T, worktree, content string) {
	t.Helper()

	path := filepath.Join(worktree, MetadataDirName, ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// snapshot records every entry under root with its contents, for checking
// that a failed operation changed nothing.
func snapshot(t *testing.T, root string) map[string]string {
	t.Helper()

	out := make(map[string]string)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if d.IsDir() {
			out[rel] = "<dir>"

			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		out[rel] = string(data)

		return nil
	})
	require.NoError(t, err)

	return out
}
