package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// expandPath expands a leading ~ to the user's home directory and makes the
// result absolute, interpreting relative paths against base.
func expandPath(path, base string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path is empty")
	}

	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}

		path = filepath.Join(home, path[1:])
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	return absPath, nil
}
