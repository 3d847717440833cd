// Package application holds the nexus identity and the per-user directory
// that keeps tool state (settings file and registry).
package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "nexus"

	// EnvPrefix prefixes every environment variable read by nexus
	EnvPrefix = "NEXUS"

	// HomeEnv overrides the per-user directory when set
	HomeEnv = EnvPrefix + "_HOME"

	// Version is reported by "nexus --version"
	Version = "0.1.0"
)

// Directory returns the nexus per-user directory. $NEXUS_HOME is used when
// set, made absolute. Otherwise:
// Linux: ~/.config/nexus (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\nexus (via os.UserCacheDir)
func Directory() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		dir, err := filepath.Abs(home)
		if err != nil {
			return "", fmt.Errorf("invalid %s: %w", HomeEnv, err)
		}

		return dir, nil
	}

	base, err := userBaseDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}

	return filepath.Join(base, AppName), nil
}

func userBaseDir() (string, error) {
	if runtime.GOOS == "windows" {
		return os.UserCacheDir()
	}

	return os.UserConfigDir()
}
