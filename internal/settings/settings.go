// Package settings loads nexus tool settings (not repository configuration)
// from defaults, an optional nexus.yaml, NEXUS_* environment variables and
// command-line flags, in increasing order of precedence.
package settings

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/inovacc/nexus/internal/application"
	"github.com/spf13/viper"
)

// Setting keys. Each is also read from NEXUS_<KEY>.
const (
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
	KeyRegistry  = "registry"
)

// RegistryFile is the default registry database name inside the application directory.
const RegistryFile = "nexus.bolt"

// Settings holds the resolved tool settings.
type Settings struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	Registry  string `mapstructure:"registry"`
}

// New returns a viper instance carrying nexus defaults. appDir, when not
// empty, is searched for nexus.yaml and holds the default registry file.
func New(appDir string) *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, "auto")
	v.SetDefault(KeyRegistry, "")

	if appDir != "" {
		v.SetDefault(KeyRegistry, filepath.Join(appDir, RegistryFile))
		v.AddConfigPath(appDir)
	}

	v.SetConfigName(application.AppName)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(application.EnvPrefix)
	v.AutomaticEnv()

	for _, key := range []string{KeyLogLevel, KeyLogFormat, KeyRegistry} {
		_ = v.BindEnv(key)
	}

	return v
}

// Load reads the settings file, if any, and resolves all settings. A missing
// nexus.yaml in the search path is not an error; a missing explicit
// configFile is.
func Load(v *viper.Viper, configFile string) (*Settings, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}

	return &s, nil
}
