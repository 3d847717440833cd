package repository

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/inovacc/nexus/internal/config"
	"github.com/rs/zerolog/log"
)

// Repository is an opened or newly created repository.
type Repository struct {
	worktree    string
	metadataDir string
	config      *config.Config
}

// Open opens the repository rooted at worktree and validates it:
//   - worktree/.nexus must be a directory (ErrNotARepository)
//   - the config file must exist and parse (ErrMissingConfig)
//   - core.repositoryformatversion must be 0 (ErrUnsupportedFormatVersion)
func Open(worktree string) (*Repository, error) {
	abs, err := filepath.Abs(worktree)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path: %w", err)
	}

	r := newRepository(abs)

	if fi, err := os.Stat(r.metadataDir); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotARepository, abs)
	}

	cfgPath := r.Path(ConfigFile)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, &MissingConfigError{Path: cfgPath, Err: err}
	}

	if err := checkFormatVersion(cfg); err != nil {
		return nil, err
	}

	r.config = cfg

	log.Debug().Str("worktree", abs).Msg("opened repository")

	return r, nil
}

// bootstrap builds a handle for a repository that is about to be created.
// None of the Open checks apply; an existing config is loaded when readable.
func bootstrap(worktree string) *Repository {
	r := newRepository(worktree)

	if cfg, err := config.Load(r.Path(ConfigFile)); err == nil {
		r.config = cfg
	} else {
		r.config = config.New()
	}

	return r
}

func newRepository(worktree string) *Repository {
	return &Repository{
		worktree:    worktree,
		metadataDir: filepath.Join(worktree, MetadataDirName),
	}
}

func checkFormatVersion(cfg *config.Config) error {
	raw, ok := cfg.Get(config.SectionCore, config.KeyRepositoryFormat)
	if !ok {
		return &FormatVersionError{}
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v != 0 {
		return &FormatVersionError{Version: raw}
	}

	return nil
}

// Worktree returns the absolute path of the project root.
func (r *Repository) Worktree() string {
	return r.worktree
}

// MetadataDir returns the absolute path of the .nexus directory.
func (r *Repository) MetadataDir() string {
	return r.metadataDir
}

// Config returns the parsed repository configuration.
func (r *Repository) Config() *config.Config {
	return r.config
}

// ReloadConfig re-reads the config file from disk. On failure the previously
// loaded config is kept.
func (r *Repository) ReloadConfig() error {
	cfgPath := r.Path(ConfigFile)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return &MissingConfigError{Path: cfgPath, Err: err}
	}

	r.config = cfg

	return nil
}

// SaveConfig writes cfg to the config file and makes it the handle's config.
func (r *Repository) SaveConfig(cfg *config.Config) error {
	cfgPath, err := r.File(true, ConfigFile)
	if err != nil {
		return err
	}

	if err := cfg.Save(cfgPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", cfgPath, err)
	}

	r.config = cfg

	return nil
}

func (r *Repository) String() string {
	return r.worktree
}
