package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/inovacc/nexus/internal/registry"
	"github.com/inovacc/nexus/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type initOptions struct {
	noRegister bool
}

func newInitCmd(a *app) *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new, empty repository",
		Long: `Create a .nexus directory with the default layout in the given directory
(the current directory by default). The directory is created if it does not
exist. An existing, non-empty .nexus directory is left untouched and the
command fails.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			path, err := a.resolvePath(dir)
			if err != nil {
				return err
			}

			return runInit(a, path, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noRegister, "no-register", false, "Do not record the repository in the registry")

	return cmd
}

func runInit(a *app, dir string, opts *initOptions) error {
	r, err := repository.Create(dir)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(a.stdout, "Initialized empty Nexus repository in %s\n", r.MetadataDir())

	if opts.noRegister {
		return nil
	}

	// the repository exists at this point, so a registry failure is only reported
	if err := register(a, r.Worktree()); err != nil {
		log.Warn().Err(err).Str("worktree", r.Worktree()).Msg("repository not recorded in registry")
	}

	return nil
}

func register(a *app, worktree string) error {
	if resolved, err := filepath.EvalSymlinks(worktree); err == nil {
		worktree = resolved
	}

	reg, err := a.openRegistry()
	if err != nil {
		return err
	}

	defer func() { _ = reg.Close() }()

	existing, err := reg.Get(worktree)

	switch {
	case err == nil:
		log.Debug().Str("id", existing.ID).Str("worktree", worktree).Msg("repository already registered")

		return nil
	case !errors.Is(err, registry.ErrNotFound):
		return err
	}

	e, err := reg.Add(worktree)
	if err != nil {
		return err
	}

	log.Debug().Str("id", e.ID).Str("worktree", e.Worktree).Msg("registered repository")

	return nil
}
