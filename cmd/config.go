package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/inovacc/nexus/internal/config"
	"github.com/inovacc/nexus/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errProtectedKey = errors.New("core.repositoryformatversion cannot be changed")

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write repository configuration",
		Long: `Commands for reading and writing the .nexus/config file of the enclosing
repository. Names take the form section.key, or section.subsection.key for
sections such as [remote "origin"].`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	cmd.AddCommand(
		newConfigGetCmd(a),
		newConfigSetCmd(a),
		newConfigUnsetCmd(a),
		newConfigListCmd(a),
	)

	return cmd
}

func newConfigGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Print the value of a configuration key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, key, err := config.SplitName(args[0])
			if err != nil {
				return err
			}

			r, err := a.locate()
			if err != nil {
				return err
			}

			value, ok := r.Config().Get(section, key)
			if !ok {
				return fmt.Errorf("key not found: %s", args[0])
			}

			_, _ = fmt.Fprintln(a.stdout, value)

			return nil
		},
	}
}

func newConfigSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Set a configuration key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, key, err := config.SplitName(args[0])
			if err != nil {
				return err
			}

			if err := checkWritable(section, key); err != nil {
				return err
			}

			if err := config.CheckValue(args[1]); err != nil {
				return err
			}

			r, err := a.locate()
			if err != nil {
				return err
			}

			cfg := r.Config()
			cfg.Set(section, key, args[1])

			if err := saveAndReload(r, cfg); err != nil {
				return err
			}

			stored, _ := r.Config().Get(section, key)
			log.Debug().Str("name", args[0]).Str("value", stored).Msg("config value written")

			return nil
		},
	}
}

func newConfigUnsetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unset <name>",
		Short: "Remove a configuration key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section, key, err := config.SplitName(args[0])
			if err != nil {
				return err
			}

			if err := checkWritable(section, key); err != nil {
				return err
			}

			r, err := a.locate()
			if err != nil {
				return err
			}

			cfg := r.Config()
			if !cfg.Unset(section, key) {
				return fmt.Errorf("key not found: %s", args[0])
			}

			return saveAndReload(r, cfg)
		},
	}
}

func newConfigListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.locate()
			if err != nil {
				return err
			}

			for _, line := range configLines(r.Config()) {
				_, _ = fmt.Fprintln(a.stdout, line)
			}

			return nil
		},
	}
}

// configLines renders cfg as sorted name=value lines.
func configLines(cfg *config.Config) []string {
	var lines []string

	for section, keys := range cfg.Sections() {
		for key, value := range keys {
			lines = append(lines, config.JoinName(section, key)+"="+value)
		}
	}

	sort.Strings(lines)

	return lines
}

// saveAndReload writes cfg and re-reads it, so the handle reflects the file.
func saveAndReload(r *repository.Repository, cfg *config.Config) error {
	if err := r.SaveConfig(cfg); err != nil {
		return err
	}

	return r.ReloadConfig()
}

func checkWritable(section, key string) error {
	if section == config.SectionCore && strings.EqualFold(key, config.KeyRepositoryFormat) {
		return errProtectedKey
	}

	return nil
}
