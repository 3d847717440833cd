package cmd

import (
	"fmt"

	"github.com/inovacc/nexus/internal/repository"
	"github.com/spf13/cobra"
)

func newWorktreeCmd(a *app) *cobra.Command {
	var showMetadata bool

	cmd := &cobra.Command{
		Use:   "root [path]",
		Short: "Show the top-level directory of the enclosing repository",
		Long: `Search upward from path (the current directory by default) for the
nearest directory holding a .nexus directory, validate it and print its path.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			start := "."
			if len(args) == 1 {
				start = args[0]
			}

			path, err := a.resolvePath(start)
			if err != nil {
				return err
			}

			r, err := repository.Locate(path, true)
			if err != nil {
				return err
			}

			if showMetadata {
				_, _ = fmt.Fprintln(a.stdout, r.MetadataDir())

				return nil
			}

			_, _ = fmt.Fprintln(a.stdout, r.Worktree())

			return nil
		},
	}

	cmd.Flags().BoolVar(&showMetadata, "metadata", false, "Print the .nexus directory instead of the worktree")

	return cmd
}
