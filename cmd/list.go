package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/nexus/internal/registry"
	"github.com/inovacc/nexus/internal/repository"
	"github.com/spf13/cobra"
)

const (
	statusOK      = "ok"
	statusMissing = "missing"
)

type listOptions struct {
	prune bool
}

type listRow struct {
	entry  registry.Entry
	status string
}

func newListCmd(a *app) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List repositories created with init",
		Long: `Show every repository recorded in the registry together with its current
state: ok, missing (the .nexus directory is gone) or the reason it no longer
opens.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(a, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.prune, "prune", false, "Remove missing repositories from the registry")

	return cmd
}

func runList(a *app, opts *listOptions) error {
	reg, err := a.openRegistry()
	if err != nil {
		return err
	}

	defer func() { _ = reg.Close() }()

	entries, err := reg.List()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(a.stdout, "No repositories registered.")
		_, _ = fmt.Fprintln(a.stdout, "Create one with: nexus init [directory]")

		return nil
	}

	rows := make([]listRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, inspect(e))
	}

	renderList(a, rows)

	if !opts.prune {
		return nil
	}

	for _, row := range rows {
		if row.status != statusMissing {
			continue
		}

		if err := reg.Remove(row.entry.Worktree); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(a.stdout, "Pruned: %s\n", row.entry.Worktree)
	}

	return nil
}

func inspect(e registry.Entry) listRow {
	_, err := repository.Open(e.Worktree)

	switch {
	case err == nil:
		return listRow{entry: e, status: statusOK}
	case errors.Is(err, repository.ErrNotARepository):
		return listRow{entry: e, status: statusMissing}
	default:
		return listRow{entry: e, status: err.Error()}
	}
}

func renderList(a *app, rows []listRow) {
	re := lipgloss.NewRenderer(a.stdout)

	var (
		header  = re.NewStyle().Bold(true)
		okStyle = re.NewStyle().Foreground(lipgloss.Color("10"))
		missing = re.NewStyle().Foreground(lipgloss.Color("11"))
		broken  = re.NewStyle().Foreground(lipgloss.Color("9"))
	)

	width := len("WORKTREE")
	for _, row := range rows {
		width = max(width, len(row.entry.Worktree))
	}

	column := re.NewStyle().Width(width + 2)

	_, _ = fmt.Fprintln(a.stdout, column.Inherit(header).Render("WORKTREE")+header.Render("STATUS"))

	for _, row := range rows {
		style := broken

		switch row.status {
		case statusOK:
			style = okStyle
		case statusMissing:
			style = missing
		}

		_, _ = fmt.Fprintln(a.stdout, column.Render(row.entry.Worktree)+style.Render(row.status))
	}
}
