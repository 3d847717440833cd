package cmd

import (
	"fmt"
	"io"

	"github.com/inovacc/nexus/internal/application"
	"github.com/inovacc/nexus/internal/logger"
	"github.com/inovacc/nexus/internal/registry"
	"github.com/inovacc/nexus/internal/repository"
	"github.com/inovacc/nexus/internal/settings"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app is the state shared by every command of one root command instance.
type app struct {
	stdout io.Writer
	stderr io.Writer

	viper      *viper.Viper
	settings   *settings.Settings
	configFile string
	workDir    string
}

// commandEntry maps a subcommand name to the constructor building it.
type commandEntry struct {
	name  string
	build func(*app) *cobra.Command
}

// commandTable is the single list of subcommands. Nothing registers commands
// anywhere else.
func commandTable() []commandEntry {
	return []commandEntry{
		{name: "init", build: newInitCmd},
		{name: "root", build: newWorktreeCmd},
		{name: "config", build: newConfigCmd},
		{name: "list", build: newListCmd},
	}
}

// NewRootCmd builds the nexus command tree writing to stdout and stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	appDir, err := application.Directory()
	if err != nil {
		appDir = ""
	}

	a := &app{
		stdout: stdout,
		stderr: stderr,
		viper:  settings.New(appDir),
	}

	rootCmd := &cobra.Command{
		Use:   application.AppName,
		Short: "A minimal version control system",
		Long: `Nexus stores repository state in a .nexus directory at the top of the
worktree. Commands run from any directory inside a worktree act on the
nearest enclosing repository.`,
		Version:       application.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.workDir, "dir", "C", ".", "Run as if started in this directory")
	flags.StringVar(&a.configFile, "config", "", "Settings file (default is nexus.yaml in the application directory)")
	flags.String("log-level", "", "Log level (trace, debug, info, warn, error, disabled)")
	flags.String("log-format", "", "Log format (auto, console, json)")
	flags.String("registry", "", "Registry database path")

	_ = a.viper.BindPFlag(settings.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.viper.BindPFlag(settings.KeyLogFormat, flags.Lookup("log-format"))
	_ = a.viper.BindPFlag(settings.KeyRegistry, flags.Lookup("registry"))

	for _, entry := range commandTable() {
		sub := entry.build(a)
		if sub.Name() != entry.name {
			panic(fmt.Sprintf("command table entry %q builds command %q", entry.name, sub.Name()))
		}

		rootCmd.AddCommand(sub)
	}

	return rootCmd
}

// Run executes the command line in args and prints any error to stderr in
// the form "Error: <message>".
func Run(args []string, stdout, stderr io.Writer) error {
	rootCmd := NewRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)

		return err
	}

	return nil
}

func (a *app) setup() error {
	s, err := settings.Load(a.viper, a.configFile)
	if err != nil {
		return err
	}

	a.settings = s

	l, err := logger.New(a.stderr, s.LogLevel, s.LogFormat)
	if err != nil {
		return err
	}

	logger.Install(l)

	return nil
}

func (a *app) openRegistry() (*registry.Registry, error) {
	if a.settings == nil || a.settings.Registry == "" {
		return nil, fmt.Errorf("no registry path configured (use --registry or NEXUS_REGISTRY)")
	}

	return registry.Open(a.settings.Registry)
}

// resolvePath interprets p relative to the --dir flag, expanding ~.
func (a *app) resolvePath(p string) (string, error) {
	base, err := expandPath(a.workDir, ".")
	if err != nil {
		return "", err
	}

	return expandPath(p, base)
}

// locate finds the repository enclosing the --dir directory.
func (a *app) locate() (*repository.Repository, error) {
	start, err := a.resolvePath(".")
	if err != nil {
		return nil, err
	}

	return repository.Locate(start, true)
}
