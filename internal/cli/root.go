package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrlokans/vokabel/internal/config"
	"github.com/mrlokans/vokabel/internal/entrypoint"
	"github.com/mrlokans/vokabel/internal/logger"
)

type rootOptions struct {
	dbPath  string
	verbose bool
}

// NewRootCommand builds the vokabel command tree. Running it without a
// subcommand starts the HTTP server.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "vokabel",
		Short: "Annotate foreign-language lessons and study flashcards",
		Long: `vokabel stores lessons of pasted text, highlights the terms you have
looked up and keeps flashcards with the sentences they appeared in.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(opts.config(), version)
		},
	}
	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Path to the sqlite database (overrides DATABASE_PATH)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newServeCommand(opts, version),
		newBackfillCommand(opts),
		newImportCommand(opts),
		newExportCommand(opts),
		newAnnotateCommand(),
		newVersionCommand(version),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute(version string) {
	if err := NewRootCommand(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (o *rootOptions) config() *config.Config {
	cfg := config.NewConfig()
	if o.dbPath != "" {
		cfg.Database.Path = o.dbPath
	}
	return cfg
}

// openApp opens storage for one-shot commands. Logs go to stderr and stay
// quiet unless --verbose is set.
func (o *rootOptions) openApp() (*entrypoint.App, error) {
	log := logger.Nop()
	if o.verbose {
		var err error
		if log, err = logger.New("dev"); err != nil {
			return nil, err
		}
	}
	return entrypoint.NewApp(o.config(), log)
}

func newServeCommand(opts *rootOptions, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return entrypoint.Run(opts.config(), version)
		},
	}
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of vokabel",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "vokabel version %s\n", version)
		},
	}
}
