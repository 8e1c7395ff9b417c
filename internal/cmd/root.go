// Package cmd is the gbms command tree.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/krcglobal/gbms/internal/errors"
	"github.com/krcglobal/gbms/internal/tui"
)

var shouldPrompt = tui.ShouldPrompt

// NewRootCommand builds the gbms command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	cc := newCommandContext(opts...)

	root := &cobra.Command{
		Use:   "gbms",
		Short: "GBMS overseas business management client",
		Long: `gbms is the command line client for the GBMS overseas business management
system. It signs in against the backend (or the built-in demo accounts),
keeps the session in local storage and gives access to projects, budgets,
documents, offices, users, the dashboard and the GIS view.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cc.startTracing(cmd.Context())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cc.ConfigFile, "config", "", "config file (default is $GBMS_HOME/config.yaml)")
	flags.StringVar(&cc.APIURL, "api-url", "", "backend base URL (env GBMS_API_URL)")
	flags.StringVar(&cc.Home, "home", "", "state directory (env GBMS_HOME, default ~/.gbms)")
	flags.StringVarP(&cc.Format, "format", "o", "text", "output format: text, json or yaml")
	flags.StringVar(&cc.LogLevel, "log-level", "", "log level: debug, info, warn or error (env GBMS_LOG_LEVEL)")
	flags.StringVar(&cc.LogFormat, "log-format", "", "log format: text or json (env GBMS_LOG_FORMAT)")
	flags.DurationVar(&cc.Timeout, "timeout", 0, "per request timeout, e.g. 30s (env GBMS_TIMEOUT)")
	flags.BoolVarP(&cc.Verbose, "verbose", "v", false, "verbose logging")
	flags.BoolVar(&cc.Demo, "demo", false, "sign in against the built-in demo accounts")

	root.AddCommand(
		newLoginCommand(cc),
		newLogoutCommand(cc),
		newWhoamiCommand(cc),
		newStatusCommand(cc),
		newProjectsCommand(cc),
		newBudgetsCommand(cc),
		newDocumentsCommand(cc),
		newOfficesCommand(cc),
		newUsersCommand(cc),
		newDashboardCommand(cc),
		newGISCommand(cc),
		newStorageCommand(cc),
		newConfigCommand(cc),
		newVersionCommand(cc),
		newDoctorCommand(cc),
		newUICommand(cc),
	)
	cc.instrument(root)

	return root
}

// Execute runs the root command
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx
func ExecuteContext(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func errNotLoggedIn() error {
	return errors.NewNotAuthenticatedError()
}
