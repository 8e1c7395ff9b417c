package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/krcglobal/gbms/internal/shell"
	"github.com/krcglobal/gbms/internal/tui"
)

func newUICommand(cc *CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the terminal dashboard",
		Long: `Open the full screen dashboard: header, collapsible sidebar (ctrl+b),
statistics, recent projects and upcoming events. Press r to refresh, q to
log out and ctrl+c to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.App()
			if err != nil {
				return err
			}

			s := shell.New(app.Auth, app.Client.Dashboard, app.Store, shell.WithLogger(app.Logger))
			p := tea.NewProgram(
				tui.NewModel(ctx, s),
				tea.WithContext(ctx),
				tea.WithAltScreen(),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)

			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("terminal dashboard failed: %w", err)
			}
			if m, ok := final.(tui.Model); ok && m.Unauthorized() {
				return errNotLoggedIn()
			}
			return nil
		},
	}
}
