package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krcglobal/gbms/internal/version"
)

func newVersionCommand(cc *CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print version information including version number, git commit,
build date, Go version, and platform. Use --verbose for the full line and
--format json or yaml for machine readable output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()

			if !cc.textOutput() {
				return cc.Print(cmd, nil, info)
			}
			if cc.Verbose {
				fmt.Fprintln(cmd.OutOrStdout(), info.String())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "gbms %s\n", info.Short())
			return nil
		},
	}
}
