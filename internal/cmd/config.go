package cmd

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/krcglobal/gbms/internal/config"
)

func newConfigCommand(cc *CommandContext) *cobra.Command {
	cmd := groupCommand("config", "Show and initialize the configuration")
	cmd.AddCommand(
		newConfigShowCommand(cc),
		newConfigPathCommand(cc),
		newConfigInitCommand(cc),
	)
	return cmd
}

func newConfigShowCommand(cc *CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, the config file, GBMS_* environment
variables and flags have been applied. Validation problems are reported
after the configuration is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.Config()
			if err != nil {
				return err
			}
			if err := cc.Print(cmd, nil, cfg); err != nil {
				return err
			}
			return cfg.Validate()
		},
	}
}

func newConfigPathCommand(cc *CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cc.ConfigFile
			if path == "" {
				home := cc.Home
				if home == "" {
					home = config.DefaultHome(cc.getenv)
				}
				path = config.Path(home)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newConfigInitCommand(cc *CommandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to $GBMS_HOME/config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cc.Config()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			path := config.Path(cfg.Home)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists; required flag --force not set", path)
			} else if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
				return err
			}

			if err := cfg.Save(); err != nil {
				return err
			}
			cc.Notice(cmd, "설정 파일을 저장했습니다: %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
