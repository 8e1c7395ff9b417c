package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/krcglobal/gbms/internal/errors"
)

func newStorageCommand(cc *CommandContext) *cobra.Command {
	cmd := groupCommand("storage", "Inspect and edit local storage")
	cmd.Long = `Read and write the local key/value storage that holds the session
(gbms_token, gbms_user) and UI preferences (sidebar_collapsed). Values are
JSON encoded.`
	cmd.AddCommand(
		newStorageGetCommand(cc),
		newStorageSetCommand(cc),
		newStorageRemoveCommand(cc),
		newStorageClearCommand(cc),
		newStorageKeysCommand(cc),
	)
	return cmd
}

func newStorageGetCommand(cc *CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print a stored value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cc.App()
			if err != nil {
				return err
			}

			var v any
			if !app.Store.Get(args[0], &v) {
				return fmt.Errorf("key %q not found", args[0])
			}
			return cc.Print(cmd, nil, v)
		},
	}
}

func newStorageSetCommand(cc *CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a value; valid JSON is stored as is, anything else as a string",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cc.App()
			if err != nil {
				return err
			}

			var v any = args[1]
			var decoded any
			if err := json.Unmarshal([]byte(args[1]), &decoded); err == nil {
				v = decoded
			}
			if !app.Store.Set(args[0], v) {
				return errors.New(errors.ErrCodeStoreWriteFailed, fmt.Sprintf("failed to store %q", args[0])).
					WithSuggestion("Run with --verbose to see the storage error")
			}
			cc.Notice(cmd, "%s 저장됨", args[0])
			return nil
		},
	}
}

func newStorageRemoveCommand(cc *CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <key>",
		Aliases: []string{"rm"},
		Short:   "Remove a stored value",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cc.App()
			if err != nil {
				return err
			}
			if !app.Store.Remove(args[0]) {
				return errors.New(errors.ErrCodeStoreWriteFailed, fmt.Sprintf("failed to remove %q", args[0]))
			}
			cc.Notice(cmd, "%s 삭제됨", args[0])
			return nil
		},
	}
}

func newStorageClearCommand(cc *CommandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every stored value, including the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cc.App()
			if err != nil {
				return err
			}
			if err := confirmDelete(cc, cmd, "로컬 저장소의 모든 값", yes); err != nil {
				return err
			}
			if !app.Store.Clear() {
				return errors.New(errors.ErrCodeStoreWriteFailed, "failed to clear storage")
			}
			cc.Notice(cmd, "로컬 저장소를 비웠습니다.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newStorageKeysCommand(cc *CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List stored keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cc.App()
			if err != nil {
				return err
			}
			keys := app.Store.Keys()
			if cc.textOutput() {
				if len(keys) == 0 {
					return nil
				}
				return cc.Print(cmd, nil, strings.Join(keys, "\n"))
			}
			return cc.Print(cmd, nil, keys)
		},
	}
}

