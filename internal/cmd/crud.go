package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/ux"
)

// crud builds the show, create, update and delete subcommands of one
// backend collection.
type crud[T any] struct {
	noun  string // English singular, used in errors
	label string // Korean name, used in messages

	// writeRoles, when set, restricts create, update and delete.
	writeRoles []string

	get    func(ctx context.Context, c *api.Client, id int) (*api.Envelope[T], error)
	create func(ctx context.Context, c *api.Client, body any) (*api.Envelope[T], error)
	update func(ctx context.Context, c *api.Client, id int, body any) (*api.Envelope[T], error)
	remove func(ctx context.Context, c *api.Client, id int) (*api.Envelope[any], error)

	detail func(T) *ux.Table
	id     func(T) int
}

func (r crud[T]) writer(ctx context.Context, cc *CommandContext) (*App, error) {
	if len(r.writeRoles) == 0 {
		return cc.Authenticated(ctx)
	}
	return cc.Authorized(ctx, r.writeRoles...)
}

func (r crud[T]) commands(cc *CommandContext) []*cobra.Command {
	return []*cobra.Command{
		r.showCommand(cc),
		r.createCommand(cc),
		r.updateCommand(cc),
		r.deleteCommand(cc),
	}
}

func (r crud[T]) showCommand(cc *CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: fmt.Sprintf("Show one %s", r.noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			env, err := r.get(ctx, app.Client, id)
			if err != nil {
				return fmt.Errorf("failed to get %s %d: %w", r.noun, id, err)
			}
			return cc.Print(cmd, r.detail(env.Data), env.Data)
		},
	}
}

func (r crud[T]) createCommand(cc *CommandContext) *cobra.Command {
	var fields fieldFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: fmt.Sprintf("Create a %s from --set pairs and/or a JSON or YAML file", r.noun),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := fields.fields()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			app, err := r.writer(ctx, cc)
			if err != nil {
				return err
			}

			env, err := r.create(ctx, app.Client, body)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", r.noun, err)
			}
			return printResult(cc, cmd, env, fmt.Sprintf("%s이(가) 등록되었습니다. (ID %d)", r.label, r.id(env.Data)))
		},
	}

	fields.register(cmd)
	return cmd
}

func (r crud[T]) updateCommand(cc *CommandContext) *cobra.Command {
	var fields fieldFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: fmt.Sprintf("Update a %s", r.noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			body, err := fields.fields()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			app, err := r.writer(ctx, cc)
			if err != nil {
				return err
			}

			env, err := r.update(ctx, app.Client, id, body)
			if err != nil {
				return fmt.Errorf("failed to update %s %d: %w", r.noun, id, err)
			}
			return printResult(cc, cmd, env, fmt.Sprintf("%s이(가) 수정되었습니다.", r.label))
		},
	}

	fields.register(cmd)
	return cmd
}

func (r crud[T]) deleteCommand(cc *CommandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: fmt.Sprintf("Delete a %s", r.noun),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			app, err := r.writer(ctx, cc)
			if err != nil {
				return err
			}
			if err := confirmDelete(cc, cmd, fmt.Sprintf("%s %d", r.label, id), yes); err != nil {
				return err
			}

			env, err := r.remove(ctx, app.Client, id)
			if err != nil {
				return fmt.Errorf("failed to delete %s %d: %w", r.noun, id, err)
			}
			return printResult(cc, cmd, env, fmt.Sprintf("%s이(가) 삭제되었습니다.", r.label))
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func groupCommand(use, short string, aliases ...string) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Aliases: aliases,
		Short:   short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
}
