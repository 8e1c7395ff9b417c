package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/ux"
)

const roleAdmin = "admin"

var usersCRUD = crud[api.User]{
	noun:       "user",
	label:      "사용자",
	writeRoles: []string{roleAdmin},
	get: func(ctx context.Context, c *api.Client, id int) (*api.Envelope[api.User], error) {
		return c.Users.Get(ctx, id)
	},
	create: func(ctx context.Context, c *api.Client, body any) (*api.Envelope[api.User], error) {
		return c.Users.Create(ctx, body)
	},
	update: func(ctx context.Context, c *api.Client, id int, body any) (*api.Envelope[api.User], error) {
		return c.Users.Update(ctx, id, body)
	},
	remove: func(ctx context.Context, c *api.Client, id int) (*api.Envelope[any], error) {
		return c.Users.Delete(ctx, id)
	},
	detail: func(u api.User) *ux.Table { return userDetail(&u) },
	id:     func(u api.User) int { return u.ID },
}

func newUsersCommand(cc *CommandContext) *cobra.Command {
	cmd := groupCommand("users", "Manage users", "user")
	cmd.AddCommand(newUsersListCommand(cc), newUsersPasswordCommand(cc))
	cmd.AddCommand(usersCRUD.commands(cc)...)
	return cmd
}

func newUsersListCommand(cc *CommandContext) *cobra.Command {
	var department string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			env, err := app.Client.Users.List(ctx, department)
			if err != nil {
				return fmt.Errorf("failed to list users: %w", err)
			}
			return cc.Print(cmd, userTable(env.Data), env)
		},
	}

	cmd.Flags().StringVar(&department, "department", "", "department code")
	return cmd
}

func newUsersPasswordCommand(cc *CommandContext) *cobra.Command {
	var change api.PasswordChange

	cmd := &cobra.Command{
		Use:   "password <id>",
		Short: "Reset a user's password",
		Long:  `Reset a user's password. Requires the admin role.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			app, err := cc.Authorized(ctx, roleAdmin)
			if err != nil {
				return err
			}

			env, err := app.Client.Users.UpdatePassword(ctx, id, change)
			if err != nil {
				return fmt.Errorf("failed to change password of user %d: %w", id, err)
			}
			return printResult(cc, cmd, env, "비밀번호가 변경되었습니다.")
		},
	}

	cmd.Flags().StringVar(&change.CurrentPassword, "current", "", "current password")
	cmd.Flags().StringVar(&change.NewPassword, "new", "", "new password")
	_ = cmd.MarkFlagRequired("new")
	return cmd
}
