package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krcglobal/gbms/internal/auth"
	"github.com/krcglobal/gbms/internal/config"
	"github.com/krcglobal/gbms/internal/errors"
	"github.com/krcglobal/gbms/internal/format"
	"github.com/krcglobal/gbms/internal/session"
	"github.com/krcglobal/gbms/internal/tui"
	"github.com/krcglobal/gbms/internal/ux"
)

func newLoginCommand(cc *CommandContext) *cobra.Command {
	var (
		creds tui.Credentials
		force bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Long: `Sign in with a login name and password. The token and user record are
kept in local storage and reused by every other command until logout or
until the backend answers 401.

Missing values are asked for interactively when running in a terminal.
With --demo the built-in accounts admin/admin123, user1/user123 and
user2/user123 are accepted without contacting the backend.

Examples:
  gbms login --user admin
  gbms --demo login -u admin -p admin123`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.App()
			if err != nil {
				return err
			}

			if !force && app.Auth.CheckExistingSession(ctx) {
				user, _ := app.Auth.CurrentUser(ctx)
				cc.Notice(cmd, "이미 로그인되어 있습니다: %s", displayName(user))
				if !cc.textOutput() {
					return cc.Print(cmd, nil, auth.LoginResult{Success: true, User: user})
				}
				return nil
			}

			if (creds.LoginName == "" || creds.Secret == "") && cc.Prompting(cmd.InOrStdin()) {
				if err := tui.PromptForCredentials(&creds); err != nil {
					return err
				}
			}

			res, err := app.Auth.Login(ctx, creds.LoginName, creds.Secret)
			if err != nil {
				app.Metrics.ObserveLogin(app.Config.Auth.Mode, false)
				return fmt.Errorf("login failed: %w", err)
			}
			app.Metrics.ObserveLogin(app.Config.Auth.Mode, res.Success)
			if !res.Success {
				return loginFailure(creds, res.Message)
			}

			cc.Notice(cmd, "로그인되었습니다: %s", displayName(res.User))
			if !cc.textOutput() {
				return cc.Print(cmd, nil, res)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&creds.LoginName, "user", "u", "", "login name")
	cmd.Flags().StringVarP(&creds.Secret, "password", "p", "", "password")
	cmd.Flags().BoolVar(&force, "force", false, "sign in again even when a session exists")

	return cmd
}

func loginFailure(creds tui.Credentials, message string) error {
	if creds.LoginName == "" || creds.Secret == "" {
		return errors.New(errors.ErrCodeAuthMissingCredentials, message).
			WithSuggestion("Pass --user and --password, or run in a terminal to be prompted")
	}
	return errors.New(errors.ErrCodeAuthInvalidCredentials, message)
}

func newLogoutCommand(cc *CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and clear local credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.App()
			if err != nil {
				return err
			}

			if !app.Auth.IsAuthenticated(ctx) {
				cc.Notice(cmd, "로그인되어 있지 않습니다.")
			}
			if err := app.Auth.Logout(ctx); err != nil {
				return fmt.Errorf("logout failed: %w", err)
			}
			cc.Notice(cmd, "로그아웃되었습니다.")
			return nil
		},
	}
}

func newWhoamiCommand(cc *CommandContext) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Long: `Show the user stored with the session. With --remote the user is fetched
from the backend instead, which also proves the token is still accepted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.Authenticated(ctx)
			if err != nil {
				return err
			}

			user, _ := app.Auth.CurrentUser(ctx)
			if remote {
				if app.Config.Auth.Mode == config.AuthModeDemo {
					return errors.NewConfigInvalidError("--remote is not available in demo mode")
				}
				me, err := app.Client.Auth.Me(ctx)
				if err != nil {
					return err
				}
				user = me.User
			}

			return cc.Print(cmd, userDetail(user), user)
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "fetch the user from the backend")
	return cmd
}

// StatusReport is the output of the status command.
type StatusReport struct {
	Home        string        `json:"home" yaml:"home"`
	APIURL      string        `json:"api_url" yaml:"api_url"`
	AuthMode    string        `json:"auth_mode" yaml:"auth_mode"`
	TokenCheck  string        `json:"token_check" yaml:"token_check"`
	StorageFile string        `json:"storage_file" yaml:"storage_file"`
	State       string        `json:"state" yaml:"state"`
	User        *session.User `json:"user,omitempty" yaml:"user,omitempty"`
}

func newStatusCommand(cc *CommandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configuration and login state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := cc.App()
			if err != nil {
				return err
			}

			report := StatusReport{
				Home:        app.Config.Home,
				APIURL:      app.Config.API.BaseURL,
				AuthMode:    app.Config.Auth.Mode,
				TokenCheck:  app.Config.Auth.TokenCheck,
				StorageFile: app.Config.StorageFile(),
				State:       app.Auth.State(ctx).String(),
			}
			if report.State == auth.StateAuthenticated.String() {
				report.User, _ = app.Auth.CurrentUser(ctx)
			}

			t := ux.NewTable("FIELD", "VALUE")
			t.Append("home", report.Home)
			t.Append("api url", report.APIURL)
			t.Append("auth mode", report.AuthMode)
			t.Append("token check", report.TokenCheck)
			t.Append("storage", report.StorageFile)
			t.Append("state", report.State)
			if report.User != nil {
				t.Append("user", displayName(report.User))
			}
			return cc.Print(cmd, t, report)
		},
	}
}

func displayName(u *session.User) string {
	if u == nil {
		return "-"
	}
	dept := u.DepartmentName
	if dept == "" {
		dept = format.DepartmentLabel(u.Department)
	}
	return fmt.Sprintf("%s (%s, %s)", u.Name, u.UserID, dept)
}

func userDetail(u *session.User) *ux.Table {
	t := ux.NewTable("FIELD", "VALUE")
	if u == nil {
		return t
	}
	dept := u.DepartmentName
	if dept == "" {
		dept = format.DepartmentLabel(u.Department)
	}
	t.Append("id", fmt.Sprint(u.ID))
	t.Append("user id", u.UserID)
	t.Append("name", u.Name)
	t.Append("department", dept)
	t.Append("role", u.Role)
	t.Append("email", u.Email)
	if u.Position != "" {
		t.Append("position", u.Position)
	}
	if u.Phone != "" {
		t.Append("phone", u.Phone)
	}
	return t
}
