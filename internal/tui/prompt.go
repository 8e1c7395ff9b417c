package tui

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/krcglobal/gbms/internal/validation"
)

// Credentials holds the answers of the login form
type Credentials struct {
	LoginName string
	Secret    string
}

// Login form field names, also used in validation messages
const (
	fieldLoginName = "아이디"
	fieldSecret    = "비밀번호"
)

var loginRules = map[string]validation.Rule{
	fieldLoginName: {Required: true},
	fieldSecret:    {Required: true},
}

// requiredField returns a huh validator for one login field
func requiredField(name string) func(string) error {
	return func(s string) error {
		res := validation.Validate(map[string]string{name: s}, map[string]validation.Rule{name: loginRules[name]})
		if !res.Valid {
			return stderrors.New(res.Errors[name])
		}
		return nil
	}
}

// LoginForm builds the interactive login form. Prefilled values in c are
// shown as defaults.
func LoginForm(c *Credentials) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fieldLoginName).
				Placeholder("admin").
				Value(&c.LoginName).
				Validate(requiredField(fieldLoginName)),
			huh.NewInput().
				Title(fieldSecret).
				EchoMode(huh.EchoModePassword).
				Value(&c.Secret).
				Validate(requiredField(fieldSecret)),
		).Title("GBMS 로그인"),
	)
}

// PromptForCredentials asks for whichever of the login name and secret is
// missing from c
func PromptForCredentials(c *Credentials) error {
	if c.LoginName != "" && c.Secret != "" {
		return nil
	}
	if err := LoginForm(c).Run(); err != nil {
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

// PromptForConfirmation displays a yes/no confirmation prompt
func PromptForConfirmation(message string, defaultValue bool) (bool, error) {
	confirmed := defaultValue

	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(message).
			Affirmative("예").
			Negative("아니오").
			Value(&confirmed),
	))

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}

	return confirmed, nil
}

// IsInteractive returns true if stdin is a terminal (not piped)
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ShouldPrompt returns true if prompts should be shown.
// Prompts are disabled in CI environments or when stdin is not a terminal
func ShouldPrompt() bool {
	for _, envVar := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		if os.Getenv(envVar) != "" {
			return false
		}
	}
	return IsInteractive()
}
