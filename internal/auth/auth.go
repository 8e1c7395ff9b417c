// Package auth manages the login lifecycle of a GBMS client.
//
// A Manager ties three pluggable pieces together:
//   - a Verifier that exchanges a login name and secret for a user and token
//     (the backend through APIVerifier, or the fixed demo accounts)
//   - a TokenValidator deciding whether a stored token is still usable
//   - a Navigator that moves the user between the entry and home pages
//
// The session itself lives in a session.Session, so a token stored by one
// process is seen by the next.
package auth

//go:generate mockgen -source=auth.go -destination=mocks/mocks.go -package=mocks Verifier,Navigator,Revoker

import (
	"context"

	"github.com/krcglobal/gbms/internal/session"
)

// Pages the Manager navigates between.
const (
	EntryPage = "index.html"
	HomePage  = "dashboard.html"
)

// User-facing login messages.
const (
	MessageMissingCredentials = "아이디와 비밀번호를 모두 입력해주세요."
	MessageInvalidCredentials = "아이디 또는 비밀번호가 올바르지 않습니다."
)

// Verifier checks a login name and secret.
//
// Implementations return ErrInvalidCredentials (matched with errors.Is)
// when the pair is rejected. Any other error is an infrastructure failure.
type Verifier interface {
	Verify(ctx context.Context, loginName, secret string) (*session.User, string, error)
}

// Navigator moves the user to a page.
type Navigator interface {
	Navigate(page string)
}

// NavigatorFunc adapts a function to a Navigator.
type NavigatorFunc func(page string)

// Navigate calls f(page).
func (f NavigatorFunc) Navigate(page string) {
	f(page)
}

type noopNavigator struct{}

func (noopNavigator) Navigate(string) {}

// Revoker ends the session on the remote side. api.AuthService satisfies it.
type Revoker interface {
	Logout(ctx context.Context) error
}

// State is the login state of a Manager.
type State int

const (
	StateUnauthenticated State = iota
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// LoginResult is the outcome of Manager.Login.
type LoginResult struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	User    *session.User `json:"user,omitempty"`
	Token   string        `json:"-"`
}
