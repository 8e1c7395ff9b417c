package auth

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/errors"
	"github.com/krcglobal/gbms/internal/session"
)

// APIVerifier exchanges credentials with the backend's /auth/login.
type APIVerifier struct {
	auth *api.AuthService
}

// NewAPIVerifier creates a verifier backed by svc.
func NewAPIVerifier(svc *api.AuthService) *APIVerifier {
	return &APIVerifier{auth: svc}
}

// Verify posts the credentials. A 400 or 401 response, or a response with
// success=false, is reported as invalid credentials carrying the server's
// message.
func (v *APIVerifier) Verify(ctx context.Context, loginName, secret string) (*session.User, string, error) {
	resp, err := v.auth.Login(ctx, loginName, secret)
	if err != nil {
		var apiErr *api.Error
		if stderrors.As(err, &apiErr) &&
			(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusBadRequest) {
			return nil, "", invalidCredentials(apiErr.Message)
		}
		return nil, "", err
	}

	if !resp.Success || resp.Token == "" || resp.User == nil {
		return nil, "", invalidCredentials(resp.Message)
	}
	return resp.User, resp.Token, nil
}

var _ Verifier = (*APIVerifier)(nil)
var _ Verifier = (*DemoVerifier)(nil)

// loginMessage is the text shown for a rejected login.
func loginMessage(err error) string {
	var gErr *errors.GBMSError
	if stderrors.As(err, &gErr) && gErr.Message != "" {
		return gErr.Message
	}
	return MessageInvalidCredentials
}
