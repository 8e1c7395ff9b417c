package auth

import (
	"github.com/krcglobal/gbms/internal/errors"
)

// ErrInvalidCredentials is returned by a Verifier that rejects the pair.
var ErrInvalidCredentials = errors.New(errors.ErrCodeAuthInvalidCredentials, MessageInvalidCredentials)

// ErrMissingCredentials is reported when the login name or secret is empty.
var ErrMissingCredentials = errors.New(errors.ErrCodeAuthMissingCredentials, MessageMissingCredentials)

// ErrForbidden is returned by RequireRole when the user lacks every role.
var ErrForbidden = errors.New(errors.ErrCodeAuthForbidden, "permission denied")

func invalidCredentials(message string) *errors.GBMSError {
	if message == "" {
		message = MessageInvalidCredentials
	}
	return errors.New(errors.ErrCodeAuthInvalidCredentials, message)
}
