package api

import (
	"context"
	"net/http"
)

// LoginRequest is the credential exchange body.
type LoginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token"`
	User    *User  `json:"user"`
}

// MeResponse is returned by /auth/me.
type MeResponse struct {
	Success bool  `json:"success"`
	User    *User `json:"user"`
}

// AuthService talks to /auth.
type AuthService struct {
	client *Client
}

// Login exchanges credentials for a token. It does not touch the session:
// rejected credentials come back as *Error with status 401.
func (s *AuthService) Login(ctx context.Context, userID, password string) (*LoginResponse, error) {
	body := LoginRequest{UserID: userID, Password: password}

	var out LoginResponse
	if err := s.client.Request(ctx, http.MethodPost, "/auth/login", body, &out, credentialExchange()); err != nil {
		return nil, err
	}
	return &out, nil
}

func credentialExchange() RequestOption {
	return func(o *requestOptions) {
		o.keepSession = true
	}
}

// Logout records the logout on the server. A 401 here means the token was
// already dead; it is returned as *Error and does not run the unauthorized
// hook.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.client.Request(ctx, http.MethodPost, "/auth/logout", struct{}{}, nil, credentialExchange())
}

// Me returns the user the current token belongs to.
func (s *AuthService) Me(ctx context.Context) (*MeResponse, error) {
	var out MeResponse
	if err := s.client.Get(ctx, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
