// Package session holds the active login: one token and one user record,
// persisted together.
package session

import (
	"slices"

	"github.com/krcglobal/gbms/internal/errors"
	"github.com/krcglobal/gbms/internal/storage"
)

// ErrPartialWrite is returned by Save when the token was written but the
// user record was not. The token write has been rolled back.
var ErrPartialWrite = errors.New(errors.ErrCodeStorePartialWrite, "session was not saved: user record write failed").
	WithSuggestion("Check that the GBMS home directory is writable")

// ErrWriteFailed is returned by Save when the token write fails.
var ErrWriteFailed = errors.New(errors.ErrCodeStoreWriteFailed, "session was not saved")

// User is the signed-in user as returned by the backend.
type User struct {
	ID             int    `json:"id"`
	UserID         string `json:"userId"`
	Name           string `json:"name"`
	Department     string `json:"department"`
	DepartmentName string `json:"departmentName,omitempty"`
	Role           string `json:"role"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Position       string `json:"position,omitempty"`
	IsActive       *bool  `json:"isActive,omitempty"`
}

// HasRole reports whether the user's role is one of roles.
func (u *User) HasRole(roles ...string) bool {
	if u == nil {
		return false
	}
	return slices.Contains(roles, u.Role)
}

// Session is the current login context.
type Session interface {
	// Token returns the stored token, or false when there is none.
	Token() (string, bool)

	// User returns the stored user record, or false when there is none.
	User() (*User, bool)

	// Save stores token and user together.
	Save(token string, user *User) error

	// Clear removes the token and user. Clearing an empty session succeeds.
	Clear() error
}

// Keys names the storage entries used by a StoreSession.
type Keys struct {
	Token string
	User  string
}

// DefaultKeys are the fixed storage keys shared with the web front end.
var DefaultKeys = Keys{Token: storage.KeyToken, User: storage.KeyUser}

// StoreSession keeps the session in a storage.Store.
type StoreSession struct {
	store storage.Store
	keys  Keys
}

// New creates a session over store. Empty key names fall back to DefaultKeys.
func New(store storage.Store, keys Keys) *StoreSession {
	if keys.Token == "" {
		keys.Token = DefaultKeys.Token
	}
	if keys.User == "" {
		keys.User = DefaultKeys.User
	}
	return &StoreSession{store: store, keys: keys}
}

// Token implements Session.
func (s *StoreSession) Token() (string, bool) {
	var token string
	if !s.store.Get(s.keys.Token, &token) || token == "" {
		return "", false
	}
	return token, true
}

// User implements Session.
func (s *StoreSession) User() (*User, bool) {
	var u User
	if !s.store.Get(s.keys.User, &u) {
		return nil, false
	}
	return &u, true
}

// Save implements Session. The token is written first; if the user write
// fails the token is removed again and ErrPartialWrite is returned.
func (s *StoreSession) Save(token string, user *User) error {
	if !s.store.Set(s.keys.Token, token) {
		return ErrWriteFailed
	}
	if !s.store.Set(s.keys.User, user) {
		s.store.Remove(s.keys.Token)
		return ErrPartialWrite
	}
	return nil
}

// Clear implements Session.
func (s *StoreSession) Clear() error {
	tokenOK := s.store.Remove(s.keys.Token)
	userOK := s.store.Remove(s.keys.User)
	if !tokenOK || !userOK {
		return errors.New(errors.ErrCodeStoreWriteFailed, "failed to clear session")
	}
	return nil
}
