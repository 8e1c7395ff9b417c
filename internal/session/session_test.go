package session

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krcglobal/gbms/internal/log"
	"github.com/krcglobal/gbms/internal/storage"
)

// failingStore rejects writes to the listed keys.
type failingStore struct {
	storage.Store
	failSet map[string]bool
}

func (f *failingStore) Set(key string, v any) bool {
	if f.failSet[key] {
		return false
	}
	return f.Store.Set(key, v)
}

func admin() *User {
	return &User{ID: 1, UserID: "admin", Name: "관리자", Department: "gad", DepartmentName: "글로벌농업개발부", Role: "admin", Email: "admin@krc.co.kr"}
}

func TestStoreSession_SaveAndRead(t *testing.T) {
	store := storage.NewMemoryStore(log.Discard())
	s := New(store, Keys{})

	_, ok := s.Token()
	assert.False(t, ok)
	_, ok = s.User()
	assert.False(t, ok)

	require.NoError(t, s.Save("mock_token_1", admin()))

	token, ok := s.Token()
	require.True(t, ok)
	assert.Equal(t, "mock_token_1", token)

	u, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, admin(), u)

	assert.ElementsMatch(t, []string{"gbms_token", "gbms_user"}, store.Keys())
}

func TestStoreSession_EmptyTokenIsAbsent(t *testing.T) {
	store := storage.NewMemoryStore(log.Discard())
	require.True(t, store.Set("gbms_token", ""))

	_, ok := New(store, Keys{}).Token()
	assert.False(t, ok)
}

func TestStoreSession_PartialWriteRollsBack(t *testing.T) {
	mem := storage.NewMemoryStore(log.Discard())
	s := New(&failingStore{Store: mem, failSet: map[string]bool{"gbms_user": true}}, Keys{})

	err := s.Save("mock_token_1", admin())
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrPartialWrite))

	_, ok := s.Token()
	assert.False(t, ok)
	assert.Empty(t, mem.Keys())
}

func TestStoreSession_TokenWriteFails(t *testing.T) {
	mem := storage.NewMemoryStore(log.Discard())
	s := New(&failingStore{Store: mem, failSet: map[string]bool{"gbms_token": true}}, Keys{})

	err := s.Save("mock_token_1", admin())
	assert.True(t, stderrors.Is(err, ErrWriteFailed))
	assert.Empty(t, mem.Keys())
}

func TestStoreSession_ClearIsIdempotent(t *testing.T) {
	store := storage.NewMemoryStore(log.Discard())
	require.True(t, store.Set(storage.KeySidebarCollapsed, true))
	s := New(store, Keys{})
	require.NoError(t, s.Save("t", admin()))

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())

	assert.Equal(t, []string{storage.KeySidebarCollapsed}, store.Keys())
}

func TestStoreSession_CustomKeys(t *testing.T) {
	store := storage.NewMemoryStore(log.Discard())
	s := New(store, Keys{Token: "tok", User: "usr"})
	require.NoError(t, s.Save("t", admin()))

	assert.Equal(t, []string{"tok", "usr"}, store.Keys())
}

func TestUser_HasRole(t *testing.T) {
	u := &User{Role: "user"}
	assert.True(t, u.HasRole("admin", "user"))
	assert.False(t, (&User{Role: "guest"}).HasRole("admin", "user"))
	assert.False(t, u.HasRole())

	var nilUser *User
	assert.False(t, nilUser.HasRole("user"))
}
