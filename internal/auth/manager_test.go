package auth_test

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/auth"
	"github.com/krcglobal/gbms/internal/auth/mocks"
	"github.com/krcglobal/gbms/internal/log"
	"github.com/krcglobal/gbms/internal/session"
	"github.com/krcglobal/gbms/internal/storage"
)

func newSession() *session.StoreSession {
	return session.New(storage.NewMemoryStore(log.Discard()), session.Keys{})
}

type pageRecorder struct {
	pages []string
}

func (p *pageRecorder) Navigate(page string) {
	p.pages = append(p.pages, page)
}

func TestLogin_DemoAccounts(t *testing.T) {
	tests := []struct {
		login  string
		secret string
		name   string
		role   string
	}{
		{"admin", "admin123", "관리자", "admin"},
		{"user1", "user123", "홍길동", "user"},
		{"user2", "user123", "김철수", "user"},
	}

	verifier := auth.NewDemoVerifier()
	for _, tt := range tests {
		t.Run(tt.login, func(t *testing.T) {
			sess := newSession()
			m := auth.NewManager(sess, verifier, auth.WithLogger(log.Discard()))
			ctx := context.Background()

			result, err := m.Login(ctx, tt.login, tt.secret)
			require.NoError(t, err)
			require.True(t, result.Success)
			assert.Empty(t, result.Message)
			assert.Equal(t, tt.name, result.User.Name)
			assert.Equal(t, tt.role, result.User.Role)
			assert.Regexp(t, `^mock_token_[0-9a-f-]{36}$`, result.Token)

			token, ok := sess.Token()
			require.True(t, ok)
			assert.Equal(t, result.Token, token)

			user, ok := m.CurrentUser(ctx)
			require.True(t, ok)
			assert.Equal(t, tt.login, user.UserID)

			assert.True(t, m.IsAuthenticated(ctx))
			assert.Equal(t, auth.StateAuthenticated, m.State(ctx))
		})
	}
}

func TestLogin_MissingCredentialsSkipVerifier(t *testing.T) {
	tests := []struct {
		name   string
		login  string
		secret string
	}{
		{"both empty", "", ""},
		{"no secret", "admin", ""},
		{"no login", "", "admin123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			verifier := mocks.NewMockVerifier(ctrl)
			store := storage.NewMemoryStore(log.Discard())
			m := auth.NewManager(session.New(store, session.Keys{}), verifier, auth.WithLogger(log.Discard()))

			result, err := m.Login(context.Background(), tt.login, tt.secret)
			require.NoError(t, err)
			assert.False(t, result.Success)
			assert.Equal(t, auth.MessageMissingCredentials, result.Message)
			assert.Empty(t, store.Keys())
		})
	}
}

func TestLogin_RejectedPersistsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	verifier := mocks.NewMockVerifier(ctrl)
	verifier.EXPECT().
		Verify(gomock.Any(), "admin", "wrong").
		Return(nil, "", auth.ErrInvalidCredentials)

	store := storage.NewMemoryStore(log.Discard())
	m := auth.NewManager(session.New(store, session.Keys{}), verifier, auth.WithLogger(log.Discard()))

	result, err := m.Login(context.Background(), "admin", "wrong")
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, auth.MessageInvalidCredentials, result.Message)
	assert.Nil(t, result.User)
	assert.Empty(t, store.Keys())
	assert.Equal(t, auth.StateUnauthenticated, m.State(context.Background()))
}

func TestLogin_DemoIsCaseSensitive(t *testing.T) {
	m := auth.NewManager(newSession(), auth.NewDemoVerifier(), auth.WithLogger(log.Discard()))

	for _, pair := range [][2]string{{"Admin", "admin123"}, {"admin", "ADMIN123"}, {"admin ", "admin123"}, {"nobody", "user123"}} {
		result, err := m.Login(context.Background(), pair[0], pair[1])
		require.NoError(t, err)
		assert.False(t, result.Success, pair)
		assert.Equal(t, auth.MessageInvalidCredentials, result.Message)
	}
}

func TestLogin_VerifierFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	verifier := mocks.NewMockVerifier(ctrl)
	verifier.EXPECT().
		Verify(gomock.Any(), "admin", "admin123").
		Return(nil, "", api.ErrTransport)

	sess := newSession()
	m := auth.NewManager(sess, verifier, auth.WithLogger(log.Discard()))

	result, err := m.Login(context.Background(), "admin", "admin123")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, stderrors.Is(err, api.ErrTransport))
	_, ok := sess.Token()
	assert.False(t, ok)
}

type failingSession struct {
	*session.StoreSession
	saveErr error
}

func (s *failingSession) Save(string, *session.User) error {
	return s.saveErr
}

func TestLogin_SaveFailure(t *testing.T) {
	sess := &failingSession{StoreSession: newSession(), saveErr: session.ErrPartialWrite}
	m := auth.NewManager(sess, auth.NewDemoVerifier(), auth.WithLogger(log.Discard()))

	result, err := m.Login(context.Background(), "admin", "admin123")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, stderrors.Is(err, session.ErrPartialWrite))
	assert.False(t, m.IsAuthenticated(context.Background()))
}

func TestLogout_IsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	nav := mocks.NewMockNavigator(ctrl)
	revoker := mocks.NewMockRevoker(ctrl)

	nav.EXPECT().Navigate(auth.EntryPage).Times(2)
	revoker.EXPECT().Logout(gomock.Any()).Return(nil).Times(1)

	sess := newSession()
	require.NoError(t, sess.Save("mock_token_1", &session.User{ID: 1, UserID: "admin", Role: "admin"}))

	m := auth.NewManager(sess, auth.NewDemoVerifier(),
		auth.WithNavigator(nav),
		auth.WithRevoker(revoker),
		auth.WithLogger(log.Discard()),
	)

	ctx := context.Background()
	require.NoError(t, m.Logout(ctx))
	require.NoError(t, m.Logout(ctx))

	_, ok := sess.Token()
	assert.False(t, ok)
	_, ok = m.CurrentUser(ctx)
	assert.False(t, ok)
	assert.Equal(t, auth.StateUnauthenticated, m.State(ctx))
}

func TestLogout_RevokeFailureStillClears(t *testing.T) {
	ctrl := gomock.NewController(t)
	revoker := mocks.NewMockRevoker(ctrl)
	revoker.EXPECT().Logout(gomock.Any()).Return(api.ErrTransport)

	sess := newSession()
	require.NoError(t, sess.Save("tok", &session.User{ID: 2}))
	nav := &pageRecorder{}
	m := auth.NewManager(sess, auth.NewDemoVerifier(), auth.WithNavigator(nav), auth.WithRevoker(revoker), auth.WithLogger(log.Discard()))

	require.NoError(t, m.Logout(context.Background()))
	_, ok := sess.Token()
	assert.False(t, ok)
	assert.Equal(t, []string{auth.EntryPage}, nav.pages)
}

func TestLogout_CorruptStorageStillNavigates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	sess := session.New(storage.NewFileStore(path, log.Discard()), session.Keys{})
	nav := &pageRecorder{}
	m := auth.NewManager(sess, auth.NewDemoVerifier(), auth.WithNavigator(nav), auth.WithLogger(log.Discard()))

	ctx := context.Background()
	assert.False(t, m.IsAuthenticated(ctx))
	require.NoError(t, m.Logout(ctx))
	require.NoError(t, m.Logout(ctx))
	assert.Equal(t, []string{auth.EntryPage, auth.EntryPage}, nav.pages)
}

func TestLogout_DeadTokenIsNotAnExpiry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	sess := newSession()
	expired := 0
	client := api.New(api.Config{BaseURL: srv.URL + "/api"}, sess,
		api.WithLogger(log.Discard()),
		api.WithUnauthorizedHandler(func(context.Context) { expired++ }),
	)
	nav := &pageRecorder{}
	m := auth.NewManager(sess, auth.NewDemoVerifier(),
		auth.WithNavigator(nav),
		auth.WithRevoker(client.Auth),
		auth.WithLogger(log.Discard()),
	)

	ctx := context.Background()
	result, err := m.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.True(t, result.Success)

	require.NoError(t, m.Logout(ctx))
	assert.Zero(t, expired)
	assert.Equal(t, []string{auth.EntryPage}, nav.pages)
	assert.Equal(t, auth.StateUnauthenticated, m.State(ctx))
}

func TestRequireAuth(t *testing.T) {
	ctx := context.Background()

	t.Run("unauthenticated navigates to entry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		nav := mocks.NewMockNavigator(ctrl)
		nav.EXPECT().Navigate(auth.EntryPage)

		m := auth.NewManager(newSession(), auth.NewDemoVerifier(), auth.WithNavigator(nav), auth.WithLogger(log.Discard()))
		assert.False(t, m.RequireAuth(ctx))
	})

	t.Run("authenticated stays", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		nav := mocks.NewMockNavigator(ctrl)

		sess := newSession()
		require.NoError(t, sess.Save("tok", &session.User{ID: 1}))
		m := auth.NewManager(sess, auth.NewDemoVerifier(), auth.WithNavigator(nav), auth.WithLogger(log.Discard()))
		assert.True(t, m.RequireAuth(ctx))
	})

	t.Run("empty token is unauthenticated", func(t *testing.T) {
		store := storage.NewMemoryStore(log.Discard())
		require.True(t, store.Set(storage.KeyToken, ""))
		nav := &pageRecorder{}
		m := auth.NewManager(session.New(store, session.Keys{}), auth.NewDemoVerifier(), auth.WithNavigator(nav), auth.WithLogger(log.Discard()))

		assert.False(t, m.RequireAuth(ctx))
		assert.Equal(t, []string{auth.EntryPage}, nav.pages)
	})
}

func TestCheckExistingSession(t *testing.T) {
	ctx := context.Background()
	nav := &pageRecorder{}
	sess := newSession()
	m := auth.NewManager(sess, auth.NewDemoVerifier(), auth.WithNavigator(nav), auth.WithLogger(log.Discard()))

	assert.False(t, m.CheckExistingSession(ctx))
	assert.Empty(t, nav.pages)

	result, err := m.Login(ctx, "user1", "user123")
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.True(t, m.CheckExistingSession(ctx))
	assert.Equal(t, []string{auth.HomePage}, nav.pages)
}

func TestHasRoleAndRequireRole(t *testing.T) {
	ctx := context.Background()
	m := auth.NewManager(newSession(), auth.NewDemoVerifier(), auth.WithLogger(log.Discard()))

	assert.False(t, m.HasRole(ctx, "admin"))
	assert.Error(t, m.RequireRole(ctx, "admin"))

	_, err := m.Login(ctx, "user1", "user123")
	require.NoError(t, err)

	assert.True(t, m.HasRole(ctx, "admin", "user"))
	assert.False(t, m.HasRole(ctx, "admin"))
	assert.False(t, m.HasRole(ctx))
	assert.True(t, stderrors.Is(m.RequireRole(ctx, "admin"), auth.ErrForbidden))
	assert.NoError(t, m.RequireRole(ctx, "user"))
}

func TestHandleUnauthorized_FromAPIClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	ctrl := gomock.NewController(t)
	revoker := mocks.NewMockRevoker(ctrl)
	nav := &pageRecorder{}

	sess := newSession()
	m := auth.NewManager(sess, auth.NewDemoVerifier(),
		auth.WithNavigator(nav),
		auth.WithRevoker(revoker),
		auth.WithLogger(log.Discard()),
	)
	client := api.New(api.Config{BaseURL: srv.URL + "/api"}, sess,
		api.WithLogger(log.Discard()),
		api.WithUnauthorizedHandler(m.HandleUnauthorized),
	)

	ctx := context.Background()
	_, err := m.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	_, err = client.Dashboard.Overview(ctx)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, api.ErrSessionExpired))

	assert.Equal(t, auth.StateUnauthenticated, m.State(ctx))
	assert.Equal(t, []string{auth.EntryPage}, nav.pages)
}

func TestLoginWithJWTValidator(t *testing.T) {
	ctrl := gomock.NewController(t)
	verifier := mocks.NewMockVerifier(ctrl)
	expired := signedToken(t, pastExpiry())
	verifier.EXPECT().
		Verify(gomock.Any(), "admin", "admin123").
		Return(&session.User{ID: 1, UserID: "admin", Role: "admin"}, expired, nil)

	m := auth.NewManager(newSession(), verifier,
		auth.WithTokenValidator(auth.JWTExpiry(nil)),
		auth.WithLogger(log.Discard()),
	)

	result, err := m.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.False(t, m.IsAuthenticated(context.Background()))
}
