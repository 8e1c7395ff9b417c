package auth_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/auth"
	"github.com/krcglobal/gbms/internal/config"
	"github.com/krcglobal/gbms/internal/log"
)

var fixedNow = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func pastExpiry() time.Time   { return time.Now().Add(-time.Hour) }
func futureExpiry() time.Time { return time.Now().Add(time.Hour) }

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestJWTExpiry(t *testing.T) {
	clock := func() time.Time { return fixedNow }
	validate := auth.JWTExpiry(clock)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"}).SignedString([]byte("k"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"empty", "", false},
		{"opaque demo token", "mock_token_1", true},
		{"expired", signedToken(t, fixedNow.Add(-time.Minute)), false},
		{"live", signedToken(t, fixedNow.Add(time.Minute)), true},
		{"no exp claim", noExp, true},
		{"three parts but not a jwt", "a.b.c", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validate(tt.token))
		})
	}
}

func TestValidatorFor(t *testing.T) {
	expired := signedToken(t, pastExpiry())
	live := signedToken(t, futureExpiry())

	assert.True(t, auth.ValidatorFor(config.TokenCheckNonEmpty)(expired))
	assert.False(t, auth.ValidatorFor(config.TokenCheckJWT)(expired))
	assert.True(t, auth.ValidatorFor(config.TokenCheckJWT)(live))
	assert.False(t, auth.ValidatorFor("")(""))
}

func TestDemoVerifier(t *testing.T) {
	v := auth.NewDemoVerifier()
	ctx := context.Background()

	assert.Equal(t, []string{"admin", "user1", "user2"}, v.LoginNames())

	u1, tok1, err := v.Verify(ctx, "admin", "admin123")
	require.NoError(t, err)
	_, tok2, err := v.Verify(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.NotEqual(t, tok1, tok2)
	assert.Equal(t, "admin@krc.co.kr", u1.Email)

	// returned users are copies
	u1.Name = "changed"
	u2, _, err := v.Verify(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "관리자", u2.Name)

	_, _, err = v.Verify(ctx, "user1", "admin123")
	assert.True(t, stderrors.Is(err, auth.ErrInvalidCredentials))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, _, err = v.Verify(canceled, "admin", "admin123")
	assert.ErrorIs(t, err, context.Canceled)
}

func newAuthService(t *testing.T, handler http.HandlerFunc) *api.AuthService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.New(api.Config{BaseURL: srv.URL + "/api"}, newSession(), api.WithLogger(log.Discard())).Auth
}

func TestAPIVerifier(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var sent api.LoginRequest
		v := auth.NewAPIVerifier(newAuthService(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&sent)
			_, _ = w.Write([]byte(`{"success":true,"token":"srv-token","user":{"id":2,"userId":"user1","name":"홍길동","role":"user"}}`))
		}))

		user, token, err := v.Verify(context.Background(), "user1", "user123")
		require.NoError(t, err)
		assert.Equal(t, "srv-token", token)
		assert.Equal(t, "홍길동", user.Name)
		assert.Equal(t, api.LoginRequest{UserID: "user1", Password: "user123"}, sent)
	})

	t.Run("401 carries server message", func(t *testing.T) {
		v := auth.NewAPIVerifier(newAuthService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"message":"비활성화된 계정입니다."}`))
		}))

		_, _, err := v.Verify(context.Background(), "user1", "user123")
		require.Error(t, err)
		assert.True(t, stderrors.Is(err, auth.ErrInvalidCredentials))

		m := auth.NewManager(newSession(), v, auth.WithLogger(log.Discard()))
		result, err := m.Login(context.Background(), "user1", "user123")
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "비활성화된 계정입니다.", result.Message)
	})

	t.Run("success false", func(t *testing.T) {
		v := auth.NewAPIVerifier(newAuthService(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false}`))
		}))

		_, _, err := v.Verify(context.Background(), "user1", "user123")
		assert.True(t, stderrors.Is(err, auth.ErrInvalidCredentials))
	})

	t.Run("server error passes through", func(t *testing.T) {
		v := auth.NewAPIVerifier(newAuthService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		_, _, err := v.Verify(context.Background(), "user1", "user123")
		require.Error(t, err)
		assert.False(t, stderrors.Is(err, auth.ErrInvalidCredentials))

		var apiErr *api.Error
		require.True(t, stderrors.As(err, &apiErr))
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	})
}
