package ux

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/errors"
)

func TestNewErrorWithSuggestion(t *testing.T) {
	assert.Nil(t, NewErrorWithSuggestion(nil, "some suggestion"))

	err := NewErrorWithSuggestion(stderrors.New("something failed"), "try this fix")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "something failed")
	assert.Contains(t, err.Error(), "Suggestion: try this fix")

	plain := NewErrorWithSuggestion(stderrors.New("something failed"), "")
	assert.Equal(t, "something failed", plain.Error())
}

func TestErrorWithSuggestion_Unwrap(t *testing.T) {
	base := stderrors.New("base")
	err := NewErrorWithSuggestion(base, "fix")
	assert.ErrorIs(t, err, base)
}

func TestEnhanceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantSuggestion string
	}{
		{
			name:           "transport failure",
			err:            fmt.Errorf("load: %w", &api.TransportError{Method: "GET", URL: "http://x/api", Err: stderrors.New("connection refused")}),
			wantSuggestion: "--api-url",
		},
		{
			name:           "not found response",
			err:            &api.Error{StatusCode: 404, Message: "사업을 찾을 수 없습니다."},
			wantSuggestion: "Check the ID",
		},
		{
			name:           "server failure",
			err:            &api.Error{StatusCode: 503, Message: "unavailable"},
			wantSuggestion: "retry later",
		},
		{
			name:           "forbidden",
			err:            errors.New(errors.ErrCodeAuthForbidden, "admin role required"),
			wantSuggestion: "administrator",
		},
		{
			name:           "invalid config",
			err:            errors.New(errors.ErrCodeConfigInvalid, "bad"),
			wantSuggestion: "gbms config show",
		},
		{
			name:           "missing file",
			err:            fmt.Errorf("open x: %w", fs.ErrNotExist),
			wantSuggestion: "file path",
		},
		{
			name:           "permission denied",
			err:            fmt.Errorf("open x: %w", fs.ErrPermission),
			wantSuggestion: "file permissions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnhanceError(tt.err)
			var ews *ErrorWithSuggestion
			require.ErrorAs(t, got, &ews)
			assert.Contains(t, ews.Suggestion, tt.wantSuggestion)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, EnhanceError(nil))
	})

	t.Run("unknown error passes through", func(t *testing.T) {
		err := stderrors.New("something odd")
		assert.Same(t, err, EnhanceError(err))
	})

	t.Run("errors with suggestions pass through", func(t *testing.T) {
		err := fmt.Errorf("dashboard: %w", api.ErrSessionExpired)
		assert.Same(t, err, EnhanceError(err))
	})
}

func TestFormatError(t *testing.T) {
	assert.NoError(t, FormatError(nil, "ctx"))

	err := FormatError(&api.Error{StatusCode: 500, Message: "boom"}, "list projects")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "list projects: boom"))
	assert.Contains(t, err.Error(), "retry later")
}

func TestRender(t *testing.T) {
	assert.Empty(t, Render(nil))

	out := Render(fmt.Errorf("projects: %w", api.ErrSessionExpired))
	assert.True(t, strings.HasPrefix(out, "projects: [AUTH-002]"))
	assert.Contains(t, out, "Suggestions:\n  • Run 'gbms login'")

	assert.Equal(t, "plain", Render(stderrors.New("plain")))
}
