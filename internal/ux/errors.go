package ux

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"net/http"
	"strings"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/errors"
)

// ErrorWithSuggestion wraps an error with helpful recovery suggestions
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\nSuggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

// Unwrap provides access to the underlying error
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion creates a new error with a suggestion
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// EnhanceError analyzes an error and adds contextual suggestions.
// Errors that already carry suggestions are returned unchanged.
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}

	var gErr *errors.GBMSError
	if stderrors.As(err, &gErr) && len(gErr.Suggestions) > 0 {
		return err
	}

	var apiErr *api.Error
	switch {
	case stderrors.Is(err, api.ErrSessionExpired),
		stderrors.Is(err, errors.New(errors.ErrCodeAuthNotAuthenticated, "")):
		return NewErrorWithSuggestion(err, "Run 'gbms login' to start a new session")

	case stderrors.Is(err, api.ErrTransport):
		return NewErrorWithSuggestion(err,
			"Check that the backend is running and that --api-url (or GBMS_API_URL) points at it")

	case stderrors.Is(err, errors.New(errors.ErrCodeAuthForbidden, "")):
		return NewErrorWithSuggestion(err, "Ask an administrator for the required role")

	case stderrors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound:
		return NewErrorWithSuggestion(err, "Check the ID; list the collection to see what exists")

	case stderrors.As(err, &apiErr) && apiErr.StatusCode >= http.StatusInternalServerError:
		return NewErrorWithSuggestion(err, "The server failed; retry later or run with --verbose for details")

	case stderrors.Is(err, errors.New(errors.ErrCodeConfigInvalid, "")),
		stderrors.Is(err, errors.New(errors.ErrCodeConfigLoadFailed, "")):
		return NewErrorWithSuggestion(err, "Inspect the effective settings with 'gbms config show'")

	case stderrors.Is(err, fs.ErrNotExist):
		return NewErrorWithSuggestion(err, "Check the file path and try again")

	case stderrors.Is(err, fs.ErrPermission):
		return NewErrorWithSuggestion(err,
			"Check file permissions and ensure you have access to the required files/directories")
	}

	return err
}

// FormatError provides consistent error formatting with context
func FormatError(err error, context string) error {
	if err == nil {
		return nil
	}

	enhanced := EnhanceError(err)
	if context != "" {
		return fmt.Errorf("%s: %w", context, enhanced)
	}
	return enhanced
}

// Render returns the text shown to the user for err, followed by any
// suggestions carried by a GBMS error in its chain.
func Render(err error) string {
	if err == nil {
		return ""
	}
	enhanced := EnhanceError(err)

	var gErr *errors.GBMSError
	if !stderrors.As(enhanced, &gErr) || len(gErr.Suggestions) == 0 {
		return enhanced.Error()
	}

	var b strings.Builder
	b.WriteString(enhanced.Error())
	b.WriteString("\n\nSuggestions:")
	for _, s := range gErr.Suggestions {
		b.WriteString("\n  • " + s)
	}
	return b.String()
}
