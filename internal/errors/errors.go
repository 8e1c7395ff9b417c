package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// API errors (API-001 to API-099)
	ErrCodeAPIRequest   ErrorCode = "API-001"
	ErrCodeAPITransport ErrorCode = "API-002"
	ErrCodeAPIStatus    ErrorCode = "API-003"
	ErrCodeAPIDecode    ErrorCode = "API-004"
	ErrCodeAPIUpload    ErrorCode = "API-005"

	// Auth errors (AUTH-001 to AUTH-099)
	ErrCodeAuthInvalidCredentials ErrorCode = "AUTH-001"
	ErrCodeAuthSessionExpired     ErrorCode = "AUTH-002"
	ErrCodeAuthNotAuthenticated   ErrorCode = "AUTH-003"
	ErrCodeAuthMissingCredentials ErrorCode = "AUTH-004"
	ErrCodeAuthForbidden          ErrorCode = "AUTH-005"

	// Storage errors (STORE-001 to STORE-099)
	ErrCodeStorePartialWrite ErrorCode = "STORE-001"
	ErrCodeStoreWriteFailed  ErrorCode = "STORE-002"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigInvalid    ErrorCode = "CONFIG-001"
	ErrCodeConfigLoadFailed ErrorCode = "CONFIG-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound   ErrorCode = "IO-001"
	ErrCodeFileReadFailed ErrorCode = "IO-002"
)

// GBMSError represents an enhanced error with code, suggestions, and an optional cause
type GBMSError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *GBMSError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	return b.String()
}

// Detailed renders the error together with its suggestions for terminal output
func (e *GBMSError) Detailed() string {
	var b strings.Builder
	b.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *GBMSError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a GBMSError carrying the same code.
// Sentinels declared with New can therefore be matched after being
// re-created with a different message or cause.
func (e *GBMSError) Is(target error) bool {
	t, ok := target.(*GBMSError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates a new GBMSError
func New(code ErrorCode, message string) *GBMSError {
	return &GBMSError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new GBMSError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *GBMSError {
	return &GBMSError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *GBMSError) WithSuggestion(suggestion string) *GBMSError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *GBMSError) WithSuggestions(suggestions ...string) *GBMSError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// CodeOf returns the code of the first GBMSError in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	var gErr *GBMSError
	if stderrors.As(err, &gErr) {
		return gErr.Code
	}
	return ""
}

// Common error constructors for frequently used errors

// NewNotAuthenticatedError creates the error returned when a command needs a session
func NewNotAuthenticatedError() *GBMSError {
	return New(ErrCodeAuthNotAuthenticated, "not logged in").
		WithSuggestion("Run 'gbms login' to start a session")
}

// NewConfigInvalidError creates a configuration validation error
func NewConfigInvalidError(details string) *GBMSError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", details)).
		WithSuggestion("Run 'gbms config show' to inspect the effective configuration").
		WithSuggestion("Check $GBMS_HOME/config.yaml and the GBMS_* environment variables")
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *GBMSError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}
