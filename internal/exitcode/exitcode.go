// Package exitcode maps command errors to process exit codes.
package exitcode

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/krcglobal/gbms/internal/api"
	"github.com/krcglobal/gbms/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage or configuration
	UsageError = 2

	// ServerError indicates the backend rejected the request
	ServerError = 3

	// StorageError indicates local storage could not be written
	StorageError = 4

	// AuthError indicates an authentication or authorization failure
	AuthError = 5

	// NetworkError indicates the backend could not be reached
	NetworkError = 6

	// Interrupted indicates the user cancelled with Ctrl+C
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	Exit(DetermineExitCode(err))
}

// usagePhrases are the messages cobra uses for argument and flag errors.
var usagePhrases = []string{
	"unknown command",
	"unknown flag",
	"unknown shorthand flag",
	"invalid argument",
	"required flag",
	"accepts ",
	"requires at least",
	"flag needs an argument",
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	if stderrors.Is(err, api.ErrTransport) || stderrors.Is(err, context.DeadlineExceeded) {
		return NetworkError
	}

	switch prefix(errors.CodeOf(err)) {
	case "AUTH":
		return AuthError
	case "STORE":
		return StorageError
	case "CONFIG":
		return UsageError
	}

	var apiErr *api.Error
	if stderrors.As(err, &apiErr) {
		return ServerError
	}

	msg := strings.ToLower(err.Error())
	for _, phrase := range usagePhrases {
		if strings.Contains(msg, phrase) {
			return UsageError
		}
	}

	return GeneralError
}

func prefix(code errors.ErrorCode) string {
	s, _, _ := strings.Cut(string(code), "-")
	return s
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags, arguments or configuration)"
	case ServerError:
		return "Server rejected the request"
	case StorageError:
		return "Local storage error"
	case AuthError:
		return "Authentication error"
	case NetworkError:
		return "Network error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
