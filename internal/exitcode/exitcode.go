// Package exitcode defines exit codes for the CLI and maps service errors
// onto them.
package exitcode

import (
	"errors"
	"fmt"

	"todoctl/internal/service"
)

const (
	// Success indicates successful completion.
	Success = 0

	// UserError covers bad arguments, rejected input and missing lists or items.
	UserError = 1

	// AuthError covers missing or rejected credentials and unreadable config.
	AuthError = 2

	// BackendError covers transport failures, malformed error bodies and any
	// other server failure.
	BackendError = 3
)

// FromError returns the exit code for an error returned by a service.
// nil maps to Success.
func FromError(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrNotFound):
		return UserError
	case errors.Is(err, service.ErrUnauthorized):
		return AuthError
	default:
		return BackendError
	}
}

// Name returns a short name for code, used in debug logs.
func Name(code int) string {
	switch code {
	case Success:
		return "success"
	case UserError:
		return "user_error"
	case AuthError:
		return "auth_error"
	case BackendError:
		return "backend_error"
	default:
		return fmt.Sprintf("code_%d", code)
	}
}
