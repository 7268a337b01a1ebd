package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// The API layer maps these to HTTP status codes.
var (
	// ErrInvalidCredentials indicates an unknown username or a wrong password.
	// The two cases are deliberately indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotTeamMember indicates the caller is not a member of the team the
	// operation targets. API layer should map this to HTTP 403 Forbidden.
	ErrNotTeamMember = errors.New("not a member of this team")
)

// ServiceError wraps an unexpected failure with the operation that hit it.
type ServiceError struct {
	Service   string
	Operation string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s service %s failed: %v", e.Service, e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// wrapError passes expected errors through unchanged and wraps everything
// else in a ServiceError.
func wrapError(service, operation string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrNotTeamMember),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrInvalidEntity),
		domain.IsValidationError(err):
		return err
	}
	return &ServiceError{Service: service, Operation: operation, Err: err}
}
