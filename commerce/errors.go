package commerce

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotFound           = errors.New("commerce: resource not found")
	ErrUnauthorized       = errors.New("commerce: authentication required")
	ErrForbidden          = errors.New("commerce: access denied")
	ErrConflict           = errors.New("commerce: conflict")
	ErrInvalidInput       = errors.New("commerce: invalid input")
	ErrUnavailable        = errors.New("commerce: provider unavailable")
	ErrNotImplemented     = errors.New("commerce: not implemented")
	ErrInvalidConfig      = errors.New("commerce: invalid configuration")
	ErrProviderRegistered = errors.New("commerce: provider already registered")
	ErrUnknownProvider    = errors.New("commerce: unknown provider")
	ErrClientExists       = errors.New("commerce: client name already in use")
	ErrClientNotFound     = errors.New("commerce: client not found")
	ErrNoDefaultClient    = errors.New("commerce: no default client configured")
	ErrB2BDisabled        = errors.New("commerce: b2b services disabled")
	ErrJobFailed          = errors.New("commerce: sync job did not complete")
)

// NotImplementedError reports an operation the selected provider does not
// support natively. Stub services return it for every mutating call so a
// storefront wired against the wrong backend fails loudly instead of
// silently dropping writes. It matches ErrNotImplemented through
// errors.Is.
type NotImplementedError struct {
	// Provider is the adapter name, e.g. "bridge".
	Provider string
	// Op identifies the rejected operation, e.g. "carts.add_item".
	Op string
}

// NewNotImplementedError builds a NotImplementedError for op on provider.
func NewNotImplementedError(provider, op string) *NotImplementedError {
	return &NotImplementedError{Provider: provider, Op: op}
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("commerce: %s: not implemented for %s adapter", e.Op, e.Provider)
}

func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

// APIError is a vendor API failure translated into the shared model.
// It unwraps to the sentinel matching its status class so callers can
// branch with errors.Is without caring which provider produced it.
type APIError struct {
	// Provider is the adapter name that issued the request.
	Provider string
	// Op identifies the failing operation, e.g. "products.get".
	Op string
	// Status is the HTTP status returned by the vendor, zero for
	// transport-level failures.
	Status int
	// Code is the vendor error code when the response carried one.
	Code string
	// Message is the human-readable vendor message.
	Message string
	// RequestID correlates the failure with vendor-side logs.
	RequestID string
}

func (e *APIError) Error() string {
	switch {
	case e.Status == 0:
		return fmt.Sprintf("commerce: %s: %s request failed: %s", e.Provider, e.Op, e.Message)
	case e.Code != "":
		return fmt.Sprintf("commerce: %s: %s returned status %d (%s): %s", e.Provider, e.Op, e.Status, e.Code, e.Message)
	default:
		return fmt.Sprintf("commerce: %s: %s returned status %d: %s", e.Provider, e.Op, e.Status, e.Message)
	}
}

func (e *APIError) Unwrap() error {
	switch {
	case e.Status == 404:
		return ErrNotFound
	case e.Status == 401:
		return ErrUnauthorized
	case e.Status == 403:
		return ErrForbidden
	case e.Status == 409:
		return ErrConflict
	case e.Status == 400 || e.Status == 422:
		return ErrInvalidInput
	case e.Status >= 500 || e.Status == 0:
		return ErrUnavailable
	default:
		return nil
	}
}
