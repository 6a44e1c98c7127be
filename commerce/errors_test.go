package commerce

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotImplementedError(t *testing.T) {
	err := NewNotImplementedError("bridge", "carts.add_item")

	assert.Contains(t, err.Error(), "not implemented")
	assert.Contains(t, err.Error(), "bridge")
	assert.ErrorIs(t, err, ErrNotImplemented)

	// Wrapping keeps the errors.Is contract.
	wrapped := fmt.Errorf("add to cart: %w", err)
	assert.ErrorIs(t, wrapped, ErrNotImplemented)

	var nie *NotImplementedError
	assert.ErrorAs(t, wrapped, &nie)
	assert.Equal(t, "bridge", nie.Provider)
	assert.Equal(t, "carts.add_item", nie.Op)
}

func TestAPIError_Unwrap(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{status: 404, want: ErrNotFound},
		{status: 401, want: ErrUnauthorized},
		{status: 403, want: ErrForbidden},
		{status: 409, want: ErrConflict},
		{status: 400, want: ErrInvalidInput},
		{status: 422, want: ErrInvalidInput},
		{status: 500, want: ErrUnavailable},
		{status: 503, want: ErrUnavailable},
		{status: 0, want: ErrUnavailable},
	}

	for _, tt := range tests {
		err := &APIError{Provider: "medusa", Op: "products.get", Status: tt.status}
		assert.ErrorIs(t, err, tt.want, "status %d", tt.status)
	}

	// Unclassified statuses unwrap to nothing.
	odd := &APIError{Provider: "medusa", Op: "products.get", Status: 418}
	assert.False(t, errors.Is(odd, ErrInvalidInput))
}

func TestAPIError_Error(t *testing.T) {
	withCode := &APIError{Provider: "bridge", Op: "products.get", Status: 404, Code: "product_not_found", Message: "no such product"}
	assert.Contains(t, withCode.Error(), "bridge")
	assert.Contains(t, withCode.Error(), "404")
	assert.Contains(t, withCode.Error(), "product_not_found")

	transport := &APIError{Provider: "bridge", Op: "products.get", Message: "connection refused"}
	assert.Contains(t, transport.Error(), "connection refused")
}
