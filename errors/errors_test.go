package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ValidationError, "invalid input", "field required")
	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, "invalid input", err.Message)
	assert.Equal(t, "field required", err.Detail)
	assert.Equal(t, 400, err.HTTPStatus)
}

func TestWrap(t *testing.T) {
	originalErr := fmt.Errorf("original error")
	wrappedErr := Wrap(originalErr, PersistenceError, "log append failed")

	assert.Equal(t, PersistenceError, wrappedErr.Type)
	assert.Equal(t, "log append failed", wrappedErr.Message)
	assert.Equal(t, originalErr.Error(), wrappedErr.Detail)
	assert.Equal(t, 500, wrappedErr.HTTPStatus)
	assert.Equal(t, originalErr, wrappedErr.Raw)
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, PersistenceError, "no-op"))
}

func TestValidationList(t *testing.T) {
	messages := []string{
		"Vui lòng chọn Danh mục phản hồi.",
		"Vui lòng nhập Tiêu đề.",
	}
	err := ValidationList(messages)
	assert.Equal(t, ValidationError, err.Type)
	assert.Equal(t, messages, err.Errors)
	assert.Equal(t, 400, err.HTTPStatus)
}

func TestNewPersistenceError(t *testing.T) {
	originalErr := fmt.Errorf("disk full")
	err := NewPersistenceError(originalErr)
	assert.Equal(t, PersistenceError, err.Type)
	assert.Equal(t, 500, err.HTTPStatus)
	assert.Equal(t, originalErr, err.Raw)
	// Sanitized message: the raw cause stays out of the user-facing text.
	assert.NotContains(t, err.Message, "disk full")
}

func TestNewNotificationError(t *testing.T) {
	originalErr := fmt.Errorf("dial tcp: connection refused")
	err := NewNotificationError(originalErr)
	assert.Equal(t, NotificationError, err.Type)
	assert.Equal(t, 200, err.GetHTTPStatus())
	assert.Equal(t, originalErr, err.Unwrap())
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name: "with detail",
			err: &AppError{
				Type:    ValidationError,
				Message: "invalid input",
				Detail:  "field required",
			},
			expected: "VALIDATION_ERROR: invalid input (field required)",
		},
		{
			name: "without detail",
			err: &AppError{
				Type:    ServerError,
				Message: "boom",
			},
			expected: "SERVER_ERROR: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestGetHTTPStatusDefaults(t *testing.T) {
	err := &AppError{Type: ServerError}
	assert.Equal(t, 500, err.GetHTTPStatus())

	err = &AppError{Type: ValidationError}
	assert.Equal(t, 400, err.GetHTTPStatus())
}
