package errors

import (
	"fmt"
	"net/http"

	"github.com/dongbac/feedback-backend/logger"
)

type ErrorType string

const (
	ValidationError   ErrorType = "VALIDATION_ERROR"
	PersistenceError  ErrorType = "PERSISTENCE_ERROR"
	NotificationError ErrorType = "NOTIFICATION_ERROR"
	ServerError       ErrorType = "SERVER_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	Errors     []string  `json:"errors,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the wrapped raw error for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the HTTP status code the error maps to.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// New creates a new AppError
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// ValidationFailed reports a single validation failure.
func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// ValidationList reports the full ordered list of field validation
// failures for one submission attempt. The list is surfaced verbatim to
// the user so a retry can fix everything at once.
func ValidationList(messages []string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Message:    "Phản hồi chưa hợp lệ",
		Errors:     messages,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewPersistenceError wraps a storage failure. The original error is
// logged but the message returned to the user is sanitized.
func NewPersistenceError(err error) *AppError {
	logger.GetLogger().Errorw("Persistence error", "error", err)
	return &AppError{
		Type:       PersistenceError,
		Message:    "Không thể lưu phản hồi",
		Detail:     "Vui lòng thử lại sau",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

// NewNotificationError wraps a mail delivery failure. Notification is
// advisory: this error is recorded and downgraded to a warning by the
// caller, it never fails a submission, hence the OK status.
func NewNotificationError(err error) *AppError {
	return &AppError{
		Type:       NotificationError,
		Message:    "Không gửi được email thông báo",
		Detail:     err.Error(),
		HTTPStatus: http.StatusOK,
		Raw:        err,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case PersistenceError:
		return http.StatusInternalServerError
	case NotificationError:
		return http.StatusOK
	default:
		return http.StatusInternalServerError
	}
}
