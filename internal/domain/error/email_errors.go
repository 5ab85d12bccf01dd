// Package error defines domain-specific errors for the AvecBanker application.
package error

import "errors"

// ErrEmailQueueFailed is returned when the milestone queue has no room left.
var ErrEmailQueueFailed = errors.New("failed to queue email")

// EmailErrorCode identifies why a notification email could not go out.
// Format: EMAIL-XXYYYY, where XX is the stage (queue, delivery, rendering).
type EmailErrorCode string

const (
	ErrCodeEmailQueueFailed EmailErrorCode = "EMAIL-010001"

	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"

	ErrCodeTemplateRenderFailed EmailErrorCode = "EMAIL-030002"
)

// EmailError is a notification failure. Notifications never fail the operation
// that triggered them, so these errors are logged rather than returned to clients.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *EmailError) Unwrap() error {
	return e.Err
}

// Retryable reports whether sending the same email again may succeed.
func (e *EmailError) Retryable() bool {
	return e.Code == ErrCodeTemporaryEmailFailure
}

// NewEmailError creates a new EmailError.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{Code: code, Message: message, Err: err}
}

// IsRetryableEmailError reports whether err carries a temporary delivery failure.
// Errors that are not EmailErrors are treated as temporary.
func IsRetryableEmailError(err error) bool {
	var emailErr *EmailError
	if errors.As(err, &emailErr) {
		return emailErr.Retryable()
	}
	return err != nil
}
