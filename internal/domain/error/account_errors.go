package error

import "errors"

// Account and credit card domain errors.
var (
	// ErrAccountNotFound is returned when a bank account is not found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrCardNotFound is returned when a credit card is not found.
	ErrCardNotFound = errors.New("credit card not found")

	// ErrAccountNameTaken is returned when an owner already has an active account or card with the name.
	ErrAccountNameTaken = errors.New("account name already in use")

	// ErrInvalidAccount is returned when an account or card field is out of range.
	ErrInvalidAccount = errors.New("invalid account")
)

// AccountErrorCode defines error codes for account errors.
// Format: ACC-XXYYYY where XX is category and YYYY is specific error.
type AccountErrorCode string

const (
	// Bank account errors (01XXXX)
	ErrCodeAccountNotFound  AccountErrorCode = "ACC-010001"
	ErrCodeAccountNameTaken AccountErrorCode = "ACC-010002"
	ErrCodeInvalidAccount   AccountErrorCode = "ACC-010003"

	// Credit card errors (02XXXX)
	ErrCodeCardNotFound  AccountErrorCode = "ACC-020001"
	ErrCodeCardNameTaken AccountErrorCode = "ACC-020002"
	ErrCodeInvalidCard   AccountErrorCode = "ACC-020003"
	ErrCodeCardPaidOff   AccountErrorCode = "ACC-020004"
)

// AccountError represents an account error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
