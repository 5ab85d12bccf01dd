// Package error defines domain-specific errors for the AvecBanker application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrInvalidSplit is returned when the split percentages do not add up to 100.
	ErrInvalidSplit = errors.New("split percentages must add up to 100")

	// ErrBudgetNotFound is returned when the user has not set up a budget profile yet.
	ErrBudgetNotFound = errors.New("budget profile not found")

	// ErrInvalidIncome is returned when the monthly income is negative.
	ErrInvalidIncome = errors.New("invalid income")

	// ErrBillNotFound is returned when a bill is not found.
	ErrBillNotFound = errors.New("bill not found")

	// ErrInvalidBill is returned when a bill has a non-positive amount or an invalid due day.
	ErrInvalidBill = errors.New("invalid bill")

	// ErrExpenseNotFound is returned when an expense is not found.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrInvalidExpense is returned when an expense has a non-positive amount or an unknown category.
	ErrInvalidExpense = errors.New("invalid expense")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BUD-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Profile errors (01XXXX)
	ErrCodeInvalidSplit        BudgetErrorCode = "BUD-010001"
	ErrCodeInvalidIncome       BudgetErrorCode = "BUD-010002"
	ErrCodeInvalidCadence      BudgetErrorCode = "BUD-010003"
	ErrCodeMissingBudgetFields BudgetErrorCode = "BUD-010004"

	// Bill errors (02XXXX)
	ErrCodeBillNotFound BudgetErrorCode = "BUD-020001"
	ErrCodeInvalidBill  BudgetErrorCode = "BUD-020002"

	// Expense errors (03XXXX)
	ErrCodeExpenseNotFound BudgetErrorCode = "BUD-030001"
	ErrCodeInvalidExpense  BudgetErrorCode = "BUD-030002"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
