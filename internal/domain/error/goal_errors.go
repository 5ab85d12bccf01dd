// Package error defines domain-specific errors for the AvecBanker application.
package error

import "errors"

// Goal and planning domain errors.
var (
	// ErrGoalNotFound is returned when a referenced goal is absent from the owner's goals.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrGoalNameTaken is returned when another goal of the same owner already uses the name.
	ErrGoalNameTaken = errors.New("goal name already in use")

	// ErrInvalidAmount is returned for a negative envelope, target, balance, payment or rate.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidGoal is returned when a goal is missing a field its kind requires or its
	// balance exceeds its target.
	ErrInvalidGoal = errors.New("invalid goal")

	// ErrInvalidPeriod is returned for a non-positive or unknown budgeting cadence.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrGoalClosed is returned when a change is attempted on an inactive goal.
	ErrGoalClosed = errors.New("goal is closed")

	// ErrUnauthorizedGoalAccess is returned when user is not authorized to access a goal.
	ErrUnauthorizedGoalAccess = errors.New("unauthorized access to goal")

	// ErrRebalanceInProgress is returned when another rebalance or goal write holds the owner's lock.
	ErrRebalanceInProgress = errors.New("rebalance already in progress")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeGoalNotFound           GoalErrorCode = "GOL-010001"
	ErrCodeGoalNameTaken          GoalErrorCode = "GOL-010002"
	ErrCodeInvalidAmount          GoalErrorCode = "GOL-010003"
	ErrCodeInvalidGoal            GoalErrorCode = "GOL-010004"
	ErrCodeInvalidPeriod          GoalErrorCode = "GOL-010005"
	ErrCodeUnauthorizedGoalAccess GoalErrorCode = "GOL-010006"
	ErrCodeMissingGoalFields      GoalErrorCode = "GOL-010007"
	ErrCodeGoalClosed             GoalErrorCode = "GOL-010008"

	// Planning errors (02XXXX)
	ErrCodeRebalanceInProgress GoalErrorCode = "GOL-020001"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// InvalidAmount builds the error returned for a negative monetary input.
func InvalidAmount(message string) *GoalError {
	return NewGoalError(ErrCodeInvalidAmount, message, ErrInvalidAmount)
}

// InvalidGoal builds the error returned for a malformed goal.
func InvalidGoal(message string) *GoalError {
	return NewGoalError(ErrCodeInvalidGoal, message, ErrInvalidGoal)
}

// InvalidPeriod builds the error returned for an unusable budgeting cadence.
func InvalidPeriod(message string) *GoalError {
	return NewGoalError(ErrCodeInvalidPeriod, message, ErrInvalidPeriod)
}

// GoalNotFound builds the error returned when a goal reference does not resolve.
func GoalNotFound(ref string) *GoalError {
	return NewGoalError(ErrCodeGoalNotFound, "goal "+ref+" not found", ErrGoalNotFound)
}
