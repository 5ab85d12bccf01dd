// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/domain/entity"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ProviderID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// MilestoneNotice describes progress marks a goal crossed with one payment.
type MilestoneNotice struct {
	UserID    uuid.UUID
	Email     string
	Name      string
	GoalName  string
	Percents  []int
	Current   decimal.Decimal
	Target    decimal.Decimal
	Completed bool
}

// GoalNotifier tells owners about goal progress.
type GoalNotifier interface {
	// NotifyMilestones sends one message covering every mark in the notice.
	NotifyMilestones(ctx context.Context, notice MilestoneNotice) error
}

// Budget warning severities.
const (
	SeverityWarning  = "warning"  // 90% of the category budget or more
	SeverityCritical = "critical" // Over budget
)

// CategoryWarning is one spending category at or past its warning threshold.
type CategoryWarning struct {
	Category entity.ExpenseCategory
	Spent    decimal.Decimal
	Budget   decimal.Decimal
	Percent  decimal.Decimal
	Severity string
}

// BudgetWarningNotice describes the categories a logged expense pushed over a threshold.
type BudgetWarningNotice struct {
	UserID     uuid.UUID
	Email      string
	Name       string
	Categories []CategoryWarning
}

// BudgetNotifier tells owners when their spending approaches a category budget.
type BudgetNotifier interface {
	// NotifyBudgetWarning sends one message covering every category in the notice.
	NotifyBudgetWarning(ctx context.Context, notice BudgetWarningNotice) error
}
