package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
	"github.com/avecbanker/backend/internal/integration/email/templates"
)

func newTestNotifier(t *testing.T, sender adapter.EmailSender, queueSize int) (*Notifier, *Worker) {
	t.Helper()
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)

	worker := NewWorker(sender, WorkerConfig{QueueSize: queueSize, MaxAttempts: 3, RetryDelay: time.Millisecond})
	return NewNotifier(renderer, worker, "USD"), worker
}

func milestoneNotice(percents ...int) adapter.MilestoneNotice {
	return adapter.MilestoneNotice{
		UserID:   uuid.New(),
		Email:    "ana@example.com",
		Name:     "Ana",
		GoalName: "Car loan",
		Percents: percents,
		Current:  decimal.NewFromInt(10000),
		Target:   decimal.NewFromInt(20000),
	}
}

func TestNotifier_Milestones(t *testing.T) {
	ctx := context.Background()

	t.Run("renders and sends one email for several marks", func(t *testing.T) {
		sender := NewMockEmailSender()
		notifier, worker := newTestNotifier(t, sender, 10)

		require.NoError(t, notifier.NotifyMilestones(ctx, milestoneNotice(25, 50)))
		worker.ProcessNow(ctx)

		sent := sender.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, "ana@example.com", sent[0].To)
		assert.Equal(t, "Car loan passed 25% and 50%", sent[0].Subject)
		assert.Contains(t, sent[0].HTML, "Car loan")
		assert.Contains(t, sent[0].Text, "10000.00 of 20000.00 USD")
	})

	t.Run("completion uses its own subject", func(t *testing.T) {
		sender := NewMockEmailSender()
		notifier, worker := newTestNotifier(t, sender, 10)

		notice := milestoneNotice(100)
		notice.Completed = true
		require.NoError(t, notifier.NotifyMilestones(ctx, notice))
		worker.ProcessNow(ctx)

		sent := sender.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, "Car loan is complete", sent[0].Subject)
		assert.Contains(t, sent[0].Text, "is done")
	})

	t.Run("no marks sends nothing", func(t *testing.T) {
		sender := NewMockEmailSender()
		notifier, worker := newTestNotifier(t, sender, 10)

		require.NoError(t, notifier.NotifyMilestones(ctx, milestoneNotice()))
		worker.ProcessNow(ctx)
		assert.Empty(t, sender.Sent())
	})

	t.Run("full queue is reported", func(t *testing.T) {
		notifier, _ := newTestNotifier(t, NewMockEmailSender(), 1)

		require.NoError(t, notifier.NotifyMilestones(ctx, milestoneNotice(25)))
		err := notifier.NotifyMilestones(ctx, milestoneNotice(50))

		var emailErr *domainerror.EmailError
		require.True(t, errors.As(err, &emailErr))
		assert.Equal(t, domainerror.ErrCodeEmailQueueFailed, emailErr.Code)
	})
}

func budgetWarning(severities ...string) adapter.BudgetWarningNotice {
	notice := adapter.BudgetWarningNotice{UserID: uuid.New(), Email: "ana@example.com", Name: "Ana"}
	for i, severity := range severities {
		notice.Categories = append(notice.Categories, adapter.CategoryWarning{
			Category: entity.ExpenseCategories[i],
			Spent:    decimal.RequireFromString("950"),
			Budget:   decimal.RequireFromString("1000"),
			Percent:  decimal.RequireFromString("95"),
			Severity: severity,
		})
	}
	return notice
}

func TestNotifier_BudgetWarning(t *testing.T) {
	ctx := context.Background()

	t.Run("warning lists the category with its share used", func(t *testing.T) {
		sender := NewMockEmailSender()
		notifier, worker := newTestNotifier(t, sender, 10)

		require.NoError(t, notifier.NotifyBudgetWarning(ctx, budgetWarning(adapter.SeverityWarning)))
		worker.ProcessNow(ctx)

		sent := sender.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, "You are close to your budget", sent[0].Subject)
		assert.Contains(t, sent[0].Text, "NEEDS: 95% used")
		assert.Contains(t, sent[0].Text, "950.00 / 1000.00 USD")
	})

	t.Run("any critical category switches the subject", func(t *testing.T) {
		sender := NewMockEmailSender()
		notifier, worker := newTestNotifier(t, sender, 10)

		require.NoError(t, notifier.NotifyBudgetWarning(ctx, budgetWarning(adapter.SeverityWarning, adapter.SeverityCritical)))
		worker.ProcessNow(ctx)

		sent := sender.Sent()
		require.Len(t, sent, 1)
		assert.Equal(t, "You are over budget", sent[0].Subject)
		assert.Contains(t, sent[0].Text, "WANTS: over budget")
	})

	t.Run("no categories sends nothing", func(t *testing.T) {
		sender := NewMockEmailSender()
		notifier, worker := newTestNotifier(t, sender, 10)

		require.NoError(t, notifier.NotifyBudgetWarning(ctx, budgetWarning()))
		worker.ProcessNow(ctx)
		assert.Empty(t, sender.Sent())
	})
}

func TestWorkerRetries(t *testing.T) {
	ctx := context.Background()

	t.Run("temporary failures are retried", func(t *testing.T) {
		sender := NewMockEmailSender()
		sender.FailNext(2, errors.New("429 too many requests"), false)
		worker := NewWorker(sender, WorkerConfig{QueueSize: 1, MaxAttempts: 3, RetryDelay: time.Millisecond})

		require.NoError(t, worker.Enqueue(adapter.SendEmailInput{To: "a@example.com", Subject: "hi"}))
		worker.ProcessNow(ctx)

		assert.Len(t, sender.Sent(), 1)
	})

	t.Run("permanent failures are dropped", func(t *testing.T) {
		sender := NewMockEmailSender()
		sender.FailNext(1, errors.New("422 validation"), true)
		worker := NewWorker(sender, WorkerConfig{QueueSize: 1, MaxAttempts: 3, RetryDelay: time.Millisecond})

		require.NoError(t, worker.Enqueue(adapter.SendEmailInput{To: "a@example.com", Subject: "hi"}))
		worker.ProcessNow(ctx)

		assert.Empty(t, sender.Sent())
	})
}

func TestIsPermanentError(t *testing.T) {
	assert.True(t, isPermanentError(errors.New("[ERROR]: 422 validation_error")))
	assert.True(t, isPermanentError(errors.New("401 Unauthorized")))
	assert.False(t, isPermanentError(errors.New("503 service unavailable")))
	assert.False(t, isPermanentError(nil))
}

func TestJoinPercents(t *testing.T) {
	assert.Equal(t, "", joinPercents(nil))
	assert.Equal(t, "25%", joinPercents([]int{25}))
	assert.Equal(t, "25%, 50% and 75%", joinPercents([]int{25, 50, 75}))
}
