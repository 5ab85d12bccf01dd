package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/avecbanker/backend/internal/application/adapter"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
)

// Worker sends queued emails in the background so request handlers never wait on
// the provider.
type Worker struct {
	sender      adapter.EmailSender
	queue       chan adapter.SendEmailInput
	maxAttempts int
	retryDelay  time.Duration
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	QueueSize   int
	MaxAttempts int
	RetryDelay  time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		QueueSize:   100,
		MaxAttempts: 3,
		RetryDelay:  2 * time.Second,
	}
}

// NewWorker creates a new email worker.
func NewWorker(sender adapter.EmailSender, config WorkerConfig) *Worker {
	if config.QueueSize <= 0 {
		config.QueueSize = 1
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}
	return &Worker{
		sender:      sender,
		queue:       make(chan adapter.SendEmailInput, config.QueueSize),
		maxAttempts: config.MaxAttempts,
		retryDelay:  config.RetryDelay,
	}
}

// Enqueue adds an email to the queue without blocking. A full queue is an error.
func (w *Worker) Enqueue(input adapter.SendEmailInput) error {
	select {
	case w.queue <- input:
		return nil
	default:
		return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, "email queue is full", domainerror.ErrEmailQueueFailed)
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started",
		"queue_size", cap(w.queue),
		"max_attempts", w.maxAttempts,
	)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down", "pending", len(w.queue))
			return
		case input := <-w.queue:
			w.deliver(ctx, input)
		}
	}
}

// ProcessNow sends every queued email immediately (useful for testing).
func (w *Worker) ProcessNow(ctx context.Context) {
	for {
		select {
		case input := <-w.queue:
			w.deliver(ctx, input)
		default:
			return
		}
	}
}

// deliver sends one email, retrying temporary failures with a linear backoff.
func (w *Worker) deliver(ctx context.Context, input adapter.SendEmailInput) {
	logger := slog.With("recipient", input.To, "subject", input.Subject)

	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		result, err := w.sender.Send(ctx, input)
		if err == nil {
			logger.Info("Email sent successfully", "provider_id", result.ProviderID, "attempts", attempt)
			return
		}

		if !domainerror.IsRetryableEmailError(err) {
			logger.Warn("Email permanently failed", "error", err, "attempts", attempt)
			return
		}
		if attempt == w.maxAttempts {
			break
		}

		logger.Info("Email scheduled for retry", "error", err, "attempts", attempt)
		select {
		case <-ctx.Done():
			return
		case <-time.After(w.retryDelay * time.Duration(attempt)):
		}
	}

	logger.Warn("Email dropped after retries", "attempts", w.maxAttempts)
}
