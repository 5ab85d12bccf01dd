// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/domain/entity"
)

// GoalRepository defines the interface for goal persistence operations.
// Goals are never deleted; closing one is an Update.
type GoalRepository interface {
	// Create creates a new goal in the database.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// FindByUserID retrieves the goals of a user ordered by priority and creation time.
	// Closed goals are only returned when includeClosed is set.
	FindByUserID(ctx context.Context, userID uuid.UUID, includeClosed bool) ([]*entity.Goal, error)

	// ExistsActiveByName checks if the user has another active goal with the given name,
	// compared case-insensitively. excludeID may be uuid.Nil.
	ExistsActiveByName(ctx context.Context, userID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)

	// Update updates an existing goal in the database.
	Update(ctx context.Context, goal *entity.Goal) error

	// UpdateProgress stores only the balance and lifecycle columns of a goal
	// (current amount, active, closed at), leaving the planned contribution alone.
	UpdateProgress(ctx context.Context, goal *entity.Goal) error

	// UpdateContributions stores new planned contributions for several goals of one user
	// in a single transaction.
	UpdateContributions(ctx context.Context, userID uuid.UUID, contributions map[uuid.UUID]decimal.Decimal) error
}
