// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
	"github.com/avecbanker/backend/internal/integration/persistence/model"
)

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

// Create creates a new goal in the database.
func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	return r.db.WithContext(ctx).Create(model.GoalFromEntity(goal)).Error
}

// FindByID retrieves a goal by its ID.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// FindByUserID retrieves the goals of a user ordered by priority and creation time.
func (r *goalRepository) FindByUserID(ctx context.Context, userID uuid.UUID, includeClosed bool) ([]*entity.Goal, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeClosed {
		query = query.Where("active = ?", true)
	}

	var goalModels []model.GoalModel
	if err := query.Order("priority ASC, created_at ASC").Find(&goalModels).Error; err != nil {
		return nil, err
	}

	goals := make([]*entity.Goal, len(goalModels))
	for i := range goalModels {
		goals[i] = goalModels[i].ToEntity()
	}
	return goals, nil
}

// ExistsActiveByName checks if the user has another active goal with the given name.
func (r *goalRepository) ExistsActiveByName(ctx context.Context, userID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&model.GoalModel{}).
		Where("user_id = ? AND active = ? AND LOWER(name) = LOWER(?)", userID, true, name)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update updates an existing goal in the database.
func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	return r.db.WithContext(ctx).Save(model.GoalFromEntity(goal)).Error
}

// UpdateProgress writes the balance and lifecycle columns only, so a payment or close
// never rewrites a contribution stored by a rebalance in the meantime.
func (r *goalRepository) UpdateProgress(ctx context.Context, goal *entity.Goal) error {
	result := r.db.WithContext(ctx).
		Model(&model.GoalModel{}).
		Where("id = ? AND user_id = ?", goal.ID, goal.UserID).
		Updates(map[string]any{
			"current_amount": goal.CurrentAmount,
			"active":         goal.Active,
			"closed_at":      goal.ClosedAt,
			"updated_at":     goal.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGoalNotFound
	}
	return nil
}

// UpdateContributions stores new planned contributions for several goals of one user
// in a single transaction. Goals that belong to another user are left alone.
func (r *goalRepository) UpdateContributions(ctx context.Context, userID uuid.UUID, contributions map[uuid.UUID]decimal.Decimal) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for goalID, amount := range contributions {
			result := tx.Model(&model.GoalModel{}).
				Where("id = ? AND user_id = ?", goalID, userID).
				Updates(map[string]any{
					"monthly_contribution": amount,
					"updated_at":           now,
				})
			if result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
}
