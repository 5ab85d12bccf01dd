// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID       `gorm:"type:uuid;not null;index:idx_goals_user_active"`
	Name                string          `gorm:"type:varchar(100);not null"`
	Kind                string          `gorm:"type:varchar(20);not null"`
	TargetAmount        decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	CurrentAmount       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	MonthlyContribution decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Priority            int             `gorm:"not null;default:1"`
	TargetDate          *time.Time      `gorm:"type:date"`
	Active              bool            `gorm:"not null;default:true;index:idx_goals_user_active"`
	ClosedAt            *time.Time
	CreatedAt           time.Time `gorm:"not null"`
	UpdatedAt           time.Time `gorm:"not null"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	return &entity.Goal{
		ID:                  m.ID,
		UserID:              m.UserID,
		Name:                m.Name,
		Kind:                entity.GoalKind(m.Kind),
		TargetAmount:        m.TargetAmount,
		CurrentAmount:       m.CurrentAmount,
		MonthlyContribution: m.MonthlyContribution,
		Priority:            m.Priority,
		TargetDate:          m.TargetDate,
		Active:              m.Active,
		ClosedAt:            m.ClosedAt,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	return &GoalModel{
		ID:                  goal.ID,
		UserID:              goal.UserID,
		Name:                goal.Name,
		Kind:                string(goal.Kind),
		TargetAmount:        goal.TargetAmount,
		CurrentAmount:       goal.CurrentAmount,
		MonthlyContribution: goal.MonthlyContribution,
		Priority:            goal.Priority,
		TargetDate:          goal.TargetDate,
		Active:              goal.Active,
		ClosedAt:            goal.ClosedAt,
		CreatedAt:           goal.CreatedAt,
		UpdatedAt:           goal.UpdatedAt,
	}
}
