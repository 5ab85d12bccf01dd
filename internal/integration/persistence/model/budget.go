// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/domain/entity"
)

// BudgetProfileModel represents the budget_profiles table in the database.
// There is at most one profile per user.
type BudgetProfileModel struct {
	UserID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	MonthlyIncome decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	NeedsPct      int             `gorm:"not null"`
	WantsPct      int             `gorm:"not null"`
	SavingsPct    int             `gorm:"not null"`
	ExtraPct      int             `gorm:"not null"`
	Cadence       string          `gorm:"type:varchar(20);not null;default:'monthly'"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'USD'"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BudgetProfileModel.
func (BudgetProfileModel) TableName() string {
	return "budget_profiles"
}

// ToEntity converts a BudgetProfileModel to a domain BudgetProfile entity.
func (m *BudgetProfileModel) ToEntity() *entity.BudgetProfile {
	return &entity.BudgetProfile{
		UserID:        m.UserID,
		MonthlyIncome: m.MonthlyIncome,
		NeedsPct:      m.NeedsPct,
		WantsPct:      m.WantsPct,
		SavingsPct:    m.SavingsPct,
		ExtraPct:      m.ExtraPct,
		Cadence:       m.Cadence,
		Currency:      m.Currency,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// BudgetProfileFromEntity creates a BudgetProfileModel from a domain BudgetProfile entity.
func BudgetProfileFromEntity(p *entity.BudgetProfile) *BudgetProfileModel {
	return &BudgetProfileModel{
		UserID:        p.UserID,
		MonthlyIncome: p.MonthlyIncome,
		NeedsPct:      p.NeedsPct,
		WantsPct:      p.WantsPct,
		SavingsPct:    p.SavingsPct,
		ExtraPct:      p.ExtraPct,
		Cadence:       p.Cadence,
		Currency:      p.Currency,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// BillModel represents the bills table in the database.
type BillModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DueDay    int             `gorm:"not null"`
	Active    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BillModel.
func (BillModel) TableName() string {
	return "bills"
}

// ToEntity converts a BillModel to a domain Bill entity.
func (m *BillModel) ToEntity() *entity.Bill {
	return &entity.Bill{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Amount:    m.Amount,
		DueDay:    m.DueDay,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// BillFromEntity creates a BillModel from a domain Bill entity.
func BillFromEntity(b *entity.Bill) *BillModel {
	return &BillModel{
		ID:        b.ID,
		UserID:    b.UserID,
		Name:      b.Name,
		Amount:    b.Amount,
		DueDay:    b.DueDay,
		Active:    b.Active,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_expenses_user_created"`
	Description string          `gorm:"type:varchar(200);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Category    string          `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time       `gorm:"not null;index:idx_expenses_user_created"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:          m.ID,
		UserID:      m.UserID,
		Description: m.Description,
		Amount:      m.Amount,
		Category:    entity.ExpenseCategory(m.Category),
		CreatedAt:   m.CreatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(e *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:          e.ID,
		UserID:      e.UserID,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    string(e.Category),
		CreatedAt:   e.CreatedAt,
	}
}
