package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/domain/entity"
)

// AccountModel represents the bank_accounts table in the database.
type AccountModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Purpose   string          `gorm:"type:varchar(100);not null;default:''"`
	Balance   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Active    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the AccountModel.
func (AccountModel) TableName() string {
	return "bank_accounts"
}

// ToEntity converts an AccountModel to a domain Account entity.
func (m *AccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Purpose:   m.Purpose,
		Balance:   m.Balance,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// AccountFromEntity creates an AccountModel from a domain Account entity.
func AccountFromEntity(a *entity.Account) *AccountModel {
	return &AccountModel{
		ID:        a.ID,
		UserID:    a.UserID,
		Name:      a.Name,
		Purpose:   a.Purpose,
		Balance:   a.Balance,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// CreditCardModel represents the credit_cards table in the database.
type CreditCardModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(100);not null"`
	CreditLimit  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Balance      decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	DueDay       *int
	StatementDay *int
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the CreditCardModel.
func (CreditCardModel) TableName() string {
	return "credit_cards"
}

// ToEntity converts a CreditCardModel to a domain CreditCard entity.
func (m *CreditCardModel) ToEntity() *entity.CreditCard {
	return &entity.CreditCard{
		ID:           m.ID,
		UserID:       m.UserID,
		Name:         m.Name,
		CreditLimit:  m.CreditLimit,
		Balance:      m.Balance,
		DueDay:       m.DueDay,
		StatementDay: m.StatementDay,
		Active:       m.Active,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// CreditCardFromEntity creates a CreditCardModel from a domain CreditCard entity.
func CreditCardFromEntity(c *entity.CreditCard) *CreditCardModel {
	return &CreditCardModel{
		ID:           c.ID,
		UserID:       c.UserID,
		Name:         c.Name,
		CreditLimit:  c.CreditLimit,
		Balance:      c.Balance,
		DueDay:       c.DueDay,
		StatementDay: c.StatementDay,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
