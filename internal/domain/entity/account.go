package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a bank account tracked by its current balance.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string // Bank name, unique per owner ignoring case
	Purpose   string // Optional, e.g. "bills" or "emergency fund"
	Balance   decimal.Decimal
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount creates a new active Account entity.
func NewAccount(userID uuid.UUID, name, purpose string, balance decimal.Decimal) *Account {
	now := time.Now().UTC()
	return &Account{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Purpose:   strings.TrimSpace(purpose),
		Balance:   balance,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CreditCard is a revolving credit line. Balance is the amount owed.
type CreditCard struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Name         string
	CreditLimit  decimal.Decimal
	Balance      decimal.Decimal
	DueDay       *int // Day of month, optional
	StatementDay *int // Day of month, optional
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewCreditCard creates a new active card with nothing owed.
func NewCreditCard(userID uuid.UUID, name string, creditLimit decimal.Decimal, dueDay, statementDay *int) *CreditCard {
	now := time.Now().UTC()
	return &CreditCard{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         strings.TrimSpace(name),
		CreditLimit:  creditLimit,
		Balance:      decimal.Zero,
		DueDay:       dueDay,
		StatementDay: statementDay,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Available returns the unused credit, zero when the card is over its limit.
func (c *CreditCard) Available() decimal.Decimal {
	available := c.CreditLimit.Sub(c.Balance)
	if available.IsNegative() {
		return decimal.Zero
	}
	return available
}

// Utilization returns the balance as a percentage of the limit, rounded to one
// decimal. A card without a limit reports zero.
func (c *CreditCard) Utilization() decimal.Decimal {
	if !c.CreditLimit.IsPositive() {
		return decimal.Zero
	}
	return c.Balance.Div(c.CreditLimit).Mul(decimal.NewFromInt(100)).Round(1)
}

// TotalBalance sums the balances of active accounts.
func TotalBalance(accounts []*Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		if a.Active {
			total = total.Add(a.Balance)
		}
	}
	return total
}

// TotalOwed sums the balances of active cards.
func TotalOwed(cards []*CreditCard) decimal.Decimal {
	total := decimal.Zero
	for _, c := range cards {
		if c.Active {
			total = total.Add(c.Balance)
		}
	}
	return total
}
