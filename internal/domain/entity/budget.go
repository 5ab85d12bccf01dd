// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Default split percentages for a new budget profile.
const (
	DefaultNeedsPct   = 40
	DefaultWantsPct   = 20
	DefaultSavingsPct = 15
	DefaultExtraPct   = 25
)

// BudgetProfile holds an owner's income and how it is split between envelopes.
// The extra envelope funds goals.
type BudgetProfile struct {
	UserID        uuid.UUID
	MonthlyIncome decimal.Decimal
	NeedsPct      int
	WantsPct      int
	SavingsPct    int
	ExtraPct      int
	Cadence       string // e.g. "monthly", "biweekly", "14 days"
	Currency      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBudgetProfile creates a profile with the default 40/20/15/25 split.
func NewBudgetProfile(userID uuid.UUID, cadence, currency string) *BudgetProfile {
	now := time.Now().UTC()
	return &BudgetProfile{
		UserID:        userID,
		MonthlyIncome: decimal.Zero,
		NeedsPct:      DefaultNeedsPct,
		WantsPct:      DefaultWantsPct,
		SavingsPct:    DefaultSavingsPct,
		ExtraPct:      DefaultExtraPct,
		Cadence:       cadence,
		Currency:      currency,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// SplitTotal returns the sum of all split percentages.
func (p *BudgetProfile) SplitTotal() int {
	return p.NeedsPct + p.WantsPct + p.SavingsPct + p.ExtraPct
}

// MonthlyExtra returns the monthly extra pool: income minus bills, times the extra
// percentage. Never negative.
func (p *BudgetProfile) MonthlyExtra(totalBills decimal.Decimal) decimal.Decimal {
	available := p.MonthlyIncome.Sub(totalBills)
	if !available.IsPositive() {
		return decimal.Zero
	}
	return available.Mul(decimal.NewFromInt(int64(p.ExtraPct))).Div(decimal.NewFromInt(100)).RoundFloor(2)
}

// Bill represents a fixed recurring monthly bill.
type Bill struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Amount    decimal.Decimal
	DueDay    int // Day of month, 1-31
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBill creates a new active Bill entity.
func NewBill(userID uuid.UUID, name string, amount decimal.Decimal, dueDay int) *Bill {
	now := time.Now().UTC()
	return &Bill{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Amount:    amount,
		DueDay:    dueDay,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TotalBills sums the amounts of active bills.
func TotalBills(bills []*Bill) decimal.Decimal {
	total := decimal.Zero
	for _, b := range bills {
		if b.Active {
			total = total.Add(b.Amount)
		}
	}
	return total
}
