package budget

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avecbanker/backend/internal/application/adapter/mocks"
	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
	"github.com/avecbanker/backend/internal/domain/planning"
)

func TestEnvelopeResolver_Resolve(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	tests := []struct {
		name          string
		profile       *entity.BudgetProfile
		bills         []*entity.Bill
		wantMonthly   string
		wantPerPeriod string
		wantCadence   planning.Cadence
	}{
		{
			name: "monthly",
			profile: func() *entity.BudgetProfile {
				p := entity.NewBudgetProfile(userID, "monthly", "USD")
				p.MonthlyIncome = decimal.NewFromInt(54800)
				return p
			}(),
			wantMonthly:   "13700",
			wantPerPeriod: "13700",
			wantCadence:   planning.Monthly,
		},
		{
			name: "bi-weekly with bills",
			profile: func() *entity.BudgetProfile {
				p := entity.NewBudgetProfile(userID, "biweekly", "USD")
				p.MonthlyIncome = decimal.NewFromInt(10000)
				return p
			}(),
			bills: []*entity.Bill{
				entity.NewBill(userID, "Rent", decimal.NewFromInt(2000), 1),
				entity.NewBill(userID, "Phone", decimal.NewFromInt(200), 12),
				func() *entity.Bill {
					b := entity.NewBill(userID, "Old gym", decimal.NewFromInt(500), 3)
					b.Active = false
					return b
				}(),
			},
			wantMonthly:   "1950",
			wantPerPeriod: "900",
			wantCadence:   planning.Biweekly,
		},
		{
			name: "bills above income",
			profile: func() *entity.BudgetProfile {
				p := entity.NewBudgetProfile(userID, "monthly", "USD")
				p.MonthlyIncome = decimal.NewFromInt(1000)
				return p
			}(),
			bills:         []*entity.Bill{entity.NewBill(userID, "Rent", decimal.NewFromInt(1500), 1)},
			wantMonthly:   "0",
			wantPerPeriod: "0",
			wantCadence:   planning.Monthly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budgets := new(mocks.BudgetRepository)
			budgets.On("FindByUserID", mock.Anything, userID).Return(tt.profile, nil)
			bills := new(mocks.BillRepository)
			bills.On("FindByUserID", mock.Anything, userID, false).Return(tt.bills, nil)

			envelope, err := NewEnvelopeResolver(budgets, bills, "monthly", "USD").Resolve(ctx, userID)
			require.NoError(t, err)

			assert.Equal(t, decimal.RequireFromString(tt.wantMonthly).StringFixed(2), envelope.Monthly.StringFixed(2))
			assert.Equal(t, decimal.RequireFromString(tt.wantPerPeriod).StringFixed(2), envelope.PerPeriod.StringFixed(2))
			assert.Equal(t, tt.wantCadence, envelope.Cadence)
		})
	}
}

func TestEnvelopeResolver_NoProfile(t *testing.T) {
	userID := uuid.New()
	budgets := new(mocks.BudgetRepository)
	budgets.On("FindByUserID", mock.Anything, userID).Return(nil, domainerror.ErrBudgetNotFound)
	bills := new(mocks.BillRepository)
	bills.On("FindByUserID", mock.Anything, userID, false).Return(nil, nil)

	envelope, err := NewEnvelopeResolver(budgets, bills, "14 days", "EUR").Resolve(context.Background(), userID)

	require.NoError(t, err)
	assert.True(t, envelope.PerPeriod.IsZero())
	assert.Equal(t, planning.Biweekly, envelope.Cadence)
	assert.Equal(t, "EUR", envelope.Profile.Currency)
	assert.Equal(t, entity.DefaultExtraPct, envelope.Profile.ExtraPct)
}

func TestUpdateBudgetUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	intPtr := func(v int) *int { return &v }
	strPtr := func(v string) *string { return &v }

	newMocks := func() (*mocks.BudgetRepository, *mocks.BillRepository) {
		budgets := new(mocks.BudgetRepository)
		budgets.On("FindByUserID", mock.Anything, userID).Return(entity.NewBudgetProfile(userID, "monthly", "USD"), nil)
		bills := new(mocks.BillRepository)
		bills.On("FindByUserID", mock.Anything, userID, false).Return(nil, nil)
		return budgets, bills
	}

	t.Run("valid split and cadence", func(t *testing.T) {
		budgets, bills := newMocks()
		budgets.On("Save", mock.Anything, mock.MatchedBy(func(p *entity.BudgetProfile) bool {
			return p.ExtraPct == 35 && p.WantsPct == 10 && p.Cadence == "14 days"
		})).Return(nil)

		income := decimal.NewFromInt(5000)
		_, err := NewUpdateBudgetUseCase(budgets, NewEnvelopeResolver(budgets, bills, "monthly", "USD")).Execute(ctx, UpdateBudgetInput{
			UserID:        userID,
			MonthlyIncome: &income,
			WantsPct:      intPtr(10),
			ExtraPct:      intPtr(35),
			Cadence:       strPtr("bi-weekly"),
		})

		require.NoError(t, err)
		budgets.AssertCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("split must add up to 100", func(t *testing.T) {
		budgets, bills := newMocks()

		_, err := NewUpdateBudgetUseCase(budgets, NewEnvelopeResolver(budgets, bills, "monthly", "USD")).Execute(ctx, UpdateBudgetInput{
			UserID:   userID,
			ExtraPct: intPtr(30),
		})

		assert.True(t, errors.Is(err, domainerror.ErrInvalidSplit))
		budgets.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown cadence", func(t *testing.T) {
		budgets, bills := newMocks()

		_, err := NewUpdateBudgetUseCase(budgets, NewEnvelopeResolver(budgets, bills, "monthly", "USD")).Execute(ctx, UpdateBudgetInput{
			UserID:  userID,
			Cadence: strPtr("every blue moon"),
		})

		var budgetErr *domainerror.BudgetError
		require.True(t, errors.As(err, &budgetErr))
		assert.Equal(t, domainerror.ErrCodeInvalidCadence, budgetErr.Code)
		assert.True(t, errors.Is(err, domainerror.ErrInvalidPeriod))
	})

	t.Run("negative income", func(t *testing.T) {
		budgets, bills := newMocks()
		income := decimal.NewFromInt(-1)

		_, err := NewUpdateBudgetUseCase(budgets, NewEnvelopeResolver(budgets, bills, "monthly", "USD")).Execute(ctx, UpdateBudgetInput{
			UserID:        userID,
			MonthlyIncome: &income,
		})

		assert.True(t, errors.Is(err, domainerror.ErrInvalidIncome))
	})
}

func TestBillUseCases(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("invalid due day", func(t *testing.T) {
		_, err := NewCreateBillUseCase(new(mocks.BillRepository)).Execute(ctx, CreateBillInput{
			UserID: userID,
			Name:   "Rent",
			Amount: decimal.NewFromInt(1200),
			DueDay: 32,
		})
		assert.True(t, errors.Is(err, domainerror.ErrInvalidBill))
	})

	t.Run("closing another user's bill", func(t *testing.T) {
		bill := entity.NewBill(uuid.New(), "Rent", decimal.NewFromInt(1200), 1)
		bills := new(mocks.BillRepository)
		bills.On("FindByID", mock.Anything, bill.ID).Return(bill, nil)

		err := NewCloseBillUseCase(bills).Execute(ctx, CloseBillInput{UserID: userID, BillID: bill.ID})

		assert.True(t, errors.Is(err, domainerror.ErrBillNotFound))
		bills.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("closing a bill deactivates it", func(t *testing.T) {
		bill := entity.NewBill(userID, "Rent", decimal.NewFromInt(1200), 1)
		bills := new(mocks.BillRepository)
		bills.On("FindByID", mock.Anything, bill.ID).Return(bill, nil)
		bills.On("Update", mock.Anything, bill).Return(nil)

		require.NoError(t, NewCloseBillUseCase(bills).Execute(ctx, CloseBillInput{UserID: userID, BillID: bill.ID}))
		assert.False(t, bill.Active)
	})
}
