// Package mocks provides testify mocks of the application adapters.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/domain/entity"
)

// GoalRepository is a mock of adapter.GoalRepository.
type GoalRepository struct {
	mock.Mock
}

var _ adapter.GoalRepository = (*GoalRepository)(nil)

func (m *GoalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	return m.Called(ctx, goal).Error(0)
}

func (m *GoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	args := m.Called(ctx, id)
	goal, _ := args.Get(0).(*entity.Goal)
	return goal, args.Error(1)
}

func (m *GoalRepository) FindByUserID(ctx context.Context, userID uuid.UUID, includeClosed bool) ([]*entity.Goal, error) {
	args := m.Called(ctx, userID, includeClosed)
	goals, _ := args.Get(0).([]*entity.Goal)
	return goals, args.Error(1)
}

func (m *GoalRepository) ExistsActiveByName(ctx context.Context, userID uuid.UUID, name string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *GoalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	return m.Called(ctx, goal).Error(0)
}

func (m *GoalRepository) UpdateProgress(ctx context.Context, goal *entity.Goal) error {
	return m.Called(ctx, goal).Error(0)
}

func (m *GoalRepository) UpdateContributions(ctx context.Context, userID uuid.UUID, contributions map[uuid.UUID]decimal.Decimal) error {
	return m.Called(ctx, userID, contributions).Error(0)
}

// BudgetRepository is a mock of adapter.BudgetRepository.
type BudgetRepository struct {
	mock.Mock
}

var _ adapter.BudgetRepository = (*BudgetRepository)(nil)

func (m *BudgetRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.BudgetProfile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*entity.BudgetProfile)
	return profile, args.Error(1)
}

func (m *BudgetRepository) Save(ctx context.Context, profile *entity.BudgetProfile) error {
	return m.Called(ctx, profile).Error(0)
}

// BillRepository is a mock of adapter.BillRepository.
type BillRepository struct {
	mock.Mock
}

var _ adapter.BillRepository = (*BillRepository)(nil)

func (m *BillRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return m.Called(ctx, bill).Error(0)
}

func (m *BillRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	args := m.Called(ctx, id)
	bill, _ := args.Get(0).(*entity.Bill)
	return bill, args.Error(1)
}

func (m *BillRepository) FindByUserID(ctx context.Context, userID uuid.UUID, includeClosed bool) ([]*entity.Bill, error) {
	args := m.Called(ctx, userID, includeClosed)
	bills, _ := args.Get(0).([]*entity.Bill)
	return bills, args.Error(1)
}

func (m *BillRepository) Update(ctx context.Context, bill *entity.Bill) error {
	return m.Called(ctx, bill).Error(0)
}

// ExpenseRepository is a mock of adapter.ExpenseRepository.
type ExpenseRepository struct {
	mock.Mock
}

var _ adapter.ExpenseRepository = (*ExpenseRepository)(nil)

func (m *ExpenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return m.Called(ctx, expense).Error(0)
}

func (m *ExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	args := m.Called(ctx, id)
	expense, _ := args.Get(0).(*entity.Expense)
	return expense, args.Error(1)
}

func (m *ExpenseRepository) FindByUserID(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]*entity.Expense, error) {
	args := m.Called(ctx, userID, since, limit)
	expenses, _ := args.Get(0).([]*entity.Expense)
	return expenses, args.Error(1)
}

func (m *ExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// AccountRepository is a mock of adapter.AccountRepository.
type AccountRepository struct {
	mock.Mock
}

var _ adapter.AccountRepository = (*AccountRepository)(nil)

func (m *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	args := m.Called(ctx, id)
	account, _ := args.Get(0).(*entity.Account)
	return account, args.Error(1)
}

func (m *AccountRepository) FindByName(ctx context.Context, userID uuid.UUID, name string) (*entity.Account, error) {
	args := m.Called(ctx, userID, name)
	account, _ := args.Get(0).(*entity.Account)
	return account, args.Error(1)
}

func (m *AccountRepository) FindByUserID(ctx context.Context, userID uuid.UUID, includeClosed bool) ([]*entity.Account, error) {
	args := m.Called(ctx, userID, includeClosed)
	accounts, _ := args.Get(0).([]*entity.Account)
	return accounts, args.Error(1)
}

func (m *AccountRepository) Update(ctx context.Context, account *entity.Account) error {
	return m.Called(ctx, account).Error(0)
}

// CreditCardRepository is a mock of adapter.CreditCardRepository.
type CreditCardRepository struct {
	mock.Mock
}

var _ adapter.CreditCardRepository = (*CreditCardRepository)(nil)

func (m *CreditCardRepository) Create(ctx context.Context, card *entity.CreditCard) error {
	return m.Called(ctx, card).Error(0)
}

func (m *CreditCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CreditCard, error) {
	args := m.Called(ctx, id)
	card, _ := args.Get(0).(*entity.CreditCard)
	return card, args.Error(1)
}

func (m *CreditCardRepository) FindByName(ctx context.Context, userID uuid.UUID, name string) (*entity.CreditCard, error) {
	args := m.Called(ctx, userID, name)
	card, _ := args.Get(0).(*entity.CreditCard)
	return card, args.Error(1)
}

func (m *CreditCardRepository) FindByUserID(ctx context.Context, userID uuid.UUID, includeClosed bool) ([]*entity.CreditCard, error) {
	args := m.Called(ctx, userID, includeClosed)
	cards, _ := args.Get(0).([]*entity.CreditCard)
	return cards, args.Error(1)
}

func (m *CreditCardRepository) Update(ctx context.Context, card *entity.CreditCard) error {
	return m.Called(ctx, card).Error(0)
}

// UserRepository is a mock of adapter.UserRepository.
type UserRepository struct {
	mock.Mock
}

var _ adapter.UserRepository = (*UserRepository)(nil)

func (m *UserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entity.User)
	return user, args.Error(1)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

// TokenService is a mock of adapter.TokenService.
type TokenService struct {
	mock.Mock
}

var _ adapter.TokenService = (*TokenService)(nil)

func (m *TokenService) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string) (*adapter.TokenPair, error) {
	args := m.Called(ctx, userID, email)
	pair, _ := args.Get(0).(*adapter.TokenPair)
	return pair, args.Error(1)
}

func (m *TokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*adapter.TokenClaims)
	return claims, args.Error(1)
}

func (m *TokenService) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*adapter.TokenClaims)
	return claims, args.Error(1)
}

func (m *TokenService) InvalidateRefreshToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

// PasswordService is a mock of adapter.PasswordService.
type PasswordService struct {
	mock.Mock
}

var _ adapter.PasswordService = (*PasswordService)(nil)

func (m *PasswordService) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *PasswordService) VerifyPassword(hashedPassword, password string) error {
	return m.Called(hashedPassword, password).Error(0)
}

func (m *PasswordService) ValidatePasswordStrength(password string) error {
	return m.Called(password).Error(0)
}

// GoalNotifier is a mock of adapter.GoalNotifier.
type GoalNotifier struct {
	mock.Mock
}

var _ adapter.GoalNotifier = (*GoalNotifier)(nil)

func (m *GoalNotifier) NotifyMilestones(ctx context.Context, notice adapter.MilestoneNotice) error {
	return m.Called(ctx, notice).Error(0)
}

// BudgetNotifier is a mock of adapter.BudgetNotifier.
type BudgetNotifier struct {
	mock.Mock
}

var _ adapter.BudgetNotifier = (*BudgetNotifier)(nil)

func (m *BudgetNotifier) NotifyBudgetWarning(ctx context.Context, notice adapter.BudgetWarningNotice) error {
	return m.Called(ctx, notice).Error(0)
}

// OwnerLock is a mock of adapter.OwnerLock. Released counts release calls.
type OwnerLock struct {
	mock.Mock
	Released int
}

var _ adapter.OwnerLock = (*OwnerLock)(nil)

func (m *OwnerLock) Acquire(ctx context.Context, ownerID uuid.UUID) (func(context.Context) error, error) {
	args := m.Called(ctx, ownerID)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func(context.Context) error {
		m.Released++
		return nil
	}, nil
}

// EmailSender is a mock of adapter.EmailSender.
type EmailSender struct {
	mock.Mock
}

var _ adapter.EmailSender = (*EmailSender)(nil)

func (m *EmailSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	args := m.Called(ctx, input)
	result, _ := args.Get(0).(*adapter.SendEmailResult)
	return result, args.Error(1)
}
