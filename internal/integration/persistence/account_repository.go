package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
	"github.com/avecbanker/backend/internal/integration/persistence/model"
)

// accountRepository implements the adapter.AccountRepository interface.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new bank account repository instance.
func NewAccountRepository(db *gorm.DB) adapter.AccountRepository {
	return &accountRepository{
		db: db,
	}
}

// Create creates a new account in the database.
func (r *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	return r.db.WithContext(ctx).Create(model.AccountFromEntity(account)).Error
}

// FindByID retrieves an account by its ID.
func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var account model.AccountModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&account)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, result.Error
	}
	return account.ToEntity(), nil
}

// FindByName retrieves an active account of a user by name, ignoring case.
func (r *accountRepository) FindByName(ctx context.Context, userID uuid.UUID, name string) (*entity.Account, error) {
	var account model.AccountModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ? AND LOWER(name) = LOWER(?)", userID, true, name).
		First(&account)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountNotFound
		}
		return nil, result.Error
	}
	return account.ToEntity(), nil
}

// FindByUserID retrieves the accounts of a user in creation order.
func (r *accountRepository) FindByUserID(ctx context.Context, userID uuid.UUID, includeClosed bool) ([]*entity.Account, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeClosed {
		query = query.Where("active = ?", true)
	}

	var accountModels []model.AccountModel
	if err := query.Order("created_at ASC").Find(&accountModels).Error; err != nil {
		return nil, err
	}

	accounts := make([]*entity.Account, len(accountModels))
	for i := range accountModels {
		accounts[i] = accountModels[i].ToEntity()
	}
	return accounts, nil
}

// Update updates an existing account in the database.
func (r *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	return r.db.WithContext(ctx).Save(model.AccountFromEntity(account)).Error
}

// creditCardRepository implements the adapter.CreditCardRepository interface.
type creditCardRepository struct {
	db *gorm.DB
}

// NewCreditCardRepository creates a new credit card repository instance.
func NewCreditCardRepository(db *gorm.DB) adapter.CreditCardRepository {
	return &creditCardRepository{
		db: db,
	}
}

// Create creates a new card in the database.
func (r *creditCardRepository) Create(ctx context.Context, card *entity.CreditCard) error {
	return r.db.WithContext(ctx).Create(model.CreditCardFromEntity(card)).Error
}

// FindByID retrieves a card by its ID.
func (r *creditCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.CreditCard, error) {
	var card model.CreditCardModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&card)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCardNotFound
		}
		return nil, result.Error
	}
	return card.ToEntity(), nil
}

// FindByName retrieves an active card of a user by name, ignoring case.
func (r *creditCardRepository) FindByName(ctx context.Context, userID uuid.UUID, name string) (*entity.CreditCard, error) {
	var card model.CreditCardModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ? AND LOWER(name) = LOWER(?)", userID, true, name).
		First(&card)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCardNotFound
		}
		return nil, result.Error
	}
	return card.ToEntity(), nil
}

// FindByUserID retrieves the cards of a user in creation order.
func (r *creditCardRepository) FindByUserID(ctx context.Context, userID uuid.UUID, includeClosed bool) ([]*entity.CreditCard, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeClosed {
		query = query.Where("active = ?", true)
	}

	var cardModels []model.CreditCardModel
	if err := query.Order("created_at ASC").Find(&cardModels).Error; err != nil {
		return nil, err
	}

	cards := make([]*entity.CreditCard, len(cardModels))
	for i := range cardModels {
		cards[i] = cardModels[i].ToEntity()
	}
	return cards, nil
}

// Update updates an existing card in the database.
func (r *creditCardRepository) Update(ctx context.Context, card *entity.CreditCard) error {
	return r.db.WithContext(ctx).Save(model.CreditCardFromEntity(card)).Error
}
