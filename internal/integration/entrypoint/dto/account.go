package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/domain/entity"
)

// CreateAccountRequest represents the request body for bank account creation.
type CreateAccountRequest struct {
	Name    string          `json:"name" binding:"required,min=1,max=100"`
	Purpose string          `json:"purpose" binding:"max=100"`
	Balance decimal.Decimal `json:"balance"`
}

// UpdateBalanceRequest records the current balance of an account or card.
type UpdateBalanceRequest struct {
	Balance *decimal.Decimal `json:"balance" binding:"required"`
}

// AccountResponse represents a bank account in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Purpose   string          `json:"purpose,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
}

// AccountListResponse represents the response for listing accounts.
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Total    decimal.Decimal   `json:"total"`
}

// ToAccountResponse converts a domain Account entity to an AccountResponse DTO.
func ToAccountResponse(a *entity.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		Purpose:   a.Purpose,
		Balance:   a.Balance,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
	}
}

// ToAccountListResponse converts accounts to an AccountListResponse DTO.
func ToAccountListResponse(accounts []*entity.Account, total decimal.Decimal) AccountListResponse {
	response := AccountListResponse{
		Accounts: make([]AccountResponse, len(accounts)),
		Total:    total,
	}
	for i, a := range accounts {
		response.Accounts[i] = ToAccountResponse(a)
	}
	return response
}

// CreateCardRequest represents the request body for credit card creation.
type CreateCardRequest struct {
	Name         string          `json:"name" binding:"required,min=1,max=100"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	Balance      decimal.Decimal `json:"balance"`
	DueDay       *int            `json:"due_day,omitempty"`
	StatementDay *int            `json:"statement_day,omitempty"`
}

// CardResponse represents a credit card in API responses.
type CardResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	CreditLimit  decimal.Decimal `json:"credit_limit"`
	Balance      decimal.Decimal `json:"balance"`
	Available    decimal.Decimal `json:"available"`
	Utilization  decimal.Decimal `json:"utilization"`
	DueDay       *int            `json:"due_day,omitempty"`
	StatementDay *int            `json:"statement_day,omitempty"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CardListResponse represents the response for listing credit cards.
type CardListResponse struct {
	Cards []CardResponse  `json:"cards"`
	Owed  decimal.Decimal `json:"owed"`
}

// ToCardResponse converts a domain CreditCard entity to a CardResponse DTO.
func ToCardResponse(c *entity.CreditCard) CardResponse {
	return CardResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		CreditLimit:  c.CreditLimit,
		Balance:      c.Balance,
		Available:    c.Available(),
		Utilization:  c.Utilization(),
		DueDay:       c.DueDay,
		StatementDay: c.StatementDay,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt,
	}
}

// ToCardListResponse converts cards to a CardListResponse DTO.
func ToCardListResponse(cards []*entity.CreditCard, owed decimal.Decimal) CardListResponse {
	response := CardListResponse{
		Cards: make([]CardResponse, len(cards)),
		Owed:  owed,
	}
	for i, c := range cards {
		response.Cards[i] = ToCardResponse(c)
	}
	return response
}

// PayoffGoalRequest represents the request body for turning a card balance into a goal.
type PayoffGoalRequest struct {
	Name                string          `json:"name" binding:"max=100"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	Priority            *int            `json:"priority,omitempty"`
	TargetDate          *string         `json:"target_date,omitempty"`
}

// PayoffGoalResponse represents a card with the payoff goal created from it.
type PayoffGoalResponse struct {
	Card CardResponse `json:"card"`
	Goal GoalResponse `json:"goal"`
}
