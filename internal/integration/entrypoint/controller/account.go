package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avecbanker/backend/internal/application/usecase/account"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
	"github.com/avecbanker/backend/internal/integration/entrypoint/dto"
)

// AccountController handles bank account and credit card endpoints.
type AccountController struct {
	createAccountUseCase  *account.CreateAccountUseCase
	listAccountsUseCase   *account.ListAccountsUseCase
	accountBalanceUseCase *account.UpdateAccountBalanceUseCase
	closeAccountUseCase   *account.CloseAccountUseCase
	createCardUseCase     *account.CreateCardUseCase
	listCardsUseCase      *account.ListCardsUseCase
	cardBalanceUseCase    *account.UpdateCardBalanceUseCase
	closeCardUseCase      *account.CloseCardUseCase
	payoffGoalUseCase     *account.CreatePayoffGoalUseCase
}

// NewAccountController creates a new account controller instance.
func NewAccountController(
	createAccountUseCase *account.CreateAccountUseCase,
	listAccountsUseCase *account.ListAccountsUseCase,
	accountBalanceUseCase *account.UpdateAccountBalanceUseCase,
	closeAccountUseCase *account.CloseAccountUseCase,
	createCardUseCase *account.CreateCardUseCase,
	listCardsUseCase *account.ListCardsUseCase,
	cardBalanceUseCase *account.UpdateCardBalanceUseCase,
	closeCardUseCase *account.CloseCardUseCase,
	payoffGoalUseCase *account.CreatePayoffGoalUseCase,
) *AccountController {
	return &AccountController{
		createAccountUseCase:  createAccountUseCase,
		listAccountsUseCase:   listAccountsUseCase,
		accountBalanceUseCase: accountBalanceUseCase,
		closeAccountUseCase:   closeAccountUseCase,
		createCardUseCase:     createCardUseCase,
		listCardsUseCase:      listCardsUseCase,
		cardBalanceUseCase:    cardBalanceUseCase,
		closeCardUseCase:      closeCardUseCase,
		payoffGoalUseCase:     payoffGoalUseCase,
	}
}

// ListAccounts handles GET /accounts requests.
func (c *AccountController) ListAccounts(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.listAccountsUseCase.Execute(ctx.Request.Context(), account.ListAccountsInput{
		UserID:        userID,
		IncludeClosed: ctx.Query("all") == "true",
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountListResponse(output.Accounts, output.Total))
}

// CreateAccount handles POST /accounts requests.
func (c *AccountController) CreateAccount(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeInvalidAccount))
		return
	}

	output, err := c.createAccountUseCase.Execute(ctx.Request.Context(), account.CreateAccountInput{
		UserID:  userID,
		Name:    req.Name,
		Purpose: req.Purpose,
		Balance: req.Balance,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAccountResponse(output.Account))
}

// UpdateAccountBalance handles PUT /accounts/:ref/balance requests.
func (c *AccountController) UpdateAccountBalance(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.UpdateBalanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeInvalidAccount))
		return
	}

	output, err := c.accountBalanceUseCase.Execute(ctx.Request.Context(), account.UpdateAccountBalanceInput{
		UserID:  userID,
		Ref:     ctx.Param("ref"),
		Balance: *req.Balance,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountResponse(output.Account))
}

// CloseAccount handles DELETE /accounts/:ref requests. Accounts are deactivated, not removed.
func (c *AccountController) CloseAccount(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	if err := c.closeAccountUseCase.Execute(ctx.Request.Context(), account.CloseAccountInput{
		UserID: userID,
		Ref:    ctx.Param("ref"),
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ListCards handles GET /cards requests.
func (c *AccountController) ListCards(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.listCardsUseCase.Execute(ctx.Request.Context(), account.ListCardsInput{
		UserID:        userID,
		IncludeClosed: ctx.Query("all") == "true",
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCardListResponse(output.Cards, output.Owed))
}

// CreateCard handles POST /cards requests.
func (c *AccountController) CreateCard(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeInvalidCard))
		return
	}

	output, err := c.createCardUseCase.Execute(ctx.Request.Context(), account.CreateCardInput{
		UserID:       userID,
		Name:         req.Name,
		CreditLimit:  req.CreditLimit,
		Balance:      req.Balance,
		DueDay:       req.DueDay,
		StatementDay: req.StatementDay,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCardResponse(output.Card))
}

// UpdateCardBalance handles PUT /cards/:ref/balance requests.
func (c *AccountController) UpdateCardBalance(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.UpdateBalanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeInvalidCard))
		return
	}

	output, err := c.cardBalanceUseCase.Execute(ctx.Request.Context(), account.UpdateCardBalanceInput{
		UserID:  userID,
		Ref:     ctx.Param("ref"),
		Balance: *req.Balance,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCardResponse(output.Card))
}

// CloseCard handles DELETE /cards/:ref requests.
func (c *AccountController) CloseCard(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	if err := c.closeCardUseCase.Execute(ctx.Request.Context(), account.CloseCardInput{
		UserID: userID,
		Ref:    ctx.Param("ref"),
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// CreatePayoffGoal handles POST /cards/:ref/payoff-goal requests.
func (c *AccountController) CreatePayoffGoal(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.PayoffGoalRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingGoalFields))
			return
		}
	}

	targetDate, err := dto.ParseDate(req.TargetDate)
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidPeriod))
		return
	}

	output, err := c.payoffGoalUseCase.Execute(ctx.Request.Context(), account.CreatePayoffGoalInput{
		UserID:              userID,
		CardRef:             ctx.Param("ref"),
		Name:                req.Name,
		MonthlyContribution: req.MonthlyContribution,
		Priority:            req.Priority,
		TargetDate:          targetDate,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.PayoffGoalResponse{
		Card: dto.ToCardResponse(output.Card),
		Goal: dto.ToGoalResponse(output.Goal),
	})
}
