package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avecbanker/backend/internal/application/usecase/budget"
	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
	"github.com/avecbanker/backend/internal/integration/entrypoint/dto"
)

// ExpenseController handles expense logging and spending status endpoints.
type ExpenseController struct {
	logUseCase    *budget.LogExpenseUseCase
	listUseCase   *budget.ListExpensesUseCase
	deleteUseCase *budget.DeleteExpenseUseCase
	statusUseCase *budget.SpendingStatusUseCase
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	logUseCase *budget.LogExpenseUseCase,
	listUseCase *budget.ListExpensesUseCase,
	deleteUseCase *budget.DeleteExpenseUseCase,
	statusUseCase *budget.SpendingStatusUseCase,
) *ExpenseController {
	return &ExpenseController{
		logUseCase:    logUseCase,
		listUseCase:   listUseCase,
		deleteUseCase: deleteUseCase,
		statusUseCase: statusUseCase,
	}
}

// Log handles POST /expenses requests.
func (c *ExpenseController) Log(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.LogExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeInvalidExpense))
		return
	}

	output, err := c.logUseCase.Execute(ctx.Request.Context(), budget.LogExpenseInput{
		UserID:      userID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    entity.ExpenseCategory(req.Category),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.LogExpenseResponse{
		Expense: dto.ToExpenseResponse(output.Expense),
		Status:  dto.ToCategoryStatusResponse(output.Status),
		Warned:  output.Warned,
	})
}

// List handles GET /expenses requests.
// Optional query parameters: since (YYYY-MM-DD) and limit.
func (c *ExpenseController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var since *string
	if value, present := ctx.GetQuery("since"); present {
		since = &value
	}
	sinceDate, err := dto.ParseDate(since)
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidExpense))
		return
	}

	limit := 0
	if value, present := ctx.GetQuery("limit"); present {
		limit, err = strconv.Atoi(value)
		if err != nil {
			badRequest(ctx, "Invalid limit: "+value, string(domainerror.ErrCodeInvalidExpense))
			return
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), budget.ListExpensesInput{
		UserID: userID,
		Since:  sinceDate,
		Limit:  limit,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(output.Expenses, output.Total))
}

// Delete handles DELETE /expenses/:id requests.
func (c *ExpenseController) Delete(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	expenseID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid expense ID format", string(domainerror.ErrCodeExpenseNotFound))
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), budget.DeleteExpenseInput{
		UserID:    userID,
		ExpenseID: expenseID,
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Status handles GET /budget/status requests.
func (c *ExpenseController) Status(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.statusUseCase.Execute(ctx.Request.Context(), budget.SpendingStatusInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSpendingStatusResponse(output))
}
