package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avecbanker/backend/internal/application/usecase/budget"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
	"github.com/avecbanker/backend/internal/integration/entrypoint/dto"
)

// BudgetController handles budget profile and bill endpoints.
type BudgetController struct {
	getUseCase        *budget.GetBudgetUseCase
	updateUseCase     *budget.UpdateBudgetUseCase
	createBillUseCase *budget.CreateBillUseCase
	listBillsUseCase  *budget.ListBillsUseCase
	closeBillUseCase  *budget.CloseBillUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	getUseCase *budget.GetBudgetUseCase,
	updateUseCase *budget.UpdateBudgetUseCase,
	createBillUseCase *budget.CreateBillUseCase,
	listBillsUseCase *budget.ListBillsUseCase,
	closeBillUseCase *budget.CloseBillUseCase,
) *BudgetController {
	return &BudgetController{
		getUseCase:        getUseCase,
		updateUseCase:     updateUseCase,
		createBillUseCase: createBillUseCase,
		listBillsUseCase:  listBillsUseCase,
		closeBillUseCase:  closeBillUseCase,
	}
}

// Get handles GET /budget requests.
func (c *BudgetController) Get(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), budget.GetBudgetInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output.Envelope))
}

// Update handles PUT /budget requests.
func (c *BudgetController) Update(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.UpdateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingBudgetFields))
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), budget.UpdateBudgetInput{
		UserID:        userID,
		MonthlyIncome: req.MonthlyIncome,
		NeedsPct:      req.NeedsPct,
		WantsPct:      req.WantsPct,
		SavingsPct:    req.SavingsPct,
		ExtraPct:      req.ExtraPct,
		Cadence:       req.Cadence,
		Currency:      req.Currency,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output.Envelope))
}

// ListBills handles GET /bills requests. Pass ?all=true to include closed bills.
func (c *BudgetController) ListBills(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.listBillsUseCase.Execute(ctx.Request.Context(), budget.ListBillsInput{
		UserID:        userID,
		IncludeClosed: ctx.Query("all") == "true",
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBillListResponse(output.Bills, output.Total))
}

// CreateBill handles POST /bills requests.
func (c *BudgetController) CreateBill(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateBillRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeInvalidBill))
		return
	}

	output, err := c.createBillUseCase.Execute(ctx.Request.Context(), budget.CreateBillInput{
		UserID: userID,
		Name:   req.Name,
		Amount: req.Amount,
		DueDay: req.DueDay,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBillResponse(output.Bill))
}

// CloseBill handles DELETE /bills/:id requests. Bills are deactivated, not removed.
func (c *BudgetController) CloseBill(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	billID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid bill ID format", string(domainerror.ErrCodeBillNotFound))
		return
	}

	if err := c.closeBillUseCase.Execute(ctx.Request.Context(), budget.CloseBillInput{
		UserID: userID,
		BillID: billID,
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
