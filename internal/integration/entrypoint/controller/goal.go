package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avecbanker/backend/internal/application/usecase/goal"
	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
	"github.com/avecbanker/backend/internal/integration/entrypoint/dto"
)

// GoalController handles goal endpoints. Goals are addressed by id or by name.
type GoalController struct {
	listUseCase    *goal.ListGoalsUseCase
	createUseCase  *goal.CreateGoalUseCase
	getUseCase     *goal.GetGoalUseCase
	updateUseCase  *goal.UpdateGoalUseCase
	closeUseCase   *goal.CloseGoalUseCase
	paymentUseCase *goal.ApplyPaymentUseCase
}

// NewGoalController creates a new goal controller instance.
func NewGoalController(
	listUseCase *goal.ListGoalsUseCase,
	createUseCase *goal.CreateGoalUseCase,
	getUseCase *goal.GetGoalUseCase,
	updateUseCase *goal.UpdateGoalUseCase,
	closeUseCase *goal.CloseGoalUseCase,
	paymentUseCase *goal.ApplyPaymentUseCase,
) *GoalController {
	return &GoalController{
		listUseCase:    listUseCase,
		createUseCase:  createUseCase,
		getUseCase:     getUseCase,
		updateUseCase:  updateUseCase,
		closeUseCase:   closeUseCase,
		paymentUseCase: paymentUseCase,
	}
}

// List handles GET /goals requests. Pass ?all=true to include closed goals.
func (c *GoalController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), goal.ListGoalsInput{
		UserID:        userID,
		IncludeClosed: ctx.Query("all") == "true",
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output.Goals))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingGoalFields))
		return
	}

	targetDate, err := dto.ParseDate(req.TargetDate)
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidPeriod))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), goal.CreateGoalInput{
		UserID:              userID,
		Name:                req.Name,
		Kind:                entity.GoalKind(req.Kind),
		TargetAmount:        req.TargetAmount,
		CurrentAmount:       req.CurrentAmount,
		MonthlyContribution: req.MonthlyContribution,
		Priority:            req.Priority,
		TargetDate:          targetDate,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output.Goal))
}

// Get handles GET /goals/:ref requests.
func (c *GoalController) Get(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{
		UserID: userID,
		Ref:    ctx.Param("ref"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Update handles PATCH /goals/:ref requests.
func (c *GoalController) Update(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingGoalFields))
		return
	}

	targetDate, err := dto.ParseDate(req.TargetDate)
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidPeriod))
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), goal.UpdateGoalInput{
		UserID:              userID,
		Ref:                 ctx.Param("ref"),
		Name:                req.Name,
		TargetAmount:        req.TargetAmount,
		CurrentAmount:       req.CurrentAmount,
		MonthlyContribution: req.MonthlyContribution,
		Priority:            req.Priority,
		TargetDate:          targetDate,
		ClearTargetDate:     req.ClearTargetDate,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// Close handles POST /goals/:ref/close requests.
func (c *GoalController) Close(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.closeUseCase.Execute(ctx.Request.Context(), goal.CloseGoalInput{
		UserID: userID,
		Ref:    ctx.Param("ref"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output.Goal))
}

// ApplyPayment handles POST /goals/:ref/payments requests.
func (c *GoalController) ApplyPayment(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeInvalidAmount))
		return
	}

	output, err := c.paymentUseCase.Execute(ctx.Request.Context(), goal.ApplyPaymentInput{
		UserID: userID,
		Ref:    ctx.Param("ref"),
		Amount: req.Amount,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	milestones := output.Milestones
	if milestones == nil {
		milestones = []int{}
	}
	ctx.JSON(http.StatusOK, dto.PaymentResponse{
		Goal:       dto.ToGoalResponse(output.Goal),
		Milestones: milestones,
		Completed:  output.Completed,
	})
}
