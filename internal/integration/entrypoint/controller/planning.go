package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/avecbanker/backend/internal/application/usecase/planning"
	"github.com/avecbanker/backend/internal/domain/entity"
	domainerror "github.com/avecbanker/backend/internal/domain/error"
	"github.com/avecbanker/backend/internal/integration/entrypoint/dto"
)

// PlanningController handles rebalance, simulation, projection and deadline endpoints.
type PlanningController struct {
	rebalanceUseCase  *planning.RebalanceUseCase
	simulateUseCase   *planning.SimulateGoalUseCase
	reallocateUseCase *planning.SuggestReallocationUseCase
	projectUseCase    *planning.ProjectGoalUseCase
	deadlineUseCase   *planning.DeadlineUseCase
}

// NewPlanningController creates a new planning controller instance.
func NewPlanningController(
	rebalanceUseCase *planning.RebalanceUseCase,
	simulateUseCase *planning.SimulateGoalUseCase,
	reallocateUseCase *planning.SuggestReallocationUseCase,
	projectUseCase *planning.ProjectGoalUseCase,
	deadlineUseCase *planning.DeadlineUseCase,
) *PlanningController {
	return &PlanningController{
		rebalanceUseCase:  rebalanceUseCase,
		simulateUseCase:   simulateUseCase,
		reallocateUseCase: reallocateUseCase,
		projectUseCase:    projectUseCase,
		deadlineUseCase:   deadlineUseCase,
	}
}

// Rebalance handles POST /planning/rebalance requests.
func (c *PlanningController) Rebalance(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.RebalanceRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeInvalidAmount))
			return
		}
	}

	output, err := c.rebalanceUseCase.Execute(ctx.Request.Context(), planning.RebalanceInput{
		UserID:   userID,
		Envelope: req.Envelope,
		Apply:    req.Apply,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRebalanceResponse(output.Report, output.Applied))
}

// Simulate handles POST /planning/simulate requests.
func (c *PlanningController) Simulate(ctx *gin.Context) {
	input, ok := bindHypothetical(ctx)
	if !ok {
		return
	}

	output, err := c.simulateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSimulateResponse(output.Report, output.Envelope, output.Cadence))
}

// Reallocate handles POST /planning/reallocate requests.
func (c *PlanningController) Reallocate(ctx *gin.Context) {
	input, ok := bindHypothetical(ctx)
	if !ok {
		return
	}

	output, err := c.reallocateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReallocationResponse(output.Plan, output.Envelope, output.Cadence))
}

// bindHypothetical reads an unsaved goal from the request body, writing a 400 when the
// body is malformed.
func bindHypothetical(ctx *gin.Context) (planning.SimulateGoalInput, bool) {
	userID, ok := currentUser(ctx)
	if !ok {
		return planning.SimulateGoalInput{}, false
	}

	var req dto.SimulateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingGoalFields))
		return planning.SimulateGoalInput{}, false
	}

	targetDate, err := dto.ParseDate(req.TargetDate)
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidPeriod))
		return planning.SimulateGoalInput{}, false
	}

	return planning.SimulateGoalInput{
		UserID:              userID,
		Envelope:            req.Envelope,
		Name:                req.Name,
		Kind:                entity.GoalKind(req.Kind),
		TargetAmount:        req.TargetAmount,
		CurrentAmount:       req.CurrentAmount,
		MonthlyContribution: req.MonthlyContribution,
		Priority:            req.Priority,
		TargetDate:          targetDate,
	}, true
}

// Project handles GET /goals/:ref/projection requests.
// Optional query parameters: rate (per period) and until (YYYY-MM-DD).
func (c *PlanningController) Project(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	rate, ok := decimalQuery(ctx, "rate")
	if !ok {
		return
	}
	var until *string
	if value, present := ctx.GetQuery("until"); present {
		until = &value
	}
	untilDate, err := dto.ParseDate(until)
	if err != nil {
		badRequest(ctx, err.Error(), string(domainerror.ErrCodeInvalidPeriod))
		return
	}

	output, err := c.projectUseCase.Execute(ctx.Request.Context(), planning.ProjectGoalInput{
		UserID: userID,
		Ref:    ctx.Param("ref"),
		Rate:   rate,
		Until:  untilDate,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.GoalProjectionResponse{
		Goal:          dto.ToGoalResponse(output.Goal),
		Cadence:       output.Cadence.String(),
		Projection:    dto.ToProjectionResponse(output.Projection),
		AccumulatedBy: output.AccumulatedBy,
	})
}

// Deadline handles GET /goals/:ref/deadline requests.
// Optional query parameter: envelope (overrides the budget envelope).
func (c *PlanningController) Deadline(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	envelope, ok := decimalQuery(ctx, "envelope")
	if !ok {
		return
	}

	output, err := c.deadlineUseCase.Execute(ctx.Request.Context(), planning.DeadlineInput{
		UserID:   userID,
		Ref:      ctx.Param("ref"),
		Envelope: envelope,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDeadlineResponse(output.Goal, output.Plan, output.Cadence))
}

// decimalQuery parses an optional decimal query parameter, writing a 400 when it is
// malformed.
func decimalQuery(ctx *gin.Context, name string) (*decimal.Decimal, bool) {
	value, present := ctx.GetQuery(name)
	if !present {
		return nil, true
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		badRequest(ctx, "Invalid "+name+": "+value, string(domainerror.ErrCodeInvalidAmount))
		return nil, false
	}
	return &d, true
}
