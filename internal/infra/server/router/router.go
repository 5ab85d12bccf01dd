// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/avecbanker/backend/internal/integration/entrypoint/controller"
	"github.com/avecbanker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine             *gin.Engine
	healthController   *controller.HealthController
	authController     *controller.AuthController
	userController     *controller.UserController
	budgetController   *controller.BudgetController
	goalController     *controller.GoalController
	planningController *controller.PlanningController
	accountController  *controller.AccountController
	expenseController  *controller.ExpenseController
	authRateLimiter    *middleware.RateLimiter
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	userController *controller.UserController,
	budgetController *controller.BudgetController,
	goalController *controller.GoalController,
	planningController *controller.PlanningController,
	accountController *controller.AccountController,
	expenseController *controller.ExpenseController,
	authRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:   healthController,
		authController:     authController,
		userController:     userController,
		budgetController:   budgetController,
		goalController:     goalController,
		planningController: planningController,
		accountController:  accountController,
		expenseController:  expenseController,
		authRateLimiter:    authRateLimiter,
		authMiddleware:     authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	if environment != "test" {
		r.engine.Use(gin.Logger())
	}

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", r.authRateLimiter.Middleware(), r.authController.Register)
		auth.POST("/login", r.authRateLimiter.Middleware(), r.authController.Login)
		auth.POST("/refresh", r.authController.RefreshToken)
		auth.POST("/logout", r.authController.Logout)
	}

	// Everything below acts on behalf of the token's owner.
	protected := v1.Group("")
	protected.Use(r.authMiddleware.Authenticate())

	users := protected.Group("/users")
	{
		users.GET("/me", r.userController.GetProfile)
		users.PATCH("/me", r.userController.UpdateProfile)
	}

	budget := protected.Group("/budget")
	{
		budget.GET("", r.budgetController.Get)
		budget.PUT("", r.budgetController.Update)
		budget.GET("/status", r.expenseController.Status)
	}

	expenses := protected.Group("/expenses")
	{
		expenses.GET("", r.expenseController.List)
		expenses.POST("", r.expenseController.Log)
		expenses.DELETE("/:id", r.expenseController.Delete)
	}

	accounts := protected.Group("/accounts")
	{
		accounts.GET("", r.accountController.ListAccounts)
		accounts.POST("", r.accountController.CreateAccount)
		accounts.PUT("/:ref/balance", r.accountController.UpdateAccountBalance)
		accounts.DELETE("/:ref", r.accountController.CloseAccount)
	}

	cards := protected.Group("/cards")
	{
		cards.GET("", r.accountController.ListCards)
		cards.POST("", r.accountController.CreateCard)
		cards.PUT("/:ref/balance", r.accountController.UpdateCardBalance)
		cards.DELETE("/:ref", r.accountController.CloseCard)
		cards.POST("/:ref/payoff-goal", r.accountController.CreatePayoffGoal)
	}

	bills := protected.Group("/bills")
	{
		bills.GET("", r.budgetController.ListBills)
		bills.POST("", r.budgetController.CreateBill)
		bills.DELETE("/:id", r.budgetController.CloseBill)
	}

	goals := protected.Group("/goals")
	{
		goals.GET("", r.goalController.List)
		goals.POST("", r.goalController.Create)
		goals.GET("/:ref", r.goalController.Get)
		goals.PATCH("/:ref", r.goalController.Update)
		goals.POST("/:ref/close", r.goalController.Close)
		goals.POST("/:ref/payments", r.goalController.ApplyPayment)
		goals.GET("/:ref/projection", r.planningController.Project)
		goals.GET("/:ref/deadline", r.planningController.Deadline)
	}

	planning := protected.Group("/planning")
	{
		planning.POST("/rebalance", r.planningController.Rebalance)
		planning.POST("/simulate", r.planningController.Simulate)
		planning.POST("/reallocate", r.planningController.Reallocate)
	}
}
