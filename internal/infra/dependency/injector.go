// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/avecbanker/backend/config"
	"github.com/avecbanker/backend/internal/application/adapter"
	"github.com/avecbanker/backend/internal/application/usecase/account"
	"github.com/avecbanker/backend/internal/application/usecase/auth"
	"github.com/avecbanker/backend/internal/application/usecase/budget"
	"github.com/avecbanker/backend/internal/application/usecase/goal"
	"github.com/avecbanker/backend/internal/application/usecase/planning"
	"github.com/avecbanker/backend/internal/infra/db"
	"github.com/avecbanker/backend/internal/infra/server/router"
	"github.com/avecbanker/backend/internal/integration/adapters"
	"github.com/avecbanker/backend/internal/integration/cache"
	"github.com/avecbanker/backend/internal/integration/email"
	"github.com/avecbanker/backend/internal/integration/email/templates"
	"github.com/avecbanker/backend/internal/integration/entrypoint/controller"
	"github.com/avecbanker/backend/internal/integration/entrypoint/middleware"
	"github.com/avecbanker/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *redis.Client
	EmailSender adapter.EmailSender
	EmailWorker *email.Worker
	Router      *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// redisClient may be nil, in which case locks and rate counters stay in process.
func NewInjector(cfg *config.Config, database *db.Database, redisClient *redis.Client) (*Injector, error) {
	gormDB := database.DB()

	// Repositories
	userRepo := persistence.NewUserRepository(gormDB)
	tokenRepo := persistence.NewTokenRepository(gormDB)
	budgetRepo := persistence.NewBudgetRepository(gormDB)
	billRepo := persistence.NewBillRepository(gormDB)
	goalRepo := persistence.NewGoalRepository(gormDB)
	expenseRepo := persistence.NewExpenseRepository(gormDB)
	accountRepo := persistence.NewAccountRepository(gormDB)
	cardRepo := persistence.NewCreditCardRepository(gormDB)

	// Services
	passwordService := adapters.NewPasswordService(cfg.JWT.BcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, adapters.TokenDurations{
		Access:  cfg.JWT.AccessTokenExpiry,
		Refresh: cfg.JWT.RefreshTokenExpiry,
	}, tokenRepo)

	var (
		ownerLock   adapter.OwnerLock
		hitCounter  middleware.HitCounter
		redisHealth func() bool
	)
	if redisClient != nil {
		ownerLock = cache.NewOwnerLock(redisClient, cfg.Planning.LockTTL)
		hitCounter = cache.NewRateCounter(redisClient, cfg.RateLimit.Window)
		redisHealth = func() bool {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err() == nil
		}
	} else {
		slog.Warn("Redis not configured, using in-process locks and rate counters")
		ownerLock = cache.NewLocalOwnerLock()
		hitCounter = middleware.NewMemoryCounter(cfg.RateLimit.Window)
	}

	// Email
	var sender adapter.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		resendClient, err := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.ResendBaseURL, cfg.Email.FromName, cfg.Email.FromEmail)
		if err != nil {
			return nil, err
		}
		sender = resendClient
	} else {
		slog.Warn("RESEND_API_KEY not set, emails will be captured in memory")
		sender = email.NewMockEmailSender()
	}
	worker := email.NewWorker(sender, email.WorkerConfig{
		QueueSize:   cfg.Email.QueueSize,
		MaxAttempts: cfg.Email.MaxAttempts,
		RetryDelay:  cfg.Email.RetryDelay,
	})
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	notifier := email.NewNotifier(renderer, worker, cfg.Budget.Currency)

	envelopeResolver := budget.NewEnvelopeResolver(budgetRepo, billRepo, cfg.Budget.Cadence, cfg.Budget.Currency)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, budgetRepo, passwordService, tokenService, cfg.Budget.Cadence, cfg.Budget.Currency)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	getProfileUseCase := auth.NewGetProfileUseCase(userRepo)
	updateProfileUseCase := auth.NewUpdateProfileUseCase(userRepo)

	// Budget use cases
	getBudgetUseCase := budget.NewGetBudgetUseCase(envelopeResolver)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo, envelopeResolver)
	createBillUseCase := budget.NewCreateBillUseCase(billRepo)
	listBillsUseCase := budget.NewListBillsUseCase(billRepo)
	closeBillUseCase := budget.NewCloseBillUseCase(billRepo)
	logExpenseUseCase := budget.NewLogExpenseUseCase(expenseRepo, userRepo, envelopeResolver, notifier)
	listExpensesUseCase := budget.NewListExpensesUseCase(expenseRepo)
	deleteExpenseUseCase := budget.NewDeleteExpenseUseCase(expenseRepo)
	spendingStatusUseCase := budget.NewSpendingStatusUseCase(expenseRepo, envelopeResolver)

	// Goal use cases
	listGoalsUseCase := goal.NewListGoalsUseCase(goalRepo)
	createGoalUseCase := goal.NewCreateGoalUseCase(goalRepo, ownerLock)
	getGoalUseCase := goal.NewGetGoalUseCase(goalRepo)
	updateGoalUseCase := goal.NewUpdateGoalUseCase(goalRepo, ownerLock)
	closeGoalUseCase := goal.NewCloseGoalUseCase(goalRepo, ownerLock)
	applyPaymentUseCase := goal.NewApplyPaymentUseCase(goalRepo, userRepo, notifier, ownerLock)

	// Account use cases
	createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)
	accountBalanceUseCase := account.NewUpdateAccountBalanceUseCase(accountRepo)
	closeAccountUseCase := account.NewCloseAccountUseCase(accountRepo)
	createCardUseCase := account.NewCreateCardUseCase(cardRepo)
	listCardsUseCase := account.NewListCardsUseCase(cardRepo)
	cardBalanceUseCase := account.NewUpdateCardBalanceUseCase(cardRepo)
	closeCardUseCase := account.NewCloseCardUseCase(cardRepo)
	payoffGoalUseCase := account.NewCreatePayoffGoalUseCase(cardRepo, createGoalUseCase)

	// Planning use cases
	rebalanceUseCase := planning.NewRebalanceUseCase(goalRepo, envelopeResolver, ownerLock)
	simulateUseCase := planning.NewSimulateGoalUseCase(goalRepo, envelopeResolver)
	reallocateUseCase := planning.NewSuggestReallocationUseCase(goalRepo, envelopeResolver)
	projectUseCase := planning.NewProjectGoalUseCase(goalRepo, envelopeResolver)
	deadlineUseCase := planning.NewDeadlineUseCase(goalRepo, envelopeResolver)

	// Controllers
	healthController := controller.NewHealthController(database.HealthCheck, redisHealth)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	userController := controller.NewUserController(
		getProfileUseCase,
		updateProfileUseCase,
	)

	budgetController := controller.NewBudgetController(
		getBudgetUseCase,
		updateBudgetUseCase,
		createBillUseCase,
		listBillsUseCase,
		closeBillUseCase,
	)

	goalController := controller.NewGoalController(
		listGoalsUseCase,
		createGoalUseCase,
		getGoalUseCase,
		updateGoalUseCase,
		closeGoalUseCase,
		applyPaymentUseCase,
	)

	planningController := controller.NewPlanningController(
		rebalanceUseCase,
		simulateUseCase,
		reallocateUseCase,
		projectUseCase,
		deadlineUseCase,
	)

	accountController := controller.NewAccountController(
		createAccountUseCase,
		listAccountsUseCase,
		accountBalanceUseCase,
		closeAccountUseCase,
		createCardUseCase,
		listCardsUseCase,
		cardBalanceUseCase,
		closeCardUseCase,
		payoffGoalUseCase,
	)

	expenseController := controller.NewExpenseController(
		logExpenseUseCase,
		listExpensesUseCase,
		deleteExpenseUseCase,
		spendingStatusUseCase,
	)

	// Middleware. The limiter is off in tests so scenarios can log in freely.
	authRateLimiter := middleware.NewRateLimiter(hitCounter, cfg.RateLimit.MaxAttempts, !cfg.IsTest())
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		userController,
		budgetController,
		goalController,
		planningController,
		accountController,
		expenseController,
		authRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          gormDB,
		Redis:       redisClient,
		EmailSender: sender,
		EmailWorker: worker,
		Router:      r,
	}, nil
}
