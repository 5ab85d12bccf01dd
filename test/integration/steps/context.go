//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/alicebob/miniredis/v2"
	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"

	"github.com/avecbanker/backend/config"
	"github.com/avecbanker/backend/internal/infra/dependency"
	"github.com/avecbanker/backend/test/integration/mock"
)

// suite holds the resources shared by every scenario.
type suite struct {
	injector *dependency.Injector
	server   *httptest.Server
	db       *mock.Db
	redis    *miniredis.Miniredis
	emailAPI *mock.ApiMock
}

var shared *suite

// TestContext holds the test state for each scenario.
type TestContext struct {
	// HTTP
	response     *http.Response
	responseBody []byte

	// Request building
	requestHeaders map[string]string

	// Auth
	accessToken string
	userIDs     map[string]string

	// Values saved from earlier responses, substituted into {{name}} placeholders
	saved map[string]string
}

// contextKey is used to store TestContext in context.Context.
type contextKey struct{}

// GetTestContext retrieves the TestContext from context.
func GetTestContext(ctx context.Context) *TestContext {
	if tc, ok := ctx.Value(contextKey{}).(*TestContext); ok {
		return tc
	}
	return nil
}

// SetTestContext stores the TestContext in context.
func SetTestContext(ctx context.Context, tc *TestContext) context.Context {
	return context.WithValue(ctx, contextKey{}, tc)
}

// InitializeTestSuite builds the application once against an in-memory database,
// miniredis and a fake email provider.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		emailAPI := mock.NewApiServer()
		emailAPI.Start()

		setEnv(map[string]string{
			"ENV":                  "test",
			"JWT_SECRET":           "integration-secret",
			"BCRYPT_COST":          "4",
			"RESEND_API_KEY":       "re_test_key",
			"RESEND_BASE_URL":      emailAPI.GetUrl() + "/",
			"EMAIL_WORKER_ENABLED": "false",
			"EMAIL_MAX_ATTEMPTS":   "1",
			"EMAIL_RETRY_DELAY":    "1ms",
			"BUDGET_CADENCE":       "monthly",
		})

		database := mock.NewDb()
		redisServer, redisClient := mock.NewRedis()

		injector, err := dependency.NewInjector(config.Load(), database.Database, redisClient)
		if err != nil {
			panic("failed to build injector. err: " + err.Error())
		}

		shared = &suite{
			injector: injector,
			server:   httptest.NewServer(injector.Router.Setup("test")),
			db:       database,
			redis:    redisServer,
			emailAPI: emailAPI,
		}
	})

	ctx.AfterSuite(func() {
		if shared == nil {
			return
		}
		shared.server.Close()
		shared.emailAPI.Close()
		shared.redis.Close()
		_ = shared.db.Database.Close()
	})
}

// InitializeScenario resets shared state and registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		if err := shared.db.ClearDB(); err != nil {
			return ctx, err
		}
		mock.ClearRedis(shared.redis)
		shared.emailAPI.Reset()

		tc := &TestContext{
			requestHeaders: make(map[string]string),
			userIDs:        make(map[string]string),
			saved:          make(map[string]string),
		}
		return SetTestContext(ctx, tc), nil
	})

	registerAPISteps(ctx)
	registerResponseSteps(ctx)
	registerStateSteps(ctx)
}

func setEnv(values map[string]string) {
	for key, value := range values {
		if err := os.Setenv(key, value); err != nil {
			panic(err)
		}
	}
}
