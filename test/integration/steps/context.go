// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/moneybook/backend/internal/application/usecase/auth"
	"github.com/moneybook/backend/internal/application/usecase/budget"
	"github.com/moneybook/backend/internal/application/usecase/ledger"
	"github.com/moneybook/backend/internal/application/usecase/recurring"
	"github.com/moneybook/backend/internal/application/usecase/statistics"
	"github.com/moneybook/backend/internal/infra/server/router"
	"github.com/moneybook/backend/internal/integration/adapters"
	"github.com/moneybook/backend/internal/integration/email"
	"github.com/moneybook/backend/internal/integration/entrypoint/controller"
	"github.com/moneybook/backend/internal/integration/entrypoint/middleware"
	"github.com/moneybook/backend/internal/integration/persistence"
	"github.com/moneybook/backend/internal/integration/persistence/model"
	"github.com/moneybook/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// testContext holds the per-scenario test state.
type testContext struct {
	uri         string
	headers     map[string]string
	client      *http.Client
	response    *response
	db          *mock.Database
	serverPort  int
	accessToken string

	currentUserID      uuid.UUID
	currentEntryID     uuid.UUID
	currentBudgetID    uuid.UUID
	currentRecurringID uuid.UUID
	lastID             uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var testDB *mock.Database
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		db: mock.NewDatabase("moneybook", map[string]any{
			"users":                  &model.UserModel{},
			"ledger_entries":         &model.LedgerModel{},
			"budgets":                &model.BudgetModel{},
			"recurring_transactions": &model.RecurringModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)"$`, test.aUserExistsWithEmail)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^the user is logged in with valid tokens$`, test.theUserIsLoggedInWithValidTokens)

	// Ledger setup steps
	ctx.Given(`^a ledger entry exists with type "([^"]*)" amount "([^"]*)" and category "([^"]*)" on "([^"]*)"$`, test.aLedgerEntryExists)

	// Budget setup steps
	ctx.Given(`^a monthly budget exists with name "([^"]*)" amount "([^"]*)" from "([^"]*)" to "([^"]*)"$`, test.aMonthlyBudgetExists)
	ctx.Given(`^a monthly budget exists with name "([^"]*)" amount "([^"]*)" for category "([^"]*)" from "([^"]*)" to "([^"]*)"$`, test.aMonthlyCategoryBudgetExists)

	// Recurring setup steps
	ctx.Given(`^a recurring rule exists with name "([^"]*)" pattern "([^"]*)" and amount "([^"]*)"$`, test.aRecurringRuleExists)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	t.currentEntryID = uuid.Nil
	t.currentBudgetID = uuid.Nil
	t.currentRecurringID = uuid.Nil
	t.lastID = uuid.Nil

	if t.db != nil {
		_ = t.db.Reset()
	}
	_ = mock.FlushRedis(mock.NewRedis())
}

// startServer wires the full application against the in-memory database
// and mocked infrastructure so scenarios exercise the real HTTP surface.
func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			logger := slog.New(slog.NewTextHandler(io.Discard, nil))

			// Create repositories
			userRepo := persistence.NewUserRepository(testDB.Conn)
			ledgerRepo := persistence.NewLedgerRepository(testDB.Conn)
			budgetRepo := persistence.NewBudgetRepository(testDB.Conn)
			recurringRepo := persistence.NewRecurringRepository(testDB.Conn)

			// Create adapters/services
			passwordService := adapters.NewPasswordService()
			tokenService := adapters.NewTokenService(testJWTSecret, 15*time.Minute)
			statsCache := adapters.NewRedisStatsCache(mock.NewRedis())
			alertSender := email.NewMockAlertSender()

			// Create auth use cases
			registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
			loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

			// Create ledger use cases
			createEntryUseCase := ledger.NewCreateEntryUseCase(ledgerRepo, statsCache)
			getEntryUseCase := ledger.NewGetEntryUseCase(ledgerRepo)
			listEntriesUseCase := ledger.NewListEntriesUseCase(ledgerRepo)
			updateEntryUseCase := ledger.NewUpdateEntryUseCase(ledgerRepo, statsCache)
			deleteEntryUseCase := ledger.NewDeleteEntryUseCase(ledgerRepo, statsCache)

			// Create budget use cases
			createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo)
			getBudgetUseCase := budget.NewGetBudgetUseCase(budgetRepo)
			listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo)
			updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo)
			deactivateBudgetUseCase := budget.NewDeactivateBudgetUseCase(budgetRepo)
			deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)
			budgetUsageUseCase := budget.NewGetBudgetUsageUseCase(budgetRepo, ledgerRepo, userRepo, alertSender, logger)
			resetAlertUseCase := budget.NewResetBudgetAlertUseCase(budgetRepo)

			// Create recurring use cases
			createRecurringUseCase := recurring.NewCreateRecurringUseCase(recurringRepo)
			listRecurringUseCase := recurring.NewListRecurringUseCase(recurringRepo)
			updateRecurringUseCase := recurring.NewUpdateRecurringUseCase(recurringRepo)
			setRecurringActiveUseCase := recurring.NewSetRecurringActiveUseCase(recurringRepo)
			deleteRecurringUseCase := recurring.NewDeleteRecurringUseCase(recurringRepo)

			// Create statistics use cases
			monthlyStatsUseCase := statistics.NewMonthlyStatisticsUseCase(ledgerRepo, statsCache, logger)
			categoryStatsUseCase := statistics.NewCategoryStatisticsUseCase(ledgerRepo, statsCache, logger)
			paymentMethodStatsUseCase := statistics.NewPaymentMethodStatisticsUseCase(ledgerRepo, statsCache, logger)
			topCategoriesUseCase := statistics.NewTopCategoriesUseCase(ledgerRepo)
			trendUseCase := statistics.NewTrendAnalysisUseCase(ledgerRepo)

			// Create controllers
			healthController := controller.NewHealthController(func() bool {
				return testDB != nil && testDB.Conn != nil
			})

			authController := controller.NewAuthController(registerUseCase, loginUseCase)

			ledgerController := controller.NewLedgerController(
				createEntryUseCase,
				getEntryUseCase,
				listEntriesUseCase,
				updateEntryUseCase,
				deleteEntryUseCase,
			)

			budgetController := controller.NewBudgetController(
				createBudgetUseCase,
				getBudgetUseCase,
				listBudgetsUseCase,
				updateBudgetUseCase,
				deactivateBudgetUseCase,
				deleteBudgetUseCase,
				budgetUsageUseCase,
				resetAlertUseCase,
			)

			recurringController := controller.NewRecurringController(
				createRecurringUseCase,
				listRecurringUseCase,
				updateRecurringUseCase,
				setRecurringActiveUseCase,
				deleteRecurringUseCase,
			)

			statisticsController := controller.NewStatisticsController(
				monthlyStatsUseCase,
				categoryStatsUseCase,
				paymentMethodStatsUseCase,
				topCategoriesUseCase,
				trendUseCase,
			)

			// Create middleware
			loginRateLimiter := middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
			authMiddleware := middleware.NewAuthMiddleware(tokenService)

			// No Gemini key in tests, advice routes stay unmounted.
			r := router.NewRouter(
				healthController,
				authController,
				ledgerController,
				budgetController,
				recurringController,
				statisticsController,
				nil,
				loginRateLimiter,
				authMiddleware,
			)
			engine := r.Setup("test")

			addr := fmt.Sprintf(":%d", testServerPort)
			server := &http.Server{
				Addr:    addr,
				Handler: engine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}
