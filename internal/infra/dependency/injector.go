// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/ddduartediego/dimdim-backend/config"
	"github.com/ddduartediego/dimdim-backend/internal/application/usecase/account"
	"github.com/ddduartediego/dimdim-backend/internal/application/usecase/auth"
	"github.com/ddduartediego/dimdim-backend/internal/application/usecase/budget"
	"github.com/ddduartediego/dimdim-backend/internal/application/usecase/category"
	"github.com/ddduartediego/dimdim-backend/internal/application/usecase/custominsight"
	"github.com/ddduartediego/dimdim-backend/internal/application/usecase/insights"
	"github.com/ddduartediego/dimdim-backend/internal/application/usecase/statementimport"
	"github.com/ddduartediego/dimdim-backend/internal/application/usecase/transaction"
	"github.com/ddduartediego/dimdim-backend/internal/infra/server/router"
	"github.com/ddduartediego/dimdim-backend/internal/integration/adapters"
	"github.com/ddduartediego/dimdim-backend/internal/integration/entrypoint/controller"
	"github.com/ddduartediego/dimdim-backend/internal/integration/entrypoint/middleware"
	"github.com/ddduartediego/dimdim-backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	accountRepo := persistence.NewAccountRepository(db)
	customInsightRepo := persistence.NewCustomInsightRepository(db)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, transactionRepo, budgetRepo)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, accountRepo)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, accountRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo)

	// Create statement import use cases
	parseStatementUseCase := statementimport.NewParseStatementUseCase()
	importStatementUseCase := statementimport.NewImportStatementUseCase(parseStatementUseCase, transactionRepo, categoryRepo)

	// Create budget use cases
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)

	// Create account use cases
	createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)
	updateAccountUseCase := account.NewUpdateAccountUseCase(accountRepo)
	deleteAccountUseCase := account.NewDeleteAccountUseCase(accountRepo)
	transferUseCase := account.NewTransferUseCase(accountRepo)

	// Create insight use cases
	evaluateMonthUseCase := insights.NewEvaluateMonthUseCase(transactionRepo, budgetRepo, customInsightRepo)
	createCustomInsightUseCase := custominsight.NewCreateCustomInsightUseCase(customInsightRepo)
	listCustomInsightsUseCase := custominsight.NewListCustomInsightsUseCase(customInsightRepo)
	updateCustomInsightUseCase := custominsight.NewUpdateCustomInsightUseCase(customInsightRepo)
	toggleCustomInsightUseCase := custominsight.NewToggleCustomInsightUseCase(customInsightRepo)
	duplicateCustomInsightUseCase := custominsight.NewDuplicateCustomInsightUseCase(customInsightRepo)
	deleteCustomInsightUseCase := custominsight.NewDeleteCustomInsightUseCase(customInsightRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	categoryController := controller.NewCategoryController(
		createCategoryUseCase,
		listCategoriesUseCase,
		updateCategoryUseCase,
		deleteCategoryUseCase,
	)

	transactionController := controller.NewTransactionController(
		createTransactionUseCase,
		listTransactionsUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)

	statementImportController := controller.NewStatementImportController(importStatementUseCase)

	budgetController := controller.NewBudgetController(
		createBudgetUseCase,
		listBudgetsUseCase,
		updateBudgetUseCase,
		deleteBudgetUseCase,
	)

	accountController := controller.NewAccountController(
		createAccountUseCase,
		listAccountsUseCase,
		updateAccountUseCase,
		deleteAccountUseCase,
		transferUseCase,
	)

	insightController := controller.NewInsightController(evaluateMonthUseCase)

	customInsightController := controller.NewCustomInsightController(
		createCustomInsightUseCase,
		listCustomInsightsUseCase,
		updateCustomInsightUseCase,
		toggleCustomInsightUseCase,
		duplicateCustomInsightUseCase,
		deleteCustomInsightUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(redisClient, "login", 1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter(redisClient, "login")
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		transactionController,
		statementImportController,
		budgetController,
		accountController,
		insightController,
		customInsightController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}
