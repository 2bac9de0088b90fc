// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ddduartediego/dimdim-backend/internal/integration/entrypoint/controller"
	"github.com/ddduartediego/dimdim-backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                    *gin.Engine
	healthController          *controller.HealthController
	authController            *controller.AuthController
	categoryController        *controller.CategoryController
	transactionController     *controller.TransactionController
	statementImportController *controller.StatementImportController
	budgetController          *controller.BudgetController
	accountController         *controller.AccountController
	insightController         *controller.InsightController
	customInsightController   *controller.CustomInsightController
	loginRateLimiter          *middleware.RateLimiter
	authMiddleware            *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	categoryController *controller.CategoryController,
	transactionController *controller.TransactionController,
	statementImportController *controller.StatementImportController,
	budgetController *controller.BudgetController,
	accountController *controller.AccountController,
	insightController *controller.InsightController,
	customInsightController *controller.CustomInsightController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:          healthController,
		authController:            authController,
		categoryController:        categoryController,
		transactionController:     transactionController,
		statementImportController: statementImportController,
		budgetController:          budgetController,
		accountController:         accountController,
		insightController:         insightController,
		customInsightController:   customInsightController,
		loginRateLimiter:          loginRateLimiter,
		authMiddleware:            authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	// Setup routes
	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	// API v1 group
	v1 := r.engine.Group("/api/v1")
	{
		// Auth routes (only setup if auth controller is available)
		if r.authController != nil && r.loginRateLimiter != nil {
			auth := v1.Group("/auth")
			{
				auth.POST("/register", r.authController.Register)
				auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
				auth.POST("/refresh", r.authController.RefreshToken)
				auth.POST("/logout", r.authController.Logout)
			}
		}

		// Category routes (require authentication)
		if r.categoryController != nil && r.authMiddleware != nil {
			categories := v1.Group("/categories")
			categories.Use(r.authMiddleware.Authenticate())
			{
				categories.GET("", r.categoryController.List)
				categories.POST("", r.categoryController.Create)
				categories.PATCH("/:id", r.categoryController.Update)
				categories.DELETE("/:id", r.categoryController.Delete)
			}
		}

		// Transaction routes (require authentication)
		if r.transactionController != nil && r.authMiddleware != nil {
			transactions := v1.Group("/transactions")
			transactions.Use(r.authMiddleware.Authenticate())
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.PATCH("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)

				// Statement import (nested under transactions)
				if r.statementImportController != nil {
					transactions.POST("/import", r.statementImportController.Import)
				}
			}
		}

		// Budget routes (require authentication)
		if r.budgetController != nil && r.authMiddleware != nil {
			budgets := v1.Group("/budgets")
			budgets.Use(r.authMiddleware.Authenticate())
			{
				budgets.GET("", r.budgetController.List)
				budgets.POST("", r.budgetController.Create)
				budgets.PATCH("/:id", r.budgetController.Update)
				budgets.DELETE("/:id", r.budgetController.Delete)
			}
		}

		// Account routes (require authentication)
		if r.accountController != nil && r.authMiddleware != nil {
			accounts := v1.Group("/accounts")
			accounts.Use(r.authMiddleware.Authenticate())
			{
				accounts.GET("", r.accountController.List)
				accounts.POST("", r.accountController.Create)
				accounts.PATCH("/:id", r.accountController.Update)
				accounts.DELETE("/:id", r.accountController.Delete)
				accounts.POST("/transfer", r.accountController.Transfer)
			}
		}

		// Insight evaluation routes (require authentication)
		if r.insightController != nil && r.authMiddleware != nil {
			insights := v1.Group("/insights")
			insights.Use(r.authMiddleware.Authenticate())
			{
				insights.GET("", r.insightController.Evaluate)
			}
		}

		// Custom insight rule routes (require authentication)
		if r.customInsightController != nil && r.authMiddleware != nil {
			customInsights := v1.Group("/custom-insights")
			customInsights.Use(r.authMiddleware.Authenticate())
			{
				customInsights.GET("", r.customInsightController.List)
				customInsights.POST("", r.customInsightController.Create)
				customInsights.GET("/templates", r.customInsightController.ListTemplates)
				customInsights.PATCH("/:id", r.customInsightController.Update)
				customInsights.PATCH("/:id/toggle", r.customInsightController.Toggle)
				customInsights.POST("/:id/duplicate", r.customInsightController.Duplicate)
				customInsights.DELETE("/:id", r.customInsightController.Delete)
			}
		}
	}
}
