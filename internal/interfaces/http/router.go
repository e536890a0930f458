package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Financeiro-api/internal/application/analytics"
	"github.com/jhoicas/Financeiro-api/internal/application/auth"
	"github.com/jhoicas/Financeiro-api/internal/application/category"
	"github.com/jhoicas/Financeiro-api/internal/application/importer"
	"github.com/jhoicas/Financeiro-api/internal/application/transaction"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	TransactionUC  *transaction.UseCase
	CategoryUC     *category.UseCase
	ImportUC       *importer.UseCase
	JWTSecret      string
	ImportMaxBytes int
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	userHandler := NewUserHandler(deps.AuthUC)
	protected.Get("/me", userHandler.Me)
	protected.Put("/me", userHandler.UpdateMe)
	protected.Put("/me/password", userHandler.ChangePassword)

	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/report.pdf", dashboardHandler.ReportPDF)

	// Rotas estáticas antes de /:id
	transactions := protected.Group("/transactions")
	txHandler := NewTransactionHandler(deps.TransactionUC, deps.ImportUC, deps.ImportMaxBytes)
	transactions.Get("/", txHandler.List)
	transactions.Get("/year/:year", txHandler.ListByYear)
	transactions.Post("/batch", txHandler.InsertBatch)
	transactions.Post("/import", txHandler.Import)
	transactions.Get("/:id", txHandler.GetByID)
	transactions.Put("/:id", txHandler.Update)
	transactions.Delete("/:id", txHandler.Delete)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)
}
