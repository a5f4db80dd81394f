package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/farmacia-stock/internal/application/auth"
	"github.com/tu-usuario/farmacia-stock/internal/application/disbursement"
	"github.com/tu-usuario/farmacia-stock/internal/application/inventory"
	"github.com/tu-usuario/farmacia-stock/internal/application/ledger"
	"github.com/tu-usuario/farmacia-stock/internal/application/report"
	"github.com/tu-usuario/farmacia-stock/internal/application/usecase"
	"github.com/tu-usuario/farmacia-stock/internal/domain/entity"
	"github.com/tu-usuario/farmacia-stock/internal/infrastructure/excel"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	InventoryUC    *inventory.UseCase
	DisbursementUC *disbursement.UseCase
	LedgerUC       *ledger.UseCase
	UserUC         *usecase.UserUseCase
	AIUC           *usecase.AIUseCase
	DashboardUC    *usecase.DashboardUseCase
	ReportUC       *report.UseCase
	Importer       *excel.Importer
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Drugs: lectura para cualquier usuario; mutaciones solo admin
	// (los casos de uso vuelven a validar el rol en su frontera).
	drugs := protected.Group("/drugs")
	drugHandler := NewDrugHandler(deps.InventoryUC, deps.Importer)
	drugs.Get("/", drugHandler.List)
	drugs.Get("/:id", drugHandler.GetByID)
	drugs.Post("/", RequireRole(entity.RoleAdmin), drugHandler.Create)
	drugs.Post("/import", RequireRole(entity.RoleAdmin), drugHandler.Import)
	drugs.Put("/:id", RequireRole(entity.RoleAdmin), drugHandler.Update)
	drugs.Post("/:id/adjust", RequireRole(entity.RoleAdmin), drugHandler.AdjustStock)
	drugs.Delete("/:id", RequireRole(entity.RoleAdmin), drugHandler.Delete)

	// Disbursements: crear y consultar es de cualquier usuario; resolver, solo admin
	disbursements := protected.Group("/disbursements")
	disbursementHandler := NewDisbursementHandler(deps.DisbursementUC)
	disbursements.Get("/", disbursementHandler.List)
	disbursements.Get("/pending", disbursementHandler.Pending)
	disbursements.Post("/", disbursementHandler.Create)
	disbursements.Post("/:id/approve", RequireRole(entity.RoleAdmin), disbursementHandler.Approve)
	disbursements.Post("/:id/reject", RequireRole(entity.RoleAdmin), disbursementHandler.Reject)
	disbursements.Put("/:id/dates", RequireRole(entity.RoleAdmin), disbursementHandler.EditDates)

	// Transactions (libro de movimientos, solo lectura)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.LedgerUC)
	transactions.Get("/", transactionHandler.List)

	// Users (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// AI (cualquier usuario autenticado)
	ai := protected.Group("/ai")
	aiHandler := NewAIHandler(deps.AIUC)
	ai.Post("/analyze", aiHandler.AnalyzeStock)
	ai.Post("/chat", aiHandler.Chat)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/", dashboardHandler.Summary)

	// Reports (solo admin)
	reports := protected.Group("/reports", RequireRole(entity.RoleAdmin))
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/disbursements", reportHandler.Monthly)
	reports.Get("/disbursements/export", reportHandler.Export)
}
