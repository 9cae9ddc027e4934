package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinicore/clinic-api/internal/application/analytics"
	"github.com/clinicore/clinic-api/internal/application/auth"
	"github.com/clinicore/clinic-api/internal/application/billing"
	"github.com/clinicore/clinic-api/internal/application/usecase"
	"github.com/clinicore/clinic-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	PatientUC   *usecase.PatientUseCase
	VisitUC     *usecase.VisitUseCase
	ProductUC   *usecase.ProductUseCase
	ExpenseUC   *usecase.ExpenseUseCase
	BillUC      *billing.BillUseCase
	LineItemUC  *billing.LineItemUseCase
	SendInvoice *billing.SendInvoiceUseCase
	PDFUC       *billing.PDFUseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Protected routes (Bearer token required)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Patients and visits
	patientHandler := NewPatientHandler(deps.PatientUC, deps.VisitUC)
	billHandler := NewBillHandler(deps.BillUC, deps.LineItemUC, deps.SendInvoice, deps.PDFUC)

	patients := protected.Group("/patients")
	patients.Post("/", patientHandler.Create)
	patients.Get("/", patientHandler.List)
	patients.Get("/:id", patientHandler.GetByID)
	patients.Put("/:id", patientHandler.Update)
	patients.Delete("/:id", RequireRole(entity.RoleAdmin), patientHandler.Delete)
	patients.Get("/:id/visits", patientHandler.ListVisits)
	patients.Get("/:id/bills", billHandler.ListByPatient)

	visits := protected.Group("/visits")
	visits.Post("/", patientHandler.CreateVisit)
	visits.Get("/:id", patientHandler.GetVisit)

	// Products (inventory)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/restock", productHandler.Restock)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Bills
	bills := protected.Group("/bills")
	bills.Post("/", billHandler.Create)
	bills.Get("/", billHandler.List)
	bills.Get("/:id", billHandler.GetByID)
	bills.Put("/:id/status", billHandler.UpdateStatus)
	bills.Post("/:id/items", billHandler.AddItems)
	bills.Get("/:id/items", billHandler.ListItems)
	bills.Delete("/:id/items/:itemID", billHandler.RemoveItem)
	bills.Post("/:id/recalculate", billHandler.Recalculate)
	bills.Post("/:id/send", billHandler.Send)
	bills.Get("/:id/attempts", billHandler.ListAttempts)
	bills.Get("/:id/pdf", billHandler.DownloadPDF)

	// Expenses (admin)
	expenses := protected.Group("/expenses", RequireRole(entity.RoleAdmin))
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Delete("/:id", expenseHandler.Delete)

	// Dashboard (admin)
	dashboard := protected.Group("/dashboard", RequireRole(entity.RoleAdmin))
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)
	dashboard.Get("/monthly", dashboardHandler.MonthlyRevenue)
}
