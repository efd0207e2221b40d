package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tijara-app/tijara-api/internal/application/auth"
	"github.com/tijara-app/tijara-api/internal/application/backup"
	"github.com/tijara-app/tijara-api/internal/application/excel"
	"github.com/tijara-app/tijara-api/internal/application/inventory"
	"github.com/tijara-app/tijara-api/internal/application/invoicing"
	"github.com/tijara-app/tijara-api/internal/application/ledger"
	"github.com/tijara-app/tijara-api/internal/application/reports"
	"github.com/tijara-app/tijara-api/internal/application/usecase"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
	"github.com/tijara-app/tijara-api/internal/infrastructure/pdf"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthSvc      *auth.Service
	ProductUC    *usecase.ProductUseCase
	CategoryUC   *usecase.CategoryUseCase
	WarehouseUC  *usecase.WarehouseUseCase
	AccountUC    *usecase.AccountUseCase
	SettingsUC   *usecase.SettingsUseCase
	UserUC       *usecase.UserUseCase
	InventorySvc *inventory.Service
	InvoicingSvc *invoicing.Service
	LedgerSvc    *ledger.Service
	ReportsSvc   *reports.Service
	ExcelSvc     *excel.Service
	BackupSvc    *backup.Service
	PDFGen       *pdf.InvoiceGenerator

	// Repositories the invoice PDF endpoint reads directly.
	Invoices repository.InvoiceRepository
	Accounts repository.AccountRepository
	Products repository.ProductRepository
	Settings repository.SettingsRepository

	CookieName   string
	SessionTTL   int // hours
	CookieSecure bool
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login is public, the rest of the group rides the middleware.
	authHandler := NewAuthHandler(deps.AuthSvc, deps.CookieName, deps.SessionTTL, deps.CookieSecure)
	api.Post("/auth/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.CookieName, deps.AuthSvc))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/status", authHandler.Status)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.ExcelSvc)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Post("/import", productHandler.Import)
	products.Get("/export", productHandler.Export)
	products.Get("/:id", productHandler.GetByID)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Patch("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Patch("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)

	accounts := protected.Group("/accounts")
	accountHandler := NewAccountHandler(deps.AccountUC)
	accounts.Get("/", accountHandler.List)
	accounts.Post("/", accountHandler.Create)
	accounts.Get("/:id", accountHandler.GetByID)
	accounts.Patch("/:id", accountHandler.Update)
	accounts.Delete("/:id", accountHandler.Delete)

	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventorySvc)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Post("/", inventoryHandler.Update)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/history", inventoryHandler.History)

	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(
		deps.InvoicingSvc, deps.Invoices, deps.Accounts, deps.Products, deps.Settings, deps.PDFGen,
	)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Post("/:id/status", invoiceHandler.ChangeStatus)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.LedgerSvc)
	transactions.Get("/", transactionHandler.List)
	transactions.Post("/", transactionHandler.Create)
	transactions.Delete("/:id", transactionHandler.Delete)

	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	protected.Get("/settings", settingsHandler.Get)
	protected.Put("/settings", RequireRole("admin"), settingsHandler.Update)

	reportsHandler := NewReportsHandler(deps.ReportsSvc)
	protected.Get("/reports", reportsHandler.Get)

	// Admin only from here down.
	admin := protected.Group("/", RequireRole("admin"))

	users := admin.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Patch("/:id", userHandler.Update)

	backupHandler := NewBackupHandler(deps.BackupSvc)
	admin.Get("/backup", backupHandler.List)
	admin.Post("/backup", backupHandler.Create)
	admin.Post("/restore", backupHandler.Restore)
}
