package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/tijara-app/tijara-api/internal/application/auth"
	"github.com/tijara-app/tijara-api/internal/application/backup"
	"github.com/tijara-app/tijara-api/internal/application/excel"
	"github.com/tijara-app/tijara-api/internal/application/inventory"
	"github.com/tijara-app/tijara-api/internal/application/invoicing"
	"github.com/tijara-app/tijara-api/internal/application/ledger"
	"github.com/tijara-app/tijara-api/internal/application/reports"
	"github.com/tijara-app/tijara-api/internal/application/usecase"
	infrapdf "github.com/tijara-app/tijara-api/internal/infrastructure/pdf"
	"github.com/tijara-app/tijara-api/internal/infrastructure/postgres"
	httpRouter "github.com/tijara-app/tijara-api/internal/interfaces/http"
	"github.com/tijara-app/tijara-api/pkg/config"
	"github.com/tijara-app/tijara-api/pkg/logger"
)

const sessionPurgeInterval = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	accountRepo := postgres.NewAccountRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	invTxRepo := postgres.NewInventoryTransactionRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	reportsRepo := postgres.NewReportsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authSvc := auth.NewService(
		userRepo, sessionRepo,
		cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration, cfg.Session.TTLHours,
		log,
	)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, inventoryRepo, txRunner, log)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo)
	accountUC := usecase.NewAccountUseCase(accountRepo)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo, warehouseRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	inventorySvc := inventory.NewService(inventoryRepo, invTxRepo, settingsRepo, txRunner)
	invoicingSvc := invoicing.NewService(
		invoiceRepo, accountRepo, productRepo, warehouseRepo, settingsRepo, txRunner, log,
	)
	ledgerSvc := ledger.NewService(transactionRepo, accountRepo, txRunner)
	reportsSvc := reports.NewService(reportsRepo)
	excelSvc := excel.NewService(productRepo, categoryRepo, inventoryRepo, log)
	backupSvc := backup.NewService(
		cfg.Backup.PgDumpPath, cfg.Backup.PgRestorePath,
		cfg.DB.ConnectionString(), cfg.Backup.Dir, log,
	)
	pdfGen := infrapdf.NewInvoiceGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024, // Excel uploads
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tijara API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthSvc:      authSvc,
		ProductUC:    productUC,
		CategoryUC:   categoryUC,
		WarehouseUC:  warehouseUC,
		AccountUC:    accountUC,
		SettingsUC:   settingsUC,
		UserUC:       userUC,
		InventorySvc: inventorySvc,
		InvoicingSvc: invoicingSvc,
		LedgerSvc:    ledgerSvc,
		ReportsSvc:   reportsSvc,
		ExcelSvc:     excelSvc,
		BackupSvc:    backupSvc,
		PDFGen:       pdfGen,
		Invoices:     invoiceRepo,
		Accounts:     accountRepo,
		Products:     productRepo,
		Settings:     settingsRepo,
		CookieName:   cfg.Session.CookieName,
		SessionTTL:   cfg.Session.TTLHours,
		CookieSecure: cfg.Session.Secure,
	})

	purgeCtx, stopPurge := context.WithCancel(ctx)
	defer stopPurge()
	go func() {
		ticker := time.NewTicker(sessionPurgeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-purgeCtx.Done():
				return
			case <-ticker.C:
				authSvc.PurgeExpired(purgeCtx)
			}
		}
	}()

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
