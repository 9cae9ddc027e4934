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

	appanalytics "github.com/clinicore/clinic-api/internal/application/analytics"
	"github.com/clinicore/clinic-api/internal/application/auth"
	"github.com/clinicore/clinic-api/internal/application/billing"
	"github.com/clinicore/clinic-api/internal/application/inventory"
	"github.com/clinicore/clinic-api/internal/application/usecase"
	domainbilling "github.com/clinicore/clinic-api/internal/domain/billing"
	"github.com/clinicore/clinic-api/internal/infrastructure/notify"
	infrapdf "github.com/clinicore/clinic-api/internal/infrastructure/pdf"
	"github.com/clinicore/clinic-api/internal/infrastructure/postgres"
	httpRouter "github.com/clinicore/clinic-api/internal/interfaces/http"
	"github.com/clinicore/clinic-api/internal/platform/loginguard"
	"github.com/clinicore/clinic-api/pkg/config"
	"github.com/clinicore/clinic-api/pkg/logger"
)

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

	// Repositories (pool-bound; the tx runner binds its own per transaction)
	patientRepo := postgres.NewPatientRepository(pool)
	visitRepo := postgres.NewVisitRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	itemRepo := postgres.NewBillItemRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	notifRepo := postgres.NewNotificationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Use cases
	adjuster := inventory.NewAdjuster(productRepo)
	numbers := domainbilling.NewNumberGenerator()
	patientUC := usecase.NewPatientUseCase(patientRepo)
	visitUC := usecase.NewVisitUseCase(visitRepo, patientRepo)
	productUC := usecase.NewProductUseCase(productRepo, adjuster)
	expenseUC := usecase.NewExpenseUseCase(expenseRepo)
	billUC := billing.NewBillUseCase(billRepo, itemRepo, patientRepo, visitRepo, numbers)
	lineItemUC := billing.NewLineItemUseCase(txRunner, billRepo, itemRepo, productRepo, adjuster)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo)

	// Invoice rendering and delivery: SMS first, email fallback
	pdfGenerator := infrapdf.NewMarotoInvoiceGenerator(cfg.App.Name)
	channels := []billing.NotificationChannel{
		notify.NewSMSChannel(cfg.SMS),
		notify.NewEmailChannel(cfg.SMTP),
	}
	sendInvoiceUC := billing.NewSendInvoiceUseCase(
		billRepo, itemRepo, patientRepo, notifRepo, pdfGenerator, channels, log,
	)
	pdfUC := billing.NewPDFUseCase(billRepo, itemRepo, patientRepo, pdfGenerator)

	guard := loginguard.New(loginguard.DefaultMaxFailures, loginguard.DefaultWindow)
	authUC := auth.NewUseCase(userRepo, guard, cfg.JWT, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "clinicore API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		PatientUC:   patientUC,
		VisitUC:     visitUC,
		ProductUC:   productUC,
		ExpenseUC:   expenseUC,
		BillUC:      billUC,
		LineItemUC:  lineItemUC,
		SendInvoice: sendInvoiceUC,
		PDFUC:       pdfUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

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
