package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/benettihome/operaciones-api/internal/application/auth"
	"github.com/benettihome/operaciones-api/internal/application/logistics"
	"github.com/benettihome/operaciones-api/internal/application/payments"
	"github.com/benettihome/operaciones-api/internal/application/proformas"
	"github.com/benettihome/operaciones-api/internal/application/projects"
	"github.com/benettihome/operaciones-api/internal/domain/currency"
	infrapdf "github.com/benettihome/operaciones-api/internal/infrastructure/pdf"
	"github.com/benettihome/operaciones-api/internal/infrastructure/postgres"
	"github.com/benettihome/operaciones-api/internal/infrastructure/sendgrid"
	httpRouter "github.com/benettihome/operaciones-api/internal/interfaces/http"
	"github.com/benettihome/operaciones-api/pkg/config"
	"github.com/benettihome/operaciones-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (lecturas y escrituras de una sola sentencia).
	userRepo := postgres.NewUserRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	productRepo := postgres.NewQuotationProductRepository(pool)
	catalogRepo := postgres.NewProductRepository(pool)
	receivableRepo := postgres.NewAccountsReceivableRepository(pool)
	advanceRepo := postgres.NewAdvancePaymentRepository(pool)
	payableRepo := postgres.NewAccountPayableRepository(pool)
	historyRepo := postgres.NewPayableHistoryRepository(pool)
	proformaRepo := postgres.NewProformaRepository(pool)
	providerRepo := postgres.NewProviderRepository(pool)
	brandRepo := postgres.NewBrandRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	collectionRepo := postgres.NewCollectionRepository(pool)
	containerRepo := postgres.NewContainerRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)

	// Runners transaccionales por contexto: cada uno liga los repos que su
	// caso de uso necesita dentro de la misma transacción.
	paymentsTx := postgres.NewPaymentsTxRunner(pool)
	proformasTx := postgres.NewProformasTxRunner(pool)
	projectsTx := postgres.NewProjectsTxRunner(pool)
	logisticsTx := postgres.NewLogisticsTxRunner(pool)

	matrix := currency.NewMatrix(currency.Factors{
		USDToEUR: cfg.Currency.USDToEUR,
		MXNToEUR: cfg.Currency.MXNToEUR,
		EURToUSD: cfg.Currency.EURToUSD,
		MXNToUSD: cfg.Currency.MXNToUSD,
		EURToMXN: cfg.Currency.EURToMXN,
		USDToMXN: cfg.Currency.USDToMXN,
	})

	notifier := sendgrid.New(cfg.SendGrid)
	renderer := infrapdf.NewMarotoRenderer(cfg.SendGrid.FromName, cfg.PDF.LogoPath)

	createProjectUC := projects.NewCreateProjectUseCase(
		projectsTx, quotationRepo, projectRepo, branchRepo, customerRepo,
		providerRepo, brandRepo, documentRepo, matrix, renderer,
		cfg.PDF.OutputDir, log,
	)

	createAdvanceUC := payments.NewCreateAdvancePaymentUseCase(advanceRepo, receivableRepo, log)
	markAdvancePaidUC := payments.NewMarkAdvancePaymentPaidUseCase(
		paymentsTx, projectRepo, quotationRepo, productRepo, catalogRepo,
		userRepo, matrix, notifier,
		payments.NotificationTemplates{
			ProductStock:  cfg.SendGrid.Templates.ProductStock,
			ProductPedido: cfg.SendGrid.Templates.ProductPedido,
		},
		log,
	)
	payableHistoryUC := payments.NewPayableHistoryUseCase(
		paymentsTx, payableRepo, historyRepo, proformaRepo, providerRepo,
		brandRepo, matrix, log,
	)

	reconcilerUC := proformas.NewReconcilerUseCase(
		proformasTx, projectRepo, quotationRepo, proformaRepo, userRepo,
		notifier,
		proformas.Templates{
			NewProforma:    cfg.SendGrid.Templates.NewProforma,
			UpdateProforma: cfg.SendGrid.Templates.UpdateProforma,
		},
		log,
	)

	containerUC := logistics.NewContainerUseCase(logisticsTx, log)
	orderUC := logistics.NewPurchaseOrderUseCase(logisticsTx, orderRepo, collectionRepo, containerRepo, log)
	jobsUC := logistics.NewJobsUseCase(
		logisticsTx, deliveryRepo, customerRepo, userRepo, notifier,
		logistics.JobTemplates{
			DeliveryDay:         cfg.SendGrid.Templates.DeliveryDay,
			DeliveryDayCustomer: cfg.SendGrid.Templates.DeliveryDayCustomer,
		},
		log,
	)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		CreateProject:   createProjectUC,
		ProjectRepo:     projectRepo,
		ReceivableRepo:  receivableRepo,
		CreateAdvance:   createAdvanceUC,
		MarkAdvancePaid: markAdvancePaidUC,
		PayableHistory:  payableHistoryUC,
		Reconciler:      reconcilerUC,
		Containers:      containerUC,
		Orders:          orderUC,
		Jobs:            jobsUC,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
