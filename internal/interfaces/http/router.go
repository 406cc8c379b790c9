package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/benettihome/operaciones-api/internal/application/auth"
	"github.com/benettihome/operaciones-api/internal/application/logistics"
	"github.com/benettihome/operaciones-api/internal/application/payments"
	"github.com/benettihome/operaciones-api/internal/application/proformas"
	"github.com/benettihome/operaciones-api/internal/application/projects"
	"github.com/benettihome/operaciones-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	CreateProject   *projects.CreateProjectUseCase
	ProjectRepo     repository.ProjectRepository
	ReceivableRepo  repository.AccountsReceivableRepository
	CreateAdvance   *payments.CreateAdvancePaymentUseCase
	MarkAdvancePaid *payments.MarkAdvancePaymentPaidUseCase
	PayableHistory  *payments.PayableHistoryUseCase
	Reconciler      *proformas.ReconcilerUseCase
	Containers      *logistics.ContainerUseCase
	Orders          *logistics.PurchaseOrderUseCase
	Jobs            *logistics.JobsUseCase
	JWTSecret       string
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

	// Proyectos (protegido)
	projectsGroup := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.CreateProject, deps.ProjectRepo, deps.ReceivableRepo)
	projectsGroup.Post("/", projectHandler.Create)
	projectsGroup.Get("/:id", projectHandler.GetByID)
	projectsGroup.Get("/:id/receivables", projectHandler.ListReceivables)

	// Pagos (protegido)
	paymentsGroup := protected.Group("/payments")
	paymentsHandler := NewPaymentsHandler(deps.CreateAdvance, deps.MarkAdvancePaid, deps.PayableHistory)
	paymentsGroup.Post("/advances", paymentsHandler.CreateAdvance)
	paymentsGroup.Post("/advances/:id/pay", paymentsHandler.MarkAdvancePaid)
	paymentsGroup.Post("/payables", paymentsHandler.CreatePayableHistory)
	paymentsGroup.Post("/payables/:id/pay", paymentsHandler.MarkPayablePaid)

	// Proformas (protegido)
	proformasGroup := protected.Group("/proformas")
	proformaHandler := NewProformaHandler(deps.Reconciler)
	proformasGroup.Post("/", proformaHandler.Create)
	proformasGroup.Put("/:id", proformaHandler.Update)

	// Logística (protegido)
	logisticsHandler := NewLogisticsHandler(deps.Containers, deps.Orders, deps.Jobs)
	containersGroup := protected.Group("/containers")
	containersGroup.Put("/:id", logisticsHandler.UpdateContainer)

	ordersGroup := protected.Group("/orders")
	ordersGroup.Get("/pending-collection", logisticsHandler.PendingCollection)
	ordersGroup.Put("/:id/status", logisticsHandler.UpdateOrderStatus)
	ordersGroup.Put("/:id/production-real-end", logisticsHandler.SetProductionRealEnd)
	ordersGroup.Put("/:id/collection", logisticsHandler.AssignCollection)

	// Barridos programados (protegido, solo alcance organización)
	jobsGroup := protected.Group("/jobs", RequireAccess("ORGANIZACION"))
	jobsGroup.Post("/production-sweep", logisticsHandler.SweepProductionDone)
	jobsGroup.Post("/delivery-notices", logisticsHandler.NotifyDeliveries)
}
