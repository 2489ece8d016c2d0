package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/promostock-api/internal/application/extraorder"
	"github.com/jhoicas/promostock-api/internal/application/usecase"
	"github.com/jhoicas/promostock-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RoundUC      *usecase.RoundUseCase
	ShipmentUC   *usecase.ShipmentUseCase
	ExtraOrderUC *extraorder.UseCase
	InventoryUC  *usecase.InventoryQueryUseCase
	ThresholdUC  *usecase.ThresholdUseCase
	BillingUC    *usecase.BillingUseCase
	DashboardUC  *usecase.DashboardUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	adminOnly := RequireRole(entity.RoleADMIN)
	reviewers := RequireRole(entity.RoleADMIN, entity.RoleHQ)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Rounds: lectura para todos los autenticados; mutaciones solo ADMIN
	rounds := protected.Group("/rounds")
	roundHandler := NewRoundHandler(deps.RoundUC)
	rounds.Get("/", roundHandler.List)
	rounds.Get("/:id", roundHandler.GetByID)
	rounds.Post("/", adminOnly, roundHandler.Create)
	rounds.Put("/:id", adminOnly, roundHandler.Update)
	rounds.Delete("/:id", adminOnly, roundHandler.Delete)

	// Shipments: lectura autenticada (BRANCH acotado a su sucursal)
	shipments := protected.Group("/shipments")
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC)
	shipments.Get("/", shipmentHandler.List)
	shipments.Get("/:id", shipmentHandler.GetByID)
	shipments.Post("/", adminOnly, shipmentHandler.Create)
	shipments.Patch("/:id/status", adminOnly, shipmentHandler.UpdateStatus)
	shipments.Delete("/:id", adminOnly, shipmentHandler.Delete)

	// Extra orders: la sucursal solicita, ADMIN/HQ revisan
	extraOrders := protected.Group("/extra-orders")
	extraOrderHandler := NewExtraOrderHandler(deps.ExtraOrderUC)
	extraOrders.Get("/", extraOrderHandler.List)
	extraOrders.Get("/:id", extraOrderHandler.GetByID)
	extraOrders.Post("/", RequireRole(entity.RoleBRANCH), extraOrderHandler.Create)
	extraOrders.Put("/:id/approve", reviewers, extraOrderHandler.Approve)
	extraOrders.Put("/:id/reject", reviewers, extraOrderHandler.Reject)

	// Inventory (BRANCH acotado a su sucursal)
	inventory := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventory.Get("/", inventoryHandler.List)

	// Alert thresholds (solo ADMIN)
	thresholds := protected.Group("/alert-thresholds", adminOnly)
	thresholdHandler := NewThresholdHandler(deps.ThresholdUC)
	thresholds.Get("/", thresholdHandler.List)
	thresholds.Put("/", thresholdHandler.Set)

	// Billing (solo ADMIN)
	billing := protected.Group("/billing", adminOnly)
	billingHandler := NewBillingHandler(deps.BillingUC)
	billing.Get("/summary", billingHandler.Summary)

	// Dashboard (todas las vistas son globales; basta estar autenticado)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)
	dashboard.Get("/monthly-trend", dashboardHandler.MonthlyTrend)
	dashboard.Get("/branch-comparison", dashboardHandler.BranchComparison)
	dashboard.Get("/progress", dashboardHandler.Progress)
}
