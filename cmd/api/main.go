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

	"github.com/jhoicas/promostock-api/internal/application/alert"
	"github.com/jhoicas/promostock-api/internal/application/extraorder"
	"github.com/jhoicas/promostock-api/internal/application/stock"
	"github.com/jhoicas/promostock-api/internal/application/usecase"
	"github.com/jhoicas/promostock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/promostock-api/internal/interfaces/http"
	"github.com/jhoicas/promostock-api/pkg/config"
	"github.com/jhoicas/promostock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
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

	// Repositorios sobre el pool (las variantes transaccionales las fabrica TxRunner)
	roundRepo := postgres.NewRoundRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	extraOrderRepo := postgres.NewExtraOrderRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	thresholdRepo := postgres.NewAlertThresholdRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	billingRepo := postgres.NewBillingRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	notificationSink := postgres.NewNotificationRepository(pool)
	auditSink := postgres.NewAuditRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recalcUC := stock.NewRecalcUseCase(txRunner, branchRepo, productRepo)
	notifier := alert.NewNotifier(userRepo, notificationSink, log)
	monitor := alert.NewMonitor(thresholdRepo, inventoryRepo, branchRepo, productRepo, notifier, log)

	roundUC := usecase.NewRoundUseCase(txRunner, roundRepo, recalcUC, auditSink, log)
	shipmentUC := usecase.NewShipmentUseCase(txRunner, shipmentRepo, branchRepo, productRepo, notifier, monitor, auditSink, log)
	extraOrderUC := extraorder.NewUseCase(
		txRunner, extraOrderRepo, inventoryRepo, branchRepo, productRepo,
		notifier, monitor, auditSink, log,
	)
	inventoryUC := usecase.NewInventoryQueryUseCase(inventoryRepo)
	thresholdUC := usecase.NewThresholdUseCase(thresholdRepo, auditSink, log)
	billingUC := usecase.NewBillingUseCase(billingRepo)
	dashboardUC := usecase.NewDashboardUseCase(inventoryRepo, branchRepo, dashboardRepo)

	// Recompute completo al arrancar: deja el agregado consistente con los
	// ledgers aunque el proceso anterior haya muerto a mitad de camino.
	if err := recalcUC.RecomputeAll(ctx); err != nil {
		log.Warn().Err(err).Msg("recompute inicial del agregado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PromoStock API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RoundUC:      roundUC,
		ShipmentUC:   shipmentUC,
		ExtraOrderUC: extraOrderUC,
		InventoryUC:  inventoryUC,
		ThresholdUC:  thresholdUC,
		BillingUC:    billingUC,
		DashboardUC:  dashboardUC,
		JWTSecret:    cfg.JWT.Secret,
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
