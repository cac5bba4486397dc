package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jfuentes/stock-ledger/internal/application/auth"
	"github.com/jfuentes/stock-ledger/internal/application/catalog"
	"github.com/jfuentes/stock-ledger/internal/application/ledger"
	"github.com/jfuentes/stock-ledger/internal/application/report"
	"github.com/jfuentes/stock-ledger/internal/application/usecase"
	infrapdf "github.com/jfuentes/stock-ledger/internal/infrastructure/pdf"
	"github.com/jfuentes/stock-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/jfuentes/stock-ledger/internal/interfaces/http"
	"github.com/jfuentes/stock-ledger/pkg/config"
	"github.com/jfuentes/stock-ledger/pkg/logger"
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

	// Repositorios atados al pool (lecturas); las escrituras multi-paso
	// corren por el TxRunner con repos atados a la transacción.
	userRepo := postgres.NewUserRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	variantRepo := postgres.NewVariantRepository(pool)
	priceRepo := postgres.NewPriceHistoryRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	stockRepo := postgres.NewStockLevelRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := ledger.NewUseCase(txRunner, movementRepo, stockRepo, variantRepo, locationRepo)
	catalogUC := catalog.NewUseCase(txRunner, productRepo, variantRepo, priceRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	reviewUC := usecase.NewReviewUseCase(reviewRepo, variantRepo)

	pdfGenerator := infrapdf.NewMarotoStockReportGenerator()
	reportUC := report.NewUseCase(stockRepo, movementRepo, locationRepo, variantRepo, pdfGenerator)

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
		LedgerUC:   ledgerUC,
		CatalogUC:  catalogUC,
		LocationUC: locationUC,
		ReviewUC:   reviewUC,
		ReportUC:   reportUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
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
