package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jfuentes/stock-ledger/internal/application/auth"
	"github.com/jfuentes/stock-ledger/internal/application/catalog"
	"github.com/jfuentes/stock-ledger/internal/application/ledger"
	"github.com/jfuentes/stock-ledger/internal/application/report"
	"github.com/jfuentes/stock-ledger/internal/application/usecase"
	"github.com/jfuentes/stock-ledger/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC   *ledger.UseCase
	CatalogUC  *catalog.UseCase
	LocationUC *usecase.LocationUseCase
	ReviewUC   *usecase.ReviewUseCase
	ReportUC   *report.UseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Locations (protegido; alta solo admin)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", RequireRole(entity.RoleAdmin), locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)

	// Catálogo: productos y variantes (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/resolve", productHandler.Resolve)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/:id/variants", productHandler.CreateVariant)
	products.Get("/:id/variants", productHandler.ListVariants)

	variants := protected.Group("/variants")
	variants.Get("/:id", productHandler.GetVariant)
	variants.Put("/:id/price", productHandler.SetPrice)
	variants.Get("/:id/prices", productHandler.ListPriceHistory)

	// Reseñas (protegido)
	reviewHandler := NewReviewHandler(deps.ReviewUC)
	variants.Post("/:id/reviews", reviewHandler.Create)
	variants.Get("/:id/reviews", reviewHandler.List)
	variants.Get("/:id/rating", reviewHandler.Rating)

	// Ledger de stock (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.ReportUC)
	invGroup.Post("/movements", inventoryHandler.RecordMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/movements/:id", inventoryHandler.GetMovement)
	invGroup.Patch("/movements/:id/status", inventoryHandler.UpdateStatus)
	invGroup.Get("/availability", inventoryHandler.GetAvailability)
	invGroup.Get("/report", inventoryHandler.GetStockReport)
}
