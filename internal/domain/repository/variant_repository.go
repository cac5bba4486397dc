package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jfuentes/stock-ledger/internal/domain/entity"
)

// VariantRepository define el puerto de persistencia de variantes.
type VariantRepository interface {
	Create(variant *entity.Variant) error
	GetByID(id string) (*entity.Variant, error)
	ListByProduct(productID string) ([]*entity.Variant, error)
	// UpdateCurrentPrice refresca la caché denormalizada de precio; debe
	// ejecutarse en la misma transacción que el insert en price_history.
	UpdateCurrentPrice(id string, price decimal.Decimal) error
}

// PriceHistoryRepository define el puerto del historial de precios (append-only).
type PriceHistoryRepository interface {
	Create(price *entity.PriceHistory) error
	ListByVariant(variantID string) ([]*entity.PriceHistory, error)
}
