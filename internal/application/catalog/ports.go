package catalog

import (
	"context"

	"github.com/jfuentes/stock-ledger/internal/domain/repository"
)

// TxRunner del catálogo: las escrituras compuestas (variante + precio inicial,
// cambio de precio + refresco de la caché) van en UNA transacción externa,
// nunca en commits anidados independientes.
type TxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		variantRepo repository.VariantRepository,
		priceRepo repository.PriceHistoryRepository,
	) error) error
}
