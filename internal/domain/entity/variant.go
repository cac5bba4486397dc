package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant unidad vendible de un producto (talla, color, etc.).
// CurrentPrice es caché denormalizada: la fuente de verdad es price_history
// y ambas se escriben en la misma transacción.
type Variant struct {
	ID           string
	ProductID    string
	Description  string
	CurrentPrice decimal.Decimal
	CreatedAt    time.Time
}
