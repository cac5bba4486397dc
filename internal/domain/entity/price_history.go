package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceHistory registro append-only de precios de una variante.
type PriceHistory struct {
	ID        string
	VariantID string
	Price     decimal.Decimal
	StartDate time.Time
}
