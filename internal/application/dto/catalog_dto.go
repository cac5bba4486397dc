package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateVariantRequest alta de variante; initial_price opcional.
type CreateVariantRequest struct {
	Description  string           `json:"description"`
	InitialPrice *decimal.Decimal `json:"initial_price,omitempty"`
}

// VariantResponse variante con su precio cacheado.
type VariantResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Description  string          `json:"description"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SetPriceRequest nuevo precio de una variante.
type SetPriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

// PriceHistoryResponse fila del historial de precios.
type PriceHistoryResponse struct {
	ID        string          `json:"id"`
	VariantID string          `json:"variant_id"`
	Price     decimal.Decimal `json:"price"`
	StartDate time.Time       `json:"start_date"`
}

// CreateReviewRequest alta de reseña sobre una variante.
type CreateReviewRequest struct {
	Body     string `json:"body"`
	UserName string `json:"user_name"`
	Rating   int    `json:"rating"`
}

// ReviewResponse reseña de una variante.
type ReviewResponse struct {
	ID        string    `json:"id"`
	VariantID string    `json:"variant_id"`
	Body      string    `json:"body"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingResponse promedio de rating de una variante.
type RatingResponse struct {
	VariantID string  `json:"variant_id"`
	Average   float64 `json:"average"`
	HasVotes  bool    `json:"has_votes"`
}
