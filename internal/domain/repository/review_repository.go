package repository

import "github.com/jfuentes/stock-ledger/internal/domain/entity"

// ReviewRepository define el puerto de persistencia de reseñas.
type ReviewRepository interface {
	Create(review *entity.Review) error
	ListByVariant(variantID string, limit, offset int) ([]*entity.Review, error)
	// AverageRating promedio de rating de la variante; ok=false si no hay reseñas.
	AverageRating(variantID string) (avg float64, ok bool, err error)
}
