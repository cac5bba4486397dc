package postgres

import (
	"context"
	"fmt"

	"github.com/jfuentes/stock-ledger/internal/domain"
	"github.com/jfuentes/stock-ledger/internal/domain/entity"
	"github.com/jfuentes/stock-ledger/internal/domain/repository"
)

var _ repository.ReviewRepository = (*ReviewRepo)(nil)

// ReviewRepo implementación de reseñas sobre PostgreSQL.
type ReviewRepo struct {
	q Querier
}

// NewReviewRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReviewRepository(q Querier) *ReviewRepo {
	return &ReviewRepo{q: q}
}

// Create persiste una reseña.
func (r *ReviewRepo) Create(review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, variant_id, body, user_name, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		review.ID, review.VariantID, review.Body, review.UserName, review.Rating, review.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// ListByVariant reseñas de una variante, más recientes primero.
func (r *ReviewRepo) ListByVariant(variantID string, limit, offset int) ([]*entity.Review, error) {
	query := `
		SELECT id, variant_id, body, user_name, rating, created_at
		FROM reviews WHERE variant_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, variantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()
	var list []*entity.Review
	for rows.Next() {
		var rev entity.Review
		if err := rows.Scan(&rev.ID, &rev.VariantID, &rev.Body, &rev.UserName, &rev.Rating, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		list = append(list, &rev)
	}
	return list, rows.Err()
}

// AverageRating promedio de rating; ok=false si la variante no tiene reseñas.
func (r *ReviewRepo) AverageRating(variantID string) (float64, bool, error) {
	query := `SELECT AVG(rating), COUNT(*) FROM reviews WHERE variant_id = $1`
	var avg *float64
	var count int64
	err := r.q.QueryRow(context.Background(), query, variantID).Scan(&avg, &count)
	if err != nil {
		return 0, false, fmt.Errorf("average rating: %w", err)
	}
	if count == 0 || avg == nil {
		return 0, false, nil
	}
	return *avg, true, nil
}
