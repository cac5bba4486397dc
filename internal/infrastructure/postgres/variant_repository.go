package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jfuentes/stock-ledger/internal/domain"
	"github.com/jfuentes/stock-ledger/internal/domain/entity"
	"github.com/jfuentes/stock-ledger/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación de variantes sobre PostgreSQL (usable con pool o tx).
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

// Create persiste una variante.
func (r *VariantRepo) Create(variant *entity.Variant) error {
	query := `
		INSERT INTO variants (id, product_id, description, current_price, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		variant.ID, variant.ProductID, variant.Description, variant.CurrentPrice, variant.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert variant: %w", err)
	}
	return nil
}

// GetByID obtiene una variante por ID.
func (r *VariantRepo) GetByID(id string) (*entity.Variant, error) {
	query := `SELECT id, product_id, description, current_price, created_at FROM variants WHERE id = $1`
	var v entity.Variant
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.ProductID, &v.Description, &v.CurrentPrice, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return &v, nil
}

// ListByProduct variantes de un producto.
func (r *VariantRepo) ListByProduct(productID string) ([]*entity.Variant, error) {
	query := `
		SELECT id, product_id, description, current_price, created_at
		FROM variants WHERE product_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	var list []*entity.Variant
	for rows.Next() {
		var v entity.Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Description, &v.CurrentPrice, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// UpdateCurrentPrice refresca la caché denormalizada del precio.
func (r *VariantRepo) UpdateCurrentPrice(id string, price decimal.Decimal) error {
	query := `UPDATE variants SET current_price = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, price)
	if err != nil {
		return fmt.Errorf("update variant price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ repository.PriceHistoryRepository = (*PriceHistoryRepo)(nil)

// PriceHistoryRepo implementación del historial de precios (append-only).
type PriceHistoryRepo struct {
	q Querier
}

// NewPriceHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceHistoryRepository(q Querier) *PriceHistoryRepo {
	return &PriceHistoryRepo{q: q}
}

// Create persiste una fila de precio.
func (r *PriceHistoryRepo) Create(price *entity.PriceHistory) error {
	query := `
		INSERT INTO price_history (id, variant_id, price, start_date)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		price.ID, price.VariantID, price.Price, price.StartDate,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert price: %w", err)
	}
	return nil
}

// ListByVariant historial de precios de una variante, más reciente primero.
func (r *PriceHistoryRepo) ListByVariant(variantID string) ([]*entity.PriceHistory, error) {
	query := `
		SELECT id, variant_id, price, start_date
		FROM price_history WHERE variant_id = $1 ORDER BY start_date DESC`
	rows, err := r.q.Query(context.Background(), query, variantID)
	if err != nil {
		return nil, fmt.Errorf("list prices: %w", err)
	}
	defer rows.Close()
	var list []*entity.PriceHistory
	for rows.Next() {
		var p entity.PriceHistory
		if err := rows.Scan(&p.ID, &p.VariantID, &p.Price, &p.StartDate); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
