package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jfuentes/stock-ledger/internal/domain/entity"
	"github.com/jfuentes/stock-ledger/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación del físico por variante+ubicación sobre PostgreSQL.
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// Get obtiene el físico actual del par; nil si no hay fila.
func (r *StockLevelRepo) Get(variantID, locationID string) (*entity.StockLevel, error) {
	query := `
		SELECT variant_id, location_id, physical_amount, updated_at
		FROM stock_levels WHERE variant_id = $1 AND location_id = $2`
	var l entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, variantID, locationID).Scan(
		&l.VariantID, &l.LocationID, &l.PhysicalAmount, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &l, nil
}

// GetForUpdate obtiene el físico bloqueando la fila (SELECT FOR UPDATE).
// Sin fila previa devuelve un nivel en cero listo para el primer upsert.
func (r *StockLevelRepo) GetForUpdate(variantID, locationID string) (*entity.StockLevel, error) {
	query := `
		SELECT variant_id, location_id, physical_amount, updated_at
		FROM stock_levels WHERE variant_id = $1 AND location_id = $2
		FOR UPDATE`
	var l entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, variantID, locationID).Scan(
		&l.VariantID, &l.LocationID, &l.PhysicalAmount, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{VariantID: variantID, LocationID: locationID}, nil
		}
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	return &l, nil
}

// Upsert inserta o actualiza el físico (por variante y ubicación).
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (variant_id, location_id, physical_amount, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (variant_id, location_id)
		DO UPDATE SET physical_amount = EXCLUDED.physical_amount, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, level.VariantID, level.LocationID, level.PhysicalAmount)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// ListByLocation físico de todas las variantes de una ubicación.
func (r *StockLevelRepo) ListByLocation(locationID string, limit, offset int) ([]*entity.StockLevel, error) {
	query := `
		SELECT variant_id, location_id, physical_amount, updated_at
		FROM stock_levels WHERE location_id = $1
		ORDER BY updated_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, locationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock levels by location: %w", err)
	}
	defer rows.Close()
	return scanLevels(rows)
}

// ListAll físico completo, para el reporte de stock.
func (r *StockLevelRepo) ListAll() ([]*entity.StockLevel, error) {
	query := `
		SELECT variant_id, location_id, physical_amount, updated_at
		FROM stock_levels ORDER BY location_id, variant_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	return scanLevels(rows)
}

func scanLevels(rows pgx.Rows) ([]*entity.StockLevel, error) {
	var list []*entity.StockLevel
	for rows.Next() {
		var l entity.StockLevel
		if err := rows.Scan(&l.VariantID, &l.LocationID, &l.PhysicalAmount, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
