package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jfuentes/stock-ledger/internal/domain"
	"github.com/jfuentes/stock-ledger/internal/domain/entity"
	"github.com/jfuentes/stock-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del ledger de movimientos sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, variant_id, location_id, source_location_id, change_amount, type, reason, status, created_at`

// Create persiste un movimiento del ledger (append-only).
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO stock_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	source := (*string)(nil)
	if movement.SourceLocationID != "" {
		source = &movement.SourceLocationID
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.VariantID, movement.LocationID, source,
		movement.ChangeAmount, movement.Type, movement.Reason, movement.Status,
		movement.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByIDForUpdate obtiene el movimiento bloqueando su fila (SELECT FOR UPDATE):
// dos transiciones concurrentes sobre el mismo movimiento se serializan aquí.
func (r *MovementRepo) GetByIDForUpdate(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *MovementRepo) scanOne(query, id string) (*entity.Movement, error) {
	var m entity.Movement
	var source *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.VariantID, &m.LocationID, &source, &m.ChangeAmount,
		&m.Type, &m.Reason, &m.Status, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if source != nil {
		m.SourceLocationID = *source
	}
	return &m, nil
}

// UpdateStatus escribe el nuevo estado. La legalidad de la transición ya fue
// validada por el caso de uso con la fila bloqueada.
func (r *MovementRepo) UpdateStatus(id, status string) error {
	query := `UPDATE stock_movements SET status = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update movement status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SumPendingOut suma change_amount de los OUT pendientes del par (variante, ubicación).
func (r *MovementRepo) SumPendingOut(ctx context.Context, variantID, locationID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(change_amount), 0)
		FROM stock_movements
		WHERE variant_id = $1 AND location_id = $2 AND type = $3 AND status = $4`
	var sum int64
	err := r.q.QueryRow(ctx, query, variantID, locationID, entity.MovementTypeOUT, entity.StatusPending).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum pending out: %w", err)
	}
	return sum, nil
}

// List lista movimientos con filtros opcionales, más recientes primero.
func (r *MovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.VariantID != "" {
		query += fmt.Sprintf(" AND variant_id = $%d", pos)
		args = append(args, filter.VariantID)
		pos++
	}
	if filter.LocationID != "" {
		query += fmt.Sprintf(" AND (location_id = $%d OR source_location_id = $%d)", pos, pos)
		args = append(args, filter.LocationID)
		pos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var source *string
		if err := rows.Scan(&m.ID, &m.VariantID, &m.LocationID, &source, &m.ChangeAmount,
			&m.Type, &m.Reason, &m.Status, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if source != nil {
			m.SourceLocationID = *source
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
