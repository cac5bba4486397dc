package repository

import (
	"context"

	"github.com/jfuentes/stock-ledger/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del ledger de movimientos.
// El ledger es append-only: nunca se borra un movimiento, solo cambia Status.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// GetByIDForUpdate bloquea la fila del movimiento (SELECT FOR UPDATE) para
	// que dos transiciones concurrentes sobre el mismo movimiento se serialicen.
	GetByIDForUpdate(id string) (*entity.Movement, error)
	UpdateStatus(id, status string) error
	// SumPendingOut suma change_amount de movimientos OUT en PENDING para el
	// par (variante, ubicación); insumo del cálculo de disponibilidad.
	SumPendingOut(ctx context.Context, variantID, locationID string) (int64, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
}

// MovementFilter filtros opcionales para listar movimientos.
type MovementFilter struct {
	VariantID  string
	LocationID string
	Status     string
	Limit      int
	Offset     int
}
