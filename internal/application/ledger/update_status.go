package ledger

import (
	"context"
	"time"

	"github.com/jfuentes/stock-ledger/internal/domain"
	"github.com/jfuentes/stock-ledger/internal/domain/entity"
	"github.com/jfuentes/stock-ledger/internal/domain/repository"
)

// UpdateStatus transiciona un movimiento de estado. La fila del movimiento se
// bloquea (FOR UPDATE) y la actualización de estado más la reconciliación
// ocurren en la misma transacción: el efecto sobre el stock se aplica
// exactamente una vez, al entrar a COMPLETED.
//
// Idempotente solo como no-op: repetir el estado actual no terminal devuelve
// nil sin tocar nada. Re-completar un COMPLETED (o transicionar desde
// cualquier terminal) es ErrInvalidTransition; aplicar dos veces corrompería
// el físico.
func (uc *UseCase) UpdateStatus(ctx context.Context, movementID, newStatus string) error {
	if movementID == "" {
		return domain.ErrValidation
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockLevelRepository,
	) error {
		movement, err := movRepo.GetByIDForUpdate(movementID)
		if err != nil {
			return err
		}
		if movement == nil {
			return domain.ErrNotFound
		}
		if movement.Status == newStatus && !movement.Terminal() {
			return nil
		}
		if !movement.CanTransition(newStatus) {
			return domain.ErrInvalidTransition
		}
		if err := movRepo.UpdateStatus(movementID, newStatus); err != nil {
			return err
		}
		if newStatus == entity.StatusCompleted {
			return applyMovementEffect(stockRepo, movement, now)
		}
		return nil
	})
}
