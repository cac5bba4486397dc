package ledger

import (
	"time"

	"github.com/jfuentes/stock-ledger/internal/domain/entity"
	"github.com/jfuentes/stock-ledger/internal/domain/repository"
)

// applyMovementEffect traduce un movimiento COMPLETED a la actualización de
// StockLevel. Debe llamarse con stockRepo atado a la misma transacción que
// la escritura de estado que lo disparó; GetForUpdate bloquea la fila para
// que dos completaciones concurrentes sobre el mismo par no pierdan el
// read-modify-write.
//
// Efectos por tipo:
//
//	IN       +amount en destino
//	OUT      -amount en destino
//	TRANSFER +amount en destino, -amount en origen (misma tx)
//	ADJUST   reemplaza el físico del destino por amount (no aditivo)
//
// Un físico negativo está permitido: el ledger no bloquea la sobreventa,
// esa política pertenece a una capa superior.
func applyMovementEffect(stockRepo repository.StockLevelRepository, movement *entity.Movement, now time.Time) error {
	switch movement.Type {
	case entity.MovementTypeIN:
		return applyDelta(stockRepo, movement.VariantID, movement.LocationID, movement.ChangeAmount, false, now)
	case entity.MovementTypeOUT:
		return applyDelta(stockRepo, movement.VariantID, movement.LocationID, -movement.ChangeAmount, false, now)
	case entity.MovementTypeTRANSFER:
		if err := applyDelta(stockRepo, movement.VariantID, movement.LocationID, movement.ChangeAmount, false, now); err != nil {
			return err
		}
		return applyDelta(stockRepo, movement.VariantID, movement.SourceLocationID, -movement.ChangeAmount, false, now)
	case entity.MovementTypeADJUST:
		return applyDelta(stockRepo, movement.VariantID, movement.LocationID, movement.ChangeAmount, true, now)
	}
	return nil
}

// applyDelta read-modify-write sobre el físico de (variante, ubicación).
// Sin fila previa el físico parte de cero. Con replace=true (solo ADJUST)
// delta se escribe como valor absoluto.
func applyDelta(stockRepo repository.StockLevelRepository, variantID, locationID string, delta int64, replace bool, now time.Time) error {
	level, err := stockRepo.GetForUpdate(variantID, locationID)
	if err != nil {
		return err
	}
	if replace {
		level.PhysicalAmount = delta
	} else {
		level.PhysicalAmount += delta
	}
	level.UpdatedAt = now
	return stockRepo.Upsert(level)
}
