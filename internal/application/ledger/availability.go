package ledger

import (
	"context"

	"github.com/jfuentes/stock-ledger/internal/domain"
	"github.com/jfuentes/stock-ledger/internal/domain/entity"
)

// ComputeAvailable deriva la disponibilidad de una variante en una ubicación:
//
//	disponible = físico − Σ change_amount de OUT en PENDING para el par
//
// Las salidas pendientes reservan stock que sigue físicamente presente.
// Nunca se persiste: se recalcula de las filas actuales en cada lectura,
// así no puede desincronizarse. Cuando el OUT pendiente pasa a COMPLETED el
// físico baja y la resta desaparece a la vez (sin doble descuento).
func (uc *UseCase) ComputeAvailable(ctx context.Context, variantID, locationID string) (*entity.Availability, error) {
	if variantID == "" || locationID == "" {
		return nil, domain.ErrValidation
	}
	location, err := uc.locationRepo.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}

	var physical int64
	level, err := uc.stockRepo.Get(variantID, locationID)
	if err != nil {
		return nil, err
	}
	if level != nil {
		physical = level.PhysicalAmount
	}
	pending, err := uc.movementRepo.SumPendingOut(ctx, variantID, locationID)
	if err != nil {
		return nil, err
	}
	return &entity.Availability{
		VariantID:       variantID,
		LocationID:      locationID,
		PhysicalAmount:  physical,
		AvailableAmount: physical - pending,
	}, nil
}
