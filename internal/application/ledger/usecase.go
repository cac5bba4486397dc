package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jfuentes/stock-ledger/internal/domain"
	"github.com/jfuentes/stock-ledger/internal/domain/entity"
	"github.com/jfuentes/stock-ledger/internal/domain/repository"
)

// UseCase casos de uso del ledger de stock: registrar movimientos, transicionar
// su estado y derivar disponibilidad. Toda escritura multi-paso corre dentro
// de una transacción del TxRunner con las filas implicadas bloqueadas
// (SELECT FOR UPDATE) para que completaciones concurrentes se serialicen.
type UseCase struct {
	txRunner     TxRunner
	movementRepo repository.MovementRepository
	stockRepo    repository.StockLevelRepository
	variantRepo  repository.VariantRepository
	locationRepo repository.LocationRepository
}

// NewUseCase construye el caso de uso. movementRepo/stockRepo atados al pool
// se usan solo para lecturas; las escrituras van por el txRunner.
func NewUseCase(
	txRunner TxRunner,
	movementRepo repository.MovementRepository,
	stockRepo repository.StockLevelRepository,
	variantRepo repository.VariantRepository,
	locationRepo repository.LocationRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		movementRepo: movementRepo,
		stockRepo:    stockRepo,
		variantRepo:  variantRepo,
		locationRepo: locationRepo,
	}
}

// RecordMovementInput entrada para registrar un movimiento.
// Amount siempre positivo; el signo del efecto lo determina el tipo.
// SourceLocationID obligatorio si y solo si Type=TRANSFER.
// InitialStatus vacío aplica el default del tipo (IN/OUT/ADJUST: COMPLETED,
// TRANSFER: IN_TRANSIT).
type RecordMovementInput struct {
	VariantID        string
	LocationID       string
	SourceLocationID string
	Amount           int64
	Type             string
	Reason           string
	InitialStatus    string
}

// RecordMovement valida y persiste un movimiento; si nace COMPLETED, la
// reconciliación del stock ocurre en la misma transacción.
func (uc *UseCase) RecordMovement(ctx context.Context, input RecordMovementInput) (*entity.Movement, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	status := input.InitialStatus
	if status == "" {
		status = entity.DefaultInitialStatus(input.Type)
	}

	// Existencia de variante y ubicación(es) antes de escribir nada.
	variant, err := uc.variantRepo.GetByID(input.VariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	dest, err := uc.locationRepo.GetByID(input.LocationID)
	if err != nil {
		return nil, err
	}
	if dest == nil {
		return nil, domain.ErrNotFound
	}
	if input.Type == entity.MovementTypeTRANSFER {
		source, err := uc.locationRepo.GetByID(input.SourceLocationID)
		if err != nil {
			return nil, err
		}
		if source == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	movement := &entity.Movement{
		ID:               uuid.New().String(),
		VariantID:        input.VariantID,
		LocationID:       input.LocationID,
		SourceLocationID: input.SourceLocationID,
		ChangeAmount:     input.Amount,
		Type:             input.Type,
		Reason:           input.Reason,
		Status:           status,
		CreatedAt:        now,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockLevelRepository,
	) error {
		if err := movRepo.Create(movement); err != nil {
			return err
		}
		if movement.Status == entity.StatusCompleted {
			return applyMovementEffect(stockRepo, movement, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// validateInput reglas de forma del movimiento; nada se escribe si fallan.
func validateInput(input RecordMovementInput) error {
	if !entity.ValidMovementType(input.Type) {
		return domain.ErrValidation
	}
	if input.Amount <= 0 {
		return domain.ErrValidation
	}
	if input.VariantID == "" || input.LocationID == "" {
		return domain.ErrValidation
	}
	if !entity.ValidReasonForType(input.Type, input.Reason) {
		return domain.ErrValidation
	}
	if input.Type == entity.MovementTypeTRANSFER {
		if input.SourceLocationID == "" || input.SourceLocationID == input.LocationID {
			return domain.ErrValidation
		}
	} else if input.SourceLocationID != "" {
		return domain.ErrValidation
	}
	if input.InitialStatus != "" {
		// Un movimiento no puede nacer cancelado.
		if input.InitialStatus == entity.StatusCancelled ||
			!entity.ValidStatusForType(input.Type, input.InitialStatus) {
			return domain.ErrValidation
		}
	}
	return nil
}

// GetMovement devuelve el registro completo o ErrNotFound.
func (uc *UseCase) GetMovement(ctx context.Context, id string) (*entity.Movement, error) {
	movement, err := uc.movementRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, domain.ErrNotFound
	}
	return movement, nil
}

// ListMovements lista movimientos del ledger con filtros opcionales.
func (uc *UseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	return uc.movementRepo.List(ctx, filter)
}
