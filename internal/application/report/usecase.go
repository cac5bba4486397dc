package report

import (
	"context"

	"github.com/jfuentes/stock-ledger/internal/domain/repository"
)

// UseCase arma el reporte de stock físico/disponible por ubicación y lo
// entrega como PDF. Lectura pura: la disponibilidad se deriva fila a fila
// igual que en la vista de disponibilidad (físico − OUT pendientes).
type UseCase struct {
	stockRepo    repository.StockLevelRepository
	movementRepo repository.MovementRepository
	locationRepo repository.LocationRepository
	variantRepo  repository.VariantRepository
	generator    StockPDFGenerator
}

// NewUseCase construye el caso de uso del reporte.
func NewUseCase(
	stockRepo repository.StockLevelRepository,
	movementRepo repository.MovementRepository,
	locationRepo repository.LocationRepository,
	variantRepo repository.VariantRepository,
	generator StockPDFGenerator,
) *UseCase {
	return &UseCase{
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		locationRepo: locationRepo,
		variantRepo:  variantRepo,
		generator:    generator,
	}
}

// GenerateStockReport PDF con el stock actual de todas las ubicaciones.
func (uc *UseCase) GenerateStockReport(ctx context.Context) ([]byte, error) {
	levels, err := uc.stockRepo.ListAll()
	if err != nil {
		return nil, err
	}
	rows := make([]StockReportRow, 0, len(levels))
	for _, level := range levels {
		row := StockReportRow{
			LocationName:   level.LocationID,
			VariantLabel:   level.VariantID,
			PhysicalAmount: level.PhysicalAmount,
		}
		if location, err := uc.locationRepo.GetByID(level.LocationID); err == nil && location != nil {
			row.LocationName = location.Name
			row.IsStorage = location.IsStorage
		}
		if variant, err := uc.variantRepo.GetByID(level.VariantID); err == nil && variant != nil {
			row.VariantLabel = variant.Description
		}
		pending, err := uc.movementRepo.SumPendingOut(ctx, level.VariantID, level.LocationID)
		if err != nil {
			return nil, err
		}
		row.AvailableAmount = level.PhysicalAmount - pending
		rows = append(rows, row)
	}
	return uc.generator.GenerateStockReport(ctx, rows)
}
