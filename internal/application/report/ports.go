package report

import "context"

// StockReportRow fila del reporte: físico y disponible de una variante en una ubicación.
type StockReportRow struct {
	LocationName    string
	IsStorage       bool
	VariantLabel    string
	PhysicalAmount  int64
	AvailableAmount int64
}

// StockPDFGenerator puerto de generación del PDF del reporte de stock.
type StockPDFGenerator interface {
	GenerateStockReport(ctx context.Context, rows []StockReportRow) ([]byte, error)
}
