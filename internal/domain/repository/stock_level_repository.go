package repository

import "github.com/jfuentes/stock-ledger/internal/domain/entity"

// StockLevelRepository define el puerto para consultar/actualizar el físico
// por variante+ubicación. Usado dentro de transacciones para garantizar
// consistencia del read-modify-write de la reconciliación.
type StockLevelRepository interface {
	Get(variantID, locationID string) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); si no existe devuelve
	// un nivel en cero listo para upsert.
	GetForUpdate(variantID, locationID string) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
	ListByLocation(locationID string, limit, offset int) ([]*entity.StockLevel, error)
	ListAll() ([]*entity.StockLevel, error)
}
