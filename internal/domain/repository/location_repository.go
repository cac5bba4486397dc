package repository

import "github.com/jfuentes/stock-ledger/internal/domain/entity"

// LocationRepository define el puerto del registro de ubicaciones.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	List(limit, offset int) ([]*entity.Location, error)
}
