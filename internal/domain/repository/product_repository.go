package repository

import "github.com/jfuentes/stock-ledger/internal/domain/entity"

// ProductRepository define el puerto de persistencia del catálogo de productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// FindByNormalizedName busca por nombre ya normalizado (minúsculas, sin
	// acentos); la normalización vive en el caso de uso del catálogo.
	FindByNormalizedName(name string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
}
