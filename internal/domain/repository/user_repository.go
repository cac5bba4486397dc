package repository

import "github.com/jfuentes/stock-ledger/internal/domain/entity"

// UserRepository define el puerto de persistencia de usuarios (auth).
type UserRepository interface {
	Create(user *entity.User) error
	FindByEmail(email string) (*entity.User, error)
}
