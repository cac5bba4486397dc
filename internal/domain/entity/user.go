package entity

import "time"

// Roles de usuario para el guard RBAC del HTTP layer.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User usuario de la API (solo autenticación; el ledger no lo referencia).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
