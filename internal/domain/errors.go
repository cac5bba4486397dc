package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los fallos de almacenamiento NO se modelan aquí: los repositorios los
// envuelven con fmt.Errorf("...: %w", err) y siempre implican rollback total.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrValidation         = errors.New("movimiento inválido")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)
