package ledger

import (
	"context"

	"github.com/jfuentes/stock-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es el coordinador de transacciones del ledger:
// Commit si fn devuelve nil, Rollback total en cualquier otro caso. Ningún
// efecto parcial (movimiento sin stock o viceversa) es observable fuera.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockLevelRepository,
	) error) error
}
