package entity

import "time"

// Location ubicación física o virtual donde vive el stock.
// IsStorage distingue bodega de punto de venta/exhibición. Inmutable una vez
// referenciada por un movimiento (no hay delete en cascada).
type Location struct {
	ID        string
	Name      string
	IsStorage bool
	Address   string
	CreatedAt time.Time
}
