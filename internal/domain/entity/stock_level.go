package entity

import "time"

// StockLevel cantidad física actual de una variante en una ubicación.
// Es la suma corrida de los efectos de movimientos COMPLETED para ese par;
// la disponibilidad nunca se persiste, se deriva en cada lectura.
type StockLevel struct {
	VariantID      string
	LocationID     string
	PhysicalAmount int64
	UpdatedAt      time.Time
}

// Availability vista derivada: físico menos salidas pendientes.
type Availability struct {
	VariantID       string
	LocationID      string
	PhysicalAmount  int64
	AvailableAmount int64
}
