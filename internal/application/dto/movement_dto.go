package dto

import "time"

// RecordMovementRequest alta de movimiento en el ledger.
// source_location_id solo para TRANSFER; initial_status vacío usa el default
// del tipo (IN/OUT/ADJUST: COMPLETED, TRANSFER: IN_TRANSIT).
type RecordMovementRequest struct {
	VariantID        string `json:"variant_id"`
	LocationID       string `json:"location_id"`
	SourceLocationID string `json:"source_location_id,omitempty"`
	Amount           int64  `json:"amount"`
	Type             string `json:"type"`
	Reason           string `json:"reason"`
	InitialStatus    string `json:"initial_status,omitempty"`
}

// UpdateStatusRequest transición de estado de un movimiento.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// MovementResponse registro completo de un movimiento.
type MovementResponse struct {
	ID               string    `json:"id"`
	VariantID        string    `json:"variant_id"`
	LocationID       string    `json:"location_id"`
	SourceLocationID string    `json:"source_location_id,omitempty"`
	ChangeAmount     int64     `json:"change_amount"`
	Type             string    `json:"type"`
	Reason           string    `json:"reason"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// AvailabilityResponse vista derivada de disponibilidad.
type AvailabilityResponse struct {
	VariantID       string `json:"variant_id"`
	LocationID      string `json:"location_id"`
	PhysicalAmount  int64  `json:"physical_amount"`
	AvailableAmount int64  `json:"available_amount"`
}
