package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN       = "IN"       // entrada
	MovementTypeOUT      = "OUT"      // salida
	MovementTypeTRANSFER = "TRANSFER" // traslado entre ubicaciones
	MovementTypeADJUST   = "ADJUST"   // ajuste absoluto (reemplaza el físico)
)

// Motivos de movimiento, válidos solo para su tipo (ver movementReasons).
const (
	ReasonRestock    = "RESTOCK"    // IN
	ReasonReturn     = "RETURN"     // IN
	ReasonSale       = "SALE"       // OUT
	ReasonDamage     = "DAMAGE"     // OUT
	ReasonDisposal   = "DISPOSAL"   // OUT
	ReasonInternal   = "INTERNAL"   // TRANSFER
	ReasonCorrection = "CORRECTION" // ADJUST
)

// Estados del movimiento. COMPLETED y CANCELLED son terminales.
const (
	StatusPending   = "PENDING"
	StatusInTransit = "IN_TRANSIT"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// Movement registro inmutable del ledger: un cambio de stock solicitado o
// realizado sobre una ubicación (dos en TRANSFER). Solo Status es mutable;
// el efecto sobre StockLevel se aplica exactamente una vez, al entrar a COMPLETED.
type Movement struct {
	ID               string
	VariantID        string
	LocationID       string // destino
	SourceLocationID string // solo TRANSFER; vacío en el resto
	ChangeAmount     int64  // siempre > 0; el signo lo determina el tipo
	Type             string
	Reason           string
	Status           string
	CreatedAt        time.Time
}

// movementReasons motivos permitidos por tipo (conjunto cerrado).
var movementReasons = map[string]map[string]bool{
	MovementTypeIN:       {ReasonRestock: true, ReasonReturn: true},
	MovementTypeOUT:      {ReasonSale: true, ReasonDamage: true, ReasonDisposal: true},
	MovementTypeTRANSFER: {ReasonInternal: true},
	MovementTypeADJUST:   {ReasonCorrection: true},
}

// movementStatuses estados permitidos por tipo.
// PENDING→IN_TRANSIT no existe: cada tipo tiene su propio estado de espera.
var movementStatuses = map[string]map[string]bool{
	MovementTypeIN:       {StatusPending: true, StatusCompleted: true, StatusCancelled: true},
	MovementTypeOUT:      {StatusPending: true, StatusCompleted: true, StatusCancelled: true},
	MovementTypeTRANSFER: {StatusPending: true, StatusInTransit: true, StatusCompleted: true, StatusCancelled: true},
	MovementTypeADJUST:   {StatusCompleted: true, StatusCancelled: true},
}

// defaultInitialStatus estado inicial cuando el caller no lo indica.
var defaultInitialStatus = map[string]string{
	MovementTypeIN:       StatusCompleted,
	MovementTypeOUT:      StatusCompleted,
	MovementTypeTRANSFER: StatusInTransit,
	MovementTypeADJUST:   StatusCompleted,
}

// ValidMovementType indica si el tipo pertenece al conjunto cerrado.
func ValidMovementType(movementType string) bool {
	_, ok := movementReasons[movementType]
	return ok
}

// ValidReasonForType indica si el motivo es válido para el tipo.
func ValidReasonForType(movementType, reason string) bool {
	return movementReasons[movementType][reason]
}

// ValidStatusForType indica si el estado pertenece al conjunto permitido del tipo.
func ValidStatusForType(movementType, status string) bool {
	return movementStatuses[movementType][status]
}

// DefaultInitialStatus devuelve el estado inicial por defecto del tipo.
func DefaultInitialStatus(movementType string) string {
	return defaultInitialStatus[movementType]
}

// TerminalStatus indica si el estado no admite más transiciones.
func TerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

// CanTransition valida la transición de estado de un movimiento:
// cualquier estado no terminal puede pasar a COMPLETED o CANCELLED (si el
// destino está permitido para el tipo); un estado terminal no acepta nada,
// incluida la "re-completación" de un COMPLETED.
func (m *Movement) CanTransition(newStatus string) bool {
	if TerminalStatus(m.Status) {
		return false
	}
	if !TerminalStatus(newStatus) {
		return false
	}
	return ValidStatusForType(m.Type, newStatus)
}

// Terminal indica si el movimiento ya está en estado terminal.
func (m *Movement) Terminal() bool {
	return TerminalStatus(m.Status)
}
