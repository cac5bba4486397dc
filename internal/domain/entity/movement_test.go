package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jfuentes/stock-ledger/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados del movimiento: conjuntos cerrados de tipo/motivo/estado
// y legalidad de transiciones. Es lógica pura, sin BD.
// ──────────────────────────────────────────────────────────────────────────────

func TestValidReasonForType_ConjuntosCerrados(t *testing.T) {
	cases := []struct {
		movType string
		reason  string
		want    bool
	}{
		{entity.MovementTypeIN, entity.ReasonRestock, true},
		{entity.MovementTypeIN, entity.ReasonReturn, true},
		{entity.MovementTypeIN, entity.ReasonSale, false},
		{entity.MovementTypeOUT, entity.ReasonSale, true},
		{entity.MovementTypeOUT, entity.ReasonDamage, true},
		{entity.MovementTypeOUT, entity.ReasonDisposal, true},
		{entity.MovementTypeOUT, entity.ReasonRestock, false},
		{entity.MovementTypeTRANSFER, entity.ReasonInternal, true},
		{entity.MovementTypeTRANSFER, entity.ReasonCorrection, false},
		{entity.MovementTypeADJUST, entity.ReasonCorrection, true},
		{entity.MovementTypeADJUST, entity.ReasonInternal, false},
		{"UNKNOWN", entity.ReasonSale, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, entity.ValidReasonForType(c.movType, c.reason), "%s/%s", c.movType, c.reason)
	}
}

func TestDefaultInitialStatus_PorTipo(t *testing.T) {
	assert.Equal(t, entity.StatusCompleted, entity.DefaultInitialStatus(entity.MovementTypeIN))
	assert.Equal(t, entity.StatusCompleted, entity.DefaultInitialStatus(entity.MovementTypeOUT))
	assert.Equal(t, entity.StatusInTransit, entity.DefaultInitialStatus(entity.MovementTypeTRANSFER))
	assert.Equal(t, entity.StatusCompleted, entity.DefaultInitialStatus(entity.MovementTypeADJUST))
}

func TestValidStatusForType_AdjustSinPending(t *testing.T) {
	// ADJUST nace terminal: no admite PENDING ni IN_TRANSIT.
	assert.False(t, entity.ValidStatusForType(entity.MovementTypeADJUST, entity.StatusPending))
	assert.False(t, entity.ValidStatusForType(entity.MovementTypeADJUST, entity.StatusInTransit))
	assert.True(t, entity.ValidStatusForType(entity.MovementTypeADJUST, entity.StatusCompleted))
	assert.True(t, entity.ValidStatusForType(entity.MovementTypeADJUST, entity.StatusCancelled))

	// IN_TRANSIT solo existe para TRANSFER.
	assert.True(t, entity.ValidStatusForType(entity.MovementTypeTRANSFER, entity.StatusInTransit))
	assert.False(t, entity.ValidStatusForType(entity.MovementTypeIN, entity.StatusInTransit))
	assert.False(t, entity.ValidStatusForType(entity.MovementTypeOUT, entity.StatusInTransit))
}

func TestCanTransition_NoTerminalHaciaTerminal(t *testing.T) {
	m := &entity.Movement{Type: entity.MovementTypeTRANSFER, Status: entity.StatusInTransit}
	assert.True(t, m.CanTransition(entity.StatusCompleted))
	assert.True(t, m.CanTransition(entity.StatusCancelled))

	// PENDING→IN_TRANSIT no está modelado.
	m.Status = entity.StatusPending
	assert.False(t, m.CanTransition(entity.StatusInTransit))
	assert.False(t, m.CanTransition(entity.StatusPending))
}

func TestCanTransition_TerminalRechazaTodo(t *testing.T) {
	for _, status := range []string{entity.StatusCompleted, entity.StatusCancelled} {
		m := &entity.Movement{Type: entity.MovementTypeIN, Status: status}
		assert.True(t, m.Terminal())
		// Incluye re-completar un COMPLETED: también es ilegal.
		assert.False(t, m.CanTransition(entity.StatusCompleted), "desde %s", status)
		assert.False(t, m.CanTransition(entity.StatusCancelled), "desde %s", status)
		assert.False(t, m.CanTransition(entity.StatusPending), "desde %s", status)
	}
}
