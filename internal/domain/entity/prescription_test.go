package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrescriptionStatusIsValid(t *testing.T) {
	for _, status := range AllPrescriptionStatuses {
		assert.True(t, status.IsValid(), "catalog status %q should be valid", status)
	}

	assert.False(t, PrescriptionStatus("").IsValid())
	assert.False(t, PrescriptionStatus("shipped").IsValid())
	assert.False(t, PrescriptionStatus("Open").IsValid())
}

func TestPrescriptionStatusTransitions(t *testing.T) {
	tests := []struct {
		from    PrescriptionStatus
		to      PrescriptionStatus
		allowed bool
	}{
		{PrescriptionStatusOpen, PrescriptionStatusPreparing, true},
		{PrescriptionStatusOpen, PrescriptionStatusDeclined, true},
		{PrescriptionStatusOpen, PrescriptionStatusDispatch, true},
		{PrescriptionStatusOpen, PrescriptionStatusDelivered, true},
		{PrescriptionStatusOpen, PrescriptionStatusReturn, true},
		{PrescriptionStatusOpen, PrescriptionStatusClosed, true},
		{PrescriptionStatusPreparing, PrescriptionStatusDispatch, true},
		{PrescriptionStatusPreparing, PrescriptionStatusDeclined, true},
		{PrescriptionStatusPreparing, PrescriptionStatusDelivered, false},
		{PrescriptionStatusPreparing, PrescriptionStatusClosed, false},
		{PrescriptionStatusDispatch, PrescriptionStatusDelivered, true},
		{PrescriptionStatusDispatch, PrescriptionStatusReturn, true},
		{PrescriptionStatusDispatch, PrescriptionStatusClosed, false},
		{PrescriptionStatusDispatch, PrescriptionStatusPreparing, false},
		{PrescriptionStatusDelivered, PrescriptionStatusClosed, true},
		{PrescriptionStatusDelivered, PrescriptionStatusReturn, false},
		{PrescriptionStatusDelivered, PrescriptionStatusDispatch, false},
		{PrescriptionStatusClosed, PrescriptionStatusOpen, false},
		{PrescriptionStatusReturn, PrescriptionStatusDispatch, false},
		{PrescriptionStatusDeclined, PrescriptionStatusOpen, false},
	}

	for _, tt := range tests {
		got := tt.from.CanTransitionTo(tt.to)
		assert.Equal(t, tt.allowed, got, "%s -> %s", tt.from, tt.to)
	}
}

func TestPrescriptionStatusNoSelfTransitions(t *testing.T) {
	for _, status := range AllPrescriptionStatuses {
		assert.False(t, status.CanTransitionTo(status), "%s should not loop onto itself", status)
	}
}

func TestPrescriptionStatusIsTerminal(t *testing.T) {
	assert.True(t, PrescriptionStatusReturn.IsTerminal())
	assert.True(t, PrescriptionStatusClosed.IsTerminal())
	assert.True(t, PrescriptionStatusDeclined.IsTerminal())

	assert.False(t, PrescriptionStatusOpen.IsTerminal())
	assert.False(t, PrescriptionStatusPreparing.IsTerminal())
	assert.False(t, PrescriptionStatusDispatch.IsTerminal())
	assert.False(t, PrescriptionStatusDelivered.IsTerminal())
}

func TestTransitionSourcesTo(t *testing.T) {
	assert.ElementsMatch(t,
		[]PrescriptionStatus{PrescriptionStatusOpen, PrescriptionStatusDelivered},
		TransitionSourcesTo(PrescriptionStatusClosed),
	)
	assert.ElementsMatch(t,
		[]PrescriptionStatus{PrescriptionStatusOpen, PrescriptionStatusPreparing},
		TransitionSourcesTo(PrescriptionStatusDispatch),
	)
	assert.ElementsMatch(t,
		[]PrescriptionStatus{PrescriptionStatusOpen, PrescriptionStatusDispatch},
		TransitionSourcesTo(PrescriptionStatusDelivered),
	)

	// Nothing leads back to open.
	assert.Empty(t, TransitionSourcesTo(PrescriptionStatusOpen))
}

func TestPrescriptionIsOpen(t *testing.T) {
	p := &Prescription{Status: PrescriptionStatusOpen}
	assert.True(t, p.IsOpen())

	p.Status = PrescriptionStatusDispatch
	assert.False(t, p.IsOpen())
	assert.True(t, p.IsDispatched())
}
