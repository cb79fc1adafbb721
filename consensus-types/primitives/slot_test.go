package primitives

import (
	"math"
	"testing"
)

func TestSlot_Add(t *testing.T) {
	if got := Slot(3).Add(4); got != 7 {
		t.Errorf("Add() = %d, want 7", got)
	}
}

func TestSlot_SubSaturating(t *testing.T) {
	if got := Slot(7).SubSaturating(3); got != 4 {
		t.Errorf("SubSaturating() = %d, want 4", got)
	}
	// Flooring at zero instead of wrapping.
	if got := Slot(2).SubSaturating(5); got != 0 {
		t.Errorf("SubSaturating() = %d, want 0", got)
	}
	if got := Slot(0).SubSaturating(math.MaxUint64); got != 0 {
		t.Errorf("SubSaturating() = %d, want 0", got)
	}
}

func TestSlot_Uint64(t *testing.T) {
	if got := Slot(42).Uint64(); got != 42 {
		t.Errorf("Uint64() = %d, want 42", got)
	}
}
