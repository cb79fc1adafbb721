// Package primitives defines the typed integers shared across the protocol
// engines. Using distinct types for slots and validator indices keeps the
// two from being mixed up in arithmetic.
package primitives

// Slot is the discrete simulation time unit. Slots strictly increase and
// three consecutive slots form one mini-epoch for justification purposes.
type Slot uint64

// ValidatorIndex identifies a validator in the registry.
type ValidatorIndex uint64

// Add returns the slot incremented by x.
func (s Slot) Add(x uint64) Slot {
	return s + Slot(x)
}

// SubSaturating returns the slot decremented by x, flooring at zero instead
// of wrapping around.
func (s Slot) SubSaturating(x uint64) Slot {
	if uint64(s) < x {
		return 0
	}
	return s - Slot(x)
}

// Uint64 returns the slot as an untyped integer for metrics and logging.
func (s Slot) Uint64() uint64 {
	return uint64(s)
}
