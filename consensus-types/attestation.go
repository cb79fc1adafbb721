package types

import (
	"github.com/prysmaticlabs/threeslot/consensus-types/primitives"
)

// Attestation is a validator's vote for a slot. It carries both the FFG
// component (source and target checkpoints) consumed by the finality engine
// and the head vote consumed by fork choice. Attestations are never mutated
// after creation; they are shared by reference between the registry and the
// engines.
type Attestation struct {
	ValidatorIndex primitives.ValidatorIndex
	Slot           primitives.Slot
	Source         Checkpoint
	Target         Checkpoint
	HeadRoot       [32]byte
}

// Equal reports whether two attestations carry identical content. Used to
// distinguish a harmless duplicate from an equivocation.
func (a *Attestation) Equal(other *Attestation) bool {
	if other == nil {
		return false
	}
	return a.ValidatorIndex == other.ValidatorIndex &&
		a.Slot == other.Slot &&
		a.Source == other.Source &&
		a.Target == other.Target &&
		a.HeadRoot == other.HeadRoot
}
