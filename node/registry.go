package node

import (
	"sync"

	"github.com/prysmaticlabs/threeslot/config/params"
	types "github.com/prysmaticlabs/threeslot/consensus-types"
	"github.com/prysmaticlabs/threeslot/consensus-types/primitives"
)

// Registry owns the validator records of a simulation run. It implements
// the read-only views the two engines consume: latest messages and weights
// for fork choice, weights and totals for the finality engine.
type Registry struct {
	sync.RWMutex
	validators  []*types.Validator
	totalWeight uint64
	// Append-only log of flagged equivocators, in flagging order.
	equivocations []primitives.ValidatorIndex
	equivocatedAt map[primitives.ValidatorIndex]map[primitives.Slot]bool
}

// NewRegistry builds the validator set described by the protocol config:
// NumValidators records, each with the static configured weight.
func NewRegistry() *Registry {
	cfg := params.ThreeSlotConfig()
	validators := make([]*types.Validator, 0, cfg.NumValidators)
	for i := uint64(0); i < cfg.NumValidators; i++ {
		validators = append(validators, &types.Validator{
			Index:  primitives.ValidatorIndex(i),
			Weight: cfg.ValidatorWeight,
		})
	}
	return &Registry{
		validators:    validators,
		totalWeight:   cfg.TotalWeight(),
		equivocatedAt: make(map[primitives.ValidatorIndex]map[primitives.Slot]bool),
	}
}

// Validators returns the registry records in validator index order. The
// slice is a copy; the records are shared.
func (r *Registry) Validators() []*types.Validator {
	r.RLock()
	defer r.RUnlock()
	out := make([]*types.Validator, len(r.validators))
	copy(out, r.validators)
	return out
}

// Weight returns the weight of the given validator.
func (r *Registry) Weight(idx primitives.ValidatorIndex) (uint64, bool) {
	r.RLock()
	defer r.RUnlock()
	if uint64(idx) >= uint64(len(r.validators)) {
		return 0, false
	}
	return r.validators[idx].Weight, true
}

// TotalWeight of all registered validators.
func (r *Registry) TotalWeight() uint64 {
	return r.totalWeight
}

// latestAttestation returns the validator's current latest message.
func (r *Registry) latestAttestation(idx primitives.ValidatorIndex) *types.Attestation {
	r.RLock()
	defer r.RUnlock()
	if uint64(idx) >= uint64(len(r.validators)) {
		return nil
	}
	return r.validators[idx].LatestAttestation
}

// recordAttestation overwrites the validator's latest message.
func (r *Registry) recordAttestation(att *types.Attestation) {
	r.Lock()
	defer r.Unlock()
	if uint64(att.ValidatorIndex) >= uint64(len(r.validators)) {
		return
	}
	r.validators[att.ValidatorIndex].LatestAttestation = att
}

// flagEquivocation appends the validator to the equivocation log. A
// validator is flagged at most once per slot.
func (r *Registry) flagEquivocation(idx primitives.ValidatorIndex, slot primitives.Slot) {
	r.Lock()
	defer r.Unlock()
	slots, ok := r.equivocatedAt[idx]
	if !ok {
		slots = make(map[primitives.Slot]bool)
		r.equivocatedAt[idx] = slots
	}
	if slots[slot] {
		return
	}
	slots[slot] = true
	r.equivocations = append(r.equivocations, idx)
}

// IsEquivocating reports whether the validator was flagged at the given
// slot. Fork choice excludes flagged validators from the tally for that
// slot.
func (r *Registry) IsEquivocating(idx primitives.ValidatorIndex, slot primitives.Slot) bool {
	r.RLock()
	defer r.RUnlock()
	return r.equivocatedAt[idx][slot]
}

// Equivocations returns the append-only equivocation log.
func (r *Registry) Equivocations() []primitives.ValidatorIndex {
	r.RLock()
	defer r.RUnlock()
	out := make([]primitives.ValidatorIndex, len(r.equivocations))
	copy(out, r.equivocations)
	return out
}
