package simulator

import (
	types "github.com/prysmaticlabs/threeslot/consensus-types"
	"github.com/prysmaticlabs/threeslot/consensus-types/primitives"
	"github.com/prysmaticlabs/threeslot/node"
)

// behaviorFor builds the per-validator behavior for a run. Offline
// validators emit nothing; equivocators emit the honest attestation plus a
// conflicting one voting their source as head; everyone else is honest. The
// engines never learn which validator follows which strategy.
func behaviorFor(p *Parameters) node.Behavior {
	offline := indexSet(p.OfflineIndices)
	equivocating := indexSet(p.EquivocatorIndices)
	return func(idx primitives.ValidatorIndex, _ primitives.Slot, honest *types.Attestation) []*types.Attestation {
		switch {
		case offline[idx]:
			return nil
		case equivocating[idx]:
			conflicting := *honest
			conflicting.HeadRoot = honest.Source.Root
			return []*types.Attestation{honest, &conflicting}
		default:
			return []*types.Attestation{honest}
		}
	}
}

func indexSet(indices []uint64) map[primitives.ValidatorIndex]bool {
	set := make(map[primitives.ValidatorIndex]bool, len(indices))
	for _, i := range indices {
		set[primitives.ValidatorIndex(i)] = true
	}
	return set
}
