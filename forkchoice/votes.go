package forkchoice

import (
	"github.com/prysmaticlabs/threeslot/config/params"
	"github.com/prysmaticlabs/threeslot/consensus-types/primitives"
)

// latestVotes tallies each validator's most recent head vote into a map of
// block root to direct vote weight. Three filters apply, per the
// reorg-resilient LMD rule:
//   - a vote older than the expiry window contributes nothing, so a burst of
//     very old votes cannot re-win an abandoned fork
//   - a validator flagged for equivocating at its latest vote's slot is
//     excluded from the tally entirely
//   - votes for blocks the tree does not know are ignored
func (f *Store) latestVotes(currentSlot primitives.Slot) map[[32]byte]uint64 {
	cfg := params.ThreeSlotConfig()
	tally := make(map[[32]byte]uint64)
	for _, v := range f.votes.Validators() {
		att := v.LatestAttestation
		if att == nil {
			continue
		}
		if att.Slot.Add(cfg.VoteExpirySlots) < currentSlot {
			staleVoteCount.Inc()
			continue
		}
		if f.votes.IsEquivocating(v.Index, att.Slot) {
			continue
		}
		if !f.tree.HasBlock(att.HeadRoot) {
			continue
		}
		tally[att.HeadRoot] += v.Weight
	}
	return tally
}
