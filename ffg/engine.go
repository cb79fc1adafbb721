// Package ffg implements the compressed Casper-FFG justification and
// finalization gadget. The engine consumes attestations, accumulates weight
// on (source, target) checkpoint links, justifies targets that gather a
// supermajority and finalizes sources of consecutive justified links within
// the finality window. Justified and finalized sets only ever grow.
package ffg

import (
	"context"
	"sort"
	"sync"

	"github.com/prysmaticlabs/threeslot/blocktree"
	"github.com/prysmaticlabs/threeslot/config/params"
	types "github.com/prysmaticlabs/threeslot/consensus-types"
	"github.com/prysmaticlabs/threeslot/consensus-types/primitives"
	"github.com/prysmaticlabs/threeslot/encoding/bytesutil"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// WeightReader supplies validator weights for link accumulation.
type WeightReader interface {
	Weight(idx primitives.ValidatorIndex) (uint64, bool)
	TotalWeight() uint64
}

type link struct {
	source types.Checkpoint
	target types.Checkpoint
}

// Engine owns the justification state of a single simulation run. It is the
// only writer of that state; all exported queries are read-only.
type Engine struct {
	sync.RWMutex
	tree    *blocktree.Store
	weights WeightReader

	justified  map[types.Checkpoint]bool
	finalized  map[types.Checkpoint]bool
	linkWeight map[link]uint64
	linkVoters map[link]map[primitives.ValidatorIndex]bool
	// Latest attestation the engine accepted per validator, used to detect
	// same-slot equivocations before they reach the tally.
	ingested map[primitives.ValidatorIndex]*types.Attestation

	latestJustified types.Checkpoint
	latestFinalized types.Checkpoint
}

// New creates an engine with the genesis checkpoint pre-justified and
// pre-finalized.
func New(tree *blocktree.Store, weights WeightReader) *Engine {
	genesis := types.Checkpoint{
		Root: tree.GenesisRoot(),
		Slot: params.ThreeSlotConfig().GenesisSlot,
	}
	e := &Engine{
		tree:            tree,
		weights:         weights,
		justified:       map[types.Checkpoint]bool{genesis: true},
		finalized:       map[types.Checkpoint]bool{genesis: true},
		linkWeight:      make(map[link]uint64),
		linkVoters:      make(map[link]map[primitives.ValidatorIndex]bool),
		ingested:        make(map[primitives.ValidatorIndex]*types.Attestation),
		latestJustified: genesis,
		latestFinalized: genesis,
	}
	return e
}

// Ingest validates and tallies one attestation. Rejections leave the
// justification state untouched; the attestation is simply excluded.
func (e *Engine) Ingest(ctx context.Context, att *types.Attestation) error {
	_, span := trace.StartSpan(ctx, "ffg.Ingest")
	defer span.End()

	e.Lock()
	defer e.Unlock()

	if err := e.validate(att); err != nil {
		rejectedAttestationCount.Inc()
		return err
	}

	// A second attestation for the same slot either duplicates the first,
	// which is a no-op, or conflicts with it, which is an equivocation and
	// must not reach the tally.
	if prev, ok := e.ingested[att.ValidatorIndex]; ok && prev.Slot == att.Slot {
		if prev.Equal(att) {
			return nil
		}
		rejectedAttestationCount.Inc()
		return ErrEquivocation
	}
	e.ingested[att.ValidatorIndex] = att

	l := link{source: att.Source, target: att.Target}
	voters, ok := e.linkVoters[l]
	if !ok {
		voters = make(map[primitives.ValidatorIndex]bool)
		e.linkVoters[l] = voters
	}
	if voters[att.ValidatorIndex] {
		// Weight already counted for this link.
		return nil
	}
	weight, ok := e.weights.Weight(att.ValidatorIndex)
	if !ok {
		rejectedAttestationCount.Inc()
		return ErrUnknownCheckpoint
	}
	voters[att.ValidatorIndex] = true
	e.linkWeight[l] += weight
	processedAttestationCount.Inc()

	return e.processJustification(l)
}

func (e *Engine) validate(att *types.Attestation) error {
	if !e.justified[att.Source] {
		return ErrUnknownCheckpoint
	}
	if !e.tree.HasBlock(att.Target.Root) {
		return ErrUnknownCheckpoint
	}
	if att.Target.Slot <= att.Source.Slot {
		return ErrInvalidLink
	}
	span := uint64(att.Target.Slot - att.Source.Slot)
	if span > params.ThreeSlotConfig().FinalityWindow {
		return ErrInvalidLink
	}
	if !e.tree.IsDescendant(att.Target.Root, att.Source.Root) {
		return ErrInvalidLink
	}
	return nil
}

// processJustification promotes the link's target once it has gathered a
// supermajority, then runs the finalization check on the source.
func (e *Engine) processJustification(l link) error {
	// Supermajority is two thirds of total registered weight, compared in
	// integer arithmetic: 3*w >= 2*total.
	if 3*e.linkWeight[l] < 2*e.weights.TotalWeight() {
		return nil
	}
	if e.justified[l.target] {
		return nil
	}
	e.justified[l.target] = true
	if l.target.Slot > e.latestJustified.Slot {
		e.latestJustified = l.target
	}
	justifiedSlotNumber.Set(float64(e.latestJustified.Slot))
	log.WithFields(logrus.Fields{
		"target": l.target.String(),
		"source": l.source.String(),
	}).Debug("Checkpoint justified")

	return e.processFinalization(l)
}

// processFinalization finalizes the link's source when the link is
// consecutive: no justified checkpoint sits strictly between source and
// target on that chain. The slot span is already known to be within the
// finality window from validation, so a supermajority link over consecutive
// justified checkpoints is exactly the 3-slot finality condition.
func (e *Engine) processFinalization(l link) error {
	for cp := range e.justified {
		if cp.Slot <= l.source.Slot || cp.Slot >= l.target.Slot {
			continue
		}
		if e.tree.IsDescendant(cp.Root, l.source.Root) && e.tree.IsDescendant(l.target.Root, cp.Root) {
			// An intermediate justified checkpoint exists; the link is not
			// consecutive and finalizes nothing.
			return nil
		}
	}
	if e.finalized[l.source] {
		return nil
	}
	// Finalization only ever advances along a single chain. A source that
	// conflicts with what is already final indicates a broken engine, not a
	// recoverable input error.
	if !e.tree.IsDescendant(l.source.Root, e.latestFinalized.Root) &&
		!e.tree.IsDescendant(e.latestFinalized.Root, l.source.Root) {
		return ErrInvariantViolation
	}
	e.finalized[l.source] = true
	if l.source.Slot > e.latestFinalized.Slot {
		e.latestFinalized = l.source
	}
	finalizedSlotNumber.Set(float64(e.latestFinalized.Slot))
	log.WithField("checkpoint", l.source.String()).Info("Checkpoint finalized")
	return nil
}

// JustifiedCheckpoints returns every justified checkpoint ordered by slot,
// ties broken by root, so that two identical runs report identical output.
func (e *Engine) JustifiedCheckpoints() []types.Checkpoint {
	e.RLock()
	defer e.RUnlock()
	cps := make([]types.Checkpoint, 0, len(e.justified))
	for cp := range e.justified {
		cps = append(cps, cp)
	}
	sort.Slice(cps, func(i, j int) bool {
		if cps[i].Slot != cps[j].Slot {
			return cps[i].Slot < cps[j].Slot
		}
		return bytesutil.LowerThan(cps[i].Root, cps[j].Root)
	})
	return cps
}

// IsJustified reports whether the checkpoint has been justified.
func (e *Engine) IsJustified(cp types.Checkpoint) bool {
	e.RLock()
	defer e.RUnlock()
	return e.justified[cp]
}

// IsFinalized reports whether the checkpoint has been finalized.
func (e *Engine) IsFinalized(cp types.Checkpoint) bool {
	e.RLock()
	defer e.RUnlock()
	return e.finalized[cp]
}

// LatestJustified returns the justified checkpoint with the highest slot.
// Honest validators use it as the source of their next attestation.
func (e *Engine) LatestJustified() types.Checkpoint {
	e.RLock()
	defer e.RUnlock()
	return e.latestJustified
}

// FinalizedCheckpoint returns the highest finalized checkpoint. The
// finalized set is totally ordered by ancestry, so the highest one implies
// all the others.
func (e *Engine) FinalizedCheckpoint() types.Checkpoint {
	e.RLock()
	defer e.RUnlock()
	return e.latestFinalized
}

// CheckSafety verifies the core safety invariant: the finalized set forms a
// single ancestor chain. It returns ErrInvariantViolation when two finalized
// checkpoints are mutually non-ancestral.
func (e *Engine) CheckSafety() error {
	e.RLock()
	defer e.RUnlock()
	cps := make([]types.Checkpoint, 0, len(e.finalized))
	for cp := range e.finalized {
		cps = append(cps, cp)
	}
	for i := 0; i < len(cps); i++ {
		for j := i + 1; j < len(cps); j++ {
			a, b := cps[i], cps[j]
			if !e.tree.IsDescendant(a.Root, b.Root) && !e.tree.IsDescendant(b.Root, a.Root) {
				return ErrInvariantViolation
			}
		}
	}
	return nil
}
