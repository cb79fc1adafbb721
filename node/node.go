// Package node ties the engines together into a simulation node: it owns
// the validator registry and sequences one slot's worth of proposing and
// attesting against the block tree, the fork choice store and the finality
// engine.
package node

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/threeslot/blocktree"
	"github.com/prysmaticlabs/threeslot/config/params"
	types "github.com/prysmaticlabs/threeslot/consensus-types"
	"github.com/prysmaticlabs/threeslot/consensus-types/primitives"
	"github.com/prysmaticlabs/threeslot/ffg"
	"github.com/prysmaticlabs/threeslot/forkchoice"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

var log = logrus.WithField("prefix", "node")

// Behavior decides which attestations a validator actually emits for a
// slot, given the attestation an honest validator would cast. Returning nil
// models an offline validator; returning two different attestations models
// an equivocator. The engines never see this type; validator personality
// stays a concern of the driver.
type Behavior func(idx primitives.ValidatorIndex, slot primitives.Slot, honest *types.Attestation) []*types.Attestation

// HonestBehavior emits exactly the honest attestation.
func HonestBehavior(_ primitives.ValidatorIndex, _ primitives.Slot, honest *types.Attestation) []*types.Attestation {
	return []*types.Attestation{honest}
}

// Config options for a simulation node.
type Config struct {
	// Behavior applied to every validator each slot. Defaults to
	// HonestBehavior when nil.
	Behavior Behavior
}

// Node orchestrates the protocol over discrete slots.
type Node struct {
	tree        *blocktree.Store
	registry    *Registry
	engine      *ffg.Engine
	fc          *forkchoice.Store
	behavior    Behavior
	currentSlot primitives.Slot
	head        [32]byte
}

// New wires a fresh block tree, registry, finality engine and fork choice
// store into a node positioned at the genesis slot.
func New(cfg *Config) *Node {
	if cfg == nil {
		cfg = &Config{}
	}
	behavior := cfg.Behavior
	if behavior == nil {
		behavior = HonestBehavior
	}
	tree := blocktree.New()
	registry := NewRegistry()
	engine := ffg.New(tree, registry)
	fc := forkchoice.New(tree, registry, engine)
	return &Node{
		tree:        tree,
		registry:    registry,
		engine:      engine,
		fc:          fc,
		behavior:    behavior,
		currentSlot: params.ThreeSlotConfig().GenesisSlot,
		head:        tree.GenesisRoot(),
	}
}

// AdvanceSlot runs one full slot: pick the proposer, extend the head with a
// new block, let every validator attest and feed the attestations to the
// finality engine in validator index order. Rejected attestations are logged
// and excluded; they never abort the slot.
func (n *Node) AdvanceSlot(ctx context.Context) error {
	ctx, span := trace.StartSpan(ctx, "node.AdvanceSlot")
	defer span.End()

	cfg := params.ThreeSlotConfig()
	slot := n.currentSlot.Add(1)
	n.currentSlot = slot

	// Deterministic round-robin proposer.
	proposer := primitives.ValidatorIndex(slot.Uint64() % cfg.NumValidators)

	head, err := n.fc.Head(ctx, slot)
	if err != nil {
		return errors.Wrap(err, "could not compute head for proposal")
	}
	block := types.NewBlock(head, slot, proposer)
	if err := n.SubmitBlock(block); err != nil {
		return errors.Wrap(err, "could not insert proposed block")
	}
	n.head = block.Root()

	source := n.engine.LatestJustified()
	target := types.Checkpoint{Root: block.Root(), Slot: slot}

	for _, v := range n.registry.Validators() {
		honest := &types.Attestation{
			ValidatorIndex: v.Index,
			Slot:           slot,
			Source:         source,
			Target:         target,
			HeadRoot:       block.Root(),
		}
		for _, att := range n.behavior(v.Index, slot, honest) {
			if err := n.SubmitAttestation(ctx, att); err != nil {
				if errors.Is(err, ffg.ErrInvariantViolation) {
					return err
				}
				log.WithError(err).WithFields(logrus.Fields{
					"validator": att.ValidatorIndex,
					"slot":      att.Slot,
				}).Debug("Attestation rejected")
			}
		}
	}

	log.WithFields(logrus.Fields{
		"slot":      slot,
		"head":      logRoot(n.head),
		"proposer":  proposer,
		"justified": n.engine.LatestJustified().String(),
		"finalized": n.engine.FinalizedCheckpoint().String(),
	}).Info("Slot processed")
	return nil
}

// SubmitBlock inserts an externally built block into the tree.
func (n *Node) SubmitBlock(block *types.Block) error {
	return n.tree.Insert(block)
}

// SubmitAttestation records the attestation as the validator's latest
// message and feeds it to the finality engine. A same-slot conflicting
// attestation is flagged as an equivocation and its content is discarded:
// neither fork choice nor the finality tally count it.
func (n *Node) SubmitAttestation(ctx context.Context, att *types.Attestation) error {
	if prev := n.registry.latestAttestation(att.ValidatorIndex); prev != nil && prev.Slot == att.Slot && !prev.Equal(att) {
		n.registry.flagEquivocation(att.ValidatorIndex, att.Slot)
		return ffg.ErrEquivocation
	}
	n.registry.recordAttestation(att)
	return n.engine.Ingest(ctx, att)
}

// CurrentHead recomputes the canonical head for the given slot.
func (n *Node) CurrentHead(ctx context.Context, slot primitives.Slot) ([32]byte, error) {
	return n.fc.Head(ctx, slot)
}

// Head returns the head selected while processing the last slot.
func (n *Node) Head() [32]byte {
	return n.head
}

// CurrentSlot returns the last processed slot.
func (n *Node) CurrentSlot() primitives.Slot {
	return n.currentSlot
}

// JustifiedCheckpoints returns the justified set in slot order.
func (n *Node) JustifiedCheckpoints() []types.Checkpoint {
	return n.engine.JustifiedCheckpoints()
}

// FinalizedCheckpoint returns the highest finalized checkpoint.
func (n *Node) FinalizedCheckpoint() types.Checkpoint {
	return n.engine.FinalizedCheckpoint()
}

// Equivocations returns the append-only equivocation log.
func (n *Node) Equivocations() []primitives.ValidatorIndex {
	return n.registry.Equivocations()
}

// CheckSafety re-verifies the finality safety invariant.
func (n *Node) CheckSafety() error {
	return n.engine.CheckSafety()
}

// BlockTree exposes the read-only block store, used by reporting.
func (n *Node) BlockTree() *blocktree.Store {
	return n.tree
}

// Registry exposes the validator registry.
func (n *Node) Registry() *Registry {
	return n.registry
}

func logRoot(r [32]byte) string {
	return fmt.Sprintf("%#x", r[:4])
}
