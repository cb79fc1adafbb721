// Package simulator drives the protocol over a fixed number of slots and
// reports the resulting heads, justification and finalization. It is glue
// around the core engines: all consensus decisions happen in the node and
// below.
package simulator

import (
	"context"
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/prysmaticlabs/threeslot/config/params"
	"github.com/prysmaticlabs/threeslot/node"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "simulator")

// Parameters describe one simulation run.
type Parameters struct {
	NumValidators   uint64
	ValidatorWeight uint64
	SlotCount       uint64
	VoteExpirySlots uint64
	FinalityWindow  uint64
	// Validators that never attest.
	OfflineIndices []uint64
	// Validators that emit two conflicting attestations every slot.
	EquivocatorIndices []uint64
	// When non-empty, a Graphviz rendering of the final block tree is
	// written to this path.
	DotFilePath string
}

// DefaultParameters returns a small honest run.
func DefaultParameters() *Parameters {
	cfg := params.DefaultProtocolConfig()
	return &Parameters{
		NumValidators:   cfg.NumValidators,
		ValidatorWeight: cfg.ValidatorWeight,
		SlotCount:       16,
		VoteExpirySlots: cfg.VoteExpirySlots,
		FinalityWindow:  cfg.FinalityWindow,
	}
}

// Service runs a single simulation.
type Service struct {
	params *Parameters
	node   *node.Node
}

// NewService applies the run's protocol parameters to the global config and
// builds a node with the requested validator behaviors.
func NewService(p *Parameters) *Service {
	cfg := params.ThreeSlotConfig().Copy()
	cfg.NumValidators = p.NumValidators
	cfg.ValidatorWeight = p.ValidatorWeight
	cfg.VoteExpirySlots = p.VoteExpirySlots
	cfg.FinalityWindow = p.FinalityWindow
	params.OverrideProtocolConfig(cfg)

	return &Service{
		params: p,
		node:   node.New(&node.Config{Behavior: behaviorFor(p)}),
	}
}

// Node returns the underlying simulation node for inspection.
func (s *Service) Node() *node.Node {
	return s.node
}

// Run processes every slot in order, re-checking the finality safety
// invariant after each one. Any safety violation aborts the run.
func (s *Service) Run(ctx context.Context) error {
	log.WithFields(logrus.Fields{
		"validators": s.params.NumValidators,
		"slots":      s.params.SlotCount,
	}).Info("Starting 3-slot finality simulation")

	for i := uint64(0); i < s.params.SlotCount; i++ {
		if err := s.node.AdvanceSlot(ctx); err != nil {
			return errors.Wrapf(err, "slot %d failed", s.node.CurrentSlot())
		}
		if err := s.node.CheckSafety(); err != nil {
			return errors.Wrapf(err, "safety check failed after slot %d", s.node.CurrentSlot())
		}
	}

	finalized := s.node.FinalizedCheckpoint()
	log.WithFields(logrus.Fields{
		"finalized":     finalized.String(),
		"justified":     len(s.node.JustifiedCheckpoints()),
		"equivocations": len(s.node.Equivocations()),
		"blocks":        s.node.BlockTree().NodeCount(),
	}).Info("Simulation complete")

	if s.params.DotFilePath != "" {
		g, err := DrawTree(s.node)
		if err != nil {
			return errors.Wrap(err, "could not render block tree")
		}
		if err := ioutil.WriteFile(s.params.DotFilePath, []byte(g), 0644); err != nil {
			return errors.Wrap(err, "could not write dot file")
		}
		log.WithField("path", s.params.DotFilePath).Info("Wrote block tree rendering")
	}
	return nil
}
