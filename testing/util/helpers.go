// Package util contains fixtures shared by the engine tests.
package util

import (
	"testing"

	"github.com/prysmaticlabs/threeslot/blocktree"
	"github.com/prysmaticlabs/threeslot/config/params"
	types "github.com/prysmaticlabs/threeslot/consensus-types"
	"github.com/prysmaticlabs/threeslot/consensus-types/primitives"
)

// SetupConfig installs the given protocol config for the duration of the
// test and restores the previous one afterwards.
func SetupConfig(t *testing.T, cfg *params.ProtocolConfig) {
	prev := params.ThreeSlotConfig()
	params.OverrideProtocolConfig(cfg)
	t.Cleanup(func() {
		params.OverrideProtocolConfig(prev)
	})
}

// EqualWeightConfig returns a config with the given number of validators at
// weight one each, keeping the default protocol windows.
func EqualWeightConfig(numValidators uint64) *params.ProtocolConfig {
	cfg := params.DefaultProtocolConfig()
	cfg.NumValidators = numValidators
	cfg.ValidatorWeight = 1
	return cfg
}

// ExtendChain inserts a linear chain of n blocks on top of the given parent
// and returns the new blocks in slot order.
func ExtendChain(t *testing.T, tree *blocktree.Store, parentRoot [32]byte, n int) []*types.Block {
	parent, err := tree.Block(parentRoot)
	if err != nil {
		t.Fatalf("unknown parent for chain extension: %v", err)
	}
	blocks := make([]*types.Block, 0, n)
	slot := parent.Slot()
	root := parentRoot
	for i := 0; i < n; i++ {
		slot = slot.Add(1)
		b := types.NewBlock(root, slot, 0)
		if err := tree.Insert(b); err != nil {
			t.Fatalf("could not insert chain block at slot %d: %v", slot, err)
		}
		root = b.Root()
		blocks = append(blocks, b)
	}
	return blocks
}

// NewAttestation builds an attestation voting the given block as both head
// and target, from the given source.
func NewAttestation(idx primitives.ValidatorIndex, source types.Checkpoint, target *types.Block) *types.Attestation {
	return &types.Attestation{
		ValidatorIndex: idx,
		Slot:           target.Slot(),
		Source:         source,
		Target:         types.Checkpoint{Root: target.Root(), Slot: target.Slot()},
		HeadRoot:       target.Root(),
	}
}
