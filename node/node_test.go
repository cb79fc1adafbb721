package node

import (
	"context"
	"testing"

	types "github.com/prysmaticlabs/threeslot/consensus-types"
	"github.com/prysmaticlabs/threeslot/consensus-types/primitives"
	"github.com/prysmaticlabs/threeslot/ffg"
	"github.com/prysmaticlabs/threeslot/testing/assert"
	"github.com/prysmaticlabs/threeslot/testing/require"
	"github.com/prysmaticlabs/threeslot/testing/util"
)

func TestAdvanceSlot_HonestRunFinalizesWithOneSlotLag(t *testing.T) {
	util.SetupConfig(t, util.EqualWeightConfig(4))
	n := New(nil)
	ctx := context.Background()

	// The first slot justifies its block; the direct link from genesis
	// finalizes nothing new.
	require.NoError(t, n.AdvanceSlot(ctx))
	assert.Equal(t, primitives.Slot(1), n.engine.LatestJustified().Slot)
	assert.Equal(t, primitives.Slot(0), n.FinalizedCheckpoint().Slot)

	// From then on the block at slot N-1 finalizes during slot N.
	for slot := primitives.Slot(2); slot <= 6; slot++ {
		require.NoError(t, n.AdvanceSlot(ctx))
		assert.Equal(t, slot, n.engine.LatestJustified().Slot)
		assert.Equal(t, slot.SubSaturating(1), n.FinalizedCheckpoint().Slot)
		require.NoError(t, n.CheckSafety())
	}

	assert.Equal(t, primitives.Slot(6), n.CurrentSlot())
	// One justified checkpoint per slot, plus genesis.
	assert.Equal(t, 7, len(n.JustifiedCheckpoints()))
	assert.Equal(t, 0, len(n.Equivocations()))

	// The finalized block is on the canonical chain below the head.
	head, err := n.CurrentHead(ctx, n.CurrentSlot())
	require.NoError(t, err)
	assert.Equal(t, n.Head(), head)
	assert.Equal(t, true, n.tree.IsDescendant(head, n.FinalizedCheckpoint().Root))
}

func TestAdvanceSlot_DeterministicAcrossNodes(t *testing.T) {
	util.SetupConfig(t, util.EqualWeightConfig(10))
	ctx := context.Background()

	a := New(nil)
	b := New(nil)
	for i := 0; i < 8; i++ {
		require.NoError(t, a.AdvanceSlot(ctx))
		require.NoError(t, b.AdvanceSlot(ctx))
		require.Equal(t, a.Head(), b.Head())
	}
	require.DeepEqual(t, a.JustifiedCheckpoints(), b.JustifiedCheckpoints())
	assert.Equal(t, a.FinalizedCheckpoint(), b.FinalizedCheckpoint())
}

func TestAdvanceSlot_OfflineMinorityStillFinalizes(t *testing.T) {
	util.SetupConfig(t, util.EqualWeightConfig(4))
	offline := func(idx primitives.ValidatorIndex, _ primitives.Slot, honest *types.Attestation) []*types.Attestation {
		if idx == 3 {
			return nil
		}
		return []*types.Attestation{honest}
	}
	n := New(&Config{Behavior: offline})
	ctx := context.Background()

	// Three of four validators carry a supermajority: 3*3 >= 2*4.
	for i := 0; i < 4; i++ {
		require.NoError(t, n.AdvanceSlot(ctx))
	}
	assert.Equal(t, primitives.Slot(3), n.FinalizedCheckpoint().Slot)
}

func TestAdvanceSlot_OfflineHalfStallsFinality(t *testing.T) {
	util.SetupConfig(t, util.EqualWeightConfig(4))
	offline := func(idx primitives.ValidatorIndex, _ primitives.Slot, honest *types.Attestation) []*types.Attestation {
		if idx >= 2 {
			return nil
		}
		return []*types.Attestation{honest}
	}
	n := New(&Config{Behavior: offline})
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		require.NoError(t, n.AdvanceSlot(ctx))
		require.NoError(t, n.CheckSafety())
	}

	// Half the weight never justifies anything, but the chain keeps growing.
	assert.Equal(t, primitives.Slot(0), n.engine.LatestJustified().Slot)
	assert.Equal(t, primitives.Slot(0), n.FinalizedCheckpoint().Slot)
	assert.Equal(t, primitives.Slot(4), n.CurrentSlot())
	head, err := n.tree.Block(n.Head())
	require.NoError(t, err)
	assert.Equal(t, primitives.Slot(4), head.Slot())
}

func TestAdvanceSlot_EquivocatorFlaggedAndDiscarded(t *testing.T) {
	util.SetupConfig(t, util.EqualWeightConfig(4))
	equivocating := func(idx primitives.ValidatorIndex, _ primitives.Slot, honest *types.Attestation) []*types.Attestation {
		if idx != 0 {
			return []*types.Attestation{honest}
		}
		conflicting := *honest
		conflicting.HeadRoot = honest.Source.Root
		return []*types.Attestation{honest, &conflicting}
	}
	n := New(&Config{Behavior: equivocating})
	ctx := context.Background()

	slots := 3
	for i := 0; i < slots; i++ {
		require.NoError(t, n.AdvanceSlot(ctx))
		require.NoError(t, n.CheckSafety())
	}

	// Flagged once per slot, every slot.
	log := n.Equivocations()
	require.Equal(t, slots, len(log))
	for _, idx := range log {
		assert.Equal(t, primitives.ValidatorIndex(0), idx)
	}
	assert.Equal(t, true, n.registry.IsEquivocating(0, 1))

	// The first attestation of each pair was already tallied, so
	// justification still proceeds at full pace.
	assert.Equal(t, primitives.Slot(2), n.FinalizedCheckpoint().Slot)
}

func TestSubmitAttestation_ConflictFlagsAndRejects(t *testing.T) {
	util.SetupConfig(t, util.EqualWeightConfig(4))
	n := New(nil)
	ctx := context.Background()

	require.NoError(t, n.AdvanceSlot(ctx))

	prev := n.registry.latestAttestation(1)
	require.NotNil(t, prev)
	conflicting := *prev
	conflicting.HeadRoot = [32]byte{0xfe}

	err := n.SubmitAttestation(ctx, &conflicting)
	require.ErrorIs(t, ffg.ErrEquivocation, err)
	assert.Equal(t, true, n.registry.IsEquivocating(1, prev.Slot))
	// The registry keeps the first message as the latest.
	assert.Equal(t, prev, n.registry.latestAttestation(1))
}
