package forkchoice

import (
	"context"
	"testing"

	"github.com/prysmaticlabs/threeslot/blocktree"
	types "github.com/prysmaticlabs/threeslot/consensus-types"
	"github.com/prysmaticlabs/threeslot/consensus-types/primitives"
	"github.com/prysmaticlabs/threeslot/testing/assert"
	"github.com/prysmaticlabs/threeslot/testing/require"
	"github.com/prysmaticlabs/threeslot/testing/util"
)

// mockVotes is a VoteReader over a fixed validator slice.
type mockVotes struct {
	validators   []*types.Validator
	equivocators map[primitives.ValidatorIndex]primitives.Slot
}

func (m *mockVotes) Validators() []*types.Validator {
	return m.validators
}

func (m *mockVotes) IsEquivocating(idx primitives.ValidatorIndex, slot primitives.Slot) bool {
	s, ok := m.equivocators[idx]
	return ok && s == slot
}

// mockFinality pins the finalized checkpoint.
type mockFinality struct {
	checkpoint types.Checkpoint
}

func (m *mockFinality) FinalizedCheckpoint() types.Checkpoint {
	return m.checkpoint
}

func votersFor(root [32]byte, slot primitives.Slot, indices ...primitives.ValidatorIndex) []*types.Validator {
	validators := make([]*types.Validator, 0, len(indices))
	for _, idx := range indices {
		validators = append(validators, &types.Validator{
			Index:  idx,
			Weight: 1,
			LatestAttestation: &types.Attestation{
				ValidatorIndex: idx,
				Slot:           slot,
				HeadRoot:       root,
			},
		})
	}
	return validators
}

func TestHead_NoVotesDescendsToLeaf(t *testing.T) {
	util.SetupConfig(t, util.EqualWeightConfig(4))
	tree := blocktree.New()
	blocks := util.ExtendChain(t, tree, tree.GenesisRoot(), 3)

	f := New(tree, &mockVotes{}, &mockFinality{})
	head, err := f.Head(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, blocks[2].Root(), head)
}

func TestHead_FinalizedBlockWithoutDescendants(t *testing.T) {
	util.SetupConfig(t, util.EqualWeightConfig(4))
	tree := blocktree.New()

	f := New(tree, &mockVotes{}, &mockFinality{})
	head, err := f.Head(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, tree.GenesisRoot(), head)
}

func TestHead_MajorityFork(t *testing.T) {
	util.SetupConfig(t, util.EqualWeightConfig(4))
	tree := blocktree.New()
	b1 := types.NewBlock(tree.GenesisRoot(), 1, 0)
	require.NoError(t, tree.Insert(b1))
	x := types.NewBlock(b1.Root(), 2, 1)
	require.NoError(t, tree.Insert(x))
	y := types.NewBlock(b1.Root(), 2, 2)
	require.NoError(t, tree.Insert(y))

	validators := append(votersFor(x.Root(), 2, 0, 1, 2), votersFor(y.Root(), 2, 3)...)
	f := New(tree, &mockVotes{validators: validators}, &mockFinality{})

	head, err := f.Head(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, x.Root(), head)
}

func TestHead_EqualWeightForkUsesLowestRoot(t *testing.T) {
	util.SetupConfig(t, util.EqualWeightConfig(4))
	tree := blocktree.New()
	b1 := types.NewBlock(tree.GenesisRoot(), 1, 0)
	require.NoError(t, tree.Insert(b1))
	x := types.NewBlock(b1.Root(), 2, 1)
	require.NoError(t, tree.Insert(x))
	y := types.NewBlock(b1.Root(), 2, 2)
	require.NoError(t, tree.Insert(y))

	want := x.Root()
	if !lowerRoot(x.Root(), y.Root()) {
		want = y.Root()
	}

	validators := append(votersFor(x.Root(), 2, 0, 1), votersFor(y.Root(), 2, 2, 3)...)

	// The same inputs must resolve the tie the same way on every run.
	for i := 0; i < 10; i++ {
		f := New(tree, &mockVotes{validators: validators}, &mockFinality{})
		head, err := f.Head(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, want, head)
	}
}

func TestHead_StartsAtFinalizedCheckpoint(t *testing.T) {
	util.SetupConfig(t, util.EqualWeightConfig(4))
	tree := blocktree.New()
	// Fork at genesis: a short heavy branch and the finalized branch.
	heavy := types.NewBlock(tree.GenesisRoot(), 1, 0)
	require.NoError(t, tree.Insert(heavy))
	fin := types.NewBlock(tree.GenesisRoot(), 1, 1)
	require.NoError(t, tree.Insert(fin))
	child := types.NewBlock(fin.Root(), 2, 2)
	require.NoError(t, tree.Insert(child))

	// All weight votes the competing branch, but fork choice must never
	// walk below finality.
	validators := votersFor(heavy.Root(), 2, 0, 1, 2, 3)
	finality := &mockFinality{checkpoint: types.Checkpoint{Root: fin.Root(), Slot: 1}}
	f := New(tree, &mockVotes{validators: validators}, finality)

	head, err := f.Head(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, child.Root(), head)
}

func TestHead_UnknownStartRoot(t *testing.T) {
	util.SetupConfig(t, util.EqualWeightConfig(4))
	tree := blocktree.New()
	finality := &mockFinality{checkpoint: types.Checkpoint{Root: [32]byte{0xee}, Slot: 1}}
	f := New(tree, &mockVotes{}, finality)

	_, err := f.Head(context.Background(), 1)
	require.ErrorIs(t, errUnknownStartRoot, err)
}

func lowerRoot(x, y [32]byte) bool {
	for i := range x {
		if x[i] != y[i] {
			return x[i] < y[i]
		}
	}
	return false
}
