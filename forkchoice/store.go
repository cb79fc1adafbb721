// Package forkchoice implements the RLMD-GHOST fork choice rule: the head
// is selected by greedily descending the heaviest-observed subtree, counting
// only each validator's latest non-expired head vote. The store holds no
// state of its own beyond the last head; subtree weights are a pure function
// of the block tree and the current vote set and are recomputed per call.
package forkchoice

import (
	"context"

	"github.com/prysmaticlabs/threeslot/blocktree"
	"github.com/prysmaticlabs/threeslot/config/params"
	types "github.com/prysmaticlabs/threeslot/consensus-types"
	"github.com/prysmaticlabs/threeslot/consensus-types/primitives"
	"github.com/prysmaticlabs/threeslot/encoding/bytesutil"
	"go.opencensus.io/trace"
)

// VoteReader provides read-only access to the registry's latest messages.
type VoteReader interface {
	// Validators returns the registry records in validator index order.
	Validators() []*types.Validator
	// IsEquivocating reports whether the validator was flagged for
	// producing conflicting attestations at the given slot.
	IsEquivocating(idx primitives.ValidatorIndex, slot primitives.Slot) bool
}

// FinalityReader supplies the highest finalized checkpoint, below which fork
// choice never considers competing branches.
type FinalityReader interface {
	FinalizedCheckpoint() types.Checkpoint
}

// Store computes canonical heads over a block tree and a vote set.
type Store struct {
	tree     *blocktree.Store
	votes    VoteReader
	finality FinalityReader
	lastHead [32]byte
}

// New creates a fork choice store reading from the given collaborators.
func New(tree *blocktree.Store, votes VoteReader, finality FinalityReader) *Store {
	return &Store{
		tree:     tree,
		votes:    votes,
		finality: finality,
	}
}

// Head returns the canonical head root for the given slot. The walk starts
// at the highest finalized block, finalized history is immutable, and ends
// at a leaf. At every fork the child with the greatest subtree weight wins;
// equal weights are broken by the lexicographically lowest root so that all
// honest observers converge on the same head. A finalized block with no
// descendants is itself the head.
func (f *Store) Head(ctx context.Context, currentSlot primitives.Slot) ([32]byte, error) {
	_, span := trace.StartSpan(ctx, "forkchoice.Head")
	defer span.End()
	calledHeadCount.Inc()

	start := f.finality.FinalizedCheckpoint().Root
	if start == params.ThreeSlotConfig().ZeroHash {
		start = f.tree.GenesisRoot()
	}
	if !f.tree.HasBlock(start) {
		return [32]byte{}, errUnknownStartRoot
	}

	votes := f.latestVotes(currentSlot)
	weights := make(map[[32]byte]uint64, f.tree.NodeCount())
	f.subtreeWeight(start, votes, weights)

	head := start
	for {
		children := f.tree.ChildrenOf(head)
		if len(children) == 0 {
			break
		}
		best, err := f.bestChild(children, weights)
		if err != nil {
			return [32]byte{}, err
		}
		head = best
	}

	if head != f.lastHead {
		headChangesCount.Inc()
		f.lastHead = head
	}
	if b, err := f.tree.Block(head); err == nil {
		headSlotNumber.Set(float64(b.Slot()))
	}
	return head, nil
}

// subtreeWeight accumulates, for every block under root, the summed weight
// of latest votes cast for the block or any of its descendants.
func (f *Store) subtreeWeight(root [32]byte, votes map[[32]byte]uint64, weights map[[32]byte]uint64) uint64 {
	total := votes[root]
	for _, child := range f.tree.ChildrenOf(root) {
		total += f.subtreeWeight(child, votes, weights)
	}
	weights[root] = total
	return total
}

// bestChild picks the heaviest child, breaking weight ties by lowest root.
func (f *Store) bestChild(children [][32]byte, weights map[[32]byte]uint64) ([32]byte, error) {
	best := children[0]
	for _, c := range children[1:] {
		w, bw := weights[c], weights[best]
		if w < bw {
			continue
		}
		if w == bw {
			if c == best {
				return [32]byte{}, ErrTieBreakFailure
			}
			if !bytesutil.LowerThan(c, best) {
				continue
			}
		}
		best = c
	}
	return best, nil
}
