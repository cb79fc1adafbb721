// Package blocktree implements the append-only store of blocks backing both
// the fork choice and the finality engine. Blocks are kept in an arena of
// root-keyed nodes with parent links and insertion-ordered children lists.
// Nothing is ever deleted; the simulation does not prune finalized history.
package blocktree

import (
	"sync"

	types "github.com/prysmaticlabs/threeslot/consensus-types"
	"github.com/prysmaticlabs/threeslot/consensus-types/primitives"
)

type node struct {
	block    *types.Block
	children [][32]byte
}

// Store is the block tree. It is safe for concurrent readers with a single
// writer.
type Store struct {
	sync.RWMutex
	nodes       map[[32]byte]*node
	genesisRoot [32]byte
}

// New creates a tree containing only the genesis block.
func New() *Store {
	genesis := types.NewGenesisBlock()
	s := &Store{
		nodes:       make(map[[32]byte]*node),
		genesisRoot: genesis.Root(),
	}
	s.nodes[genesis.Root()] = &node{block: genesis}
	nodeCount.Set(1)
	return s
}

// GenesisRoot returns the root of the fixed genesis block.
func (s *Store) GenesisRoot() [32]byte {
	return s.genesisRoot
}

// Insert adds a block to the tree. The parent must already be present and
// the block's slot must be strictly greater than the parent's.
func (s *Store) Insert(b *types.Block) error {
	s.Lock()
	defer s.Unlock()

	root := b.Root()
	if _, ok := s.nodes[root]; ok {
		return ErrDuplicateRoot
	}
	parent, ok := s.nodes[b.ParentRoot()]
	if !ok {
		return ErrUnknownParent
	}
	if b.Slot() <= parent.block.Slot() {
		return ErrNonMonotonicSlot
	}
	s.nodes[root] = &node{block: b}
	parent.children = append(parent.children, root)

	insertedBlockCount.Inc()
	nodeCount.Set(float64(len(s.nodes)))
	return nil
}

// Block returns the block with the given root, if known.
func (s *Store) Block(root [32]byte) (*types.Block, error) {
	s.RLock()
	defer s.RUnlock()
	n, ok := s.nodes[root]
	if !ok {
		return nil, ErrUnknownBlock
	}
	return n.block, nil
}

// HasBlock returns true if the root is in the tree.
func (s *Store) HasBlock(root [32]byte) bool {
	s.RLock()
	defer s.RUnlock()
	_, ok := s.nodes[root]
	return ok
}

// AncestorAt walks parent links from the given root and returns the ancestor
// whose slot is the highest one not exceeding the requested slot. Walking is
// O(depth), which is acceptable at simulation scale.
func (s *Store) AncestorAt(root [32]byte, slot primitives.Slot) ([32]byte, error) {
	s.RLock()
	defer s.RUnlock()

	n, ok := s.nodes[root]
	if !ok {
		return [32]byte{}, ErrUnknownBlock
	}
	for n.block.Slot() > slot {
		parent, ok := s.nodes[n.block.ParentRoot()]
		if !ok {
			// The walk fell off the tree below genesis.
			return [32]byte{}, ErrUnknownBlock
		}
		n = parent
	}
	return n.block.Root(), nil
}

// IsDescendant returns true if candidate is the ancestor block itself or
// lies in its subtree. Unknown roots are not descendants of anything.
func (s *Store) IsDescendant(candidate, ancestor [32]byte) bool {
	s.RLock()
	defer s.RUnlock()

	n, ok := s.nodes[candidate]
	if !ok {
		return false
	}
	if _, ok := s.nodes[ancestor]; !ok {
		return false
	}
	for {
		if n.block.Root() == ancestor {
			return true
		}
		if n.block.Root() == s.genesisRoot {
			return false
		}
		parent, ok := s.nodes[n.block.ParentRoot()]
		if !ok {
			return false
		}
		n = parent
	}
}

// ChildrenOf returns the children of the given root in insertion order. The
// returned slice is a copy.
func (s *Store) ChildrenOf(root [32]byte) [][32]byte {
	s.RLock()
	defer s.RUnlock()
	n, ok := s.nodes[root]
	if !ok {
		return nil
	}
	children := make([][32]byte, len(n.children))
	copy(children, n.children)
	return children
}

// NodeCount returns the number of blocks in the tree, genesis included.
func (s *Store) NodeCount() int {
	s.RLock()
	defer s.RUnlock()
	return len(s.nodes)
}
