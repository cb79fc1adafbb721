// Package types defines the immutable consensus containers shared by the
// block tree, the fork choice store and the finality engine: blocks,
// checkpoints, attestations and validator records.
package types

import (
	"github.com/prysmaticlabs/threeslot/consensus-types/primitives"
	"github.com/prysmaticlabs/threeslot/crypto/hash"
	"github.com/prysmaticlabs/threeslot/encoding/bytesutil"
)

// Block is a single record in the block tree. Blocks are immutable once
// created, their identity is the root computed at construction time.
type Block struct {
	slot          primitives.Slot
	proposerIndex primitives.ValidatorIndex
	parentRoot    [32]byte
	root          [32]byte
}

// NewBlock creates a block extending the given parent. The root commits to
// the parent root, slot and proposer index so that two proposals with
// different contents can never collide.
func NewBlock(parentRoot [32]byte, slot primitives.Slot, proposerIndex primitives.ValidatorIndex) *Block {
	buf := make([]byte, 0, 48)
	buf = append(buf, parentRoot[:]...)
	buf = append(buf, bytesutil.Uint64ToBytesLittleEndian(slot.Uint64())...)
	buf = append(buf, bytesutil.Uint64ToBytesLittleEndian(uint64(proposerIndex))...)
	return &Block{
		slot:          slot,
		proposerIndex: proposerIndex,
		parentRoot:    parentRoot,
		root:          hash.Hash(buf),
	}
}

// NewGenesisBlock returns the fixed root of the tree. Its parent root is the
// zero sentinel and its slot is zero.
func NewGenesisBlock() *Block {
	return NewBlock([32]byte{}, 0, 0)
}

// Root of the block.
func (b *Block) Root() [32]byte {
	return b.root
}

// ParentRoot of the block. The zero value marks genesis.
func (b *Block) ParentRoot() [32]byte {
	return b.parentRoot
}

// Slot of the block.
func (b *Block) Slot() primitives.Slot {
	return b.slot
}

// ProposerIndex of the validator that proposed the block.
func (b *Block) ProposerIndex() primitives.ValidatorIndex {
	return b.proposerIndex
}

// IsGenesis returns true for the root of the tree.
func (b *Block) IsGenesis() bool {
	return b.parentRoot == [32]byte{} && b.slot == 0
}
