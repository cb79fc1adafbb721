package types

import (
	"testing"

	"github.com/prysmaticlabs/threeslot/testing/assert"
	"github.com/prysmaticlabs/threeslot/testing/require"
)

func TestNewBlock_RootCommitsToContents(t *testing.T) {
	genesis := NewGenesisBlock()

	b := NewBlock(genesis.Root(), 1, 3)
	// Identical inputs always produce the identical root.
	assert.Equal(t, b.Root(), NewBlock(genesis.Root(), 1, 3).Root())

	// Any field change produces a different root.
	assert.NotEqual(t, b.Root(), NewBlock(genesis.Root(), 2, 3).Root())
	assert.NotEqual(t, b.Root(), NewBlock(genesis.Root(), 1, 4).Root())
	assert.NotEqual(t, b.Root(), NewBlock(b.Root(), 1, 3).Root())

	assert.Equal(t, genesis.Root(), b.ParentRoot())
	assert.Equal(t, false, b.IsGenesis())
}

func TestNewGenesisBlock(t *testing.T) {
	genesis := NewGenesisBlock()
	require.Equal(t, true, genesis.IsGenesis())
	assert.Equal(t, [32]byte{}, genesis.ParentRoot())
	assert.NotEqual(t, [32]byte{}, genesis.Root())
	// Two instances agree on the root.
	assert.Equal(t, genesis.Root(), NewGenesisBlock().Root())
}
