package types

import (
	"fmt"

	"github.com/prysmaticlabs/threeslot/consensus-types/primitives"
)

// Checkpoint is a (root, slot) pair designating a block as a justification
// anchor. In this protocol variant an anchor is taken every slot rather than
// every epoch, which is what enables 3-slot finality. Checkpoints compare by
// value.
type Checkpoint struct {
	Root [32]byte
	Slot primitives.Slot
}

// String returns a short human readable form used in logs.
func (c Checkpoint) String() string {
	return fmt.Sprintf("%#x@%d", c.Root[:4], c.Slot)
}
