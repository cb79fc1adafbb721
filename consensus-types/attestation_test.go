package types

import (
	"testing"

	"github.com/prysmaticlabs/threeslot/testing/assert"
)

func TestAttestation_Equal(t *testing.T) {
	base := func() *Attestation {
		return &Attestation{
			ValidatorIndex: 1,
			Slot:           2,
			Source:         Checkpoint{Root: [32]byte{0x01}, Slot: 1},
			Target:         Checkpoint{Root: [32]byte{0x02}, Slot: 2},
			HeadRoot:       [32]byte{0x02},
		}
	}

	assert.Equal(t, true, base().Equal(base()))
	assert.Equal(t, false, base().Equal(nil))

	other := base()
	other.HeadRoot = [32]byte{0x03}
	assert.Equal(t, false, base().Equal(other))

	other = base()
	other.Source.Slot = 0
	assert.Equal(t, false, base().Equal(other))

	other = base()
	other.Slot = 3
	assert.Equal(t, false, base().Equal(other))
}

func TestCheckpoint_String(t *testing.T) {
	cp := Checkpoint{Root: [32]byte{0xde, 0xad, 0xbe, 0xef}, Slot: 7}
	assert.Equal(t, "0xdeadbeef@7", cp.String())
}
