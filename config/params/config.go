// Package params defines the protocol configuration for the simulation.
// Engines read every tunable from here rather than from hard-coded
// constants so that tests and multi-instance runs can override them.
package params

import (
	"github.com/prysmaticlabs/threeslot/consensus-types/primitives"
)

// ProtocolConfig contains the parameters of the 3-slot finality protocol and
// of the simulated validator set.
type ProtocolConfig struct {
	// Validator set.
	NumValidators   uint64 `yaml:"NUM_VALIDATORS" spec:"true"`   // Number of simulated validators.
	ValidatorWeight uint64 `yaml:"VALIDATOR_WEIGHT" spec:"true"` // Static weight assigned to every validator.

	// Time parameters.
	GenesisSlot     primitives.Slot `yaml:"GENESIS_SLOT" spec:"true"`      // Slot of the genesis block.
	VoteExpirySlots uint64          `yaml:"VOTE_EXPIRY_SLOTS" spec:"true"` // Head votes older than this many slots carry no fork choice weight.
	FinalityWindow  uint64          `yaml:"FINALITY_WINDOW" spec:"true"`   // Maximum source to target distance of a justification link.

	// Constants (non-configurable).
	ZeroHash [32]byte // Sentinel parent root of the genesis block.
}

var protocolConfig = DefaultProtocolConfig()

// ThreeSlotConfig retrieves the protocol config in use.
func ThreeSlotConfig() *ProtocolConfig {
	return protocolConfig
}

// DefaultProtocolConfig returns the default parameter set: the vote expiry
// period and the 3-slot finality window of the protocol description.
func DefaultProtocolConfig() *ProtocolConfig {
	return &ProtocolConfig{
		NumValidators:   100,
		ValidatorWeight: 1,
		GenesisSlot:     0,
		VoteExpirySlots: 5,
		FinalityWindow:  3,
		ZeroHash:        [32]byte{},
	}
}

// OverrideProtocolConfig replaces the config in use. Tests that override the
// config should restore the previous value when they finish.
func OverrideProtocolConfig(c *ProtocolConfig) {
	protocolConfig = c
}

// Copy returns a deep copy of the config so callers can tweak fields without
// mutating the shared instance.
func (c *ProtocolConfig) Copy() *ProtocolConfig {
	config := *c
	return &config
}

// TotalWeight of the configured validator set.
func (c *ProtocolConfig) TotalWeight() uint64 {
	return c.NumValidators * c.ValidatorWeight
}
