package params

import (
	"testing"

	"github.com/prysmaticlabs/threeslot/testing/assert"
	"github.com/prysmaticlabs/threeslot/testing/require"
)

func TestOverrideProtocolConfig(t *testing.T) {
	prev := ThreeSlotConfig()
	defer OverrideProtocolConfig(prev)

	cfg := DefaultProtocolConfig()
	cfg.NumValidators = 42
	OverrideProtocolConfig(cfg)
	assert.Equal(t, uint64(42), ThreeSlotConfig().NumValidators)
}

func TestCopy_DoesNotAliasOriginal(t *testing.T) {
	cfg := DefaultProtocolConfig()
	cp := cfg.Copy()
	cp.NumValidators = 1
	cp.FinalityWindow = 9
	assert.Equal(t, uint64(100), cfg.NumValidators)
	assert.Equal(t, uint64(3), cfg.FinalityWindow)
}

func TestTotalWeight(t *testing.T) {
	cfg := DefaultProtocolConfig()
	cfg.NumValidators = 10
	cfg.ValidatorWeight = 32
	assert.Equal(t, uint64(320), cfg.TotalWeight())
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultProtocolConfig().Validate())

	cfg := DefaultProtocolConfig()
	cfg.NumValidators = 0
	require.ErrorContains(t, "NUM_VALIDATORS", cfg.Validate())

	cfg = DefaultProtocolConfig()
	cfg.ValidatorWeight = 0
	require.ErrorContains(t, "VALIDATOR_WEIGHT", cfg.Validate())

	cfg = DefaultProtocolConfig()
	cfg.FinalityWindow = 0
	require.ErrorContains(t, "FINALITY_WINDOW", cfg.Validate())
}
