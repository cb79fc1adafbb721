package types

import (
	"github.com/prysmaticlabs/threeslot/consensus-types/primitives"
)

// Validator is a registry record. Weight is static for the duration of a
// simulation run, there are no stake changes. LatestAttestation is the
// validator's latest message as seen by fork choice and is overwritten each
// time the validator attests.
type Validator struct {
	Index             primitives.ValidatorIndex
	Weight            uint64
	LatestAttestation *Attestation
}
