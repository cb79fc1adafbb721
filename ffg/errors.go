package ffg

import "errors"

// ErrUnknownCheckpoint is returned when an attestation references a source
// checkpoint that is not justified or a block the tree does not know.
var ErrUnknownCheckpoint = errors.New("unknown or unjustified checkpoint")

// ErrInvalidLink is returned when an attestation's source and target do not
// form a valid justification link: the target does not descend from the
// source, or the slot span is outside the finality window.
var ErrInvalidLink = errors.New("invalid justification link")

// ErrEquivocation is returned when a validator submits a second, different
// attestation for a slot it already attested in. The attestation is not
// tallied.
var ErrEquivocation = errors.New("equivocating attestation")

// ErrInvariantViolation signals that two finalized checkpoints conflict.
// This must never happen; callers abort the simulation on it rather than
// continue in an unsafe state.
var ErrInvariantViolation = errors.New("finality safety invariant violated")
