package forkchoice

import "errors"

var errUnknownStartRoot = errors.New("start root not found in block tree")

// ErrTieBreakFailure signals that two distinct children compared equal in
// both weight and root. That cannot happen with unique block roots, so it is
// a fatal invariant violation: callers must abort instead of guessing a head.
var ErrTieBreakFailure = errors.New("fork choice tie-break failure between identical roots")
