package qppvalidator

import "errors"

// ErrInvariant signals a programming or upstream-decoder invariant
// violation discovered mid-validation. It aborts the pass for the current
// document; it is never reported as a Detail because the accumulated
// findings can no longer be trusted.
var ErrInvariant = errors.New("validation invariant violated")
