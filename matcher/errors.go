// SPDX-License-Identifier: MIT
// File: errors.go
// Role: sentinel errors for the matcher package (spec §7's
// InternalInvariantViolated class, as it applies to stage bookkeeping).
package matcher

import "errors"

// ErrInvariantViolated indicates a defensive check inside a stage
// tripped on otherwise-valid input: a bug, never a user error.
var ErrInvariantViolated = errors.New("matcher: invariant violated")
