// SPDX-License-Identifier: MIT
// File: errors.go
// Role: sentinel errors for the writer package (spec §7's IOError class).
package writer

import "errors"

// ErrWriteFailed indicates a failure to append rows to or finalize the
// output sink.
var ErrWriteFailed = errors.New("writer: write failed")
