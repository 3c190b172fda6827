// SPDX-License-Identifier: MIT
// Package: scwrap/builder
//
// errors.go — sentinel errors for the builder package.
//
// Error policy:
//   • Only package-level sentinels are exposed; callers branch with errors.Is.
//   • Context is attached with %w at the failure site (builderErrorf).
//   • Configuration problems found while planning wrap the config package
//     sentinels (ErrWidth, ErrHardWireInput, ...) so the assembler can
//     classify them without knowing which builder failed.
//   • Builders never panic on caller input; option constructors do.

package builder

import (
	"errors"
	"fmt"
)

// ErrLFSRWidth indicates an LFSR wider than the tap table (64 bits).
// Typical origin: SingleLFSR with m·degree > 64.
var ErrLFSRWidth = errors.New("builder: no feedback taps for LFSR width")

// ErrPlan indicates a nil or inconsistent Plan (coefficient count, indices).
var ErrPlan = errors.New("builder: invalid plan")

// ErrOperands indicates value/random reference lists that do not match the
// number of elements of a role.
var ErrOperands = errors.New("builder: operand count mismatch")

// builderErrorf prefixes a wrapped error with the method name:
// "<Method>: <formatted message>". Use %w in format to keep the sentinel.
func builderErrorf(method, format string, args ...interface{}) error {
	return fmt.Errorf("%s: "+format, append([]interface{}{method}, args...)...)
}
