// Package builder: validation helpers shared by NewPlan and the builders.
// Each returns a builderErrorf-wrapped sentinel.
package builder

import (
	"github.com/katalvlaran/scwrap/core"
	"github.com/katalvlaran/scwrap/quant"
)

// validateCoefficients checks count, indices and magnitudes (<= n).
func validateCoefficients(method string, coeffs []quant.Coefficient, n uint64) error {
	if len(coeffs) < 2 {
		return builderErrorf(method, "%d coefficients, degree must be >= 1: %w", len(coeffs), ErrPlan)
	}
	for i, c := range coeffs {
		if c.Index != i {
			return builderErrorf(method, "coefficient %d has index %d: %w", i, c.Index, ErrPlan)
		}
		if c.Value > n {
			return builderErrorf(method, "coefficient %d value %d exceeds N=%d: %w", i, c.Value, n, ErrPlan)
		}
	}
	return nil
}

// validateLFSRWidth checks that width has a tap set.
func validateLFSRWidth(method string, width int) error {
	if width < 1 || width > MaxLFSRWidth {
		return builderErrorf(method, "width %d not in [1,%d]: %w", width, MaxLFSRWidth, ErrLFSRWidth)
	}
	return nil
}

// validatePlan rejects a nil plan.
func validatePlan(method string, p *Plan) error {
	if p == nil {
		return builderErrorf(method, "nil plan: %w", ErrPlan)
	}
	return nil
}

// validateOperands checks that refs has one entry per element of role.
func validateOperands(method string, p *Plan, r Role, what string, refs []core.Ref) error {
	if want := p.Count(r); len(refs) != want {
		return builderErrorf(method, "%d %s %s, want %d: %w", len(refs), r, what, want, ErrOperands)
	}
	return nil
}
