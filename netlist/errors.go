package netlist

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/scwrap/builder"
	"github.com/katalvlaran/scwrap/config"
	"github.com/katalvlaran/scwrap/quant"
)

var (
	// ErrConfig classifies malformed input: bit widths, N, strategy/role
	// pairing, coefficients, names. It is joined with the underlying sentinel.
	ErrConfig = errors.New("netlist: configuration error")

	// ErrConsistency classifies an internal signal graph violation. It is
	// joined with the core or dfs sentinel that detected it.
	ErrConsistency = errors.New("netlist: consistency error")

	// ErrNilNetlist is returned when writing a nil *Netlist.
	ErrNilNetlist = errors.New("netlist: nil netlist")
)

var configErrors = []error{
	config.ErrNotPowerOfTwo,
	config.ErrWidth,
	config.ErrHardWireInput,
	config.ErrRoleMismatch,
	config.ErrUnknownStrategy,
	quant.ErrDegree,
	quant.ErrCoefficientRange,
	quant.ErrPrecision,
	builder.ErrLFSRWidth,
	builder.ErrPlan,
}

// classify tags err with ErrConfig when it wraps a configuration sentinel,
// with ErrConsistency otherwise.
func classify(err error) error {
	for _, target := range configErrors {
		if errors.Is(err, target) {
			return fmt.Errorf("Synthesize: %w: %w", ErrConfig, err)
		}
	}
	return fmt.Errorf("Synthesize: %w: %w", ErrConsistency, err)
}
