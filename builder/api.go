// SPDX-License-Identifier: MIT
// Package: scwrap/builder
//
// api.go — Plan and the public builder entry points.
//
// Contract:
//   • A Plan is validated once by NewPlan; every configuration error
//     (bitstream, architecture, LFSR width) surfaces there, before any
//     fragment exists.
//   • Each builder returns a *core.Fragment and never touches a graph.
//     Cross-builder wiring goes through the returned references and the
//     well-known signals in constants.go; Graph.Validate checks it.
//   • Determinism: the same Plan always yields identical fragments.
//
// Entry points (implemented in impl_*.go):
//
//	Ports(p)                                   module ports
//	Literals(p)                                coefficient literals, padded input
//	RandomSources(p)                           LFSRs and counters
//	Conversion(p, role, sng, values, randoms, literals)
//	EvalCore(p, xs, ws)                        external core instance
//	Control(p)                                 FSM, counter, accumulator

package builder

import (
	"github.com/katalvlaran/scwrap/config"
	"github.com/katalvlaran/scwrap/core"
	"github.com/katalvlaran/scwrap/quant"
)

// Plan is the validated input shared by every builder.
type Plan struct {
	Bits   config.Bitstream
	Arch   config.Architecture
	Coeffs []quant.Coefficient
	Degree int

	cfg builderConfig
}

// NewPlan validates bits, arch and coeffs and resolves opts.
// Errors wrap config.ErrNotPowerOfTwo, config.ErrWidth, the architecture
// sentinels, ErrLFSRWidth or ErrPlan.
func NewPlan(coeffs []quant.Coefficient, bits config.Bitstream, arch config.Architecture, opts ...Option) (*Plan, error) {
	if err := bits.Validate(); err != nil {
		return nil, builderErrorf(MethodPlan, "%w", err)
	}
	if err := arch.Validate(); err != nil {
		return nil, builderErrorf(MethodPlan, "%w", err)
	}
	if err := validateCoefficients(MethodPlan, coeffs, bits.N); err != nil {
		return nil, err
	}
	p := &Plan{
		Bits:   bits,
		Arch:   arch,
		Coeffs: coeffs,
		Degree: len(coeffs) - 1,
		cfg:    newBuilderConfig(opts...),
	}
	if err := validateLFSRWidth(MethodPlan, p.inputSourceWidth()); err != nil {
		return nil, err
	}
	return p, nil
}

// M returns log2(N).
func (p *Plan) M() int { return p.Bits.M() }

// Count returns the number of elements of role: degree inputs or degree+1
// constants.
func (p *Plan) Count(r Role) int {
	if r == RoleInput {
		return p.Degree
	}
	return p.Degree + 1
}

// Fixed reports whether constant i is a generation-time level (exact 0,
// exact 1, or rounded up to N) and needs neither source nor network.
func (p *Plan) Fixed(i int) (level bool, ok bool) {
	return p.Coeffs[i].Constant(p.Bits.N)
}

// NeedsConstantSource reports whether any constant needs a random source.
func (p *Plan) NeedsConstantSource() bool {
	for i := range p.Coeffs {
		if _, ok := p.Fixed(i); !ok {
			return true
		}
	}
	return false
}

// CoreModule returns the evaluation core's module name.
func (p *Plan) CoreModule() string { return p.cfg.coreModule }

// CoreInstance returns the evaluation core's instance name.
func (p *Plan) CoreInstance() string { return p.cfg.coreInstance }

func (p *Plan) inputSourceWidth() int {
	if p.Arch.InputRNG == config.SingleLFSR {
		return p.M() * p.Degree
	}
	return p.M()
}

// Role selects inputs or constants.
type Role int

const (
	RoleInput Role = iota
	RoleConstant
)

func (r Role) String() string {
	if r == RoleInput {
		return "input"
	}
	return "constant"
}

// tag is the signal-name role of the conversion outputs.
func (r Role) tag() string {
	if r == RoleInput {
		return roleInput
	}
	return roleConstant
}

// Sources holds the m-bit random reference of every element. A Constants
// entry is the zero Ref when that constant is fixed.
type Sources struct {
	Inputs    []core.Ref
	Constants []core.Ref
}

// Operands holds the m-bit binary value of every element and the literal
// magnitude of every constant. A Constants entry is the zero Ref when the
// constant is fixed or when HardWire folds the literal into gates.
type Operands struct {
	Inputs    []core.Ref
	Constants []core.Ref
	Literals  []uint64
}
