// SPDX-License-Identifier: MIT
// Package: scwrap/builder
//
// impl_ports.go — module ports and coefficient literals.
//
// Ports: clk, reset, start, x_bin[m_input] in; done, z_bin[m] out.
// Literals: the input left-aligned to m bits ({x_bin, 0...}) and one m-bit
// literal per constant that a value-comparing network reads.

package builder

import (
	"github.com/katalvlaran/scwrap/config"
	"github.com/katalvlaran/scwrap/core"
)

// Ports returns the port declarations of the wrapper module.
func Ports(p *Plan) (*core.Fragment, error) {
	if err := validatePlan(MethodPorts, p); err != nil {
		return nil, err
	}
	f := core.NewFragment(core.CompPort)
	f.Declare(core.Clk, 1, core.Input)
	f.Declare(core.Reset, 1, core.Input)
	f.Declare(StartPort, 1, core.Input)
	f.Declare(XBinPort, p.Bits.MInput, core.Input)
	f.Declare(DonePort, 1, core.Output)
	f.Declare(ZBinPort, p.M(), core.Output)
	return f, nil
}

// Literals builds the padded input and the constant literals.
// Fixed constants get no literal; under HardWire no constant does, the
// magnitude is returned in Operands.Literals and folded into gates.
func Literals(p *Plan) (*core.Fragment, *Operands, error) {
	if err := validatePlan(MethodLiterals, p); err != nil {
		return nil, nil, err
	}
	m, mIn := p.M(), p.Bits.MInput
	f := core.NewFragment(core.CompCoeff)

	var xpad core.Ref
	if mIn == m {
		xpad = f.Gate(core.OpBuf, PaddedInput, m, core.Whole(XBinPort))
	} else {
		lo := f.Const(derive(PaddedInput, "lo"), m-mIn, 0)
		xpad = f.Gate(core.OpConcat, PaddedInput, m, core.Whole(XBinPort), lo)
	}

	ops := &Operands{
		Inputs:    make([]core.Ref, p.Count(RoleInput)),
		Constants: make([]core.Ref, p.Count(RoleConstant)),
		Literals:  make([]uint64, p.Count(RoleConstant)),
	}
	for i := range ops.Inputs {
		ops.Inputs[i] = xpad
	}
	for i, c := range p.Coeffs {
		ops.Literals[i] = c.Value
		if _, fixed := p.Fixed(i); fixed || p.Arch.ConstantSNG == config.HardWire {
			continue
		}
		ops.Constants[i] = f.Const(core.ID(core.CompCoeff, roleConstant).At(i), m, c.Value)
	}
	return f, ops, nil
}
