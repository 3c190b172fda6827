// SPDX-License-Identifier: MIT
// Package: scwrap/builder
//
// impl_rng.go — random and counting sources.
//
// Every source is a register clocked by clk with:
//   • reset   → power-on load of its seed (counters: 0)
//   • restart → synchronous reload of the same value
//   • running → advance one step
//
// LFSRs are Fibonacci, XNOR feedback, shifting towards the MSB:
//
//	next = {q[w-2:0], ~(q[t1-1] ^ q[t2-1] ^ ...)}
//
// so they never leave the all-ones state; seeds are stepped off it.
//
// Seeds spread sibling streams over the state space: input i gets
// round(N·i/(2d+1)), constant i gets round(N·(i+d)/(2d+1)), the shared
// constant LFSR gets round(N·d/(2d+1)).
//
// Complexity: O(d·m) signals.

package builder

import (
	"github.com/katalvlaran/scwrap/config"
	"github.com/katalvlaran/scwrap/core"
)

// RandomSources builds the input and constant sources of p.
// Fixed constants get no source and a zero Ref.
func RandomSources(p *Plan) (*core.Fragment, *Sources, error) {
	if err := validatePlan(MethodRandomSources, p); err != nil {
		return nil, nil, err
	}
	f := core.NewFragment(core.CompRNG)
	src := &Sources{
		Inputs:    make([]core.Ref, p.Count(RoleInput)),
		Constants: make([]core.Ref, p.Count(RoleConstant)),
	}
	if err := inputSources(f, p, src.Inputs); err != nil {
		return nil, nil, err
	}
	if err := constantSources(f, p, src.Constants); err != nil {
		return nil, nil, err
	}
	return f, src, nil
}

func inputSources(f *core.Fragment, p *Plan, out []core.Ref) error {
	m := p.M()
	switch p.Arch.InputRNG {
	case config.LFSR:
		for i := range out {
			out[i] = lfsr(f, core.ID(core.CompRNG, roleInput).At(i), m, inputSeed(p, i))
		}
	case config.SingleLFSR:
		w := m * p.Degree
		if err := validateLFSRWidth(MethodRandomSources, w); err != nil {
			return err
		}
		var seed uint64
		for i := range out {
			seed |= inputSeed(p, i) << uint(i*m)
		}
		id := core.ID(core.CompRNG, roleInput+"s")
		lfsr(f, id, w, seed)
		for i := range out {
			out[i] = core.Slice(id, i*m, i*m+m-1)
		}
	default:
		return builderErrorf(MethodRandomSources, "input source %s: %w", p.Arch.InputRNG, config.ErrRoleMismatch)
	}
	return nil
}

func constantSources(f *core.Fragment, p *Plan, out []core.Ref) error {
	if !p.NeedsConstantSource() {
		return nil
	}
	m := p.M()
	var shared core.Ref
	switch p.Arch.ConstantRNG {
	case config.SharedLFSR:
		shared = lfsr(f, core.ID(core.CompRNG, roleConstant), m, sharedSeed(p))
	case config.Counter:
		shared = counter(f, m, false)
	case config.ReverseCounter:
		shared = counter(f, m, true)
	case config.LFSR:
	default:
		return builderErrorf(MethodRandomSources, "constant source %s: %w", p.Arch.ConstantRNG, config.ErrRoleMismatch)
	}
	for i := range out {
		if _, fixed := p.Fixed(i); fixed {
			continue
		}
		if shared.Valid() {
			out[i] = shared
			continue
		}
		out[i] = lfsr(f, core.ID(core.CompRNG, roleConstant).At(i), m, constantSeed(p, i))
	}
	return nil
}

// lfsr declares an XNOR LFSR register id of width w (1..64) seeded with seed.
// Width 1 toggles.
func lfsr(f *core.Fragment, id core.SigID, w int, seed uint64) core.Ref {
	q := core.Whole(id)
	next := derive(id, "next")
	if w == 1 {
		f.Gate(core.OpNot, next, 1, q)
	} else {
		taps := lfsrTaps[w]
		in := make([]core.Ref, len(taps))
		for k, t := range taps {
			in[k] = core.Bit(id, t-1)
		}
		x := f.Gate(core.OpXor, derive(id, "tap"), 1, in...)
		fb := f.Gate(core.OpNot, derive(id, "fb"), 1, x)
		f.Gate(core.OpConcat, next, w, core.Slice(id, 0, w-2), fb)
	}
	seed = safeSeed(seed, w)
	return f.Reg(id, w, core.Whole(next), core.Whole(RunningSignal), core.Whole(RestartSignal), seed, seed)
}

// counter declares the shared m-bit up-counter and returns its value, or its
// bit-reversed value when reverse is set.
func counter(f *core.Fragment, m int, reverse bool) core.Ref {
	id := core.ID(core.CompRNG, "cnt")
	one := f.Const(derive(id, "one"), m, 1)
	inc := f.Gate(core.OpAdd, derive(id, "inc"), m, core.Whole(id), one)
	q := f.Reg(id, m, inc, core.Whole(RunningSignal), core.Whole(RestartSignal), 0, 0)
	if !reverse {
		return q
	}
	bits := make([]core.Ref, m)
	for k := range bits {
		bits[k] = core.Bit(id, k) // bit 0 lands in the MSB
	}
	return f.Gate(core.OpConcat, derive(id, "rev"), m, bits...)
}
