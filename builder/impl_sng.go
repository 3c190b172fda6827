// SPDX-License-Identifier: MIT
// Package: scwrap/builder
//
// impl_sng.go — binary-to-stochastic conversion networks.
//
// Each element turns an m-bit value v and an m-bit random r into one bit.
// Over all N patterns of r every strategy produces exactly v ones:
//
//   • Comparator  r < v, one node.
//   • Majority    c_k = MAJ(~r_k, v_k, c_{k-1}), c_-1 = 0, LSB first.
//                 c_k is (r[k:0] < v[k:0]).
//   • Mux         c_k = r_k ? v_k : c_{k-1}, c_-1 = 0, LSB first.
//                 Selects v at the highest set bit of r.
//   • WBG         t_j = r_j & v_j & AND_{k>j} ~r_k, output OR_j t_j.
//                 Same selection as Mux with AND/OR gates only.
//   • HardWire    v is a generation-time literal K:
//                 OR over K_j = 1 of ~r_j & AND_{k>j} (K_k ? r_k : ~r_k),
//                 i.e. r < K with the comparator folded into wiring.
//
// Cascade stage k of element i is SigID{SNG, role, i, k}; its last stage is
// the element output SigID{SNG, role, i}. Helper nets derive from the output
// id (role_n, role_p, role_t, role_q).

package builder

import (
	"math/bits"

	"github.com/katalvlaran/scwrap/config"
	"github.com/katalvlaran/scwrap/core"
)

// Conversion builds the stochastic bit of every element of role with the
// given strategy. values must hold an m-bit Ref per non-fixed element
// (ignored under HardWire); randoms an m-bit Ref per non-fixed element;
// literals one magnitude per element (read under HardWire only).
// Fixed constants become 1-bit literals.
func Conversion(p *Plan, role Role, strategy config.SNG, values, randoms []core.Ref, literals []uint64) (*core.Fragment, []core.Ref, error) {
	if err := validatePlan(MethodConversion, p); err != nil {
		return nil, nil, err
	}
	if role == RoleInput && strategy == config.HardWire {
		return nil, nil, builderErrorf(MethodConversion, "%s: %w", role, config.ErrHardWireInput)
	}
	if err := validateOperands(MethodConversion, p, role, "randoms", randoms); err != nil {
		return nil, nil, err
	}
	if strategy == config.HardWire {
		if want := p.Count(role); len(literals) != want {
			return nil, nil, builderErrorf(MethodConversion, "%d literals, want %d: %w", len(literals), want, ErrOperands)
		}
	} else if err := validateOperands(MethodConversion, p, role, "values", values); err != nil {
		return nil, nil, err
	}

	m := p.M()
	f := core.NewFragment(core.CompSNG)
	outs := make([]core.Ref, p.Count(role))
	for i := range outs {
		out := core.ID(core.CompSNG, role.tag()).At(i)
		if role == RoleConstant {
			if level, fixed := p.Fixed(i); fixed {
				outs[i] = f.Const(out, 1, b2u(level))
				continue
			}
		}
		r := randoms[i]
		if !r.Valid() {
			return nil, nil, builderErrorf(MethodConversion, "%s %d has no random source: %w", role, i, ErrOperands)
		}
		var v core.Ref
		if strategy != config.HardWire {
			if v = values[i]; !v.Valid() {
				return nil, nil, builderErrorf(MethodConversion, "%s %d has no value: %w", role, i, ErrOperands)
			}
		}

		switch strategy {
		case config.Comparator:
			outs[i] = f.Gate(core.OpLt, out, 1, r, v)
		case config.Majority:
			outs[i] = majority(f, out, r, v, m)
		case config.WBG:
			outs[i] = wbg(f, out, r, v, m)
		case config.Mux:
			outs[i] = mux(f, out, r, v, m)
		case config.HardWire:
			outs[i] = hardwire(f, out, r, literals[i], m)
		default:
			return nil, nil, builderErrorf(MethodConversion, "%s: %w", strategy, config.ErrUnknownStrategy)
		}
	}
	return f, outs, nil
}

func majority(f *core.Fragment, out core.SigID, r, v core.Ref, m int) core.Ref {
	nr := f.Gate(core.OpNot, derive(out, "n"), m, r)
	c := f.Gate(core.OpAnd, stage(out, 0, m), 1, nr.Bit(0), v.Bit(0)) // MAJ(a, b, 0)
	for k := 1; k < m; k++ {
		c = f.Gate(core.OpMaj, stage(out, k, m), 1, nr.Bit(k), v.Bit(k), c)
	}
	return c
}

func mux(f *core.Fragment, out core.SigID, r, v core.Ref, m int) core.Ref {
	c := f.Gate(core.OpAnd, stage(out, 0, m), 1, r.Bit(0), v.Bit(0)) // r_0 ? v_0 : 0
	for k := 1; k < m; k++ {
		in := make([]core.Ref, 3)
		in[core.MuxSel] = r.Bit(k)
		in[core.MuxLo] = c
		in[core.MuxHi] = v.Bit(k)
		c = f.Gate(core.OpMux, stage(out, k, m), 1, in...)
	}
	return c
}

func wbg(f *core.Fragment, out core.SigID, r, v core.Ref, m int) core.Ref {
	var nr core.Ref
	if m > 1 {
		nr = f.Gate(core.OpNot, derive(out, "n"), m, r)
	}
	terms := make([]core.Ref, 0, m)
	var prefix core.Ref // AND_{k>j} ~r_k; invalid while empty
	for j := m - 1; j >= 0; j-- {
		in := []core.Ref{r.Bit(j), v.Bit(j)}
		if prefix.Valid() {
			in = append(in, prefix)
		}
		terms = append(terms, f.Gate(core.OpAnd, derive(out, "t").Step(j), 1, in...))
		if j == 0 {
			break
		}
		if prefix.Valid() {
			prefix = f.Gate(core.OpAnd, derive(out, "p").Step(j), 1, prefix, nr.Bit(j))
		} else {
			prefix = nr.Bit(j)
		}
	}
	return f.Gate(core.OpOr, out, 1, terms...)
}

func hardwire(f *core.Fragment, out core.SigID, r core.Ref, k uint64, m int) core.Ref {
	k &= mask(m)
	if k == 0 {
		return f.Const(out, 1, 0)
	}
	nr := f.Gate(core.OpNot, derive(out, "n"), m, r)
	match := func(j int) core.Ref {
		if k>>uint(j)&1 == 1 {
			return r.Bit(j)
		}
		return nr.Bit(j)
	}
	low := bits.TrailingZeros64(k)

	var terms []core.Ref
	var eq core.Ref // AND_{i>j} match_i; invalid while empty
	for j := m - 1; j >= low; j-- {
		if k>>uint(j)&1 == 1 {
			if eq.Valid() {
				terms = append(terms, f.Gate(core.OpAnd, derive(out, "t").Step(j), 1, nr.Bit(j), eq))
			} else {
				terms = append(terms, nr.Bit(j))
			}
		}
		if j == low {
			break
		}
		if eq.Valid() {
			eq = f.Gate(core.OpAnd, derive(out, "q").Step(j), 1, eq, match(j))
		} else {
			eq = match(j)
		}
	}
	return f.Gate(core.OpOr, out, 1, terms...)
}
