// Package builder: small helpers shared by the impl_*.go builders.
//
//   - Naming: derive and stage build structured ids from an element's output
//     id, so no builder formats names by hand.
//   - Seeds: integer round-half-up of N·k/(2d+1).
package builder

import "github.com/katalvlaran/scwrap/core"

// derive returns id with "_suffix" appended to its role and no stage.
func derive(id core.SigID, suffix string) core.SigID {
	id.Role += "_" + suffix
	id.Stage = core.NoIndex
	return id
}

// stage names cascade stage k of out; the last stage (k == m-1) is out itself.
func stage(out core.SigID, k, m int) core.SigID {
	if k == m-1 {
		return out
	}
	return out.Step(k)
}

// roundDiv returns a/b rounded half up.
func roundDiv(a, b uint64) uint64 {
	return (a + b/2) / b
}

// inputSeed is the LFSR seed of input i: round(N·i/(2d+1)).
func inputSeed(p *Plan, i int) uint64 {
	return roundDiv(p.Bits.N*uint64(i), uint64(2*p.Degree+1)) & p.Bits.Mask()
}

// constantSeed is the LFSR seed of constant i: round(N·(i+d)/(2d+1)).
func constantSeed(p *Plan, i int) uint64 {
	return roundDiv(p.Bits.N*uint64(i+p.Degree), uint64(2*p.Degree+1)) & p.Bits.Mask()
}

// sharedSeed is the seed of the shared constant LFSR: round(N·d/(2d+1)).
func sharedSeed(p *Plan) uint64 {
	return constantSeed(p, 0)
}

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
