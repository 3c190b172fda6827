package builder

import "github.com/katalvlaran/scwrap/core"

// EvalCore instantiates the external evaluation core. xs holds the degree
// input bits and ws the degree+1 constant bits, element 0 first; the buses
// are packed with element 0 in the LSB. The instance drives CoreOutput.
func EvalCore(p *Plan, xs, ws []core.Ref) (*core.Fragment, error) {
	if err := validatePlan(MethodEvalCore, p); err != nil {
		return nil, err
	}
	if err := validateOperands(MethodEvalCore, p, RoleInput, "bits", xs); err != nil {
		return nil, err
	}
	if err := validateOperands(MethodEvalCore, p, RoleConstant, "bits", ws); err != nil {
		return nil, err
	}

	f := core.NewFragment(core.CompCore)
	x := f.Gate(core.OpConcat, core.ID(core.CompCore, CorePortX), len(xs), msbFirst(xs)...)
	w := f.Gate(core.OpConcat, core.ID(core.CompCore, CorePortW), len(ws), msbFirst(ws)...)
	f.Inst(CoreOutput, p.CoreModule(), p.CoreInstance(),
		core.PortSpec{Name: CorePortZ, Width: 1},
		[]core.PortSpec{{Name: CorePortX, Width: len(xs)}, {Name: CorePortW, Width: len(ws)}},
		[]core.Ref{x, w})
	return f, nil
}

func msbFirst(refs []core.Ref) []core.Ref {
	out := make([]core.Ref, len(refs))
	for i, r := range refs {
		out[len(refs)-1-i] = r
	}
	return out
}
