// SPDX-License-Identifier: MIT
// Package: scwrap/builder
//
// impl_fsm.go — control state machine, sample counter and accumulator.
//
// Transitions (state register, reset to Idle):
//
//	Idle        --start-->  Initialized   else Idle
//	Initialized --start-->  Initialized   else Running
//	Running     --terminal--> Idle        else Running
//
// The unused encoding 3 decodes as neither idle nor running and follows the
// Initialized row.
//
// Datapath:
//   • count  m bits,   += 1 while running, cleared on restart;
//            terminal = (count == all ones), reached on sample N-1.
//   • acc    m+1 bits, += core z while running, cleared on restart; it can
//            hold N, z_bin saturates it to N-1.
//   • done_q set on the terminal running step, held, cleared on restart.
//
// From Idle, start high for one clock then low reaches Running after two
// clocks; Running returns to Idle after exactly N clocks with N samples in
// acc.

package builder

import "github.com/katalvlaran/scwrap/core"

func fsm(role string) core.SigID { return core.ID(core.CompFSM, role) }

// Control builds the FSM fragment. It drives RunningSignal, RestartSignal,
// done and z_bin, and reads start and CoreOutput.
func Control(p *Plan) (*core.Fragment, error) {
	if err := validatePlan(MethodControl, p); err != nil {
		return nil, err
	}
	m := p.M()
	f := core.NewFragment(core.CompFSM)

	one := f.Const(fsm("one"), 1, 1)
	zero := f.Const(fsm("zero"), 1, 0)
	st := make([]core.Ref, 3)
	for _, s := range []State{Idle, Initialized, Running} {
		st[s] = f.Const(fsm("st").At(int(s)), StateWidth, uint64(s))
	}

	state := fsm("state")
	q := core.Whole(state)
	idle := f.Gate(core.OpEq, fsm("idle"), 1, q, st[Idle])
	restart := f.Gate(core.OpEq, RestartSignal, 1, q, st[Initialized])
	running := f.Gate(core.OpEq, RunningSignal, 1, q, st[Running])

	// sample counter
	count := fsm("count")
	cntOne := f.Const(derive(count, "one"), m, 1)
	cntMax := f.Const(derive(count, "max"), m, mask(m))
	inc := f.Gate(core.OpAdd, derive(count, "inc"), m, core.Whole(count), cntOne)
	f.Reg(count, m, inc, running, restart, 0, 0)
	terminal := f.Gate(core.OpEq, fsm("terminal"), 1, core.Whole(count), cntMax)

	// next state
	start := core.Whole(StartPort)
	sel := func(id core.SigID, s, lo, hi core.Ref) core.Ref {
		in := make([]core.Ref, 3)
		in[core.MuxSel], in[core.MuxLo], in[core.MuxHi] = s, lo, hi
		return f.Gate(core.OpMux, id, StateWidth, in...)
	}
	nIdle := sel(fsm("nx_idle"), start, st[Idle], st[Initialized])
	nInit := sel(fsm("nx_init"), start, st[Running], st[Initialized])
	nRun := sel(fsm("nx_run"), terminal, st[Running], st[Idle])
	nBusy := sel(fsm("nx_busy"), running, nInit, nRun)
	next := sel(fsm("next"), idle, nBusy, nIdle)
	f.Reg(state, StateWidth, next, one, zero, uint64(Idle), uint64(Idle))

	// accumulator
	acc := fsm("acc")
	sum := f.Gate(core.OpAdd, derive(acc, "sum"), m+1, core.Whole(acc), core.Whole(CoreOutput))
	f.Reg(acc, m+1, sum, running, restart, 0, 0)

	// done
	doneQ := fsm("done_q")
	last := f.Gate(core.OpAnd, fsm("last"), 1, running, terminal)
	hold := f.Gate(core.OpOr, derive(doneQ, "next"), 1, core.Whole(doneQ), last)
	f.Reg(doneQ, 1, hold, one, restart, 0, 0)

	// outputs
	f.Drive(&core.Node{Op: core.OpBuf, Out: DonePort, In: []core.Ref{core.Whole(doneQ)}})
	out := make([]core.Ref, 3)
	out[core.MuxSel] = core.Bit(acc, m)
	out[core.MuxLo] = core.Slice(acc, 0, m-1)
	out[core.MuxHi] = cntMax
	f.Drive(&core.Node{Op: core.OpMux, Out: ZBinPort, In: out})

	return f, nil
}
