// Package builder constructs the fragments of a stochastic-computing wrapper
// circuit: everything around an external evaluation core that turns binary
// inputs and Bernstein coefficients into bitstreams and counts the result.
//
// The package offers:
//
//   - Planning:
//     – NewPlan:        validates bitstream, architecture, coefficients and
//     LFSR widths once; every builder takes the resulting *Plan.
//     – Option:         WithCoreModule, WithCoreInstance.
//   - Builders (each returns a *core.Fragment):
//     – Ports:          clk, reset, start, x_bin / done, z_bin.
//     – Literals:       padded input {x_bin, 0...} and constant literals.
//     – RandomSources:  per-element LFSRs, one wide LFSR sliced per input,
//     a shared LFSR, or a (bit-reversed) counter.
//     – Conversion:     Comparator, Majority, WBG, Mux, HardWire networks.
//     – EvalCore:       the core instance with x[d], w[d+1], z.
//     – Control:        Idle / Initialized / Running FSM, sample counter,
//     accumulator, done flag.
//   - Shared identifiers: StartPort, XBinPort, DonePort, ZBinPort,
//     RunningSignal, RestartSignal, CoreOutput, PaddedInput.
//
// Builders reference each other's signals by SigID; nothing is checked until
// the assembler merges the fragments and calls core.Graph.Validate. Builders
// never panic on caller input; option constructors do.
//
// Fixed coefficients (exact 0, exact 1, or rounded up to N) receive neither a
// source nor a network: their stochastic bit is a 1-bit literal.
package builder
