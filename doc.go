// Package scwrap generates the stochastic-computing wrapper around a
// Bernstein-polynomial evaluation core: random sources, binary-to-stochastic
// conversion networks, and the control FSM that counts N output samples back
// into a binary result.
//
// What you get:
//
//   - A structural generator: every component is a fragment of a typed
//     signal graph, merged and validated before any text exists.
//   - Five conversion strategies (Comparator, Majority, WBG, Mux, HardWire)
//     and five source strategies (shared/per-element/single LFSR, counter,
//     bit-reversed counter), chosen per role at generation time.
//   - Verilog-2001 output with a fixed port contract and a SHAKE-256 digest.
//   - An independent model of the expected output, reproducible test
//     vectors and an HTML transfer-curve report.
//
// Packages:
//
//	config/     — bitstream geometry, strategy sum types, configuration errors
//	quant/      — coefficient quantization and constant classification
//	core/       — structured signal ids, fragments, the validated signal graph
//	dfs/        — combinational ordering, loop detection, fan-in cones
//	bfs/        — levelization: logic depth and critical path
//	builder/    — ports, literals, sources, conversion networks, core, FSM
//	netlist/    — Synthesize: orchestration, validation, emission, digest
//	expect/     — Bernstein evaluation, expected outputs, test vectors
//	report/     — transfer-curve chart
//	cmd/scwrap/ — command-line front end
//
// Quick example:
//
//	bits, _ := config.NewBitstream(16, 2, 4)
//	nl, err := netlist.Synthesize([]float64{0, 0.5, 1}, bits, config.DefaultArchitecture())
//	if err != nil {
//		// errors.Is(err, netlist.ErrConfig) or netlist.ErrConsistency
//	}
//	nl.WriteTo(os.Stdout)
package scwrap
