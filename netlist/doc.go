// Package netlist assembles the fragments produced by package builder into one
// validated signal graph and emits it as a Verilog-2001 module.
//
// Pipeline of Synthesize:
//
//  1. Configuration: bitstream, architecture, coefficients and LFSR widths
//     are checked before any fragment exists (ErrConfig).
//  2. Fragments, in dependency order: ports, literals, random sources,
//     input conversion, constant conversion, evaluation core, control FSM.
//  3. core.Graph.Merge of every fragment; a name declared by two components
//     fails here.
//  4. core.Graph.Validate: dangling references, width mismatches, signals
//     with zero or several producers, driven inputs (ErrConsistency).
//  5. dfs.TopologicalSort over combinational edges; loops are reported with
//     the cycles found by dfs.DetectCycles.
//  6. dfs.Cone from the output ports; unreached signals are logged as dead
//     logic and kept in Netlist.Dead.
//  7. bfs.Levels: logic depth and one critical path, kept in Netlist.Depth
//     and Netlist.CriticalPath and noted in the header.
//  8. Verilog emission and a 16-byte SHAKE-256 digest of the module body.
//
// Generation is all-or-nothing: on any error Synthesize returns no Netlist,
// so a caller never holds partial text.
//
// Emitted port contract:
//
//	input  clk, reset, start, x_bin[m_input-1:0]
//	output done, z_bin[m-1:0]
//
// The external core is instantiated with x[d-1:0], w[d:0] and z.
//
// Options:
//
//	WithModuleName(name)    wrapper module name (default "sc_wrapper")
//	WithCoreModule(name)    evaluation core module (default "sc_core")
//	WithCoreInstance(name)  evaluation core instance (default "u_core")
//	WithLogger(l)           progress and dead-logic messages (default discards)
//
// Each call owns its graph; Synthesize may run concurrently.
package netlist
