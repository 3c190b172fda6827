// Package core provides the signal graph every synthesis run builds: a
// thread-safe, in-memory netlist of named signals and the nodes that drive
// them.
//
// The graph G = (S, N) has:
//
//   - Signals, identified by a structured SigID (component, role, index,
//     stage) and flattened to a Verilog-safe name only by Name().
//   - Nodes, each driving exactly one output signal from a list of
//     references (whole signal, single bit, or slice) to other signals.
//   - Input ports, which are declared but never driven by a node.
//
// Builders never touch a Graph directly. Each builder returns a Fragment
// (its declarations and nodes); the assembler merges fragments in order and
// then calls Validate, which is the correctness backstop for the whole
// generator:
//
//   - a name declared by two fragments        → ErrDuplicateSignal
//   - a reference to an undeclared signal     → ErrUndeclaredSignal
//   - a bus width that disagrees with its use → ErrWidthMismatch
//   - a non-input signal with no driver       → ErrNoDriver
//   - a signal with two drivers               → ErrMultipleDrivers
//   - an input port driven by a node          → ErrDrivenInput
//   - a register driven combinationally (or the reverse) → ErrKindMismatch
//
// Fragment helpers (Const, Gate, Reg, Inst) declare the output signal and add
// its driver in one step, in the manner of an and-inverter graph builder that
// returns a literal for every gate it creates.
//
// Combinational edges (Fanout) exclude register inputs, so ordering and loop
// detection in package dfs only ever see the combinational part of the
// circuit. Fanin includes register inputs and is used for liveness cones.
//
// Concurrency: a single sync.RWMutex guards a Graph; all exported methods are
// safe for concurrent use. A Fragment is owned by one builder and is not
// synchronized.
package core
