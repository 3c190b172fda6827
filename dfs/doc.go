// Package dfs implements the depth-first analyses the netlist assembler runs
// over a core.Graph: combinational ordering, combinational loop detection and
// fan-in cones.
//
// What:
//
//   - TopologicalSort: orders every signal so that each combinational driver
//     comes after all of its operands. Register outputs have no incoming
//     combinational edges, so sequential feedback never counts as a loop.
//     A combinational loop yields ErrCycleDetected.
//   - DetectCycles: enumerates every simple combinational loop using vertex
//     colouring (White, Gray, Black) and back-edge recording. Each loop is
//     reported once, canonicalised by Booth's minimal rotation.
//   - Cone: walks fan-in edges (register operands included) from a set of
//     roots. The assembler uses the cone of the output ports to find dead
//     logic.
//
// Edges:
//
//	combinational  u -> v  iff a non-register node driving v reads u  (core.Graph.Fanout)
//	fan-in         v -> u  iff the driver of v reads u                 (core.Graph.Fanin)
//
// Options:
//
//   - WithContext(ctx)     cancellation for Cone.
//   - WithOnVisit(fn)      pre-order hook; error aborts the walk.
//   - WithOnExit(fn)       post-order hook; error aborts the walk.
//   - WithMaxDepth(limit)  stops descending beyond limit (>= 0).
//   - WithFilter(fn)       skips fan-in signals for which fn returns false.
//   - WithCancelContext    cancellation for TopologicalSort.
//
// Errors:
//
//   - ErrGraphNil       graph pointer is nil
//   - ErrRootNotFound   a Cone root is not declared
//   - ErrCycleDetected  combinational loop found by TopologicalSort
//   - ErrNeighborFetch  edge lookup failed
//   - context.Canceled  walk cancelled
//
// Complexity:
//
//   - Cone, TopologicalSort: Time O(V+E), Memory O(V)
//   - DetectCycles:          Time O(V+E + C·L), Memory O(V + L_max)
package dfs
