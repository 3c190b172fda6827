// Package bfs levels a core.Graph breadth-first and reports its logic depth
// and critical path.
//
// What
//
//   - Seeds level 0 with every signal that has no combinational inputs:
//     input ports, register outputs and literal constants.
//   - Releases a combinational signal once all of its operands are leveled,
//     one gate deeper than its deepest operand (Kahn's algorithm in BFS
//     order over core.Graph.Fanout).
//   - Returns a LevelResult containing:
//   - Order:   the sequence in which signals became ready
//   - Level:   signal → gates on its longest combinational path
//   - Parent:  signal → the operand that set its level
//   - Depth, Deepest: the maximum level and the first signal reaching it
//   - Supports functional hooks at three stages:
//   - OnEnqueue (when a signal becomes ready)
//   - OnDequeue (immediately before visiting)
//   - OnVisit   (when visiting; may abort with an error)
//   - Honors a MaxDepth limit (d>0) or explicit "no limit" (d==0).
//
// Determinism
//
//	Seeds are taken in sorted name order and Fanout returns sorted names, so
//	Order, Parent and Deepest are reproducible for a given graph. Ties
//	between equally deep operands go to the one released first.
//
// Loops
//
//	A signal on a combinational loop never reaches zero pending operands.
//	Levels reports ErrUnleveled with the count of stuck signals; use
//	dfs.DetectCycles to name them.
//
// Complexity (V = signals, E = combinational edges)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Usage
//
//	res, err := bfs.Levels(g, bfs.WithMaxDepth(64))
//	if err != nil {
//		// ErrGraphNil, ErrOptionViolation, ErrDepthExceeded, ErrUnleveled,
//		// a context error or a hook error
//	}
//	path, _ := res.PathTo(res.Deepest)
//	fmt.Println(res.Depth, path)
//
// See also: dfs for ordering and fan-in cones.
package bfs
