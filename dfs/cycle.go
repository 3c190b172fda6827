// Package dfs: DetectCycles enumerates the simple combinational loops of a
// core.Graph.
//
// Three-colour marking finds back edges (Gray -> Gray); the loop is the path
// segment from the back-edge target to the current signal. Each loop is
// canonicalised to its minimal rotation (Booth's algorithm, O(L)) so the
// same loop found from different entry points is reported once. Loops are
// sorted by signature for deterministic output.
//
// A node reading its own output is a loop of length one.
//
// Complexity:
//
//   - Time:   O(V + E + C·L)
//   - Memory: O(V + L_max)
package dfs

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/scwrap/core"
)

// DetectCycles reports whether g has combinational loops and lists them.
// Each loop is closed: [v0, v1, ..., v0].
// A nil graph is loop-free.
func DetectCycles(g *core.Graph) (bool, [][]string, error) {
	if g == nil {
		return false, nil, nil
	}

	names := g.SignalNames()
	c := &cycleFinder{
		graph: g,
		state: make(map[string]int, len(names)),
		path:  make([]string, 0, len(names)),
		seen:  make(map[string]struct{}),
	}
	for _, v := range names {
		if c.state[v] == White {
			if err := c.visit(v); err != nil {
				return false, nil, fmt.Errorf("dfs: DetectCycles: %w", err)
			}
		}
	}

	if len(c.cycles) == 0 {
		return false, nil, nil
	}
	sort.Slice(c.cycles, func(i, j int) bool {
		return joinSig(c.cycles[i]) < joinSig(c.cycles[j])
	})

	return true, c.cycles, nil
}

type cycleFinder struct {
	graph  *core.Graph
	state  map[string]int
	path   []string
	seen   map[string]struct{}
	cycles [][]string
}

func (c *cycleFinder) visit(name string) error {
	c.state[name] = Gray
	c.path = append(c.path, name)

	out, err := c.graph.Fanout(name)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNeighborFetch, err)
	}
	for _, to := range out {
		if _, ok := c.graph.Signal(to); !ok {
			continue
		}
		switch c.state[to] {
		case White:
			if err = c.visit(to); err != nil {
				return err
			}
		case Gray:
			c.record(to)
		}
	}

	c.path = c.path[:len(c.path)-1]
	c.state[name] = Black

	return nil
}

// record closes the loop that starts at start on the current path and keeps
// it if its canonical form is new.
func (c *cycleFinder) record(start string) {
	idx := indexOf(c.path, start)
	loop := minimalRotation(c.path[idx:])
	closed := append(loop, loop[0])
	sig := joinSig(closed)
	if _, ok := c.seen[sig]; ok {
		return
	}
	c.seen[sig] = struct{}{}
	c.cycles = append(c.cycles, closed)
}
