// Package dfs: Cone walks fan-in edges of a core.Graph from a set of roots.
//
// Fan-in includes register operands, so the cone of the output ports is
// every signal that can ever influence them; what lies outside is dead logic.
package dfs

import (
	"fmt"

	"github.com/katalvlaran/scwrap/core"
)

// coneWalker holds the state of one walk.
type coneWalker struct {
	graph *core.Graph
	opts  ConeOptions
	res   *ConeResult
}

// Cone performs a depth-first walk over fan-in edges starting from each root
// in turn. Roots already reached by an earlier root are not walked again.
// Returns ErrGraphNil, ErrRootNotFound, the context error, or a hook error.
func Cone(g *core.Graph, roots []string, opts ...Option) (*ConeResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	copts := DefaultOptions()
	for _, fn := range opts {
		fn(&copts)
	}
	for _, r := range roots {
		if _, ok := g.Signal(r); !ok {
			return nil, fmt.Errorf("dfs: Cone(%q): %w", r, ErrRootNotFound)
		}
	}

	n := g.Stats().Signals
	res := &ConeResult{
		Order:   make([]string, 0, n),
		Depth:   make(map[string]int, n),
		Parent:  make(map[string]string, n),
		Visited: make(map[string]bool, n),
	}
	w := &coneWalker{graph: g, opts: copts, res: res}
	for _, r := range roots {
		if res.Visited[r] {
			continue
		}
		if err := w.walk(r, 0); err != nil {
			return res, err
		}
	}
	res.Skipped = w.opts.skipped

	return res, nil
}

// walk visits name at depth and recurses into its fan-in.
func (w *coneWalker) walk(name string, depth int) error {
	select {
	case <-w.opts.Ctx.Done():
		return w.opts.Ctx.Err()
	default:
	}
	if w.opts.MaxDepth >= 0 && depth > w.opts.MaxDepth {
		return nil
	}

	w.res.Visited[name] = true
	w.res.Depth[name] = depth

	if w.opts.OnVisit != nil {
		if err := w.opts.OnVisit(name); err != nil {
			w.res.Order = nil
			return fmt.Errorf("dfs: OnVisit hook for %q: %w", name, err)
		}
	}

	in, err := w.graph.Fanin(name)
	if err != nil {
		w.res.Order = nil
		return fmt.Errorf("%w: %v", ErrNeighborFetch, err)
	}
	for _, from := range in {
		if w.opts.Filter != nil && !w.opts.Filter(from) {
			w.opts.skipped++
			continue
		}
		// an undeclared operand is Validate's business, not the walk's
		if _, ok := w.graph.Signal(from); !ok {
			continue
		}
		if !w.res.Visited[from] {
			w.res.Parent[from] = name
			if err = w.walk(from, depth+1); err != nil {
				return err
			}
		}
	}

	if w.opts.OnExit != nil {
		if err = w.opts.OnExit(name); err != nil {
			w.res.Order = nil
			return fmt.Errorf("dfs: OnExit hook for %q: %w", name, err)
		}
	}
	w.res.Order = append(w.res.Order, name)

	return nil
}
