// Package dfs: TopologicalSort orders the signals of a core.Graph along
// combinational edges.
//
// For every combinational node driving v from operand u, u appears before v.
// Register outputs and input ports have no incoming combinational edges and
// may appear anywhere before their readers. A combinational loop returns
// ErrCycleDetected.
//
// Complexity:
//
//   - Time:   O(V + E)
//   - Memory: O(V)
package dfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/scwrap/core"
)

// TopoOption configures TopologicalSort.
type TopoOption func(*topoOptions)

type topoOptions struct {
	ctx context.Context
}

func defaultTopoOptions() topoOptions {
	return topoOptions{ctx: context.Background()}
}

// WithCancelContext sets the cancellation context of TopologicalSort.
// Passing a nil context has no effect.
func WithCancelContext(ctx context.Context) TopoOption {
	return func(o *topoOptions) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

type topoSorter struct {
	graph *core.Graph
	opts  topoOptions
	state map[string]int
	order []string
}

// TopologicalSort returns every declared signal in combinational order.
// Ties are broken by name, so the order is deterministic.
// Returns ErrGraphNil, ErrCycleDetected (naming a signal on the loop),
// ErrNeighborFetch or the context error.
func TopologicalSort(g *core.Graph, options ...TopoOption) ([]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	opts := defaultTopoOptions()
	for _, opt := range options {
		opt(&opts)
	}

	names := g.SignalNames()
	t := &topoSorter{
		graph: g,
		opts:  opts,
		state: make(map[string]int, len(names)),
		order: make([]string, 0, len(names)),
	}
	// Visit in reverse name order so that, after reversing the post-order,
	// independent signals come out sorted.
	for i := len(names) - 1; i >= 0; i-- {
		if t.state[names[i]] == White {
			if err := t.visit(names[i]); err != nil {
				return nil, err
			}
		}
	}
	for i, j := 0, len(t.order)-1; i < j; i, j = i+1, j-1 {
		t.order[i], t.order[j] = t.order[j], t.order[i]
	}

	return t.order, nil
}

func (t *topoSorter) visit(name string) error {
	select {
	case <-t.opts.ctx.Done():
		return t.opts.ctx.Err()
	default:
	}
	switch t.state[name] {
	case Gray:
		return fmt.Errorf("dfs: TopologicalSort: loop through %q: %w", name, ErrCycleDetected)
	case Black:
		return nil
	}
	t.state[name] = Gray

	out, err := t.graph.Fanout(name)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNeighborFetch, err)
	}
	for i := len(out) - 1; i >= 0; i-- {
		to := out[i]
		if _, ok := t.graph.Signal(to); !ok {
			continue
		}
		if err = t.visit(to); err != nil {
			return err
		}
	}

	t.state[name] = Black
	t.order = append(t.order, name)

	return nil
}
