// Package core: Graph merge, validation and query methods.
//
// Merge only records declarations and nodes; cross-fragment references are
// legal until Validate runs, because components reference each other's
// signals (sources read the FSM's running/restart, the FSM reads the core's
// output). Producer and consumer lists are re-indexed after every Merge.

package core

import (
	"errors"
	"fmt"
	"sort"
)

// Merge adds every declaration and node of f to g.
// Returns ErrDuplicateSignal (naming both owners) if a flattened name is
// already declared; in that case g is left unchanged.
// Complexity: O(|f| + V + E) including the re-index.
func (g *Graph) Merge(f *Fragment) error {
	if f == nil {
		return nil
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	// Reject the whole fragment before touching the graph.
	seen := make(map[string]struct{}, len(f.Signals))
	for _, s := range f.Signals {
		name := s.Name()
		if e, ok := g.index[name]; ok {
			return fmt.Errorf("Merge(%s): %q already declared by %s: %w", f.Comp, name, e.owner, ErrDuplicateSignal)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("Merge(%s): %q declared twice: %w", f.Comp, name, ErrDuplicateSignal)
		}
		seen[name] = struct{}{}
	}

	for _, s := range f.Signals {
		name := s.Name()
		g.index[name] = &entry{sig: s, owner: f.Comp}
		g.decl = append(g.decl, name)
	}
	g.nodes = append(g.nodes, f.Nodes...)
	g.reindex()

	return nil
}

// reindex rebuilds producer and consumer lists. Caller holds the write lock.
func (g *Graph) reindex() {
	for _, e := range g.index {
		e.producers = e.producers[:0]
		e.consumers = e.consumers[:0]
	}
	for i, n := range g.nodes {
		if e, ok := g.index[n.Out.Name()]; ok {
			e.producers = append(e.producers, i)
		}
		for _, r := range n.In {
			if e, ok := g.index[r.Sig.Name()]; ok {
				// a node reading the same signal twice is one consumer
				if k := len(e.consumers); k == 0 || e.consumers[k-1] != i {
					e.consumers = append(e.consumers, i)
				}
			}
		}
	}
}

// Validate checks the structural invariants of the whole graph and returns
// every violation joined (errors.Is works on each sentinel), or nil.
//
// Checked per node: output declared, operands declared, slice bounds, and
// the width rule of its op. Checked per signal: inputs undriven, all other
// signals driven exactly once, register kind matches driver.
// Complexity: O(V + E).
func (g *Graph) Validate() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var errs []error
	for _, n := range g.nodes {
		errs = append(errs, g.checkNode(n)...)
	}
	for _, name := range g.decl {
		e := g.index[name]
		switch {
		case e.sig.Kind == Input && len(e.producers) > 0:
			errs = append(errs, fmt.Errorf("%q: %w", name, ErrDrivenInput))
		case e.sig.Kind != Input && len(e.producers) == 0:
			errs = append(errs, fmt.Errorf("%q (%s): %w", name, e.owner, ErrNoDriver))
		case len(e.producers) > 1:
			errs = append(errs, fmt.Errorf("%q: %d drivers: %w", name, len(e.producers), ErrMultipleDrivers))
		case len(e.producers) == 1:
			seq := g.nodes[e.producers[0]].Op.Sequential()
			if seq != (e.sig.Kind == Reg) {
				errs = append(errs, fmt.Errorf("%q: %s driven by %s: %w", name, e.sig.Kind, g.nodes[e.producers[0]].Op, ErrKindMismatch))
			}
		}
		if e.sig.Width < 1 {
			errs = append(errs, fmt.Errorf("%q: declared width %d: %w", name, e.sig.Width, ErrWidthMismatch))
		}
	}

	return errors.Join(errs...)
}

// width resolves the width of r, or an error. Caller holds a lock.
func (g *Graph) width(r Ref) (int, error) {
	e, ok := g.index[r.Sig.Name()]
	if !ok {
		return 0, fmt.Errorf("%q: %w", r.Sig.Name(), ErrUndeclaredSignal)
	}
	if r.IsWhole() {
		return e.sig.Width, nil
	}
	if r.Lo < 0 || r.Hi < r.Lo || r.Hi >= e.sig.Width {
		return 0, fmt.Errorf("%s of width %d: %w", r, e.sig.Width, ErrWidthMismatch)
	}
	return r.Hi - r.Lo + 1, nil
}

// checkNode applies the operand and width rules of n.Op.
func (g *Graph) checkNode(n *Node) []error {
	out := n.Out.Name()
	fail := func(format string, args ...interface{}) []error {
		return []error{fmt.Errorf("%s %q: "+format, append([]interface{}{n.Op, out}, args...)...)}
	}

	oe, ok := g.index[out]
	if !ok {
		return fail("output: %w", ErrUndeclaredSignal)
	}
	ow := oe.sig.Width

	ws := make([]int, len(n.In))
	var errs []error
	for i, r := range n.In {
		w, err := g.width(r)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s %q operand %d: %w", n.Op, out, i, err))
			continue
		}
		ws[i] = w
	}
	if len(errs) > 0 {
		return errs
	}

	arity := func(want int) bool { return len(n.In) == want }
	allEq := func(w int) bool {
		for _, x := range ws {
			if x != w {
				return false
			}
		}
		return true
	}

	switch n.Op {
	case OpConst:
		if !arity(0) {
			return fail("%d operands: %w", len(n.In), ErrBadNode)
		}
		if ow < 64 && n.Value>>uint(ow) != 0 {
			return fail("literal %d does not fit %d bits: %w", n.Value, ow, ErrWidthMismatch)
		}
	case OpBuf, OpNot:
		if !arity(1) {
			return fail("%d operands: %w", len(n.In), ErrBadNode)
		}
		if !allEq(ow) {
			return fail("operand widths %v, output %d: %w", ws, ow, ErrWidthMismatch)
		}
	case OpAnd, OpOr, OpXor:
		if len(n.In) < 1 {
			return fail("no operands: %w", ErrBadNode)
		}
		if !allEq(ow) {
			return fail("operand widths %v, output %d: %w", ws, ow, ErrWidthMismatch)
		}
	case OpMaj:
		if !arity(3) {
			return fail("%d operands: %w", len(n.In), ErrBadNode)
		}
		if !allEq(ow) {
			return fail("operand widths %v, output %d: %w", ws, ow, ErrWidthMismatch)
		}
	case OpMux:
		if !arity(3) {
			return fail("%d operands: %w", len(n.In), ErrBadNode)
		}
		if ws[MuxSel] != 1 || ws[MuxLo] != ow || ws[MuxHi] != ow {
			return fail("operand widths %v, output %d: %w", ws, ow, ErrWidthMismatch)
		}
	case OpLt, OpEq:
		if !arity(2) {
			return fail("%d operands: %w", len(n.In), ErrBadNode)
		}
		if ws[0] != ws[1] || ow != 1 {
			return fail("operand widths %v, output %d: %w", ws, ow, ErrWidthMismatch)
		}
	case OpAdd:
		if len(n.In) < 2 {
			return fail("%d operands: %w", len(n.In), ErrBadNode)
		}
		for _, w := range ws {
			if w > ow {
				return fail("operand widths %v exceed output %d: %w", ws, ow, ErrWidthMismatch)
			}
		}
	case OpConcat:
		if len(n.In) < 1 {
			return fail("no operands: %w", ErrBadNode)
		}
		sum := 0
		for _, w := range ws {
			sum += w
		}
		if sum != ow {
			return fail("operand widths %v sum to %d, output %d: %w", ws, sum, ow, ErrWidthMismatch)
		}
	case OpReg:
		if !arity(5) {
			return fail("%d operands: %w", len(n.In), ErrBadNode)
		}
		if ws[RegClk] != 1 || ws[RegReset] != 1 || ws[RegEn] != 1 || ws[RegClr] != 1 || ws[RegD] != ow {
			return fail("operand widths %v, output %d: %w", ws, ow, ErrWidthMismatch)
		}
		if ow < 64 && (n.Init>>uint(ow) != 0 || n.Clear>>uint(ow) != 0) {
			return fail("init/clear %d/%d do not fit %d bits: %w", n.Init, n.Clear, ow, ErrWidthMismatch)
		}
	case OpInst:
		if len(n.Ports) != len(n.In) || n.Module == "" {
			return fail("%d ports for %d operands: %w", len(n.Ports), len(n.In), ErrBadNode)
		}
		for i, p := range n.Ports {
			if ws[i] != p.Width {
				return fail("port %s width %d, connected %d: %w", p.Name, p.Width, ws[i], ErrWidthMismatch)
			}
		}
		if n.Output.Width != ow {
			return fail("port %s width %d, connected %d: %w", n.Output.Name, n.Output.Width, ow, ErrWidthMismatch)
		}
	default:
		return fail("%w", ErrBadNode)
	}

	return nil
}

// Signal returns the declaration named name.
func (g *Graph) Signal(name string) (Signal, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.index[name]
	if !ok {
		return Signal{}, false
	}
	return e.sig, true
}

// Owner returns the component that declared name.
func (g *Graph) Owner(name string) (Comp, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.index[name]
	if !ok {
		return 0, false
	}
	return e.owner, true
}

// Signals returns every declaration in declaration order.
// Complexity: O(V).
func (g *Graph) Signals() []Signal {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]Signal, 0, len(g.decl))
	for _, name := range g.decl {
		out = append(out, g.index[name].sig)
	}
	return out
}

// SignalNames returns every flattened name in sorted order.
// Complexity: O(V log V).
func (g *Graph) SignalNames() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, len(g.decl))
	copy(out, g.decl)
	sort.Strings(out)
	return out
}

// Nodes returns the nodes in merge order. The slice is a copy; nodes are shared.
func (g *Graph) Nodes() []*Node {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Producer returns the node driving name, or nil for an input port.
func (g *Graph) Producer(name string) (*Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.index[name]
	if !ok {
		return nil, fmt.Errorf("Producer(%q): %w", name, ErrUnknownSignal)
	}
	switch len(e.producers) {
	case 0:
		return nil, nil
	case 1:
		return g.nodes[e.producers[0]], nil
	default:
		return nil, fmt.Errorf("Producer(%q): %w", name, ErrMultipleDrivers)
	}
}

// Consumers returns the nodes reading name, in merge order.
func (g *Graph) Consumers(name string) ([]*Node, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.index[name]
	if !ok {
		return nil, fmt.Errorf("Consumers(%q): %w", name, ErrUnknownSignal)
	}
	out := make([]*Node, 0, len(e.consumers))
	for _, i := range e.consumers {
		out = append(out, g.nodes[i])
	}
	return out, nil
}

// Fanout returns the sorted names of signals driven by combinational nodes
// that read name. Register inputs are not combinational edges.
// Complexity: O(d log d) for d consumers.
func (g *Graph) Fanout(name string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.index[name]
	if !ok {
		return nil, fmt.Errorf("Fanout(%q): %w", name, ErrUnknownSignal)
	}
	seen := make(map[string]struct{}, len(e.consumers))
	out := make([]string, 0, len(e.consumers))
	for _, i := range e.consumers {
		n := g.nodes[i]
		if n.Op.Sequential() {
			continue
		}
		to := n.Out.Name()
		if _, dup := seen[to]; dup {
			continue
		}
		seen[to] = struct{}{}
		out = append(out, to)
	}
	sort.Strings(out)
	return out, nil
}

// Fanin returns the sorted names of every signal read by the driver of
// name, register operands included. Input ports have no fanin.
func (g *Graph) Fanin(name string) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.index[name]
	if !ok {
		return nil, fmt.Errorf("Fanin(%q): %w", name, ErrUnknownSignal)
	}
	seen := make(map[string]struct{})
	var out []string
	for _, i := range e.producers {
		for _, r := range g.nodes[i].In {
			from := r.Sig.Name()
			if _, dup := seen[from]; dup {
				continue
			}
			seen[from] = struct{}{}
			out = append(out, from)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Stats is a read-only summary of a graph.
type Stats struct {
	Signals   int
	Nodes     int
	Registers int
	ByComp    map[Comp]int // declared signals per owning component
}

// Stats returns counts by kind and owner. Complexity: O(V).
func (g *Graph) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()
	st := Stats{Signals: len(g.decl), Nodes: len(g.nodes), ByComp: make(map[Comp]int)}
	for _, name := range g.decl {
		e := g.index[name]
		st.ByComp[e.owner]++
		if e.sig.Kind == Reg {
			st.Registers++
		}
	}
	return st
}
