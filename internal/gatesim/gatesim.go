// Package gatesim is a cycle evaluator for a validated core.Graph.
//
// It exists to check generated structure in tests: combinational nodes are
// evaluated in dfs.TopologicalSort order, registers update together on Tick
// with the priority reset > clr > en. Values are held as uint64, so signals
// wider than 64 bits are rejected. External instances are evaluated by a
// caller-supplied InstFunc.
package gatesim

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/scwrap/core"
	"github.com/katalvlaran/scwrap/dfs"
)

// ErrTooWide indicates a signal that does not fit a uint64.
var ErrTooWide = errors.New("gatesim: signal wider than 64 bits")

// InstFunc returns the output of an instance node given its input port
// values, aligned with n.Ports.
type InstFunc func(n *core.Node, in []uint64) uint64

// Sim holds the current value of every signal.
type Sim struct {
	comb  []*core.Node
	regs  []*core.Node
	width map[string]int
	vals  map[string]uint64
	inst  InstFunc
}

// New validates g, orders its combinational nodes and returns a Sim with
// every register at its Init value and every input at 0. inst may be nil
// when g has no instance nodes.
func New(g *core.Graph, inst InstFunc) (*Sim, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	order, err := dfs.TopologicalSort(g)
	if err != nil {
		return nil, err
	}
	s := &Sim{
		width: make(map[string]int, len(order)),
		vals:  make(map[string]uint64, len(order)),
		inst:  inst,
	}
	for _, sig := range g.Signals() {
		if sig.Width > 64 {
			return nil, fmt.Errorf("%q: %w", sig.Name(), ErrTooWide)
		}
		s.width[sig.Name()] = sig.Width
	}
	for _, name := range order {
		n, err := g.Producer(name)
		if err != nil {
			return nil, err
		}
		switch {
		case n == nil:
		case n.Op.Sequential():
			s.regs = append(s.regs, n)
			s.vals[name] = n.Init
		default:
			s.comb = append(s.comb, n)
		}
	}
	s.Eval()
	return s, nil
}

func mask(w int) uint64 {
	if w >= 64 {
		return ^uint64(0)
	}
	return 1<<uint(w) - 1
}

// Set drives an input and re-evaluates combinational logic.
func (s *Sim) Set(name string, v uint64) {
	s.vals[name] = v & mask(s.width[name])
	s.Eval()
}

// Get returns the current value of name.
func (s *Sim) Get(name string) uint64 { return s.vals[name] }

func (s *Sim) ref(r core.Ref) uint64 {
	v := s.vals[r.Sig.Name()]
	if r.IsWhole() {
		return v
	}
	return (v >> uint(r.Lo)) & mask(r.Hi-r.Lo+1)
}

func (s *Sim) refWidth(r core.Ref) int {
	return r.Width(s.width[r.Sig.Name()])
}

// Eval settles every combinational node.
func (s *Sim) Eval() {
	for _, n := range s.comb {
		out := n.Out.Name()
		m := mask(s.width[out])
		var v uint64
		switch n.Op {
		case core.OpConst:
			v = n.Value
		case core.OpBuf:
			v = s.ref(n.In[0])
		case core.OpNot:
			v = ^s.ref(n.In[0])
		case core.OpAnd:
			v = m
			for _, r := range n.In {
				v &= s.ref(r)
			}
		case core.OpOr:
			for _, r := range n.In {
				v |= s.ref(r)
			}
		case core.OpXor:
			for _, r := range n.In {
				v ^= s.ref(r)
			}
		case core.OpMaj:
			a, b, c := s.ref(n.In[0]), s.ref(n.In[1]), s.ref(n.In[2])
			v = a&b | a&c | b&c
		case core.OpMux:
			v = s.ref(n.In[core.MuxLo])
			if s.ref(n.In[core.MuxSel]) != 0 {
				v = s.ref(n.In[core.MuxHi])
			}
		case core.OpLt:
			if s.ref(n.In[0]) < s.ref(n.In[1]) {
				v = 1
			}
		case core.OpEq:
			if s.ref(n.In[0]) == s.ref(n.In[1]) {
				v = 1
			}
		case core.OpAdd:
			for _, r := range n.In {
				v += s.ref(r)
			}
		case core.OpConcat:
			for _, r := range n.In {
				v = v<<uint(s.refWidth(r)) | s.ref(r)
			}
		case core.OpInst:
			if s.inst != nil {
				in := make([]uint64, len(n.In))
				for i, r := range n.In {
					in[i] = s.ref(r)
				}
				v = s.inst(n, in)
			}
		}
		s.vals[out] = v & m
	}
}

// Tick applies one rising clock edge to every register at once, then
// settles combinational logic.
func (s *Sim) Tick() {
	next := make([]uint64, len(s.regs))
	for i, n := range s.regs {
		out := n.Out.Name()
		switch {
		case s.ref(n.In[core.RegReset]) != 0:
			next[i] = n.Init
		case s.ref(n.In[core.RegClr]) != 0:
			next[i] = n.Clear
		case s.ref(n.In[core.RegEn]) != 0:
			next[i] = s.ref(n.In[core.RegD])
		default:
			next[i] = s.vals[out]
		}
	}
	for i, n := range s.regs {
		s.vals[n.Out.Name()] = next[i]
	}
	s.Eval()
}

// Run ticks k times.
func (s *Sim) Run(k int) {
	for i := 0; i < k; i++ {
		s.Tick()
	}
}
