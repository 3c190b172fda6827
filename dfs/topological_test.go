package dfs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/scwrap/core"
	"github.com/katalvlaran/scwrap/dfs"
)

func sng(role string) core.SigID { return core.ID(core.CompSNG, role) }

// chain builds a -> n1 -> n2 -> y plus a toggle register q/nq that feeds
// nothing, and merges it into a fresh graph.
func chain(t *testing.T) *core.Graph {
	t.Helper()
	p := core.NewFragment(core.CompPort)
	p.Declare(core.Clk, 1, core.Input)
	p.Declare(core.Reset, 1, core.Input)
	p.Declare(core.Port("a"), 1, core.Input)
	p.Declare(core.Port("y"), 1, core.Output)

	f := core.NewFragment(core.CompSNG)
	n1 := f.Gate(core.OpNot, sng("n1"), 1, core.Whole(core.Port("a")))
	n2 := f.Gate(core.OpNot, sng("n2"), 1, n1)
	f.Drive(&core.Node{Op: core.OpBuf, Out: core.Port("y"), In: []core.Ref{n2}})

	one := f.Const(sng("one"), 1, 1)
	zero := f.Const(sng("zero"), 1, 0)
	f.Declare(sng("nq"), 1, core.Wire)
	q := f.Reg(sng("q"), 1, core.Whole(sng("nq")), one, zero, 0, 0)
	f.Drive(&core.Node{Op: core.OpNot, Out: sng("nq"), In: []core.Ref{q}})

	g := core.NewGraph()
	require.NoError(t, g.Merge(p))
	require.NoError(t, g.Merge(f))
	require.NoError(t, g.Validate())
	return g
}

// loops builds two combinational loops: p -> r -> p and the self loop s -> s.
func loops(t *testing.T) *core.Graph {
	t.Helper()
	f := core.NewFragment(core.CompSNG)
	f.Declare(sng("p"), 1, core.Wire)
	f.Declare(sng("r"), 1, core.Wire)
	f.Declare(sng("s"), 1, core.Wire)
	f.Drive(&core.Node{Op: core.OpNot, Out: sng("p"), In: []core.Ref{core.Whole(sng("r"))}})
	f.Drive(&core.Node{Op: core.OpBuf, Out: sng("r"), In: []core.Ref{core.Whole(sng("p"))}})
	f.Drive(&core.Node{Op: core.OpNot, Out: sng("s"), In: []core.Ref{core.Whole(sng("s"))}})

	g := core.NewGraph()
	require.NoError(t, g.Merge(f))
	return g
}

func position(order []string, v string) int {
	for i, x := range order {
		if x == v {
			return i
		}
	}
	return -1
}

func TestTopo_NilGraph(t *testing.T) {
	order, err := dfs.TopologicalSort(nil)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, dfs.ErrGraphNil)
}

func TestTopo_EmptyGraph(t *testing.T) {
	order, err := dfs.TopologicalSort(core.NewGraph())
	assert.NoError(t, err)
	assert.Empty(t, order)
}

// TestTopo_Chain checks operands precede readers and register feedback is
// not a loop.
func TestTopo_Chain(t *testing.T) {
	g := chain(t)
	order, err := dfs.TopologicalSort(g)
	require.NoError(t, err)
	assert.ElementsMatch(t, g.SignalNames(), order)

	assert.Less(t, position(order, "a"), position(order, "sng_n1"))
	assert.Less(t, position(order, "sng_n1"), position(order, "sng_n2"))
	assert.Less(t, position(order, "sng_n2"), position(order, "y"))
	assert.Less(t, position(order, "sng_q"), position(order, "sng_nq"))
}

func TestTopo_Deterministic(t *testing.T) {
	first, err := dfs.TopologicalSort(chain(t))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := dfs.TopologicalSort(chain(t))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestTopo_Loop(t *testing.T) {
	_, err := dfs.TopologicalSort(loops(t))
	assert.ErrorIs(t, err, dfs.ErrCycleDetected)
}

func TestTopo_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dfs.TopologicalSort(chain(t), dfs.WithCancelContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDetectCycles(t *testing.T) {
	has, cycles, err := dfs.DetectCycles(loops(t))
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, [][]string{
		{"sng_p", "sng_r", "sng_p"},
		{"sng_s", "sng_s"},
	}, cycles)
}

func TestDetectCycles_None(t *testing.T) {
	has, cycles, err := dfs.DetectCycles(chain(t))
	require.NoError(t, err)
	assert.False(t, has)
	assert.Nil(t, cycles)

	has, _, err = dfs.DetectCycles(nil)
	assert.NoError(t, err)
	assert.False(t, has)
}
