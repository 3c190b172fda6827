package bfs_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/katalvlaran/scwrap/bfs"
	"github.com/katalvlaran/scwrap/core"
)

// pipeline builds
//
//	n1 = a & b;  n2 = ~n1;  n3 = n2 | a;  q <= n3 (en a, clr b);  y = q ^ n3
func pipeline(t *testing.T) *core.Graph {
	t.Helper()
	a, b, y := core.Port("a"), core.Port("b"), core.Port("y")
	ports := core.NewFragment(core.CompPort)
	ports.Declare(core.Clk, 1, core.Input)
	ports.Declare(core.Reset, 1, core.Input)
	ports.Declare(a, 1, core.Input)
	ports.Declare(b, 1, core.Input)
	ports.Declare(y, 1, core.Output)

	f := core.NewFragment(core.CompSNG)
	n1 := f.Gate(core.OpAnd, core.ID(core.CompSNG, "n1"), 1, core.Whole(a), core.Whole(b))
	n2 := f.Gate(core.OpNot, core.ID(core.CompSNG, "n2"), 1, n1)
	n3 := f.Gate(core.OpOr, core.ID(core.CompSNG, "n3"), 1, n2, core.Whole(a))
	q := f.Reg(core.ID(core.CompSNG, "q"), 1, n3, core.Whole(a), core.Whole(b), 0, 0)
	f.Drive(&core.Node{Op: core.OpXor, Out: y, In: []core.Ref{q, n3}})

	g := core.NewGraph()
	for _, fr := range []*core.Fragment{ports, f} {
		if err := g.Merge(fr); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}
	return g
}

// TestLevels_Errors verifies that invalid inputs and options are rejected.
func TestLevels_Errors(t *testing.T) {
	if _, err := bfs.Levels(nil); !errors.Is(err, bfs.ErrGraphNil) {
		t.Errorf("nil graph: want ErrGraphNil, got %v", err)
	}
	g := pipeline(t)
	if _, err := bfs.Levels(g, bfs.WithMaxDepth(-1)); !errors.Is(err, bfs.ErrOptionViolation) {
		t.Errorf("negative depth: want ErrOptionViolation, got %v", err)
	}
	if _, err := bfs.Levels(g, bfs.WithMaxDepth(3)); !errors.Is(err, bfs.ErrDepthExceeded) {
		t.Errorf("MaxDepth=3: want ErrDepthExceeded, got %v", err)
	}
	if _, err := bfs.Levels(g, bfs.WithMaxDepth(4)); err != nil {
		t.Errorf("MaxDepth=4: unexpected error %v", err)
	}
}

func TestLevels_Pipeline(t *testing.T) {
	res, err := bfs.Levels(pipeline(t))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{
		"a": 0, "b": 0, "clk": 0, "reset": 0, "sng_q": 0,
		"sng_n1": 1, "sng_n2": 2, "sng_n3": 3, "y": 4,
	}
	if !reflect.DeepEqual(res.Level, want) {
		t.Errorf("Level = %v; want %v", res.Level, want)
	}
	order := []string{"a", "b", "clk", "reset", "sng_q", "sng_n1", "sng_n2", "sng_n3", "y"}
	if !reflect.DeepEqual(res.Order, order) {
		t.Errorf("Order = %v; want %v", res.Order, order)
	}
	if res.Depth != 4 || res.Deepest != "y" {
		t.Errorf("Depth, Deepest = %d, %q; want 4, \"y\"", res.Depth, res.Deepest)
	}

	path, err := res.PathTo("y")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"a", "sng_n1", "sng_n2", "sng_n3", "y"}; !reflect.DeepEqual(path, want) {
		t.Errorf("PathTo(y) = %v; want %v", path, want)
	}
	if _, err := res.PathTo("nope"); !errors.Is(err, bfs.ErrNotReached) {
		t.Errorf("PathTo(nope): want ErrNotReached, got %v", err)
	}
}

func TestLevels_Loop(t *testing.T) {
	f := core.NewFragment(core.CompFSM)
	p, r := core.ID(core.CompFSM, "p"), core.ID(core.CompFSM, "r")
	f.Gate(core.OpNot, p, 1, core.Whole(r))
	f.Gate(core.OpNot, r, 1, core.Whole(p))
	f.Const(core.ID(core.CompFSM, "k"), 1, 1)
	g := core.NewGraph()
	if err := g.Merge(f); err != nil {
		t.Fatal(err)
	}
	if _, err := bfs.Levels(g); !errors.Is(err, bfs.ErrUnleveled) {
		t.Errorf("loop: want ErrUnleveled, got %v", err)
	}
}

func TestLevels_Hooks(t *testing.T) {
	g := pipeline(t)
	var enq, deq []string
	_, err := bfs.Levels(g,
		bfs.WithOnEnqueue(func(name string, _ int) { enq = append(enq, name) }),
		bfs.WithOnDequeue(func(name string, _ int) { deq = append(deq, name) }),
	)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(enq, deq) || len(enq) != 9 {
		t.Errorf("enqueue %v, dequeue %v", enq, deq)
	}

	stop := errors.New("stop")
	_, err = bfs.Levels(g, bfs.WithOnVisit(func(name string, level int) error {
		if level == 2 {
			return stop
		}
		return nil
	}))
	if !errors.Is(err, stop) {
		t.Errorf("OnVisit: want stop, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err = bfs.Levels(g, bfs.WithContext(ctx)); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled: want context.Canceled, got %v", err)
	}
}
