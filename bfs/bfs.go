package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/scwrap/core"
)

// queueItem pairs a signal with its level and critical input.
type queueItem struct {
	name   string
	level  int
	parent string // empty for level 0
}

// walker encapsulates mutable levelization state.
type walker struct {
	graph   *core.Graph
	opts    LevelOptions
	ctx     context.Context
	queue   []queueItem
	pending map[string]int // unresolved combinational inputs
	res     *LevelResult
}

// Levels computes the combinational level of every signal of g.
// Inputs, registers and literals sit at level 0.
// Returns ErrGraphNil, ErrOptionViolation, ErrDepthExceeded, ErrUnleveled,
// a wrapped graph error, the context error or a hook error.
// Complexity: O(V + E).
func Levels(g *core.Graph, opts ...Option) (*LevelResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	names := g.SignalNames()
	n := len(names)
	w := &walker{
		graph:   g,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		pending: make(map[string]int, n),
		res: &LevelResult{
			Order:  make([]string, 0, n),
			Level:  make(map[string]int, n),
			Parent: make(map[string]string, n),
		},
	}

	// Seed: every signal without combinational inputs.
	for _, name := range names {
		node, err := g.Producer(name)
		if err != nil {
			return nil, fmt.Errorf("bfs: Levels: %w", err)
		}
		if node != nil && !node.Op.Sequential() {
			in, err := g.Fanin(name)
			if err != nil {
				return nil, fmt.Errorf("bfs: Levels: %w", err)
			}
			if len(in) > 0 {
				w.pending[name] = len(in)
				continue
			}
		}
		if err := w.enqueue(name, 0, ""); err != nil {
			return nil, err
		}
	}

	if err := w.loop(); err != nil {
		return nil, err
	}
	if left := n - len(w.res.Order); left > 0 {
		return nil, fmt.Errorf("bfs: Levels: %d of %d signals: %w", left, n, ErrUnleveled)
	}
	return w.res, nil
}

// enqueue fixes name at level d, calls OnEnqueue and queues it.
func (w *walker) enqueue(name string, d int, parent string) error {
	if w.opts.MaxDepth > 0 && d > w.opts.MaxDepth {
		return fmt.Errorf("bfs: %q at level %d > %d: %w", name, d, w.opts.MaxDepth, ErrDepthExceeded)
	}
	w.res.Level[name] = d
	if parent != "" {
		w.res.Parent[name] = parent
	}
	if d > w.res.Depth || w.res.Deepest == "" {
		w.res.Depth, w.res.Deepest = d, name
	}
	w.opts.OnEnqueue(name, d)
	w.queue = append(w.queue, queueItem{name: name, level: d, parent: parent})
	return nil
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.dequeue()
		if err := w.visit(item); err != nil {
			return err
		}
		if err := w.release(item); err != nil {
			return err
		}
	}
	return nil
}

// dequeue pops the first item, invokes OnDequeue, and returns it.
func (w *walker) dequeue() queueItem {
	item := w.queue[0]
	w.queue = w.queue[1:]
	w.opts.OnDequeue(item.name, item.level)
	return item
}

// visit records the signal in Order and calls OnVisit.
func (w *walker) visit(item queueItem) error {
	w.res.Order = append(w.res.Order, item.name)
	if err := w.opts.OnVisit(item.name, item.level); err != nil {
		return fmt.Errorf("bfs: OnVisit error at %q: %w", item.name, err)
	}
	return nil
}

// release raises the tentative level of every combinational reader of item
// and enqueues the readers whose inputs are all known.
func (w *walker) release(item queueItem) error {
	readers, err := w.graph.Fanout(item.name)
	if err != nil {
		return fmt.Errorf("bfs: Levels: %w", err)
	}
	for _, r := range readers {
		if lv, seen := w.res.Level[r]; !seen || item.level+1 > lv {
			w.res.Level[r] = item.level + 1
			w.res.Parent[r] = item.name
		}
		w.pending[r]--
		if w.pending[r] == 0 {
			delete(w.pending, r)
			if err := w.enqueue(r, w.res.Level[r], w.res.Parent[r]); err != nil {
				return err
			}
		}
	}
	return nil
}
