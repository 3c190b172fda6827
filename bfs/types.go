// Package bfs provides tunable options and error definitions
// for breadth-first levelization of a core.Graph.
package bfs

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for Levels.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("bfs: graph is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrDepthExceeded is returned when a signal lies deeper than MaxDepth.
	ErrDepthExceeded = errors.New("bfs: logic depth exceeds limit")

	// ErrUnleveled is returned when some signals sit on or behind a
	// combinational loop and never become ready.
	ErrUnleveled = errors.New("bfs: signals on a combinational loop")

	// ErrNotReached is returned by PathTo for a signal without a level.
	ErrNotReached = errors.New("bfs: signal not leveled")
)

// Option configures Levels via functional arguments.
// If an Option is invalid (e.g. negative depth), it will be recorded
// internally and surfaced as ErrOptionViolation when Levels is invoked.
type Option func(*LevelOptions)

// LevelOptions holds parameters and callbacks to customize Levels.
type LevelOptions struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnEnqueue is called when a signal becomes ready, with its level.
	OnEnqueue func(name string, level int)

	// OnDequeue is called immediately before visiting a signal.
	OnDequeue func(name string, level int)

	// OnVisit is called when visiting a signal. If it returns an error,
	// Levels aborts and propagates that error.
	OnVisit func(name string, level int) error

	// MaxDepth, if > 0, is the deepest level allowed.
	// A value of 0 explicitly disables any depth limit.
	MaxDepth int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns a LevelOptions with:
//   - Context.Background()
//   - no depth limit (MaxDepth == 0)
//   - no-op hooks (OnEnqueue, OnDequeue, OnVisit)
func DefaultOptions() LevelOptions {
	return LevelOptions{
		Ctx:       context.Background(),
		OnEnqueue: func(string, int) {},
		OnDequeue: func(string, int) {},
		OnVisit:   func(string, int) error { return nil },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *LevelOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnEnqueue registers a callback to run on enqueue.
func WithOnEnqueue(fn func(name string, level int)) Option {
	return func(o *LevelOptions) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnDequeue registers a callback to run on dequeue.
func WithOnDequeue(fn func(name string, level int)) Option {
	return func(o *LevelOptions) {
		if fn != nil {
			o.OnDequeue = fn
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the walk.
func WithOnVisit(fn func(name string, level int) error) Option {
	return func(o *LevelOptions) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth fails the walk once a signal is deeper than d gates.
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *LevelOptions) {
		switch {
		case d < 0:
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
		default:
			o.MaxDepth = d
		}
	}
}

// LevelResult holds the outcome of Levels:
//   - Order: signals in the sequence they became ready.
//   - Level: gates between a signal and the nearest register, input or
//     literal along its longest combinational path.
//   - Parent: the fan-in signal that set each level (the critical input).
//   - Depth, Deepest: the maximum level and the first signal reaching it.
type LevelResult struct {
	Order   []string
	Level   map[string]int
	Parent  map[string]string
	Depth   int
	Deepest string
}

// PathTo reconstructs the critical path ending at dest, starting at a
// level-0 signal. Returns ErrNotReached if dest has no level.
func (r *LevelResult) PathTo(dest string) ([]string, error) {
	if _, ok := r.Level[dest]; !ok {
		return nil, fmt.Errorf("bfs: PathTo(%q): %w", dest, ErrNotReached)
	}
	// build reversed path
	path := []string{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
