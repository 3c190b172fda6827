// Package dfs defines the visitation colours, sentinel errors and options
// shared by Cone, TopologicalSort and DetectCycles.
package dfs

import (
	"context"
	"errors"
)

// Visitation state of a signal.
const (
	White = iota // not visited yet
	Gray         // on the recursion stack
	Black        // it and all its descendants are done
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed to Cone,
	// TopologicalSort or DetectCycles.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrRootNotFound indicates that a Cone root is not declared in the graph.
	ErrRootNotFound = errors.New("dfs: root signal not found")

	// ErrCycleDetected indicates a combinational loop.
	ErrCycleDetected = errors.New("dfs: cycle detected")

	// ErrNeighborFetch indicates a failure to retrieve edges from the graph.
	ErrNeighborFetch = errors.New("dfs: failed to fetch neighbors")
)

// Option configures Cone.
type Option func(*ConeOptions)

// ConeOptions holds the configurable parameters of a Cone walk.
type ConeOptions struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	// OnVisit, if non-nil, runs when a signal is first reached (pre-order).
	// Returning an error aborts the walk.
	OnVisit func(name string) error

	// OnExit, if non-nil, runs after all fan-in of a signal is explored,
	// before it is appended to Order. Returning an error aborts the walk.
	OnExit func(name string) error

	// MaxDepth, if non-negative, limits how far from a root the walk goes.
	// 0 visits only the roots. Default -1.
	MaxDepth int

	// Filter, if non-nil, is called for each fan-in signal before descending.
	// Returning false skips it and counts it in Skipped.
	Filter func(name string) bool

	skipped int
}

// DefaultOptions returns Background context, no hooks, no depth limit and
// no filter.
func DefaultOptions() ConeOptions {
	return ConeOptions{
		Ctx:      context.Background(),
		MaxDepth: -1,
	}
}

// WithContext sets the cancellation context. A nil ctx has no effect.
func WithContext(ctx context.Context) Option {
	return func(o *ConeOptions) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs a pre-order hook.
func WithOnVisit(fn func(name string) error) Option {
	return func(o *ConeOptions) {
		o.OnVisit = fn
	}
}

// WithOnExit installs a post-order hook.
func WithOnExit(fn func(name string) error) Option {
	return func(o *ConeOptions) {
		o.OnExit = fn
	}
}

// WithMaxDepth limits the walk depth; 0 visits only the roots.
func WithMaxDepth(limit int) Option {
	return func(o *ConeOptions) {
		o.MaxDepth = limit
	}
}

// WithFilter skips fan-in signals for which fn returns false.
func WithFilter(fn func(name string) bool) Option {
	return func(o *ConeOptions) {
		o.Filter = fn
	}
}

// ConeResult is the outcome of a Cone walk.
type ConeResult struct {
	// Order lists signals in post-order: every signal after its fan-in.
	Order []string

	// Depth maps each reached signal to its distance from the nearest root
	// that discovered it.
	Depth map[string]int

	// Parent maps a signal to the signal whose fan-in first reached it.
	// Roots are absent.
	Parent map[string]string

	// Visited flags every reached signal.
	Visited map[string]bool

	// Skipped counts fan-in signals rejected by Filter.
	Skipped int
}

// Unreached returns the names in all that the walk never reached, in the
// order given.
func (r *ConeResult) Unreached(all []string) []string {
	var out []string
	for _, name := range all {
		if !r.Visited[name] {
			out = append(out, name)
		}
	}
	return out
}
