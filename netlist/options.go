package netlist

import (
	"io"
	"log"

	"github.com/katalvlaran/scwrap/builder"
	"github.com/katalvlaran/scwrap/internal/vname"
)

// DefaultModuleName is the wrapper module name unless WithModuleName is given.
const DefaultModuleName = "sc_wrapper"

// Option customizes Synthesize.
type Option func(*options)

type options struct {
	module       string
	coreModule   string
	coreInstance string
	logger       *log.Logger
}

func newOptions(opts ...Option) options {
	o := options{
		module:       DefaultModuleName,
		coreModule:   builder.DefaultCoreModule,
		coreInstance: builder.DefaultCoreInstance,
		logger:       log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithModuleName sets the emitted module name.
// Panics if name is not a legal Verilog identifier.
func WithModuleName(name string) Option {
	if !vname.Valid(name) {
		panic("netlist: WithModuleName(" + name + ")")
	}
	return func(o *options) { o.module = name }
}

// WithCoreModule sets the module name of the evaluation core.
// Panics if name is not a legal Verilog identifier.
func WithCoreModule(name string) Option {
	if !vname.Valid(name) {
		panic("netlist: WithCoreModule(" + name + ")")
	}
	return func(o *options) { o.coreModule = name }
}

// WithCoreInstance sets the instance name of the evaluation core.
// Panics if name is not a legal Verilog identifier.
func WithCoreInstance(name string) Option {
	if !vname.Valid(name) {
		panic("netlist: WithCoreInstance(" + name + ")")
	}
	return func(o *options) { o.coreInstance = name }
}

// WithLogger routes progress and dead-logic messages to l.
// Panics if l is nil.
func WithLogger(l *log.Logger) Option {
	if l == nil {
		panic("netlist: WithLogger(nil)")
	}
	return func(o *options) { o.logger = l }
}
