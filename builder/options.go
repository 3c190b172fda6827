// SPDX-License-Identifier: MIT
// Package: scwrap/builder
//
// options.go — functional options for NewPlan.
//
// Contract:
//   • Options are functional (type Option func(*builderConfig)).
//   • Option constructors validate and panic on meaningless inputs;
//     builders themselves never panic.
//   • Later options override earlier ones.

package builder

import "github.com/katalvlaran/scwrap/internal/vname"

// Option customizes a Plan before any fragment is built.
type Option func(*builderConfig)

// WithCoreModule sets the module name of the external evaluation core.
// Panics if name is not a legal Verilog identifier.
func WithCoreModule(name string) Option {
	if !vname.Valid(name) {
		panic("builder: WithCoreModule(" + name + ")")
	}
	return func(c *builderConfig) {
		c.coreModule = name
	}
}

// WithCoreInstance sets the instance name of the evaluation core.
// Panics if name is not a legal Verilog identifier.
func WithCoreInstance(name string) Option {
	if !vname.Valid(name) {
		panic("builder: WithCoreInstance(" + name + ")")
	}
	return func(c *builderConfig) {
		c.coreInstance = name
	}
}
