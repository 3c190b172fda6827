// SPDX-License-Identifier: MIT
// Package: scwrap/builder
//
// config.go — internal configuration and deterministic defaults.
//
// Defaults:
//   • coreModule   = "sc_core"
//   • coreInstance = "u_core"

package builder

// builderConfig aggregates the knobs shared by every builder. It is held by
// value in a Plan.
type builderConfig struct {
	coreModule   string
	coreInstance string
}

// newBuilderConfig applies opts in order over the defaults.
func newBuilderConfig(opts ...Option) builderConfig {
	cfg := builderConfig{
		coreModule:   DefaultCoreModule,
		coreInstance: DefaultCoreInstance,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
