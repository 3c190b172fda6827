// Package builder defines the method names, control states and well-known
// signal identifiers shared by every circuit builder.
package builder

import "github.com/katalvlaran/scwrap/core"

//-----------------------------------------------------------------------------
// Builder method names, used to prefix errors.
//-----------------------------------------------------------------------------

const (
	MethodPlan          = "NewPlan"
	MethodPorts         = "Ports"
	MethodLiterals      = "Literals"
	MethodRandomSources = "RandomSources"
	MethodConversion    = "Conversion"
	MethodEvalCore      = "EvalCore"
	MethodControl       = "Control"
)

//-----------------------------------------------------------------------------
// Control states
//-----------------------------------------------------------------------------

// State is the value held by the control FSM's 2-bit state register.
type State uint64

const (
	// Idle: after reset or a completed run, waiting for start.
	Idle State = 0
	// Initialized: start seen; sources, counter, accumulator and done clear.
	Initialized State = 1
	// Running: sampling; sources, counter and accumulator advance.
	Running State = 2
)

// StateWidth is the width of the state register.
const StateWidth = 2

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	default:
		return "invalid"
	}
}

//-----------------------------------------------------------------------------
// Well-known signals
//-----------------------------------------------------------------------------

// Module ports. clk and reset are core.Clk and core.Reset.
var (
	StartPort = core.Port("start")
	XBinPort  = core.Port("x_bin")
	DonePort  = core.Port("done")
	ZBinPort  = core.Port("z_bin")
)

// Signals that cross builder boundaries.
var (
	// RunningSignal is high only in Running; it enables sources, counter and
	// accumulator.
	RunningSignal = core.ID(core.CompFSM, "running")
	// RestartSignal is high only in Initialized; it clears sources, counter,
	// accumulator and done.
	RestartSignal = core.ID(core.CompFSM, "restart")
	// CoreOutput is the evaluation core's stochastic output bit.
	CoreOutput = core.ID(core.CompCore, "z")
	// PaddedInput is x_bin left-aligned to m bits.
	PaddedInput = core.ID(core.CompCoeff, "xpad")
)

// Evaluation-core port names.
const (
	CorePortX = "x"
	CorePortW = "w"
	CorePortZ = "z"
)

// Defaults resolved by newBuilderConfig.
const (
	DefaultCoreModule   = "sc_core"
	DefaultCoreInstance = "u_core"
)

// Roles of the signal graph named by the conversion builders.
const (
	roleInput    = "x"
	roleConstant = "w"
)
