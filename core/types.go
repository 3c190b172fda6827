// This file declares SigID, Signal, Ref, Node, Fragment, Graph and the
// sentinel errors of the signal graph.
//
// Errors:
//
//	ErrDuplicateSignal  - the same flattened name declared twice.
//	ErrUndeclaredSignal - a node references or drives an undeclared signal.
//	ErrUnknownSignal    - a query names a signal absent from the graph.
//	ErrWidthMismatch    - a reference or node disagrees with a declared width.
//	ErrNoDriver         - a non-input signal has no producing node.
//	ErrMultipleDrivers  - a signal has more than one producing node.
//	ErrDrivenInput      - an input port is driven by a node.
//	ErrKindMismatch     - register/wire kind disagrees with the driver.
//	ErrBadNode          - malformed node (unknown op, wrong arity).
package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Sentinel errors for signal graph construction and validation.
var (
	// ErrDuplicateSignal indicates two declarations of the same signal name.
	ErrDuplicateSignal = errors.New("core: duplicate signal declaration")

	// ErrUndeclaredSignal indicates a reference to a signal never declared.
	ErrUndeclaredSignal = errors.New("core: undeclared signal")

	// ErrUnknownSignal indicates a query for a signal absent from the graph.
	ErrUnknownSignal = errors.New("core: signal not found")

	// ErrWidthMismatch indicates a bus width that disagrees with its use site.
	ErrWidthMismatch = errors.New("core: width mismatch")

	// ErrNoDriver indicates a non-input signal without a producer.
	ErrNoDriver = errors.New("core: signal has no driver")

	// ErrMultipleDrivers indicates a signal with more than one producer.
	ErrMultipleDrivers = errors.New("core: signal has multiple drivers")

	// ErrDrivenInput indicates an input port driven from inside the module.
	ErrDrivenInput = errors.New("core: input port driven by a node")

	// ErrKindMismatch indicates a register driven by a combinational node or
	// a wire driven by a register node.
	ErrKindMismatch = errors.New("core: signal kind does not match driver")

	// ErrBadNode indicates an unknown op or wrong operand count.
	ErrBadNode = errors.New("core: malformed node")
)

// NoIndex marks an absent index or stage in a SigID.
const NoIndex = -1

// Comp names the generator component that owns a signal.
type Comp int

const (
	CompPort  Comp = iota // module ports
	CompCoeff             // coefficient literals
	CompRNG               // random / counting sources
	CompSNG               // binary-to-stochastic networks
	CompCore              // evaluation-core instance and its buses
	CompFSM               // control state machine and accumulator
)

var compNames = [...]string{
	CompPort:  "port",
	CompCoeff: "coeff",
	CompRNG:   "rng",
	CompSNG:   "sng",
	CompCore:  "core",
	CompFSM:   "fsm",
}

func (c Comp) String() string {
	if c < 0 || int(c) >= len(compNames) {
		return "comp" + strconv.Itoa(int(c))
	}
	return compNames[c]
}

// SigID is the structured identity of a signal. It is only flattened to a
// string by Name, so builders never format names by hand.
type SigID struct {
	Comp  Comp
	Role  string
	Index int
	Stage int
}

// ID returns the identifier of a signal with no index and no stage.
func ID(c Comp, role string) SigID {
	return SigID{Comp: c, Role: role, Index: NoIndex, Stage: NoIndex}
}

// Port returns the identifier of a module port. Port names are emitted verbatim.
func Port(name string) SigID {
	return ID(CompPort, name)
}

// At returns id with the given element index.
func (id SigID) At(i int) SigID {
	id.Index = i
	return id
}

// Step returns id with the given cascade stage.
func (id SigID) Step(k int) SigID {
	id.Stage = k
	return id
}

// IsZero reports whether id is the zero SigID (no role).
func (id SigID) IsZero() bool {
	return id.Role == ""
}

// Name flattens id to comp_role[_index][_sStage], e.g. "sng_w_2_s3".
// Ports drop the comp prefix: Port("x_bin") is "x_bin", Port("b").At(2)
// is "b_2".
func (id SigID) Name() string {
	var sb strings.Builder
	if id.Comp != CompPort {
		sb.WriteString(id.Comp.String())
		sb.WriteByte('_')
	}
	sb.WriteString(id.Role)
	if id.Index >= 0 {
		sb.WriteByte('_')
		sb.WriteString(strconv.Itoa(id.Index))
	}
	if id.Stage >= 0 {
		sb.WriteString("_s")
		sb.WriteString(strconv.Itoa(id.Stage))
	}
	return sb.String()
}

func (id SigID) String() string { return id.Name() }

// Well-known port identifiers shared by every builder.
var (
	Clk   = Port("clk")
	Reset = Port("reset")
)

// Kind classifies how a signal is declared.
type Kind int

const (
	Wire   Kind = iota // combinational net
	Reg                // clocked register output
	Input              // module input port, never driven inside
	Output             // module output port, driven combinationally
)

func (k Kind) String() string {
	switch k {
	case Wire:
		return "wire"
	case Reg:
		return "reg"
	case Input:
		return "input"
	case Output:
		return "output"
	default:
		return "kind" + strconv.Itoa(int(k))
	}
}

// Signal is a declared net.
type Signal struct {
	ID    SigID
	Width int
	Kind  Kind
}

// Name is shorthand for s.ID.Name().
func (s Signal) Name() string { return s.ID.Name() }

// Ref points at a whole signal, one bit, or an inclusive bit slice.
type Ref struct {
	Sig   SigID
	Lo    int
	Hi    int
	whole bool
}

// Whole references all bits of id.
func Whole(id SigID) Ref { return Ref{Sig: id, Hi: -1, whole: true} }

// Bit references bit k of id.
func Bit(id SigID, k int) Ref { return Ref{Sig: id, Lo: k, Hi: k} }

// Slice references bits lo..hi (inclusive) of id.
func Slice(id SigID, lo, hi int) Ref { return Ref{Sig: id, Lo: lo, Hi: hi} }

// Valid reports whether r points at a signal.
func (r Ref) Valid() bool { return !r.Sig.IsZero() }

// IsWhole reports whether r spans its whole signal.
func (r Ref) IsWhole() bool { return r.whole }

// Width returns the width of r given the declared width of its signal.
func (r Ref) Width(declared int) int {
	if r.whole {
		return declared
	}
	return r.Hi - r.Lo + 1
}

// Bit returns the reference to bit k of r (k relative to r's low bit).
func (r Ref) Bit(k int) Ref {
	return Bit(r.Sig, r.Lo+k)
}

func (r Ref) String() string {
	switch {
	case r.whole:
		return r.Sig.Name()
	case r.Lo == r.Hi:
		return fmt.Sprintf("%s[%d]", r.Sig.Name(), r.Lo)
	default:
		return fmt.Sprintf("%s[%d:%d]", r.Sig.Name(), r.Hi, r.Lo)
	}
}

// Op is a node operator.
type Op int

const (
	OpConst  Op = iota // Value, no inputs
	OpBuf              // identity
	OpNot              // bitwise not
	OpAnd              // n-ary bitwise and
	OpOr               // n-ary bitwise or
	OpXor              // n-ary bitwise xor
	OpMaj              // 3-input majority
	OpMux              // In[MuxSel] ? In[MuxHi] : In[MuxLo]
	OpLt               // unsigned a < b, 1 bit
	OpEq               // a == b, 1 bit
	OpAdd              // sum of zero-extended inputs, modulo 2^width
	OpConcat           // {In[0], In[1], ...}, In[0] most significant
	OpReg              // clocked register, see Reg* operand positions
	OpInst             // external module instance, Ports aligned with In
)

var opNames = [...]string{
	OpConst:  "const",
	OpBuf:    "buf",
	OpNot:    "not",
	OpAnd:    "and",
	OpOr:     "or",
	OpXor:    "xor",
	OpMaj:    "maj",
	OpMux:    "mux",
	OpLt:     "lt",
	OpEq:     "eq",
	OpAdd:    "add",
	OpConcat: "concat",
	OpReg:    "reg",
	OpInst:   "inst",
}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return "op" + strconv.Itoa(int(o))
	}
	return opNames[o]
}

// Sequential reports whether o is clocked. Sequential nodes break
// combinational paths.
func (o Op) Sequential() bool { return o == OpReg }

// Operand positions of OpMux.
const (
	MuxSel = 0
	MuxLo  = 1
	MuxHi  = 2
)

// Operand positions of OpReg. On a clock edge: reset loads Init, else clr
// loads Clear, else en loads d.
const (
	RegClk   = 0
	RegReset = 1
	RegD     = 2
	RegEn    = 3
	RegClr   = 4
)

// PortSpec names one port of an instantiated module.
type PortSpec struct {
	Name  string
	Width int
}

// Node drives one signal.
type Node struct {
	Op     Op
	Out    SigID
	In     []Ref
	Value  uint64     // OpConst literal
	Init   uint64     // OpReg value on reset
	Clear  uint64     // OpReg value on clr
	Module string     // OpInst module name
	Label  string     // OpInst instance name
	Ports  []PortSpec // OpInst input ports, aligned with In
	Output PortSpec   // OpInst output port driving Out
}

// Fragment collects the declarations and nodes of one builder.
type Fragment struct {
	Comp    Comp
	Signals []Signal
	Nodes   []*Node
}

// Graph is a merged, queryable signal graph.
//
// mu guards every field. index maps a flattened name to its entry; decl keeps
// declaration order for deterministic emission.
type Graph struct {
	mu    sync.RWMutex
	index map[string]*entry
	decl  []string
	nodes []*Node
}

type entry struct {
	sig       Signal
	owner     Comp
	producers []int
	consumers []int
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[string]*entry)}
}
