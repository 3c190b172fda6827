package netlist

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/katalvlaran/scwrap/bfs"
	"github.com/katalvlaran/scwrap/builder"
	"github.com/katalvlaran/scwrap/config"
	"github.com/katalvlaran/scwrap/core"
	"github.com/katalvlaran/scwrap/dfs"
	"github.com/katalvlaran/scwrap/quant"
)

// DigestSize is the length in bytes of Netlist.Digest.
const DigestSize = 16

// Netlist is a validated wrapper circuit and its Verilog text.
type Netlist struct {
	Module       string
	Bits         config.Bitstream
	Arch         config.Architecture
	Coefficients []quant.Coefficient

	// Graph is the merged, validated signal graph.
	Graph *core.Graph
	// Order lists every signal after its combinational fan-in.
	Order []string
	// Dead lists declared signals that no output depends on.
	Dead []string
	// Depth is the longest combinational path in gates; CriticalPath is one
	// such path, from a register, input or literal to its deepest signal.
	Depth        int
	CriticalPath []string

	// Text is the full Verilog source: header comment and module body.
	Text string
	// Digest is SHAKE-256 of the module body, truncated to DigestSize bytes.
	Digest [DigestSize]byte
}

// Synthesize builds the wrapper circuit for coeffs under bits and arch.
// Errors are joined with ErrConfig or ErrConsistency and the sentinel that
// caused them.
func Synthesize(coeffs []float64, bits config.Bitstream, arch config.Architecture, opts ...Option) (*Netlist, error) {
	o := newOptions(opts...)
	if err := bits.Validate(); err != nil {
		return nil, classify(err)
	}
	if err := arch.Validate(); err != nil {
		return nil, classify(err)
	}
	if o.module == o.coreModule {
		return nil, fmt.Errorf("Synthesize: module %q instantiates itself: %w", o.module, ErrConfig)
	}

	q, err := quant.Quantize(coeffs, bits.MCoeff, bits.N)
	if err != nil {
		return nil, classify(err)
	}
	p, err := builder.NewPlan(q, bits, arch,
		builder.WithCoreModule(o.coreModule), builder.WithCoreInstance(o.coreInstance))
	if err != nil {
		return nil, classify(err)
	}

	frags, err := fragments(p)
	if err != nil {
		return nil, classify(err)
	}
	g := core.NewGraph()
	for _, f := range frags {
		if err = g.Merge(f); err != nil {
			return nil, classify(err)
		}
	}
	if _, taken := g.Signal(o.coreInstance); taken {
		return nil, fmt.Errorf("Synthesize: instance %q collides with a signal: %w", o.coreInstance, ErrConfig)
	}
	if err = g.Validate(); err != nil {
		return nil, classify(err)
	}

	order, err := dfs.TopologicalSort(g)
	if err != nil {
		if errors.Is(err, dfs.ErrCycleDetected) {
			if _, loops, derr := dfs.DetectCycles(g); derr == nil && len(loops) > 0 {
				err = fmt.Errorf("%w (loops %v)", err, loops)
			}
		}
		return nil, classify(err)
	}

	cone, err := dfs.Cone(g, []string{builder.DonePort.Name(), builder.ZBinPort.Name()})
	if err != nil {
		return nil, classify(err)
	}
	dead := cone.Unreached(g.SignalNames())
	for _, name := range dead {
		o.logger.Printf("%s: dead logic: %s", o.module, name)
	}

	lv, err := bfs.Levels(g)
	if err != nil {
		return nil, classify(err)
	}
	path, err := lv.PathTo(lv.Deepest)
	if err != nil {
		return nil, classify(err)
	}

	n := &Netlist{
		Module:       o.module,
		Bits:         bits,
		Arch:         arch,
		Coefficients: q,
		Graph:        g,
		Order:        order,
		Dead:         dead,
		Depth:        lv.Depth,
		CriticalPath: path,
	}
	body, err := emit(g, order, o.module)
	if err != nil {
		return nil, classify(err)
	}
	n.Digest = digest(body)
	n.Text = n.header() + body

	st := g.Stats()
	o.logger.Printf("%s: %s N=%d: %d signals, %d nodes, %d registers, depth %d, digest %s",
		o.module, arch, bits.N, st.Signals, st.Nodes, st.Registers, n.Depth, n.DigestHex())
	return n, nil
}

// fragments runs every builder in dependency order.
func fragments(p *builder.Plan) ([]*core.Fragment, error) {
	ports, err := builder.Ports(p)
	if err != nil {
		return nil, err
	}
	lits, ops, err := builder.Literals(p)
	if err != nil {
		return nil, err
	}
	rng, src, err := builder.RandomSources(p)
	if err != nil {
		return nil, err
	}
	xs, xbits, err := builder.Conversion(p, builder.RoleInput, p.Arch.InputSNG, ops.Inputs, src.Inputs, nil)
	if err != nil {
		return nil, err
	}
	ws, wbits, err := builder.Conversion(p, builder.RoleConstant, p.Arch.ConstantSNG, ops.Constants, src.Constants, ops.Literals)
	if err != nil {
		return nil, err
	}
	eval, err := builder.EvalCore(p, xbits, wbits)
	if err != nil {
		return nil, err
	}
	ctl, err := builder.Control(p)
	if err != nil {
		return nil, err
	}
	return []*core.Fragment{ports, lits, rng, xs, ws, eval, ctl}, nil
}

func digest(body string) [DigestSize]byte {
	var out [DigestSize]byte
	h := sha3.NewShake256()
	_, _ = h.Write([]byte(body))
	_, _ = h.Read(out[:])
	return out
}

// DigestHex returns Digest as lowercase hex.
func (n *Netlist) DigestHex() string {
	return hex.EncodeToString(n.Digest[:])
}

func (n *Netlist) header() string {
	var sb strings.Builder
	sb.WriteString("// Code generated by scwrap. DO NOT EDIT.\n")
	fmt.Fprintf(&sb, "// bitstream: N=%d m=%d m_input=%d m_coeff=%d\n", n.Bits.N, n.Bits.M(), n.Bits.MInput, n.Bits.MCoeff)
	fmt.Fprintf(&sb, "// architecture: %s\n", n.Arch)
	sb.WriteString("// coefficients:")
	for _, c := range n.Coefficients {
		fmt.Fprintf(&sb, " %g->%d", c.Raw, c.Value)
	}
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "// logic depth: %d (%s)\n", n.Depth, strings.Join(n.CriticalPath, " -> "))
	fmt.Fprintf(&sb, "// digest: shake256/%d %s\n\n", DigestSize*8, n.DigestHex())
	return sb.String()
}

// WriteTo writes Text to w.
func (n *Netlist) WriteTo(w io.Writer) (int64, error) {
	if n == nil {
		return 0, ErrNilNetlist
	}
	k, err := io.WriteString(w, n.Text)
	return int64(k), err
}
