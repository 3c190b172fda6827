package netlist

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/katalvlaran/scwrap/core"
)

const indent = "    "

// emitter renders a validated graph. Widths are looked up once.
type emitter struct {
	g     *core.Graph
	buf   bytes.Buffer
	width map[string]int
}

// emit renders g as one Verilog-2001 module. Combinational assignments
// follow order; registers and the instance follow declaration/merge order.
func emit(g *core.Graph, order []string, module string) (string, error) {
	e := &emitter{g: g, width: make(map[string]int)}
	sigs := g.Signals()
	for _, s := range sigs {
		e.width[s.Name()] = s.Width
	}

	var ports, locals []core.Signal
	for _, s := range sigs {
		if s.Kind == core.Input || s.Kind == core.Output {
			ports = append(ports, s)
		} else {
			locals = append(locals, s)
		}
	}

	fmt.Fprintf(&e.buf, "module %s (\n", module)
	for i, s := range ports {
		dir := "input "
		if s.Kind == core.Output {
			dir = "output"
		}
		sep := ","
		if i == len(ports)-1 {
			sep = ""
		}
		fmt.Fprintf(&e.buf, "%s%s wire %s%s%s\n", indent, dir, bus(s.Width), s.Name(), sep)
	}
	e.buf.WriteString(");\n")

	comp := core.Comp(-1)
	for _, s := range locals {
		if s.ID.Comp != comp {
			comp = s.ID.Comp
			fmt.Fprintf(&e.buf, "\n%s// %s\n", indent, comp)
		}
		kw := "wire"
		if s.Kind == core.Reg {
			kw = "reg "
		}
		fmt.Fprintf(&e.buf, "%s%s %s%s;\n", indent, kw, bus(s.Width), s.Name())
	}

	e.buf.WriteByte('\n')
	var regs []*core.Node
	for _, name := range order {
		n, err := g.Producer(name)
		if err != nil {
			return "", err
		}
		switch {
		case n == nil:
		case n.Op == core.OpReg:
			regs = append(regs, n)
		case n.Op == core.OpInst:
			e.inst(n)
		default:
			x, err := e.expr(n)
			if err != nil {
				return "", err
			}
			fmt.Fprintf(&e.buf, "%sassign %s = %s;\n", indent, name, x)
		}
	}

	for _, n := range regs {
		e.reg(n)
	}
	e.buf.WriteString("endmodule\n")
	return e.buf.String(), nil
}

func bus(w int) string {
	if w == 1 {
		return ""
	}
	return fmt.Sprintf("[%d:0] ", w-1)
}

func literal(w int, v uint64) string {
	return fmt.Sprintf("%d'd%d", w, v)
}

// ref renders r, dropping selects that cover the whole signal.
func (e *emitter) ref(r core.Ref) string {
	name := r.Sig.Name()
	w := e.width[name]
	if r.IsWhole() || (r.Lo == 0 && r.Hi == w-1) {
		return name
	}
	return r.String()
}

func (e *emitter) refs(in []core.Ref, sep string) string {
	parts := make([]string, len(in))
	for i, r := range in {
		parts[i] = e.ref(r)
	}
	return strings.Join(parts, sep)
}

func (e *emitter) expr(n *core.Node) (string, error) {
	switch n.Op {
	case core.OpConst:
		return literal(e.width[n.Out.Name()], n.Value), nil
	case core.OpBuf:
		return e.ref(n.In[0]), nil
	case core.OpNot:
		return "~" + e.ref(n.In[0]), nil
	case core.OpAnd:
		return e.refs(n.In, " & "), nil
	case core.OpOr:
		return e.refs(n.In, " | "), nil
	case core.OpXor:
		return e.refs(n.In, " ^ "), nil
	case core.OpMaj:
		a, b, c := e.ref(n.In[0]), e.ref(n.In[1]), e.ref(n.In[2])
		return fmt.Sprintf("(%s & %s) | (%s & %s) | (%s & %s)", a, b, a, c, b, c), nil
	case core.OpMux:
		return fmt.Sprintf("%s ? %s : %s",
			e.ref(n.In[core.MuxSel]), e.ref(n.In[core.MuxHi]), e.ref(n.In[core.MuxLo])), nil
	case core.OpLt:
		return e.ref(n.In[0]) + " < " + e.ref(n.In[1]), nil
	case core.OpEq:
		return e.ref(n.In[0]) + " == " + e.ref(n.In[1]), nil
	case core.OpAdd:
		return e.refs(n.In, " + "), nil
	case core.OpConcat:
		return "{" + e.refs(n.In, ", ") + "}", nil
	default:
		return "", fmt.Errorf("emit %q: op %s: %w", n.Out.Name(), n.Op, core.ErrBadNode)
	}
}

func (e *emitter) inst(n *core.Node) {
	fmt.Fprintf(&e.buf, "\n%s%s %s (\n", indent, n.Module, n.Label)
	for i, p := range n.Ports {
		fmt.Fprintf(&e.buf, "%s%s.%s(%s),\n", indent, indent, p.Name, e.ref(n.In[i]))
	}
	fmt.Fprintf(&e.buf, "%s%s.%s(%s)\n", indent, indent, n.Output.Name, n.Out.Name())
	fmt.Fprintf(&e.buf, "%s);\n\n", indent)
}

// reg renders one register: reset, then clr, then en.
func (e *emitter) reg(n *core.Node) {
	name := n.Out.Name()
	w := e.width[name]
	fmt.Fprintf(&e.buf, "\n%salways @(posedge %s) begin\n", indent, e.ref(n.In[core.RegClk]))
	fmt.Fprintf(&e.buf, "%s%sif (%s)\n", indent, indent, e.ref(n.In[core.RegReset]))
	fmt.Fprintf(&e.buf, "%s%s%s%s <= %s;\n", indent, indent, indent, name, literal(w, n.Init))
	fmt.Fprintf(&e.buf, "%s%selse if (%s)\n", indent, indent, e.ref(n.In[core.RegClr]))
	fmt.Fprintf(&e.buf, "%s%s%s%s <= %s;\n", indent, indent, indent, name, literal(w, n.Clear))
	fmt.Fprintf(&e.buf, "%s%selse if (%s)\n", indent, indent, e.ref(n.In[core.RegEn]))
	fmt.Fprintf(&e.buf, "%s%s%s%s <= %s;\n", indent, indent, indent, name, e.ref(n.In[core.RegD]))
	fmt.Fprintf(&e.buf, "%send\n", indent)
}
