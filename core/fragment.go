package core

// NewFragment creates an empty fragment owned by component c.
func NewFragment(c Comp) *Fragment {
	return &Fragment{Comp: c}
}

// Declare records a signal declaration and returns its id.
func (f *Fragment) Declare(id SigID, width int, kind Kind) SigID {
	f.Signals = append(f.Signals, Signal{ID: id, Width: width, Kind: kind})
	return id
}

// Drive appends n and returns a whole reference to its output. The output
// must be declared by this or another fragment.
func (f *Fragment) Drive(n *Node) Ref {
	f.Nodes = append(f.Nodes, n)
	return Whole(n.Out)
}

// Const declares a wire and drives it with the literal v.
func (f *Fragment) Const(id SigID, width int, v uint64) Ref {
	f.Declare(id, width, Wire)
	return f.Drive(&Node{Op: OpConst, Out: id, Value: v})
}

// Gate declares a wire of the given width and drives it with op over in.
func (f *Fragment) Gate(op Op, id SigID, width int, in ...Ref) Ref {
	f.Declare(id, width, Wire)
	return f.Drive(&Node{Op: op, Out: id, In: in})
}

// Reg declares a register clocked by Clk with synchronous Reset.
// Reset loads init; clr loads clear; en loads d.
func (f *Fragment) Reg(id SigID, width int, d, en, clr Ref, init, clear uint64) Ref {
	f.Declare(id, width, Reg)
	in := make([]Ref, 5)
	in[RegClk] = Whole(Clk)
	in[RegReset] = Whole(Reset)
	in[RegD] = d
	in[RegEn] = en
	in[RegClr] = clr
	return f.Drive(&Node{Op: OpReg, Out: id, In: in, Init: init, Clear: clear})
}

// Inst declares the output wire of an external module instance and drives
// it from that instance.
func (f *Fragment) Inst(id SigID, module, label string, out PortSpec, ports []PortSpec, in []Ref) Ref {
	f.Declare(id, out.Width, Wire)
	return f.Drive(&Node{Op: OpInst, Out: id, In: in, Module: module, Label: label, Ports: ports, Output: out})
}

// Len returns the number of declared signals and nodes.
func (f *Fragment) Len() (signals, nodes int) {
	return len(f.Signals), len(f.Nodes)
}
