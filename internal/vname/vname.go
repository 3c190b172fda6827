// Package vname checks Verilog-2001 simple identifiers.
package vname

// keywords is the reserved-word list of IEEE 1364-2001.
var keywords = map[string]struct{}{
	"always": {}, "and": {}, "assign": {}, "automatic": {}, "begin": {},
	"buf": {}, "bufif0": {}, "bufif1": {}, "case": {}, "casex": {},
	"casez": {}, "cell": {}, "cmos": {}, "config": {}, "deassign": {},
	"default": {}, "defparam": {}, "design": {}, "disable": {}, "edge": {},
	"else": {}, "end": {}, "endcase": {}, "endconfig": {}, "endfunction": {},
	"endgenerate": {}, "endmodule": {}, "endprimitive": {}, "endspecify": {},
	"endtable": {}, "endtask": {}, "event": {}, "for": {}, "force": {},
	"forever": {}, "fork": {}, "function": {}, "generate": {}, "genvar": {},
	"highz0": {}, "highz1": {}, "if": {}, "ifnone": {}, "incdir": {},
	"include": {}, "initial": {}, "inout": {}, "input": {}, "instance": {},
	"integer": {}, "join": {}, "large": {}, "liblist": {}, "library": {},
	"localparam": {}, "macromodule": {}, "medium": {}, "module": {},
	"nand": {}, "negedge": {}, "nmos": {}, "nor": {}, "noshowcancelled": {},
	"not": {}, "notif0": {}, "notif1": {}, "or": {}, "output": {},
	"parameter": {}, "pmos": {}, "posedge": {}, "primitive": {}, "pull0": {},
	"pull1": {}, "pulldown": {}, "pullup": {}, "pulsestyle_onevent": {},
	"pulsestyle_ondetect": {}, "rcmos": {}, "real": {}, "realtime": {},
	"reg": {}, "release": {}, "repeat": {}, "rnmos": {}, "rpmos": {},
	"rtran": {}, "rtranif0": {}, "rtranif1": {}, "scalared": {},
	"showcancelled": {}, "signed": {}, "small": {}, "specify": {},
	"specparam": {}, "strong0": {}, "strong1": {}, "supply0": {},
	"supply1": {}, "table": {}, "task": {}, "time": {}, "tran": {},
	"tranif0": {}, "tranif1": {}, "tri": {}, "tri0": {}, "tri1": {},
	"triand": {}, "trior": {}, "trireg": {}, "unsigned": {}, "use": {},
	"vectored": {}, "wait": {}, "wand": {}, "weak0": {}, "weak1": {},
	"while": {}, "wire": {}, "wor": {}, "xnor": {}, "xor": {},
}

// Valid reports whether s is a non-empty simple identifier
// ([A-Za-z_][A-Za-z0-9_$]*) and not a reserved word.
func Valid(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '$'):
		default:
			return false
		}
	}
	_, reserved := keywords[s]
	return !reserved
}
