// Command scwrap synthesizes a stochastic-computing wrapper for a Bernstein
// polynomial and writes it as Verilog.
//
//	scwrap -coeffs 0,0.5,1 -n 16 -minput 2 -mcoeff 4 -o bern3.v
//
// Optional outputs: -plot writes an HTML transfer curve, -vec writes
// reproducible stimulus/expectation pairs ("x_bin expected" per line).
// Nothing is written unless synthesis succeeds.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/scwrap/builder"
	"github.com/katalvlaran/scwrap/config"
	"github.com/katalvlaran/scwrap/expect"
	"github.com/katalvlaran/scwrap/internal/vname"
	"github.com/katalvlaran/scwrap/netlist"
	"github.com/katalvlaran/scwrap/report"
)

type coeffList []float64

func (c *coeffList) String() string {
	parts := make([]string, len(*c))
	for i, v := range *c {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (c *coeffList) Set(val string) error {
	var out []float64
	for _, part := range strings.Split(val, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return err
		}
		out = append(out, v)
	}
	*c = out
	return nil
}

func (c *coeffList) Get() interface{} {
	return []float64(*c)
}

type opts struct {
	coeffs  coeffList
	n       uint64
	mInput  int
	mCoeff  int
	crng    string
	irng    string
	csng    string
	isng    string
	module  string
	core    string
	out     string
	plot    string
	vec     string
	nvec    int
	key     string
	verbose bool
}

func newFlags(o *opts) *flag.FlagSet {
	def := config.DefaultArchitecture()
	fs := flag.NewFlagSet("scwrap", flag.ContinueOnError)
	fs.Var(&o.coeffs, "coeffs", "comma separated Bernstein coefficients in [0,1] (required)")
	fs.Uint64Var(&o.n, "n", 256, "bitstream length N, a power of two")
	fs.IntVar(&o.mInput, "minput", 8, "bits of x_bin")
	fs.IntVar(&o.mCoeff, "mcoeff", 8, "fractional bits of each coefficient")
	fs.StringVar(&o.crng, "crng", def.ConstantRNG.String(), "constant source: shared-lfsr, lfsr, counter, reverse-counter")
	fs.StringVar(&o.irng, "irng", def.InputRNG.String(), "input source: lfsr, single-lfsr")
	fs.StringVar(&o.csng, "csng", def.ConstantSNG.String(), "constant conversion: comparator, majority, wbg, mux, hardwire")
	fs.StringVar(&o.isng, "isng", def.InputSNG.String(), "input conversion: comparator, majority, wbg, mux")
	fs.StringVar(&o.module, "module", netlist.DefaultModuleName, "wrapper module name")
	fs.StringVar(&o.core, "core", builder.DefaultCoreModule, "evaluation core module name")
	fs.StringVar(&o.out, "o", "", "Verilog output file (default stdout)")
	fs.StringVar(&o.plot, "plot", "", "write an HTML transfer curve to this file")
	fs.StringVar(&o.vec, "vec", "", "write test vectors to this file")
	fs.IntVar(&o.nvec, "nvec", 64, "number of test vectors")
	fs.StringVar(&o.key, "key", "scwrap", "PRNG key of the test vectors")
	fs.BoolVar(&o.verbose, "v", false, "log synthesis progress")
	return fs
}

func (o *opts) architecture() (config.Architecture, error) {
	var a config.Architecture
	var errs []error
	var err error
	if a.ConstantRNG, err = config.ParseRNG(o.crng); err != nil {
		errs = append(errs, err)
	}
	if a.InputRNG, err = config.ParseRNG(o.irng); err != nil {
		errs = append(errs, err)
	}
	if a.ConstantSNG, err = config.ParseSNG(o.csng); err != nil {
		errs = append(errs, err)
	}
	if a.InputSNG, err = config.ParseSNG(o.isng); err != nil {
		errs = append(errs, err)
	}
	return a, errors.Join(errs...)
}

// run synthesizes per args. Verilog goes to stdout unless -o is given.
func run(args []string, stdout, stderr io.Writer) error {
	var o opts
	fs := newFlags(&o)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(o.coeffs) == 0 {
		return errors.New("-coeffs is required")
	}
	for _, name := range []string{o.module, o.core} {
		if !vname.Valid(name) {
			return fmt.Errorf("%q is not a Verilog identifier", name)
		}
	}
	arch, err := o.architecture()
	if err != nil {
		return err
	}
	bits := config.Bitstream{N: o.n, MInput: o.mInput, MCoeff: o.mCoeff}

	logger := log.New(io.Discard, "", 0)
	if o.verbose {
		logger = log.New(stderr, "scwrap: ", 0)
	}
	nl, err := netlist.Synthesize(o.coeffs, bits, arch,
		netlist.WithModuleName(o.module),
		netlist.WithCoreModule(o.core),
		netlist.WithLogger(logger))
	if err != nil {
		return err
	}

	// render everything before touching the filesystem
	var plot, vec bytes.Buffer
	if o.plot != "" {
		if err = report.TransferCurve(&plot, o.module, o.coeffs, bits); err != nil {
			return err
		}
	}
	if o.vec != "" {
		vs, err := expect.Vectors([]byte(o.key), o.nvec, o.coeffs, bits)
		if err != nil {
			return err
		}
		for _, v := range vs {
			fmt.Fprintf(&vec, "%d %d\n", v.XBin, v.Expected)
		}
	}

	if o.out == "" {
		if _, err = nl.WriteTo(stdout); err != nil {
			return err
		}
	} else if err = os.WriteFile(o.out, []byte(nl.Text), 0o644); err != nil {
		return err
	}
	if o.plot != "" {
		if err = os.WriteFile(o.plot, plot.Bytes(), 0o644); err != nil {
			return err
		}
	}
	if o.vec != "" {
		if err = os.WriteFile(o.vec, vec.Bytes(), 0o644); err != nil {
			return err
		}
	}
	logger.Printf("wrote %s (%s)", outName(o.out), nl.DigestHex())
	return nil
}

func outName(p string) string {
	if p == "" {
		return "stdout"
	}
	return p
}

func main() {
	log.SetPrefix("scwrap: ")
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}
