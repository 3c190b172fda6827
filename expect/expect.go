// Package expect computes the output a wrapper circuit should produce,
// independently of the generated structure.
//
// For a coefficient list c_0..c_d, bitstream N = 2^m and precisions
// m_input/m_coeff:
//
//	x        = x_bin / 2^m_input
//	B(x)     = sum_k fixed(c_k) · C(d,k) · x^k · (1-x)^(d-k)
//	expected = min(round(B(x)·N), N-1)
//
// where fixed rounds to m_coeff fractional bits, as the generator does.
// Vectors draws reproducible stimulus/expectation pairs from a keyed PRNG so
// an external test bench can be rebuilt from its key alone.
package expect

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/tuneinsight/lattigo/v4/utils"

	"github.com/katalvlaran/scwrap/config"
	"github.com/katalvlaran/scwrap/quant"
)

var (
	// ErrInput indicates an x_bin that does not fit m_input bits.
	ErrInput = errors.New("expect: input out of range")

	// ErrCount indicates a negative vector count.
	ErrCount = errors.New("expect: negative vector count")

	// ErrTableSize indicates a full table wider than MaxTableInput bits.
	ErrTableSize = errors.New("expect: table too large")
)

// MaxTableInput is the widest m_input Table enumerates (65536 entries).
const MaxTableInput = 16

// Vector is one stimulus and the output expected for it.
type Vector struct {
	XBin     uint64
	Expected uint64
}

// Bernstein evaluates the Bernstein polynomial with coefficients coeffs at x
// by de Casteljau's algorithm. It returns 0 for an empty list.
func Bernstein(coeffs []float64, x float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	b := append([]float64(nil), coeffs...)
	for r := len(b) - 1; r > 0; r-- {
		for k := 0; k < r; k++ {
			b[k] = b[k]*(1-x) + b[k+1]*x
		}
	}
	return b[0]
}

// Output returns the quantized result for xBin. Coefficients are rounded
// to bits.MCoeff fractional bits first.
func Output(coeffs []float64, bits config.Bitstream, xBin uint64) (uint64, error) {
	fixed, err := prepare(coeffs, bits)
	if err != nil {
		return 0, err
	}
	if xBin >= 1<<uint(bits.MInput) {
		return 0, fmt.Errorf("Output: x_bin=%d with m_input=%d: %w", xBin, bits.MInput, ErrInput)
	}
	return output(fixed, bits, xBin), nil
}

// Table returns Output for every x_bin in [0, 2^m_input).
// m_input above MaxTableInput yields ErrTableSize.
func Table(coeffs []float64, bits config.Bitstream) ([]uint64, error) {
	fixed, err := prepare(coeffs, bits)
	if err != nil {
		return nil, err
	}
	if bits.MInput > MaxTableInput {
		return nil, fmt.Errorf("Table: m_input=%d > %d: %w", bits.MInput, MaxTableInput, ErrTableSize)
	}
	out := make([]uint64, 1<<uint(bits.MInput))
	for x := range out {
		out[x] = output(fixed, bits, uint64(x))
	}
	return out, nil
}

// Vectors draws count inputs from a PRNG keyed with key and pairs each with
// its expected output. The same key always yields the same vectors.
func Vectors(key []byte, count int, coeffs []float64, bits config.Bitstream) ([]Vector, error) {
	if count < 0 {
		return nil, fmt.Errorf("Vectors: %d: %w", count, ErrCount)
	}
	fixed, err := prepare(coeffs, bits)
	if err != nil {
		return nil, err
	}
	prng, err := utils.NewKeyedPRNG(key)
	if err != nil {
		return nil, fmt.Errorf("Vectors: %w", err)
	}
	mask := uint64(1)<<uint(bits.MInput) - 1
	out := make([]Vector, count)
	var buf [8]byte
	for i := range out {
		if _, err = prng.Read(buf[:]); err != nil {
			return nil, fmt.Errorf("Vectors: %w", err)
		}
		x := binary.LittleEndian.Uint64(buf[:]) & mask
		out[i] = Vector{XBin: x, Expected: output(fixed, bits, x)}
	}
	return out, nil
}

func prepare(coeffs []float64, bits config.Bitstream) ([]float64, error) {
	if err := bits.Validate(); err != nil {
		return nil, err
	}
	if _, err := quant.Quantize(coeffs, bits.MCoeff, bits.N); err != nil {
		return nil, err
	}
	fixed := make([]float64, len(coeffs))
	for i, c := range coeffs {
		fixed[i] = quant.Fixed(c, bits.MCoeff)
	}
	return fixed, nil
}

func output(fixed []float64, bits config.Bitstream, xBin uint64) uint64 {
	x := float64(xBin) / math.Ldexp(1, bits.MInput)
	v := math.Round(Bernstein(fixed, x) * float64(bits.N))
	if v < 0 {
		return 0
	}
	if v > float64(bits.N-1) {
		return bits.N - 1
	}
	return uint64(v)
}
