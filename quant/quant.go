// Package quant converts real-valued Bernstein coefficients into the
// fixed-point magnitudes that the conversion networks compare against.
//
// A coefficient c in [0,1] at precision m_coeff and bitstream length N is
// quantized to
//
//	Value = round(c · 2^m_coeff) · N / 2^m_coeff
//
// and classified from the raw value: exactly 0 and exactly 1 never receive a
// random source, whatever the rounding would have produced.
package quant

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDegree indicates fewer than two coefficients (degree < 1).
	ErrDegree = errors.New("quant: polynomial degree must be at least 1")

	// ErrCoefficientRange indicates a coefficient outside [0,1] or NaN.
	ErrCoefficientRange = errors.New("quant: coefficient outside [0,1]")

	// ErrPrecision indicates m_coeff < 1 or 2^m_coeff > N.
	ErrPrecision = errors.New("quant: invalid coefficient precision")
)

// Class tags how a coefficient is realized in hardware.
type Class int

const (
	// Generic coefficients get a random source and a conversion network.
	Generic Class = iota
	// Zero coefficients are the constant stochastic bit 0.
	Zero
	// One coefficients are the constant stochastic bit 1.
	One
)

func (c Class) String() string {
	switch c {
	case Generic:
		return "generic"
	case Zero:
		return "zero"
	case One:
		return "one"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// Coefficient is one quantized Bernstein coefficient.
type Coefficient struct {
	Index int     // position in the polynomial, 0..degree
	Raw   float64 // the caller's value
	Value uint64  // fixed-point magnitude scaled to N
	Class Class
}

// Saturated reports a generic coefficient that rounded up to n. Such a value
// does not fit in m bits; its stochastic bit is constant 1.
func (c Coefficient) Saturated(n uint64) bool {
	return c.Class == Generic && c.Value >= n
}

// Constant reports whether the stochastic bit is fixed at generation time,
// and its level.
func (c Coefficient) Constant(n uint64) (level bool, ok bool) {
	switch {
	case c.Class == Zero:
		return false, true
	case c.Class == One, c.Saturated(n):
		return true, true
	default:
		return false, false
	}
}

// Quantize scales every coefficient to a fixed-point value with mCoeff bits
// of precision, expressed in units of 1/n.
func Quantize(coeffs []float64, mCoeff int, n uint64) ([]Coefficient, error) {
	if len(coeffs) < 2 {
		return nil, fmt.Errorf("Quantize: %d coefficients: %w", len(coeffs), ErrDegree)
	}
	if mCoeff < 1 || mCoeff > 63 || uint64(1)<<uint(mCoeff) > n {
		return nil, fmt.Errorf("Quantize: m_coeff=%d, N=%d: %w", mCoeff, n, ErrPrecision)
	}
	scale := uint64(1) << uint(mCoeff)
	step := n / scale

	out := make([]Coefficient, len(coeffs))
	for i, c := range coeffs {
		if math.IsNaN(c) || c < 0 || c > 1 {
			return nil, fmt.Errorf("Quantize: coefficient %d = %v: %w", i, c, ErrCoefficientRange)
		}
		q := Coefficient{Index: i, Raw: c, Class: Generic}
		switch c {
		case 0:
			q.Class = Zero
		case 1:
			q.Class = One
		}
		q.Value = uint64(math.Round(c*float64(scale))) * step
		out[i] = q
	}
	return out, nil
}

// Fixed returns c rounded to mCoeff fractional bits, as a real number.
func Fixed(c float64, mCoeff int) float64 {
	scale := math.Ldexp(1, mCoeff)
	return math.Round(c*scale) / scale
}
