// SPDX-License-Identifier: MIT
// Package: scwrap/config
//
// types.go — strategy sum types, bitstream geometry and architecture choice.

package config

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

// Sentinel errors for configuration. All of them are configuration errors in
// the sense of the synthesis taxonomy: generation aborts before any artifact.
var (
	// ErrNotPowerOfTwo indicates a bitstream length that is not 2^m with m >= 1.
	ErrNotPowerOfTwo = errors.New("config: bitstream length is not a power of two")

	// ErrWidth indicates an invalid bit-width relationship (m_input, m_coeff, m).
	ErrWidth = errors.New("config: invalid bit width")

	// ErrHardWireInput indicates HardWire conversion requested for inputs.
	ErrHardWireInput = errors.New("config: HardWire conversion is only valid for constants")

	// ErrRoleMismatch indicates a random source strategy used for the wrong role.
	ErrRoleMismatch = errors.New("config: strategy not valid for role")

	// ErrUnknownStrategy indicates an enum value or name outside the closed set.
	ErrUnknownStrategy = errors.New("config: unknown strategy")
)

// MaxM bounds log2(N). Values, seeds and registers are carried in uint64 and
// the accumulator needs m+1 bits.
const MaxM = 32

// RNG selects how the m-bit random (or counting) reference of a stream is made.
type RNG int

const (
	// SharedLFSR reuses one LFSR for every constant (constants only).
	SharedLFSR RNG = iota
	// LFSR builds one LFSR per element with decorrelated seeds.
	LFSR
	// Counter feeds every constant from one m-bit up-counter (constants only).
	Counter
	// ReverseCounter is Counter with the output bit order reversed (constants only).
	ReverseCounter
	// SingleLFSR builds one m·degree wide LFSR sliced per input (inputs only).
	SingleLFSR
)

var rngNames = [...]string{
	SharedLFSR:     "shared-lfsr",
	LFSR:           "lfsr",
	Counter:        "counter",
	ReverseCounter: "reverse-counter",
	SingleLFSR:     "single-lfsr",
}

// String returns the canonical lower-case name of r.
func (r RNG) String() string {
	if r < 0 || int(r) >= len(rngNames) {
		return fmt.Sprintf("RNG(%d)", int(r))
	}
	return rngNames[r]
}

// ParseRNG maps a canonical name (case-insensitive, '_' accepted for '-') to an RNG.
func ParseRNG(s string) (RNG, error) {
	key := normalize(s)
	for i, name := range rngNames {
		if name == key {
			return RNG(i), nil
		}
	}
	return 0, fmt.Errorf("ParseRNG(%q): %w", s, ErrUnknownStrategy)
}

// SNG selects the binary-to-stochastic conversion network.
type SNG int

const (
	// Comparator emits r < v directly.
	Comparator SNG = iota
	// Majority is the LSB-to-MSB majority cascade.
	Majority
	// WBG is the weighted binary generator (prefix AND terms, one OR).
	WBG
	// Mux is the LSB-to-MSB selector cascade.
	Mux
	// HardWire specializes the comparison to a literal known at generation time.
	HardWire
)

var sngNames = [...]string{
	Comparator: "comparator",
	Majority:   "majority",
	WBG:        "wbg",
	Mux:        "mux",
	HardWire:   "hardwire",
}

// String returns the canonical lower-case name of s.
func (s SNG) String() string {
	if s < 0 || int(s) >= len(sngNames) {
		return fmt.Sprintf("SNG(%d)", int(s))
	}
	return sngNames[s]
}

// ParseSNG maps a canonical name (case-insensitive) to an SNG.
func ParseSNG(s string) (SNG, error) {
	key := normalize(s)
	for i, name := range sngNames {
		if name == key {
			return SNG(i), nil
		}
	}
	return 0, fmt.Errorf("ParseSNG(%q): %w", s, ErrUnknownStrategy)
}

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
}

// Bitstream is the geometry of one synthesis run.
//
// N is the stochastic bitstream length, MInput and MCoeff the binary
// precision of the input port and of the coefficients. m = log2(N) is derived.
type Bitstream struct {
	N      uint64
	MInput int
	MCoeff int
}

// NewBitstream returns a validated Bitstream.
func NewBitstream(n uint64, mInput, mCoeff int) (Bitstream, error) {
	b := Bitstream{N: n, MInput: mInput, MCoeff: mCoeff}
	if err := b.Validate(); err != nil {
		return Bitstream{}, err
	}
	return b, nil
}

// M returns log2(N). It is only meaningful for a validated Bitstream.
func (b Bitstream) M() int {
	return bits.TrailingZeros64(b.N)
}

// Mask returns N-1, the all-ones m-bit pattern.
func (b Bitstream) Mask() uint64 {
	return b.N - 1
}

// Validate checks N = 2^m with 1 <= m <= MaxM and 1 <= MInput, MCoeff <= m.
func (b Bitstream) Validate() error {
	if b.N < 2 || b.N&(b.N-1) != 0 {
		return fmt.Errorf("Bitstream: N=%d: %w", b.N, ErrNotPowerOfTwo)
	}
	m := b.M()
	if m > MaxM {
		return fmt.Errorf("Bitstream: m=%d > %d: %w", m, MaxM, ErrWidth)
	}
	if b.MInput < 1 || b.MInput > m {
		return fmt.Errorf("Bitstream: m_input=%d not in [1,%d]: %w", b.MInput, m, ErrWidth)
	}
	if b.MCoeff < 1 || b.MCoeff > m {
		return fmt.Errorf("Bitstream: m_coeff=%d not in [1,%d]: %w", b.MCoeff, m, ErrWidth)
	}
	return nil
}

// Architecture holds the four independent strategy choices.
type Architecture struct {
	ConstantRNG RNG
	InputRNG    RNG
	ConstantSNG SNG
	InputSNG    SNG
}

// DefaultArchitecture returns SharedLFSR / LFSR / Comparator / Comparator.
func DefaultArchitecture() Architecture {
	return Architecture{
		ConstantRNG: SharedLFSR,
		InputRNG:    LFSR,
		ConstantSNG: Comparator,
		InputSNG:    Comparator,
	}
}

// Validate enforces the role pairings of each strategy.
func (a Architecture) Validate() error {
	switch a.ConstantRNG {
	case SharedLFSR, LFSR, Counter, ReverseCounter:
	case SingleLFSR:
		return fmt.Errorf("Architecture: constant RNG %s: %w", a.ConstantRNG, ErrRoleMismatch)
	default:
		return fmt.Errorf("Architecture: constant RNG %s: %w", a.ConstantRNG, ErrUnknownStrategy)
	}
	switch a.InputRNG {
	case LFSR, SingleLFSR:
	case SharedLFSR, Counter, ReverseCounter:
		return fmt.Errorf("Architecture: input RNG %s: %w", a.InputRNG, ErrRoleMismatch)
	default:
		return fmt.Errorf("Architecture: input RNG %s: %w", a.InputRNG, ErrUnknownStrategy)
	}
	switch a.ConstantSNG {
	case Comparator, Majority, WBG, Mux, HardWire:
	default:
		return fmt.Errorf("Architecture: constant SNG %s: %w", a.ConstantSNG, ErrUnknownStrategy)
	}
	switch a.InputSNG {
	case Comparator, Majority, WBG, Mux:
	case HardWire:
		return fmt.Errorf("Architecture: input SNG: %w", ErrHardWireInput)
	default:
		return fmt.Errorf("Architecture: input SNG %s: %w", a.InputSNG, ErrUnknownStrategy)
	}
	return nil
}

// String renders the four choices in a stable order.
func (a Architecture) String() string {
	return fmt.Sprintf("crng=%s irng=%s csng=%s isng=%s",
		a.ConstantRNG, a.InputRNG, a.ConstantSNG, a.InputSNG)
}

// AllRNGs lists every RNG variant in declaration order.
func AllRNGs() []RNG {
	return []RNG{SharedLFSR, LFSR, Counter, ReverseCounter, SingleLFSR}
}

// AllSNGs lists every SNG variant in declaration order.
func AllSNGs() []SNG {
	return []SNG{Comparator, Majority, WBG, Mux, HardWire}
}
