// Package config describes what a synthesis run is asked to build: the
// bitstream geometry (N, m, m_input, m_coeff) and the four independent
// architecture choices that select random sources and conversion networks
// for inputs and for constants.
//
// Strategies are closed sum types (RNG and SNG). Every switch over them in
// this module is exhaustive and ends in an error branch, so adding a variant
// is a compile-and-test visible change rather than a string comparison.
//
// Errors:
//
//	ErrNotPowerOfTwo   - N is not an exact power of two (or N < 2).
//	ErrWidth           - m_input / m_coeff outside [1, m], or m too large.
//	ErrHardWireInput   - HardWire selected for the input role.
//	ErrRoleMismatch    - an RNG strategy used for a role it does not support.
//	ErrUnknownStrategy - an enum value or name outside the closed set.
package config
