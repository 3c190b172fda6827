package expect_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/scwrap/config"
	"github.com/katalvlaran/scwrap/expect"
	"github.com/katalvlaran/scwrap/quant"
)

func TestBernstein(t *testing.T) {
	assert.Equal(t, 0.0, expect.Bernstein(nil, 0.3))
	assert.InDelta(t, 0.3, expect.Bernstein([]float64{0, 1}, 0.3), 1e-12)
	assert.InDelta(t, 0.7, expect.Bernstein([]float64{0.7, 0.7, 0.7, 0.7}, 0.42), 1e-12)
	// (1-x)^2 at x = 0.25
	assert.InDelta(t, 0.5625, expect.Bernstein([]float64{1, 0, 0}, 0.25), 1e-12)
	// x^2 written in degree-2 Bernstein form
	for _, x := range []float64{0, 0.1, 0.5, 0.9, 1} {
		assert.InDelta(t, x*x, expect.Bernstein([]float64{0, 0, 1}, x), 1e-12)
	}
}

func TestOutput(t *testing.T) {
	bits := config.Bitstream{N: 16, MInput: 2, MCoeff: 4}
	got, err := expect.Output([]float64{0, 0.5, 1}, bits, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 8, got)

	// B = 1 everywhere clips to N-1
	got, err = expect.Output([]float64{1, 1}, bits, 3)
	require.NoError(t, err)
	assert.EqualValues(t, 15, got)

	// coefficients are rounded to m_coeff bits first: 0.3 -> 0.5 at 1 bit
	got, err = expect.Output([]float64{0.3, 0.3}, config.Bitstream{N: 16, MInput: 2, MCoeff: 1}, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 8, got)

	_, err = expect.Output([]float64{0, 1}, bits, 4)
	assert.ErrorIs(t, err, expect.ErrInput)
	_, err = expect.Output([]float64{0, 1}, config.Bitstream{N: 10, MInput: 2, MCoeff: 2}, 0)
	assert.ErrorIs(t, err, config.ErrNotPowerOfTwo)
	_, err = expect.Output([]float64{0.5}, bits, 0)
	assert.ErrorIs(t, err, quant.ErrDegree)
	_, err = expect.Output([]float64{0.5, -0.1}, bits, 0)
	assert.ErrorIs(t, err, quant.ErrCoefficientRange)
}

func TestTable(t *testing.T) {
	table, err := expect.Table([]float64{0, 1}, config.Bitstream{N: 16, MInput: 4, MCoeff: 4})
	require.NoError(t, err)
	require.Len(t, table, 16)
	for x, v := range table {
		assert.EqualValues(t, x, v)
	}

	// x_bin is scaled by 2^m_input, not N
	table, err = expect.Table([]float64{0, 1}, config.Bitstream{N: 64, MInput: 2, MCoeff: 2})
	require.NoError(t, err)
	assert.Equal(t, []uint64{0, 16, 32, 48}, table)

	_, err = expect.Table([]float64{0, 1}, config.Bitstream{N: 1 << 20, MInput: expect.MaxTableInput + 1, MCoeff: 4})
	assert.ErrorIs(t, err, expect.ErrTableSize)
}

// TestVectors_WideInput draws from a 2^32 input space without a table.
func TestVectors_WideInput(t *testing.T) {
	bits := config.Bitstream{N: 1 << 32, MInput: 32, MCoeff: 8}
	vs, err := expect.Vectors([]byte("wide"), 8, []float64{0, 1}, bits)
	require.NoError(t, err)
	require.Len(t, vs, 8)
	for _, v := range vs {
		assert.Less(t, v.XBin, bits.N)
		assert.Equal(t, v.XBin, v.Expected, "identity polynomial")
	}
}

func TestVectors(t *testing.T) {
	bits := config.Bitstream{N: 256, MInput: 8, MCoeff: 6}
	coeffs := []float64{0.1, 0.9, 0.2, 0.6}
	table, err := expect.Table(coeffs, bits)
	require.NoError(t, err)

	a, err := expect.Vectors([]byte("bench-seed"), 64, coeffs, bits)
	require.NoError(t, err)
	b, err := expect.Vectors([]byte("bench-seed"), 64, coeffs, bits)
	require.NoError(t, err)
	c, err := expect.Vectors([]byte("other-seed"), 64, coeffs, bits)
	require.NoError(t, err)

	require.Len(t, a, 64)
	assert.Equal(t, a, b, "same key, same vectors")
	assert.NotEqual(t, a, c)
	for _, v := range a {
		assert.Less(t, v.XBin, uint64(256))
		assert.Equal(t, table[v.XBin], v.Expected)
	}

	none, err := expect.Vectors([]byte("k"), 0, coeffs, bits)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = expect.Vectors([]byte("k"), -1, coeffs, bits)
	assert.ErrorIs(t, err, expect.ErrCount)
	_, err = expect.Vectors([]byte("k"), 4, coeffs, config.Bitstream{N: 12, MInput: 2, MCoeff: 2})
	assert.ErrorIs(t, err, config.ErrNotPowerOfTwo)
}

func ExampleOutput() {
	bits := config.Bitstream{N: 16, MInput: 2, MCoeff: 4}
	for x := uint64(0); x < 4; x++ {
		v, _ := expect.Output([]float64{0, 0.5, 1}, bits, x)
		fmt.Print(v, " ")
	}
	fmt.Println()
	// Output: 0 4 8 12
}
