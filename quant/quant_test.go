package quant_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/scwrap/quant"
)

func TestQuantize_Classification(t *testing.T) {
	qs, err := quant.Quantize([]float64{0, 0.5, 1, 1e-9, 1 - 1e-9}, 4, 16)
	require.NoError(t, err)
	require.Len(t, qs, 5)

	assert.Equal(t, quant.Zero, qs[0].Class)
	assert.Equal(t, uint64(0), qs[0].Value)

	assert.Equal(t, quant.Generic, qs[1].Class)
	assert.Equal(t, uint64(8), qs[1].Value)

	assert.Equal(t, quant.One, qs[2].Class)
	assert.Equal(t, uint64(16), qs[2].Value)

	// rounding noise does not promote near-constants to constants
	assert.Equal(t, quant.Generic, qs[3].Class)
	assert.Equal(t, uint64(0), qs[3].Value)
	assert.Equal(t, quant.Generic, qs[4].Class)
	assert.True(t, qs[4].Saturated(16))

	lvl, ok := qs[4].Constant(16)
	assert.True(t, ok)
	assert.True(t, lvl)
	_, ok = qs[3].Constant(16)
	assert.False(t, ok)
	lvl, ok = qs[0].Constant(16)
	assert.True(t, ok)
	assert.False(t, lvl)
}

// TestQuantize_Scaling checks that a coarse m_coeff lands on multiples of N/2^m_coeff.
func TestQuantize_Scaling(t *testing.T) {
	qs, err := quant.Quantize([]float64{0.3, 0.7}, 2, 64)
	require.NoError(t, err)
	assert.Equal(t, uint64(16), qs[0].Value) // round(1.2)=1 → 1·16
	assert.Equal(t, uint64(48), qs[1].Value) // round(2.8)=3 → 3·16
	assert.Equal(t, 1, qs[1].Index)
}

// TestQuantize_RoundTrip checks |Value/N − c| ≤ 2^-(m_coeff+1).
func TestQuantize_RoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for m := 1; m <= 8; m++ {
		n := uint64(1) << uint(m)
		for mc := 1; mc <= m; mc++ {
			cs := make([]float64, 9)
			for i := range cs {
				cs[i] = rnd.Float64()
			}
			qs, err := quant.Quantize(cs, mc, n)
			require.NoError(t, err)
			bound := math.Ldexp(1, -(mc + 1))
			for i, q := range qs {
				got := float64(q.Value) / float64(n)
				assert.LessOrEqual(t, math.Abs(got-cs[i]), bound+1e-12, "m=%d mc=%d c=%v", m, mc, cs[i])
				assert.InDelta(t, quant.Fixed(cs[i], mc), got, 1e-12)
			}
		}
	}
}

func TestQuantize_Errors(t *testing.T) {
	_, err := quant.Quantize([]float64{0.5}, 2, 4)
	assert.ErrorIs(t, err, quant.ErrDegree)

	_, err = quant.Quantize([]float64{0.5, 1.5}, 2, 4)
	assert.ErrorIs(t, err, quant.ErrCoefficientRange)

	_, err = quant.Quantize([]float64{math.NaN(), 0}, 2, 4)
	assert.ErrorIs(t, err, quant.ErrCoefficientRange)

	_, err = quant.Quantize([]float64{0.5, 0.5}, 3, 4)
	assert.ErrorIs(t, err, quant.ErrPrecision)

	_, err = quant.Quantize([]float64{0.5, 0.5}, 0, 4)
	assert.ErrorIs(t, err, quant.ErrPrecision)
}
