package builder_test

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/scwrap/builder"
	"github.com/katalvlaran/scwrap/config"
	"github.com/katalvlaran/scwrap/internal/gatesim"
)

// period ticks the simulator until name returns to its first value and
// returns the number of distinct states seen. It fails on a repeat before
// that or after limit steps.
func period(t *testing.T, s *gatesim.Sim, name string, limit int) int {
	t.Helper()
	first := s.Get(name)
	seen := map[uint64]bool{}
	for k := 0; k < limit; k++ {
		v := s.Get(name)
		require.False(t, seen[v], "%s repeats %d before closing its cycle", name, v)
		seen[v] = true
		s.Tick()
		if s.Get(name) == first {
			return len(seen)
		}
	}
	t.Fatalf("%s did not cycle within %d steps", name, limit)
	return 0
}

func TestLFSR_MaximalPeriod(t *testing.T) {
	arch := config.DefaultArchitecture()
	for m := 1; m <= 8; m++ {
		n := uint64(1) << uint(m)
		p := newPlan(t, []float64{0.5, 0.5}, n, 1, 1, arch)
		f, src, err := builder.RandomSources(p)
		require.NoError(t, err)
		ports, ctl := clocking()
		s := simulate(t, ports, ctl, f)
		s.Set(builder.RunningSignal.Name(), 1)

		name := src.Inputs[0].Sig.Name()
		want := int(n) - 1
		if m == 1 {
			want = 2
		}
		assert.Equal(t, want, period(t, s, name, int(n)+1), "m=%d", m)
		if m >= 2 {
			assert.NotEqual(t, n-1, s.Get(name), "all ones is the lock-up state")
		}
	}
}

func TestSingleLFSR(t *testing.T) {
	arch := config.DefaultArchitecture()
	arch.InputRNG = config.SingleLFSR
	// d = 2, m = 4: one 8-bit register
	p := newPlan(t, []float64{0.5, 0.5, 0.5}, 16, 4, 4, arch)
	f, src, err := builder.RandomSources(p)
	require.NoError(t, err)
	require.Len(t, src.Inputs, 2)
	assert.Equal(t, src.Inputs[0].Sig, src.Inputs[1].Sig)
	assert.Equal(t, 0, src.Inputs[0].Lo)
	assert.Equal(t, 3, src.Inputs[0].Hi)
	assert.Equal(t, 4, src.Inputs[1].Lo)
	assert.Equal(t, 7, src.Inputs[1].Hi)

	ports, ctl := clocking()
	s := simulate(t, ports, ctl, f)
	name := src.Inputs[0].Sig.Name()
	// seeds round(16·0/5) = 0 and round(16·1/5) = 3, input 1 in the high slice
	assert.EqualValues(t, 3<<4|0, s.Get(name))

	s.Set(builder.RunningSignal.Name(), 1)
	assert.Equal(t, 255, period(t, s, name, 300))
}

func TestSeeds(t *testing.T) {
	arch := config.DefaultArchitecture()
	arch.ConstantRNG = config.LFSR
	// d = 2, N = 16
	p := newPlan(t, []float64{0.25, 0.5, 0.75}, 16, 4, 4, arch)
	f, src, err := builder.RandomSources(p)
	require.NoError(t, err)
	ports, ctl := clocking()
	s := simulate(t, ports, ctl, f)

	// inputs: round(16·i/5); constants: round(16·(i+2)/5)
	for i, want := range []uint64{0, 3} {
		assert.Equal(t, want, s.Get(src.Inputs[i].Sig.Name()), "input %d", i)
	}
	for i, want := range []uint64{6, 10, 13} {
		assert.Equal(t, want, s.Get(src.Constants[i].Sig.Name()), "constant %d", i)
	}

	// advance, then restart reloads every seed
	s.Set(builder.RunningSignal.Name(), 1)
	s.Run(3)
	assert.NotEqual(t, uint64(3), s.Get(src.Inputs[1].Sig.Name()))
	s.Set(builder.RunningSignal.Name(), 0)
	s.Set(builder.RestartSignal.Name(), 1)
	s.Tick()
	assert.EqualValues(t, 3, s.Get(src.Inputs[1].Sig.Name()))
	assert.EqualValues(t, 13, s.Get(src.Constants[2].Sig.Name()))
}

func TestSeeds_LockupAvoided(t *testing.T) {
	arch := config.DefaultArchitecture()
	arch.ConstantRNG = config.LFSR
	// d = 1, N = 4: constant 1 seed round(4·2/3) = 3 is the lock-up state
	p := newPlan(t, []float64{0.5, 0.5}, 4, 2, 2, arch)
	f, src, err := builder.RandomSources(p)
	require.NoError(t, err)
	ports, ctl := clocking()
	s := simulate(t, ports, ctl, f)
	assert.EqualValues(t, 2, s.Get(src.Constants[1].Sig.Name()))
}

func TestSharedLFSR(t *testing.T) {
	p := newPlan(t, []float64{0.25, 0, 0.75}, 16, 4, 4, config.DefaultArchitecture())
	_, src, err := builder.RandomSources(p)
	require.NoError(t, err)
	assert.Equal(t, src.Constants[0], src.Constants[2])
	assert.False(t, src.Constants[1].Valid())
	assert.NotEqual(t, src.Inputs[0].Sig, src.Inputs[1].Sig)
}

func TestCounters(t *testing.T) {
	for _, rev := range []bool{false, true} {
		arch := config.DefaultArchitecture()
		arch.ConstantRNG = config.Counter
		if rev {
			arch.ConstantRNG = config.ReverseCounter
		}
		p := newPlan(t, []float64{0.5, 0.5}, 8, 3, 3, arch)
		f, src, err := builder.RandomSources(p)
		require.NoError(t, err)
		ports, ctl := clocking()
		s := simulate(t, ports, ctl, f)
		s.Set(builder.RunningSignal.Name(), 1)

		name := src.Constants[0].Sig.Name()
		seen := map[uint64]bool{}
		for k := uint64(0); k < 8; k++ {
			v := s.Get(name)
			want := k
			if rev {
				want = uint64(bits.Reverse8(uint8(k)) >> 5)
			}
			assert.Equal(t, want, v, "%s step %d", arch.ConstantRNG, k)
			seen[v] = true
			s.Tick()
		}
		assert.Len(t, seen, 8, "every value exactly once per run")
	}
}

func TestRandomSources_FixedConstantsHaveNoSource(t *testing.T) {
	for _, rng := range []config.RNG{config.SharedLFSR, config.LFSR, config.Counter, config.ReverseCounter} {
		arch := config.DefaultArchitecture()
		arch.ConstantRNG = rng
		p := newPlan(t, []float64{0, 1}, 16, 2, 4, arch)
		f, src, err := builder.RandomSources(p)
		require.NoError(t, err)
		for _, c := range src.Constants {
			assert.False(t, c.Valid())
		}
		for _, sig := range f.Signals {
			assert.NotContains(t, sig.Name(), "rng_w", "%s built a constant source", rng)
			assert.NotContains(t, sig.Name(), "rng_cnt", "%s built a constant source", rng)
		}
	}
}
