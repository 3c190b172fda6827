package builder_test

import (
	"math/bits"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/scwrap/builder"
	"github.com/katalvlaran/scwrap/config"
	"github.com/katalvlaran/scwrap/core"
	"github.com/katalvlaran/scwrap/internal/gatesim"
)

var (
	portR = core.Port("r")
	portV = core.Port("v")
)

// network builds the conversion of every element of role from the free
// inputs r and v, and returns a simulator over it.
func network(t *testing.T, p *builder.Plan, role builder.Role, sng config.SNG, literals []uint64) *gatesim.Sim {
	t.Helper()
	m := p.M()
	ports := core.NewFragment(core.CompPort)
	ports.Declare(portR, m, core.Input)
	ports.Declare(portV, m, core.Input)

	n := p.Count(role)
	values := make([]core.Ref, n)
	randoms := make([]core.Ref, n)
	for i := range values {
		values[i] = core.Whole(portV)
		randoms[i] = core.Whole(portR)
	}
	f, outs, err := builder.Conversion(p, role, sng, values, randoms, literals)
	require.NoError(t, err)
	require.Len(t, outs, n)
	return simulate(t, ports, f)
}

// msbSelect is v at the highest set bit of r, 0 for r = 0.
func msbSelect(r, v uint64) uint64 {
	if r == 0 {
		return 0
	}
	return v >> uint(63-bits.LeadingZeros64(r)) & 1
}

// TestConversion_ExactCount checks that over all N random patterns each
// strategy outputs exactly v ones, and the pointwise function of each.
func TestConversion_ExactCount(t *testing.T) {
	for _, role := range []builder.Role{builder.RoleInput, builder.RoleConstant} {
		for _, sng := range []config.SNG{config.Comparator, config.Majority, config.WBG, config.Mux} {
			for m := 1; m <= 5; m++ {
				n := uint64(1) << uint(m)
				p := newPlan(t, []float64{0.5, 0.5}, n, 1, 1, config.DefaultArchitecture())
				s := network(t, p, role, sng, nil)
				out := "sng_x_0"
				if role == builder.RoleConstant {
					out = "sng_w_1"
				}
				for v := uint64(0); v < n; v++ {
					s.Set("v", v)
					var ones uint64
					for r := uint64(0); r < n; r++ {
						s.Set("r", r)
						got := s.Get(out)
						ones += got
						switch sng {
						case config.Comparator, config.Majority:
							require.Equal(t, b2u(r < v), got, "%s m=%d r=%d v=%d", sng, m, r, v)
						default:
							require.Equal(t, msbSelect(r, v), got, "%s m=%d r=%d v=%d", sng, m, r, v)
						}
					}
					assert.Equal(t, v, ones, "%s %s m=%d v=%d", role, sng, m, v)
				}
			}
		}
	}
}

func TestConversion_HardWire(t *testing.T) {
	for m := 1; m <= 5; m++ {
		n := uint64(1) << uint(m)
		p := newPlan(t, []float64{0.5, 0.5}, n, 1, 1, config.DefaultArchitecture())
		for k := uint64(0); k < n; k++ {
			s := network(t, p, builder.RoleConstant, config.HardWire, []uint64{k, n - 1 - k})
			for r := uint64(0); r < n; r++ {
				s.Set("r", r)
				require.Equal(t, b2u(r < k), s.Get("sng_w_0"), "m=%d K=%d r=%d", m, k, r)
				require.Equal(t, b2u(r < n-1-k), s.Get("sng_w_1"), "m=%d K=%d r=%d", m, n-1-k, r)
			}
		}
	}
}

// TestConversion_HardWireReduced checks the literal is folded: no value
// operand and fewer gates than a comparator cascade.
func TestConversion_HardWireReduced(t *testing.T) {
	p := newPlan(t, []float64{0.5, 0.5}, 256, 1, 1, config.DefaultArchitecture())
	r := []core.Ref{core.Whole(portR), core.Whole(portR)}
	f, _, err := builder.Conversion(p, builder.RoleConstant, config.HardWire, nil, r, []uint64{0x80, 0})
	require.NoError(t, err)
	// K = 0x80: r < 128 is ~r[7]; K = 0: constant 0
	sigs, nodes := f.Len()
	assert.Equal(t, 3, sigs) // sng_w_n_0, sng_w_0, sng_w_1
	assert.Equal(t, 3, nodes)
}

func TestConversion_Stages(t *testing.T) {
	p := newPlan(t, []float64{0.5, 0.5}, 16, 1, 1, config.DefaultArchitecture())
	ports := core.NewFragment(core.CompPort)
	ports.Declare(portR, 4, core.Input)
	ports.Declare(portV, 4, core.Input)
	r := []core.Ref{core.Whole(portR)}
	v := []core.Ref{core.Whole(portV)}

	f, _, err := builder.Conversion(p, builder.RoleInput, config.Majority, v, r, nil)
	require.NoError(t, err)
	var names []string
	for _, s := range f.Signals {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"sng_x_n_0", "sng_x_0_s0", "sng_x_0_s1", "sng_x_0_s2", "sng_x_0"}, names)

	// stage k reads stage k-1 and bit k
	g := core.NewGraph()
	require.NoError(t, g.Merge(ports))
	require.NoError(t, g.Merge(f))
	require.NoError(t, g.Validate())
	in, err := g.Fanin("sng_x_0_s2")
	require.NoError(t, err)
	assert.Equal(t, []string{"sng_x_0_s1", "sng_x_n_0", "v"}, in)
	n, err := g.Producer("sng_x_0_s2")
	require.NoError(t, err)
	assert.Equal(t, core.Bit(core.ID(core.CompSNG, "x_n").At(0), 2), n.In[0])
	assert.Equal(t, core.Bit(portV, 2), n.In[1])
}

func TestConversion_FixedConstants(t *testing.T) {
	p := newPlan(t, []float64{0, 0.5, 1}, 16, 2, 4, config.DefaultArchitecture())
	r := core.Whole(portR)
	v := core.Whole(portV)
	for _, sng := range config.AllSNGs() {
		f, outs, err := builder.Conversion(p, builder.RoleConstant, sng,
			[]core.Ref{{}, v, {}}, []core.Ref{{}, r, {}}, []uint64{0, 8, 16})
		require.NoError(t, err, sng.String())
		require.Len(t, outs, 3)
		for _, n := range f.Nodes {
			switch n.Out.Name() {
			case "sng_w_0":
				assert.Equal(t, core.OpConst, n.Op)
				assert.EqualValues(t, 0, n.Value)
			case "sng_w_2":
				assert.Equal(t, core.OpConst, n.Op)
				assert.EqualValues(t, 1, n.Value)
			}
		}
		for _, s := range f.Signals {
			assert.False(t, strings.HasSuffix(s.Name(), "_0") && s.Name() != "sng_w_0", "%s: %s", sng, s.Name())
			assert.False(t, strings.HasSuffix(s.Name(), "_2") && s.Name() != "sng_w_2", "%s: %s", sng, s.Name())
		}
	}
}

func TestConversion_Errors(t *testing.T) {
	p := newPlan(t, []float64{0.5, 0.5}, 16, 1, 1, config.DefaultArchitecture())
	r := []core.Ref{core.Whole(portR)}

	_, _, err := builder.Conversion(p, builder.RoleInput, config.HardWire, nil, r, []uint64{1})
	assert.ErrorIs(t, err, config.ErrHardWireInput)

	_, _, err = builder.Conversion(p, builder.RoleInput, config.Comparator, nil, r, nil)
	assert.ErrorIs(t, err, builder.ErrOperands)

	_, _, err = builder.Conversion(p, builder.RoleConstant, config.HardWire, nil, []core.Ref{r[0], r[0]}, []uint64{1})
	assert.ErrorIs(t, err, builder.ErrOperands)

	_, _, err = builder.Conversion(p, builder.RoleInput, config.Comparator, []core.Ref{{}}, r, nil)
	assert.ErrorIs(t, err, builder.ErrOperands)

	_, _, err = builder.Conversion(p, builder.RoleInput, config.SNG(42), r, r, nil)
	assert.ErrorIs(t, err, config.ErrUnknownStrategy)
}

func b2u(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
