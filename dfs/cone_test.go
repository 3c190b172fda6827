package dfs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/scwrap/dfs"
)

func TestCone_NilGraph(t *testing.T) {
	_, err := dfs.Cone(nil, []string{"y"})
	assert.ErrorIs(t, err, dfs.ErrGraphNil)
}

func TestCone_UnknownRoot(t *testing.T) {
	_, err := dfs.Cone(chain(t), []string{"nope"})
	assert.ErrorIs(t, err, dfs.ErrRootNotFound)
}

// TestCone_Output reaches the chain from y and leaves the toggle register
// outside the cone.
func TestCone_Output(t *testing.T) {
	g := chain(t)
	res, err := dfs.Cone(g, []string{"y"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "sng_n1", "sng_n2", "y"}, res.Order)
	assert.Equal(t, 3, res.Depth["a"])
	assert.Equal(t, "sng_n2", res.Parent["sng_n1"])
	assert.ElementsMatch(t,
		[]string{"clk", "reset", "sng_nq", "sng_one", "sng_q", "sng_zero"},
		res.Unreached(g.SignalNames()))
}

// TestCone_ThroughRegister follows register operands, so the feedback pair
// and the register's clock, reset and control literals are all reached.
func TestCone_ThroughRegister(t *testing.T) {
	res, err := dfs.Cone(chain(t), []string{"sng_q"})
	require.NoError(t, err)
	for _, name := range []string{"clk", "reset", "sng_nq", "sng_one", "sng_zero", "sng_q"} {
		assert.True(t, res.Visited[name], name)
	}
	assert.False(t, res.Visited["y"])
	assert.Equal(t, "sng_q", res.Order[len(res.Order)-1])
}

func TestCone_Options(t *testing.T) {
	g := chain(t)

	res, err := dfs.Cone(g, []string{"y"}, dfs.WithMaxDepth(0))
	require.NoError(t, err)
	assert.Equal(t, []string{"y"}, res.Order)

	res, err = dfs.Cone(g, []string{"y"}, dfs.WithFilter(func(name string) bool { return name != "sng_n1" }))
	require.NoError(t, err)
	assert.Equal(t, []string{"sng_n2", "y"}, res.Order)
	assert.Equal(t, 1, res.Skipped)

	var pre, post []string
	_, err = dfs.Cone(g, []string{"y"},
		dfs.WithOnVisit(func(name string) error { pre = append(pre, name); return nil }),
		dfs.WithOnExit(func(name string) error { post = append(post, name); return nil }))
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "sng_n2", "sng_n1", "a"}, pre)
	assert.Equal(t, []string{"a", "sng_n1", "sng_n2", "y"}, post)
}

func TestCone_HookError(t *testing.T) {
	stop := errors.New("stop")
	res, err := dfs.Cone(chain(t), []string{"y"}, dfs.WithOnVisit(func(name string) error {
		if name == "sng_n1" {
			return stop
		}
		return nil
	}))
	assert.ErrorIs(t, err, stop)
	assert.Nil(t, res.Order)
}

func TestCone_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dfs.Cone(chain(t), []string{"y"}, dfs.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}
