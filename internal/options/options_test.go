package options

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Value   int
	Name    string
	Enabled bool
}

func TestNoError_WrapsPlainFunction(t *testing.T) {
	cfg := &testConfig{}

	opt := NoError(func(c *testConfig) { c.Name = "test" })
	opt.apply(cfg)

	require.Equal(t, "test", cfg.Name)
}

func TestApply_RunsOptionsInOrder(t *testing.T) {
	cfg := &testConfig{}

	opts := []Option[*testConfig]{
		NoError(func(c *testConfig) { c.Value = 10 }),
		NoError(func(c *testConfig) { c.Name = "bundle" }),
		NoError(func(c *testConfig) { c.Enabled = true }),
	}

	Apply(cfg, opts...)

	require.Equal(t, 10, cfg.Value)
	require.Equal(t, "bundle", cfg.Name)
	require.True(t, cfg.Enabled)
}

func TestApply_LaterOptionOverridesEarlier(t *testing.T) {
	cfg := &testConfig{}

	Apply(cfg,
		NoError(func(c *testConfig) { c.Value = 1 }),
		NoError(func(c *testConfig) { c.Value = 2 }),
	)

	require.Equal(t, 2, cfg.Value)
}

func TestApply_EmptyOptionsLeavesTargetUnchanged(t *testing.T) {
	cfg := &testConfig{}
	Apply(cfg)
	require.Equal(t, testConfig{}, *cfg)
}

func TestOption_GenericOverDifferentTypes(t *testing.T) {
	var n int
	opt := NoError(func(v *int) { *v = 42 })
	opt.apply(&n)
	require.Equal(t, 42, n)
}

func TestOption_HelperConstructorPattern(t *testing.T) {
	withValue := func(v int) Option[*testConfig] {
		return NoError(func(c *testConfig) { c.Value = v })
	}
	withName := func(name string) Option[*testConfig] {
		return NoError(func(c *testConfig) { c.Name = name })
	}

	cfg := &testConfig{}
	Apply(cfg, withValue(100), withName("parse options"))

	require.Equal(t, 100, cfg.Value)
	require.Equal(t, "parse options", cfg.Name)
}
