package cli

import (
	"testing"

	"github.com/alexanderramin/rectplan/internal/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfigFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addConfigFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestApplyConfigFlags_OnlyChanged(t *testing.T) {
	fs := newConfigFlagSet(t, "--volume", "30", "--tails", "--valve-body", "9000")

	cfg := domain.DefaultConfig()
	cfg.PowerKW = 4
	changed, err := applyConfigFlags(fs, &cfg)
	require.NoError(t, err)
	assert.True(t, changed)

	assert.InDelta(t, 30, cfg.VolumeL, 1e-9)
	assert.True(t, cfg.Tails.Enabled)
	assert.InDelta(t, 9000, cfg.Controller.ValveBW[1], 1e-9)
	assert.InDelta(t, 4, cfg.PowerKW, 1e-9, "unset flags keep the base value")
}

func TestApplyConfigFlags_NoneSet(t *testing.T) {
	fs := newConfigFlagSet(t)

	cfg := domain.DefaultConfig()
	changed, err := applyConfigFlags(fs, &cfg)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestAddConfigFlags_DefaultsMatchConfig(t *testing.T) {
	fs := newConfigFlagSet(t)
	def := domain.DefaultConfig()

	power, err := fs.GetFloat64("power")
	require.NoError(t, err)
	assert.InDelta(t, def.PowerKW, power, 1e-9)

	lateHeads, err := fs.GetBool("late-heads")
	require.NoError(t, err)
	assert.Equal(t, def.LateHeads.Enabled, lateHeads)
}

func TestConfigFlags_UniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range floatFlags {
		assert.False(t, seen[f.name], f.name)
		seen[f.name] = true
	}
	for _, f := range boolFlags {
		assert.False(t, seen[f.name], f.name)
		seen[f.name] = true
	}
}
