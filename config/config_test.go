// SPDX-License-Identifier: MIT

package config_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/seisinv/config"
	"github.com/katalvlaran/seisinv/mcmc"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seisinv.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	b := cfg.Bounds()
	assert.Equal(t, []float64{25, 6.4 / 2.1}, b.Lower)
	assert.Equal(t, []float64{45, 6.4 / 1.5}, b.Upper)
	assert.True(t, cfg.MantleLayer().IsHalfSpace())

	vp, rho := cfg.Fixed()
	assert.Equal(t, []float64{6.4}, vp)
	assert.Equal(t, []float64{2.7}, rho)
}

// TestLoad_Precedence checks flags > env > file > defaults.
func TestLoad_Precedence(t *testing.T) {
	path := writeFile(t, `
mcmc:
  burn_in: 500
  max_iter: 6000
  seed: 7
sweep:
  h_steps: 11
layers:
  - {vp: 2.1, rho: 1.97, h_min: 0.5, h_max: 3, vs_min: 0.4, vs_max: 1.2}
  - {vp: 6.4, rho: 2.7, h_min: 25, h_max: 45, vs_min: 3.0, vs_max: 4.3}
`)
	t.Setenv("SEISINV_MCMC_MAX_ITER", "7000")
	t.Setenv("SEISINV_MCMC_SEED", "9")
	t.Setenv("SEISINV_SWEEP_VS_STEPS", "21")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	config.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--seed=11", "--chains=4"}))

	cfg, err := config.Load(path, fs)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.MCMC.BurnIn, "file over default")
	assert.Equal(t, 7000, cfg.MCMC.MaxIter, "env over file")
	assert.Equal(t, int64(11), cfg.MCMC.Seed, "flag over env")
	assert.Equal(t, 4, cfg.MCMC.Chains, "flag over default")
	assert.Equal(t, 11, cfg.Sweep.HSteps)
	assert.Equal(t, 21, cfg.Sweep.VsSteps)
	assert.Equal(t, mcmc.DefaultTemperature, cfg.MCMC.Temperature, "untouched default")
	assert.Equal(t, 8.0, cfg.Mantle.Vp)

	require.Len(t, cfg.Layers, 2)
	assert.Equal(t, 4, cfg.Bounds().Dim())
	assert.NoError(t, cfg.Bounds().Validate())
}

func TestLoad_Invalid(t *testing.T) {
	path := writeFile(t, `
mcmc:
  burn_in: 5000
  max_iter: 1000
orientation:
  min_variance_ratio: 1.5
`)
	_, err := config.Load(path, nil)
	require.ErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, err.Error(), "max_iter")
	assert.Contains(t, err.Error(), "min_variance_ratio")

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *config.Config){
		"rate":       func(c *config.Config) { c.SamplingRate = 0 },
		"window":     func(c *config.Config) { c.Windows.Flux = config.Window{Start: 5, End: -5} },
		"arrival":    func(c *config.Config) { c.Orientation.Window = config.Window{Start: 1, End: 3} },
		"orient":     func(c *config.Config) { c.Orientation.Rate = math.NaN() },
		"mantle":     func(c *config.Config) { c.Mantle.Vs = -1 },
		"no layers":  func(c *config.Config) { c.Layers = nil },
		"h bounds":   func(c *config.Config) { c.Layers[0].HMax = c.Layers[0].HMin },
		"vs bounds":  func(c *config.Config) { c.Layers[0].VsMax = math.Inf(1) },
		"minima":     func(c *config.Config) { c.MCMC.Minima = 0 },
		"acceptance": func(c *config.Config) { c.MCMC.TargetAcceptance = 1 },
		"chains":     func(c *config.Config) { c.MCMC.Chains = 0 },
		"sweep":      func(c *config.Config) { c.Sweep.HSteps = 0 },
		"log level":  func(c *config.Config) { c.Log.Level = "loud" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := config.Default()
			mutate(c)
			assert.ErrorIs(t, c.Validate(), config.ErrInvalid)
		})
	}
	assert.NoError(t, config.Default().Validate())
}

func TestWrite_RoundTrip(t *testing.T) {
	c := config.Default()
	c.MCMC.Seed = 42
	c.Log.Development = true
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, config.Write(path, c))

	got, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestOptions(t *testing.T) {
	c := config.Default()
	c.MCMC.BurnIn = 10
	c.MCMC.MaxIter = 20
	o := mcmc.DefaultOptions()
	for _, opt := range c.MCMCOptions(zap.NewNop()) {
		opt(&o)
	}
	assert.Equal(t, 10, o.BurnIn)
	assert.Equal(t, 20, o.MaxIter)
	assert.True(t, o.AdaptiveStep)

	assert.Len(t, c.OrientationOptions(nil), 6)
}
