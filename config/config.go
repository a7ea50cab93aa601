// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/seisinv/earth"
	"github.com/katalvlaran/seisinv/mcmc"
	"github.com/katalvlaran/seisinv/orientation"
	"github.com/katalvlaran/seisinv/wavefield"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SEISINV"

// Window is a time window in seconds relative to onset.
type Window struct {
	Start float64 `mapstructure:"start" yaml:"start"`
	End   float64 `mapstructure:"end" yaml:"end"`
}

// Windows groups the ingest and evaluation windows.
type Windows struct {
	Time Window `mapstructure:"time" yaml:"time"`
	Cut  Window `mapstructure:"cut" yaml:"cut"`
	Flux Window `mapstructure:"flux" yaml:"flux"`
}

// Mantle holds the half-space properties.
type Mantle struct {
	Vp  float64 `mapstructure:"vp" yaml:"vp"`
	Vs  float64 `mapstructure:"vs" yaml:"vs"`
	Rho float64 `mapstructure:"rho" yaml:"rho"`
}

// Layer holds the fixed properties and search bounds of one layer, top first.
type Layer struct {
	Vp    float64 `mapstructure:"vp" yaml:"vp"`
	Rho   float64 `mapstructure:"rho" yaml:"rho"`
	HMin  float64 `mapstructure:"h_min" yaml:"h_min"`
	HMax  float64 `mapstructure:"h_max" yaml:"h_max"`
	VsMin float64 `mapstructure:"vs_min" yaml:"vs_min"`
	VsMax float64 `mapstructure:"vs_max" yaml:"vs_max"`
}

// MCMC configures the optimizer.
type MCMC struct {
	Temperature      float64 `mapstructure:"temperature" yaml:"temperature"`
	Minima           int     `mapstructure:"minima" yaml:"minima"`
	BurnIn           int     `mapstructure:"burn_in" yaml:"burn_in"`
	MaxIter          int     `mapstructure:"max_iter" yaml:"max_iter"`
	TargetAcceptance float64 `mapstructure:"target_acceptance" yaml:"target_acceptance"`
	Bins             int     `mapstructure:"bins" yaml:"bins"`
	Seed             int64   `mapstructure:"seed" yaml:"seed"`
	Chains           int     `mapstructure:"chains" yaml:"chains"`
	Workers          int     `mapstructure:"workers" yaml:"workers"`
	Adaptive         bool    `mapstructure:"adaptive" yaml:"adaptive"`
	Polish           bool    `mapstructure:"polish" yaml:"polish"`
}

// Sweep configures the H×Vs grid of the first layer.
type Sweep struct {
	HSteps  int `mapstructure:"h_steps" yaml:"h_steps"`
	VsSteps int `mapstructure:"vs_steps" yaml:"vs_steps"`
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// Orientation holds the station orientation qualification thresholds and
// the preparation of raw arrivals (analysis rate, onset-relative cut).
type Orientation struct {
	MinMagnitude     float64 `mapstructure:"min_magnitude" yaml:"min_magnitude"`
	MinVarianceRatio float64 `mapstructure:"min_variance_ratio" yaml:"min_variance_ratio"`
	MinEvents        int     `mapstructure:"min_events" yaml:"min_events"`
	Rate             float64 `mapstructure:"rate" yaml:"rate"`
	Window           Window  `mapstructure:"window" yaml:"window"`
}

// Log configures the logger.
type Log struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Development bool   `mapstructure:"development" yaml:"development"`
}

// Config is the resolved run configuration.
type Config struct {
	SamplingRate float64     `mapstructure:"sampling_rate" yaml:"sampling_rate"`
	Windows      Windows     `mapstructure:"windows" yaml:"windows"`
	Mantle       Mantle      `mapstructure:"mantle" yaml:"mantle"`
	Layers       []Layer     `mapstructure:"layers" yaml:"layers"`
	MCMC         MCMC        `mapstructure:"mcmc" yaml:"mcmc"`
	Sweep        Sweep       `mapstructure:"sweep" yaml:"sweep"`
	Orientation  Orientation `mapstructure:"orientation" yaml:"orientation"`
	Log          Log         `mapstructure:"log" yaml:"log"`
}

// Default returns the reference configuration.
func Default() *Config {
	const vpCrust = 6.4
	return &Config{
		SamplingRate: 10,
		Windows: Windows{
			Time: Window(wavefield.DefaultTimeWindow),
			Cut:  Window(wavefield.DefaultCutWindow),
			Flux: Window(wavefield.DefaultFluxWindow),
		},
		Mantle: Mantle{Vp: 8.0, Vs: 4.5, Rho: 3.3},
		Layers: []Layer{{
			Vp:    vpCrust,
			Rho:   2.7,
			HMin:  25,
			HMax:  45,
			VsMin: vpCrust / 2.1,
			VsMax: vpCrust / 1.5,
		}},
		MCMC: MCMC{
			Temperature:      mcmc.DefaultTemperature,
			Minima:           mcmc.DefaultTargetCount,
			BurnIn:           mcmc.DefaultBurnIn,
			MaxIter:          mcmc.DefaultMaxIter,
			TargetAcceptance: mcmc.DefaultTargetAcceptance,
			Bins:             mcmc.DefaultBins,
			Chains:           1,
			Adaptive:         true,
		},
		Sweep: Sweep{HSteps: 51, VsSteps: 51},
		Orientation: Orientation{
			MinMagnitude:     orientation.DefaultMinMagnitude,
			MinVarianceRatio: orientation.DefaultMinVarianceRatio,
			MinEvents:        orientation.DefaultMinEvents,
			Rate:             orientation.DefaultRate,
			Window:           Window{Start: -orientation.DefaultBefore, End: orientation.DefaultAfter},
		},
		Log: Log{Level: "info"},
	}
}

// flagBindings maps viper keys to the flag names registered by RegisterFlags.
var flagBindings = map[string]string{
	"sampling_rate":    "fs",
	"mcmc.seed":        "seed",
	"mcmc.chains":      "chains",
	"mcmc.workers":     "workers",
	"mcmc.burn_in":     "burn-in",
	"mcmc.max_iter":    "max-iter",
	"mcmc.temperature": "temperature",
	"mcmc.polish":      "polish",
	"sweep.h_steps":    "h-steps",
	"sweep.vs_steps":   "vs-steps",
	"log.level":        "log-level",
	"log.development":  "log-dev",
}

// RegisterFlags defines the overridable flags on fs with the default values.
func RegisterFlags(fs *flag.FlagSet) {
	d := Default()
	fs.Float64("fs", d.SamplingRate, "processing sampling rate (Hz)")
	fs.Int64("seed", d.MCMC.Seed, "optimizer seed (0 selects the fixed default)")
	fs.Int("chains", d.MCMC.Chains, "independent optimizer chains")
	fs.Int("workers", d.MCMC.Workers, "parallel workers (0 uses all CPUs)")
	fs.Int("burn-in", d.MCMC.BurnIn, "burn-in iterations")
	fs.Int("max-iter", d.MCMC.MaxIter, "total optimizer iterations")
	fs.Float64("temperature", d.MCMC.Temperature, "optimizer temperature")
	fs.Bool("polish", d.MCMC.Polish, "refine minima with Nelder-Mead")
	fs.Int("h-steps", d.Sweep.HSteps, "sweep grid points along H")
	fs.Int("vs-steps", d.Sweep.VsSteps, "sweep grid points along Vs")
	fs.String("log-level", d.Log.Level, "log level (debug, info, warn, error)")
	fs.Bool("log-dev", d.Log.Development, "human readable console logs")
}

// Load resolves the configuration from defaults, the optional YAML file at
// path, SEISINV_* environment variables and the changed flags of flags.
// Either path or flags may be empty/nil. The result is validated.
func Load(path string, flags *flag.FlagSet) (*Config, error) {
	v := viper.New()
	if err := setDefaults(v, Default()); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every field of d as a viper default so that
// environment overrides apply to keys absent from the file.
func setDefaults(v *viper.Viper, d *Config) error {
	raw, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("config: encode defaults: %w", err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("config: decode defaults: %w", err)
	}
	for k, val := range m {
		v.SetDefault(k, val)
	}
	return nil
}

// Write stores c as YAML at path.
func Write(path string, c *Config) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate reports every problem found, each wrapping ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if !positive(c.SamplingRate) {
		bad("sampling_rate %g", c.SamplingRate)
	}
	for name, w := range map[string]Window{"time": c.Windows.Time, "cut": c.Windows.Cut, "flux": c.Windows.Flux} {
		if err := wavefield.Window(w).Validate(); err != nil {
			bad("windows.%s: %v", name, err)
		}
	}
	if _, err := earth.HalfSpace(c.Mantle.Vp, c.Mantle.Vs, c.Mantle.Rho); err != nil {
		bad("mantle: %v", err)
	}
	if len(c.Layers) == 0 {
		bad("no layers")
	}
	for i, l := range c.Layers {
		if !positive(l.Vp) || !positive(l.Rho) {
			bad("layers[%d]: vp %g, rho %g", i, l.Vp, l.Rho)
		}
		if !positive(l.HMin) || !(l.HMin < l.HMax) || math.IsInf(l.HMax, 0) {
			bad("layers[%d]: thickness bounds [%g, %g]", i, l.HMin, l.HMax)
		}
		if !positive(l.VsMin) || !(l.VsMin < l.VsMax) || math.IsInf(l.VsMax, 0) {
			bad("layers[%d]: vs bounds [%g, %g]", i, l.VsMin, l.VsMax)
		}
	}

	m := c.MCMC
	if !positive(m.Temperature) {
		bad("mcmc.temperature %g", m.Temperature)
	}
	if m.Minima < 1 {
		bad("mcmc.minima %d", m.Minima)
	}
	if m.BurnIn < 0 || m.MaxIter <= m.BurnIn {
		bad("mcmc: max_iter %d must exceed burn_in %d", m.MaxIter, m.BurnIn)
	}
	if !(m.TargetAcceptance > 0 && m.TargetAcceptance < 1) {
		bad("mcmc.target_acceptance %g", m.TargetAcceptance)
	}
	if m.Bins < 1 {
		bad("mcmc.bins %d", m.Bins)
	}
	if m.Chains < 1 || m.Workers < 0 {
		bad("mcmc: chains %d, workers %d", m.Chains, m.Workers)
	}

	if c.Sweep.HSteps < 1 || c.Sweep.VsSteps < 1 || c.Sweep.Workers < 0 {
		bad("sweep: h_steps %d, vs_steps %d, workers %d", c.Sweep.HSteps, c.Sweep.VsSteps, c.Sweep.Workers)
	}

	o := c.Orientation
	if !(o.MinVarianceRatio >= 0 && o.MinVarianceRatio <= 1) || o.MinEvents < 1 {
		bad("orientation: min_variance_ratio %g, min_events %d", o.MinVarianceRatio, o.MinEvents)
	}
	if !positive(o.Rate) {
		bad("orientation.rate %g", o.Rate)
	}
	if !(o.Window.Start <= 0 && o.Window.End >= 0 && o.Window.End > o.Window.Start) {
		bad("orientation.window [%g, %g] must contain the onset", o.Window.Start, o.Window.End)
	}

	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		bad("log.level: %v", err)
	}
	return errors.Join(errs...)
}

func positive(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

// MantleLayer returns the mantle half-space.
func (c *Config) MantleLayer() earth.LayerProps {
	return earth.LayerProps{Vp: c.Mantle.Vp, Vs: c.Mantle.Vs, Rho: c.Mantle.Rho, H: math.Inf(1)}
}

// Fixed returns the per-layer Vp and density held constant during search.
func (c *Config) Fixed() (vp, rho []float64) {
	vp = make([]float64, len(c.Layers))
	rho = make([]float64, len(c.Layers))
	for i, l := range c.Layers {
		vp[i], rho[i] = l.Vp, l.Rho
	}
	return vp, rho
}

// Bounds returns the search box over [H_0, Vs_0, H_1, Vs_1, ...].
func (c *Config) Bounds() mcmc.Bounds {
	b := mcmc.Bounds{Lower: make([]float64, 0, 2*len(c.Layers)), Upper: make([]float64, 0, 2*len(c.Layers))}
	for _, l := range c.Layers {
		b.Lower = append(b.Lower, l.HMin, l.VsMin)
		b.Upper = append(b.Upper, l.HMax, l.VsMax)
	}
	return b
}

// MCMCOptions translates the mcmc section into optimizer options.
func (c *Config) MCMCOptions(log *zap.Logger) []mcmc.Option {
	m := c.MCMC
	return []mcmc.Option{
		mcmc.WithTemperature(m.Temperature),
		mcmc.WithTargetCount(m.Minima),
		mcmc.WithBurnIn(m.BurnIn),
		mcmc.WithMaxIter(m.MaxIter),
		mcmc.WithTargetAcceptance(m.TargetAcceptance),
		mcmc.WithBins(m.Bins),
		mcmc.WithSeed(m.Seed),
		mcmc.WithAdaptiveStep(m.Adaptive),
		mcmc.WithLogger(log),
	}
}

// OrientationOptions translates the orientation section.
func (c *Config) OrientationOptions(log *zap.Logger) []orientation.Option {
	o := c.Orientation
	return []orientation.Option{
		orientation.WithMinMagnitude(o.MinMagnitude),
		orientation.WithMinVarianceRatio(o.MinVarianceRatio),
		orientation.WithMinEvents(o.MinEvents),
		orientation.WithRate(o.Rate),
		orientation.WithArrivalWindow(-o.Window.Start, o.Window.End),
		orientation.WithLogger(log),
	}
}
