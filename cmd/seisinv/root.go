// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/seisinv/config"
	"github.com/katalvlaran/seisinv/earth"
	"github.com/katalvlaran/seisinv/ensemble"
	"github.com/katalvlaran/seisinv/logging"
	"github.com/katalvlaran/seisinv/metrics"
	"github.com/katalvlaran/seisinv/wavefield"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	cfgPath    string
	jsonOut    bool
	metricsOut bool

	cfg *config.Config
	log *zap.Logger
	reg *prometheus.Registry
	rec *metrics.Recorder
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "seisinv",
		Short:         "Crustal structure from upgoing S-wave energy minimization",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.finish(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "YAML configuration file")
	pf.BoolVar(&a.jsonOut, "json", false, "print results as JSON")
	pf.BoolVar(&a.metricsOut, "metrics", false, "print optimizer metrics to stderr in Prometheus text format")
	config.RegisterFlags(pf)

	root.AddCommand(
		newFluxCmd(a),
		newSweepCmd(a),
		newInvertCmd(a),
		newOrientCmd(a),
		newSynthCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath, cmd.Flags())
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log.With(zap.String("command", cmd.Name()))
	a.reg = prometheus.NewRegistry()
	a.rec, err = metrics.NewRecorder(a.reg)
	return err
}

func (a *app) finish(cmd *cobra.Command) error {
	defer func() { _ = a.log.Sync() }()
	if !a.metricsOut {
		return nil
	}
	return metrics.Write(cmd.ErrOrStderr(), a.reg)
}

// emit prints v as JSON when --json is set and otherwise lets table fill a
// tab-aligned writer.
func (a *app) emit(cmd *cobra.Command, v any, table func(w *tabwriter.Writer)) error {
	out := cmd.OutOrStdout()
	if a.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}

// fluxComputer loads an ensemble file. Prepared files are used as stored;
// raw events go through Ingest with the configured windows and rate.
func (a *app) fluxComputer(path string) (*wavefield.FluxComputer, error) {
	f, err := ensemble.Load(path)
	if err != nil {
		return nil, err
	}
	ens, prepared, err := f.Prepared()
	if err != nil {
		return nil, err
	}
	if prepared {
		a.log.Info("using prepared ensemble", zap.String("file", path), zap.Int("events", ens.Len()))
		return wavefield.NewFluxComputer(ens, wavefield.WithLogger(a.log))
	}
	fc := wavefield.New(wavefield.WithLogger(a.log))
	w := a.cfg.Windows
	if err := fc.Ingest(f.WavefieldEvents(), a.cfg.SamplingRate, wavefield.Window(w.Time), wavefield.Window(w.Cut)); err != nil {
		return nil, err
	}
	a.log.Info("ingested ensemble", zap.String("file", path), zap.Int("events", fc.Ensemble().Len()))
	return fc, nil
}

// objective returns the SU energy over the configured search vector.
func (a *app) objective(fc *wavefield.FluxComputer) func([]float64) float64 {
	vp, rho := a.cfg.Fixed()
	return fc.Objective(a.cfg.MantleLayer(), vp, rho, wavefield.WithFluxWindow(wavefield.Window(a.cfg.Windows.Flux)))
}

// params returns x, or the centre of the search box when x is empty.
func (a *app) params(x []float64) ([]float64, error) {
	b := a.cfg.Bounds()
	if len(x) == 0 {
		mid := make([]float64, b.Dim())
		for i := range mid {
			mid[i] = (b.Lower[i] + b.Upper[i]) / 2
		}
		return mid, nil
	}
	if len(x) != b.Dim() {
		return nil, fmt.Errorf("model has %d values, want %d (H and Vs per layer)", len(x), b.Dim())
	}
	return x, nil
}

func (a *app) model(x []float64) (earth.Model, error) {
	vp, rho := a.cfg.Fixed()
	return earth.FromParams(a.cfg.MantleLayer(), x, vp, rho)
}

// paramHeader returns "H0 Vs0 H1 Vs1 ..." column titles.
func paramHeader(dim int) string {
	s := ""
	for i := 0; i < dim/2; i++ {
		s += fmt.Sprintf("H%d\tVs%d\t", i, i)
	}
	return s
}

func paramRow(x []float64) string {
	s := ""
	for _, v := range x {
		s += fmt.Sprintf("%.3f\t", v)
	}
	return s
}
