// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/seisinv/ensemble"
	"github.com/katalvlaran/seisinv/synth"
	"github.com/katalvlaran/seisinv/wavefield"
)

type synthReport struct {
	Path    string    `json:"path"`
	Station string    `json:"station"`
	Model   []float64 `json:"model"`
	Events  int       `json:"events"`
	Samples int       `json:"samples"`
}

func newSynthCmd(a *app) *cobra.Command {
	var (
		out     string
		station string
		model   []float64
		sc      = synth.DefaultConfig()
	)
	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Write an analytic plane-wave ensemble for a layered model",
		Long: `Write a prepared ensemble whose vertical component cancels the upgoing
S wave below the given model exactly, so that the model is the global minimum
of the SU energy. The mantle, layer Vp and density, time window and sampling
rate come from the configuration.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			x, err := a.params(model)
			if err != nil {
				return err
			}
			m, err := a.model(x)
			if err != nil {
				return err
			}
			sc.Fs = a.cfg.SamplingRate
			sc.Window = wavefield.Window(a.cfg.Windows.Time)
			ens, err := synth.PlaneWave(m, sc)
			if err != nil {
				return err
			}
			if err := ensemble.Save(out, ensemble.FromEnsemble(station, ens)); err != nil {
				return err
			}
			rep := synthReport{Path: out, Station: station, Model: x, Events: ens.Len(), Samples: ens.Samples()}
			return a.emit(cmd, rep, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "wrote\t%s\n", rep.Path)
				fmt.Fprintf(w, "model\t%s\n", paramRow(rep.Model))
				fmt.Fprintf(w, "events\t%d × %d samples\n", rep.Events, rep.Samples)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&out, "out", "", "output file (.yaml, .yml or .json)")
	f.StringVar(&station, "station", "SYN", "station code recorded in the file")
	f.Float64SliceVar(&model, "model", nil, "H and Vs per layer, top first (default: centre of the search bounds)")
	f.IntVar(&sc.Events, "events", sc.Events, "number of events")
	f.Float64Var(&sc.PMin, "p-min", sc.PMin, "smallest ray parameter (s/km)")
	f.Float64Var(&sc.PMax, "p-max", sc.PMax, "largest ray parameter (s/km)")
	f.Float64Var(&sc.Peak, "peak", sc.Peak, "Ricker peak frequency (Hz)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
