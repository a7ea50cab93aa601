// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/seisinv/wavefield"
)

type fluxEvent struct {
	ID     string  `json:"id"`
	P      float64 `json:"p"`
	Energy float64 `json:"energy"`
}

type fluxReport struct {
	Model    []float64   `json:"model"`
	Mean     float64     `json:"mean"`
	PerEvent []fluxEvent `json:"per_event"`
}

func newFluxCmd(a *app) *cobra.Command {
	var (
		path  string
		model []float64
	)
	cmd := &cobra.Command{
		Use:   "flux",
		Short: "Evaluate the mean SU energy of one layered model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			x, err := a.params(model)
			if err != nil {
				return err
			}
			m, err := a.model(x)
			if err != nil {
				return err
			}
			fc, err := a.fluxComputer(path)
			if err != nil {
				return err
			}
			f, err := fc.Evaluate(m,
				wavefield.WithFluxWindow(wavefield.Window(a.cfg.Windows.Flux)),
				wavefield.WithoutMantleField())
			if err != nil {
				return err
			}

			ens := fc.Ensemble()
			rep := fluxReport{Model: x, Mean: f.Mean, PerEvent: make([]fluxEvent, len(f.PerEvent))}
			for i, e := range f.PerEvent {
				rep.PerEvent[i] = fluxEvent{ID: ens.IDs[i], P: ens.P[i], Energy: e}
			}
			return a.emit(cmd, rep, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "model\t%s\n", paramRow(x))
				fmt.Fprintf(w, "mean energy\t%.6g\n\n", f.Mean)
				fmt.Fprintln(w, "EVENT\tP (s/km)\tENERGY\t")
				for _, e := range rep.PerEvent {
					fmt.Fprintf(w, "%s\t%.4f\t%.6g\t\n", e.ID, e.P, e.Energy)
				}
			})
		},
	}
	cmd.Flags().StringVar(&path, "ensemble", "", "ensemble file (.yaml, .yml or .json)")
	cmd.Flags().Float64SliceVar(&model, "model", nil, "H and Vs per layer, top first (default: centre of the search bounds)")
	_ = cmd.MarkFlagRequired("ensemble")
	return cmd
}
