// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/seisinv/mcmc"
)

type invertReport struct {
	RunID              string      `json:"run_id"`
	Minima             []fluxPoint `json:"minima"`
	Polished           []fluxPoint `json:"polished,omitempty"`
	Modes              []float64   `json:"marginal_modes"`
	BurnInAcceptance   float64     `json:"burnin_acceptance"`
	SamplingAcceptance float64     `json:"sampling_acceptance"`
	Evaluations        int         `json:"evaluations"`
	Degenerate         int         `json:"degenerate"`
}

func newInvertCmd(a *app) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "invert",
		Short: "Search the layer parameters minimizing the SU energy",
		Long: `Run the clustering Metropolis-Hastings optimizer over the configured
thickness and shear velocity bounds. With --chains > 1 independent chains run
in parallel and are merged; with --polish every minimum is refined by a
bounded Nelder-Mead search.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fc, err := a.fluxComputer(path)
			if err != nil {
				return err
			}
			obj := a.objective(fc)
			bounds := a.cfg.Bounds()
			opts := append(a.cfg.MCMCOptions(a.log), mcmc.WithObserver(a.rec))

			ctx := cmd.Context()
			res, err := mcmc.MinimizeChains(ctx, obj, bounds, a.cfg.MCMC.Chains, a.cfg.MCMC.Workers, opts...)
			if err != nil {
				return err
			}

			rep := invertReport{
				RunID:              res.RunID,
				BurnInAcceptance:   res.BurnInAcceptance,
				SamplingAcceptance: res.SamplingAcceptance,
				Evaluations:        res.Evaluations,
				Degenerate:         res.Degenerate,
			}
			for _, m := range res.Minima {
				rep.Minima = append(rep.Minima, fluxPoint{Model: m.X, Energy: m.F})
			}
			for _, h := range res.Histograms {
				rep.Modes = append(rep.Modes, h.Mode())
			}
			if a.cfg.MCMC.Polish {
				for _, m := range res.Minima {
					p, err := mcmc.Polish(ctx, obj, bounds, m.X)
					if err != nil {
						return err
					}
					a.log.Debug("polished", zap.Float64s("from", m.X), zap.Float64s("to", p.X), zap.Float64("f", p.F))
					rep.Polished = append(rep.Polished, fluxPoint{Model: p.X, Energy: p.F})
				}
			}

			return a.emit(cmd, rep, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "run\t%s\n", rep.RunID)
				fmt.Fprintf(w, "acceptance\tburn-in %.2f, sampling %.2f\n", rep.BurnInAcceptance, rep.SamplingAcceptance)
				fmt.Fprintf(w, "evaluations\t%d (%d degenerate)\n\n", rep.Evaluations, rep.Degenerate)
				fmt.Fprintf(w, "RANK\t%sENERGY\t", paramHeader(bounds.Dim()))
				if rep.Polished != nil {
					fmt.Fprintf(w, "POLISHED\t")
				}
				fmt.Fprintln(w)
				for i, m := range rep.Minima {
					fmt.Fprintf(w, "%d\t%s%.6g\t", i+1, paramRow(m.Model), m.Energy)
					if rep.Polished != nil {
						fmt.Fprintf(w, "%s%.6g\t", paramRow(rep.Polished[i].Model), rep.Polished[i].Energy)
					}
					fmt.Fprintln(w)
				}
				if len(rep.Modes) > 0 {
					fmt.Fprintf(w, "mode\t%s\n", paramRow(rep.Modes))
				}
			})
		},
	}
	cmd.Flags().StringVar(&path, "ensemble", "", "ensemble file (.yaml, .yml or .json)")
	_ = cmd.MarkFlagRequired("ensemble")
	return cmd
}
