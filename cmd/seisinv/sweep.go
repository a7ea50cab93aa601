// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/seisinv/sweep"
)

var errNoFinite = errors.New("no finite energy on the grid")

type sweepReport struct {
	H      []float64   `json:"h"`
	Vs     []float64   `json:"vs"`
	Energy [][]float64 `json:"energy"` // [h][vs]
	Best   fluxPoint   `json:"best"`
}

type fluxPoint struct {
	Model  []float64 `json:"model"`
	Energy float64   `json:"energy"`
}

func newSweepCmd(a *app) *cobra.Command {
	var (
		path string
		full bool
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate the SU energy on an H×Vs grid of the top layer",
		Long: `Evaluate the mean SU energy on a regular grid over the thickness and
shear velocity bounds of the top layer. Deeper layers, if configured, stay at
the centre of their bounds.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fc, err := a.fluxComputer(path)
			if err != nil {
				return err
			}
			base, _ := a.params(nil)
			b := a.cfg.Bounds()
			g := sweep.Grid{Axes: []sweep.Axis{
				sweep.Linspace("H", b.Lower[0], b.Upper[0], a.cfg.Sweep.HSteps),
				sweep.Linspace("Vs", b.Lower[1], b.Upper[1], a.cfg.Sweep.VsSteps),
			}}
			obj := a.objective(fc)
			pool := sweep.NewPool(a.cfg.Sweep.Workers)
			a.log.Info("sweep started", zap.Int("points", g.Len()), zap.Int("workers", pool.Workers()))

			res, err := sweep.Evaluate(cmd.Context(), pool, g, func(hv []float64) float64 {
				x := append([]float64(nil), base...)
				x[0], x[1] = hv[0], hv[1]
				return obj(x)
			})
			if err != nil {
				return err
			}
			hv, e, ok := res.Best()
			if !ok {
				return errNoFinite
			}
			best := append([]float64(nil), base...)
			best[0], best[1] = hv[0], hv[1]

			rep := sweepReport{
				H:      g.Axes[0].Values,
				Vs:     g.Axes[1].Values,
				Energy: make([][]float64, len(g.Axes[0].Values)),
				Best:   fluxPoint{Model: best, Energy: e},
			}
			for i := range rep.Energy {
				rep.Energy[i] = make([]float64, len(rep.Vs))
				for j := range rep.Vs {
					rep.Energy[i][j] = res.At(i, j)
				}
			}
			return a.emit(cmd, rep, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "grid\t%d × %d\n", len(rep.H), len(rep.Vs))
				fmt.Fprintf(w, "best\t%s%.6g\n", paramRow(best), e)
				if !full {
					return
				}
				fmt.Fprintln(w, "\nH\tVs\tENERGY\t")
				for i, h := range rep.H {
					for j, vs := range rep.Vs {
						fmt.Fprintf(w, "%.3f\t%.3f\t%.6g\t\n", h, vs, rep.Energy[i][j])
					}
				}
			})
		},
	}
	cmd.Flags().StringVar(&path, "ensemble", "", "ensemble file (.yaml, .yml or .json)")
	cmd.Flags().BoolVar(&full, "full", false, "print every grid point")
	_ = cmd.MarkFlagRequired("ensemble")
	return cmd
}
