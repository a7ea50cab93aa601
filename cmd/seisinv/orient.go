// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/seisinv/ensemble"
	"github.com/katalvlaran/seisinv/orientation"
)

type orientRow struct {
	Station    string    `json:"station"`
	Status     string    `json:"status"`
	N          int       `json:"n"`
	Skipped    int       `json:"skipped"`
	Mean       float64   `json:"mean_deg"`
	StdDev     float64   `json:"std_deg"`
	StdErr     float64   `json:"stderr_deg"`
	Correction float64   `json:"correction_rad"`
	Residuals  []float64 `json:"residuals_deg,omitempty"`
}

func newOrientCmd(a *app) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "orient",
		Short: "Estimate per-station orientation corrections from P-wave polarization",
		Long: `Estimate per-station orientation corrections from P-wave polarization.

Arrivals with an fs field are raw traces: each component is detrended,
tapered, resampled to orientation.rate and cut to orientation.window around
its onset before the principal component analysis. Arrivals without fs are
used as already cut.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			af, err := ensemble.LoadArrivals(path)
			if err != nil {
				return err
			}
			results := orientation.EstimateAll(af.ByStation(), a.cfg.OrientationOptions(a.log)...)
			rows := make([]orientRow, len(results))
			for i, r := range results {
				rows[i] = orientRow{Station: r.Station, Status: r.Status.String(), N: r.N, Skipped: r.Skipped}
				if r.Status == orientation.StatusOK {
					rows[i].Mean, rows[i].StdDev, rows[i].StdErr = r.Mean, r.StdDev, r.StdErr
					rows[i].Correction = r.Correction().Rad()
					rows[i].Residuals = r.Residuals
				}
			}
			return a.emit(cmd, rows, func(w *tabwriter.Writer) {
				fmt.Fprintln(w, "STATION\tSTATUS\tN\tSKIPPED\tMEAN (°)\tSTD (°)\tSTDERR (°)\t")
				for _, r := range rows {
					if r.Status != orientation.StatusOK.String() {
						fmt.Fprintf(w, "%s\t%s\t%d\t%d\t-\t-\t-\t\n", r.Station, r.Status, r.N, r.Skipped)
						continue
					}
					fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2f\t%.2f\t%.2f\t\n",
						r.Station, r.Status, r.N, r.Skipped, r.Mean, r.StdDev, r.StdErr)
				}
			})
		},
	}
	cmd.Flags().StringVar(&path, "arrivals", "", "arrival file (.yaml, .yml or .json)")
	_ = cmd.MarkFlagRequired("arrivals")
	return cmd
}
