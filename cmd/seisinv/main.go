// SPDX-License-Identifier: MIT

// Command seisinv estimates crustal layer thickness and shear velocity from
// teleseismic P arrivals by minimizing upgoing S-wave energy at the base of
// the crust, and estimates station orientation corrections.
//
// Usage:
//
//	seisinv synth  --out ens.yaml
//	seisinv flux   --ensemble ens.yaml --model 35,3.7
//	seisinv sweep  --ensemble ens.yaml --h-steps 51 --vs-steps 51
//	seisinv invert --ensemble ens.yaml --chains 4 --polish
//	seisinv orient --arrivals arrivals.yaml
//
// Every command accepts --config, --json and --metrics; configuration keys
// may also be set through SEISINV_* environment variables.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
