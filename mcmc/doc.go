// SPDX-License-Identifier: MIT

// Package mcmc implements a global stochastic minimizer based on a
// Metropolis–Hastings Markov chain with burn-in, followed by clustering of
// the best visited points.
//
// Rather than a single solution, Minimize returns up to N ranked minima,
// one per distinct basin found, plus per-dimension marginal histograms of
// the sampled chain.
//
// 🚀 Algorithm
//
//	UNINITIALIZED  x0 supplied or uniform in bounds; f(x0) evaluated.
//	BURNIN         single-site Gaussian proposals (one random dimension,
//	               step σ_d, redrawn until inside bounds); Metropolis accept
//	               with log α = −β·(f_new − f); step sizes optionally adapted
//	               toward the target acceptance rate.
//	SAMPLING       same moves with frozen steps; every accepted point enters
//	               a bounded best-3N candidate set and the histograms.
//	DONE           candidates are clustered (single linkage in the
//	               box-normalized space) and the best point of each cluster
//	               is returned, best first.
//
// ✨ Guarantees
//
//   - Every proposed and accepted point lies inside the bounds.
//   - Downhill or equal moves are always accepted.
//   - Non-finite objective values reject the proposal; they never abort a run.
//   - Same seed ⇒ same result. Seed 0 selects a fixed default stream.
//
// ⚙️ Usage
//
//	res, err := mcmc.Minimize(ctx, f, mcmc.Bounds{Lower: lo, Upper: hi},
//		mcmc.WithBurnIn(1000), mcmc.WithMaxIter(10000), mcmc.WithSeed(7))
//
// Independent chains can be run in parallel with MinimizeChains; Polish
// refines a returned minimum locally with Nelder–Mead.
package mcmc
