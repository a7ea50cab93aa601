// SPDX-License-Identifier: MIT

package mcmc

import "math/rand"

// Deterministic random streams for the chains.
//
// math/rand.Rand is not goroutine-safe: every chain owns its generator and
// parallel chains receive independent streams from deriveRNG.

// defaultRNGSeed is used when callers pass seed == 0.
const defaultRNGSeed int64 = 20200220

// rngFromSeed returns a deterministic generator; seed 0 selects
// defaultRNGSeed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}
	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream id with the SplitMix64
// finalizer so that neighbouring stream ids give unrelated seeds.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// chainSeed returns the seed of chain i of a multi-chain run with base seed.
// The result is never 0, so it is used verbatim by rngFromSeed.
func chainSeed(base int64, i int) int64 {
	if base == 0 {
		base = defaultRNGSeed
	}
	s := deriveSeed(base, uint64(i))
	if s == 0 {
		s = 1
	}
	return s
}
