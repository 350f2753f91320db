// Package randutil builds deterministic random sources from recorded seeds,
// so a dealt hand can be replayed bit for bit.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a rand.Rand whose sequence is fully determined by seed. The
// underlying PCG takes two 64-bit words, so the single seed is stretched
// through a splitmix-style finalizer before use.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
