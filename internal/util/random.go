package util

import (
	"math/rand"
	"slices"
	"time"
)

// RandomSeed generates a random seed for key hashing.
func RandomSeed() uint64 {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return r.Uint64()
}

// DistinctUints64 generates numKeys distinct uint64 values from seed, in
// random order. The same seed always yields the same keys.
func DistinctUints64(numKeys uint64, seed uint64) []uint64 {
	if numKeys == 0 {
		return []uint64{}
	}
	rng := rand.New(rand.NewSource(int64(seed)))

	// Oversample slightly; collisions in 64 bits are rare.
	keys := make([]uint64, 0, numKeys+numKeys/20+10)
	for uint64(len(keys)) < numKeys {
		for uint64(len(keys)) < uint64(cap(keys)) {
			keys = append(keys, rng.Uint64())
		}
		slices.Sort(keys)
		keys = slices.Compact(keys)
	}
	keys = keys[:numKeys]

	rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	return keys
}
