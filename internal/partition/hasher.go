// Package partition assigns keys to buckets: keys are hashed, then a Bucketer
// maps the hash onto [0, numBuckets) with a precomputed divisor instead of a
// hardware modulo.
package partition

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"

	"fastdiv/internal/core"
)

// Hash128 represents a 128-bit hash value.
type Hash128 struct {
	High uint64
	Low  uint64
}

// Mix combines the high and low parts.
func (h Hash128) Mix() uint64 {
	return h.High ^ h.Low
}

// Hasher hashes a key to 128 bits.
type Hasher interface {
	Hash(key []byte, seed uint64) Hash128
	Name() string
}

// Hasher names accepted by HasherByName.
const (
	HasherXXHash  = "xxhash"
	HasherXXH3    = "xxh3"
	HasherMurmur3 = "murmur3"
)

// HasherByName returns the hasher registered under name.
func HasherByName(name string) (Hasher, error) {
	switch name {
	case HasherXXHash:
		return XXHasher{}, nil
	case HasherXXH3:
		return XXH3Hasher{}, nil
	case HasherMurmur3:
		return MurmurHasher{}, nil
	default:
		return nil, fmt.Errorf("hasher %q: %w", name, core.ErrUnknownHasher)
	}
}

// XXHasher builds 128 bits from two seeded 64-bit xxHash digests.
type XXHasher struct{}

func (XXHasher) Name() string { return HasherXXHash }

func (XXHasher) Hash(key []byte, seed uint64) Hash128 {
	return Hash128{High: xxhashSeeded(key, seed), Low: xxhashSeeded(key, ^seed)}
}

func xxhashSeeded(key []byte, seed uint64) uint64 {
	d := xxhash.NewWithSeed(seed)
	_, _ = d.Write(key) // never fails
	return d.Sum64()
}

// XXH3Hasher uses the native 128-bit XXH3 variant.
type XXH3Hasher struct{}

func (XXH3Hasher) Name() string { return HasherXXH3 }

func (XXH3Hasher) Hash(key []byte, seed uint64) Hash128 {
	h := xxh3.Hash128Seed(key, seed)
	return Hash128{High: h.Hi, Low: h.Lo}
}

// MurmurHasher uses MurmurHash3 x64_128. Only the low 32 bits of the seed are
// used.
type MurmurHasher struct{}

func (MurmurHasher) Name() string { return HasherMurmur3 }

func (MurmurHasher) Hash(key []byte, seed uint64) Hash128 {
	h1, h2 := murmur3.Sum128WithSeed(key, uint32(seed))
	return Hash128{High: h1, Low: h2}
}

// Key is the set of key types the partitioner hashes.
type Key interface {
	string | []byte | uint64
}

// keyBytes returns the bytes hashed for key. buf backs uint64 keys.
func keyBytes[K Key](key K, buf *[8]byte) []byte {
	switch k := any(key).(type) {
	case string:
		return []byte(k)
	case []byte:
		return k
	case uint64:
		binary.LittleEndian.PutUint64(buf[:], k)
		return buf[:]
	}
	panic(fmt.Sprintf("partition: unsupported key type %T", key))
}
