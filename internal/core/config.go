package core

import (
	"fmt"
	"math"
	"runtime"
)

// Constants shared by the partitioner and the parallel executor.
const (
	InvalidSeed       = uint64(math.MaxUint64)
	DefaultBlockSize  = 0 // no blocking
	DefaultHasherName = "xxhash"
	DefaultNumBuckets = 64
)

// Config holds the runtime parameters of the segmented executor and the key
// partitioner.
type Config struct {
	NumThreads int    // Workers, one segment each
	BlockSize  uint64 // Segment boundaries are aligned to this; 0 disables blocking
	NumBuckets uint64 // Partitioner bucket count
	Hasher     string // "xxhash", "xxh3" or "murmur3"
	Seed       uint64 // Use InvalidSeed for random
	Verbose    bool
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() Config {
	return Config{
		NumThreads: runtime.NumCPU(),
		BlockSize:  DefaultBlockSize,
		NumBuckets: DefaultNumBuckets,
		Hasher:     DefaultHasherName,
		Seed:       InvalidSeed,
		Verbose:    false,
	}
}

// Validate checks that the configuration can be used to build segmenters and
// divisors.
func (c Config) Validate() error {
	if c.NumThreads <= 0 {
		return fmt.Errorf("config: NumThreads=%d: %w", c.NumThreads, ErrZeroSegments)
	}
	if c.NumBuckets == 0 {
		return fmt.Errorf("config: %w", ErrZeroBuckets)
	}
	if c.Hasher == "" {
		return fmt.Errorf("config: empty hasher name: %w", ErrUnknownHasher)
	}
	return nil
}

// ComputeNumPartitions returns how many partitions of at most avgPartitionSize
// elements cover numKeys elements.
func ComputeNumPartitions(numKeys, avgPartitionSize uint64) (uint64, error) {
	if avgPartitionSize == 0 {
		return 0, fmt.Errorf("partition size: %w", ErrZeroDivisor)
	}
	return DivCeil(numKeys, avgPartitionSize), nil
}
