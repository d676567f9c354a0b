package partition

import (
	"context"
	"fmt"

	"fastdiv/internal/core"
	"fastdiv/internal/parallel"
	"fastdiv/internal/segment"
	"fastdiv/internal/serial"
	"fastdiv/internal/util"
)

// Partitioner hashes keys and distributes them over the buckets of a Bucketer.
// It is read-only after NewPartitioner and may be shared between goroutines.
type Partitioner[K Key] struct {
	hasher   Hasher
	bucketer Bucketer
	seed     uint64
	threads  int
	verbose  bool
}

// NewPartitioner builds a partitioner from cfg. bucketer is initialised with
// cfg.NumBuckets.
func NewPartitioner[K Key](cfg core.Config, bucketer Bucketer) (*Partitioner[K], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	hasher, err := HasherByName(cfg.Hasher)
	if err != nil {
		return nil, err
	}
	if err := bucketer.Init(cfg.NumBuckets); err != nil {
		return nil, fmt.Errorf("failed to init bucketer: %w", err)
	}

	seed := cfg.Seed
	if seed == core.InvalidSeed {
		seed = util.RandomSeed()
		util.Log(cfg.Verbose, "Using random seed: %d", seed)
	}
	util.Log(cfg.Verbose, "Partitioner: hasher=%s bucketer=%s buckets=%d", hasher.Name(), bucketer.Name(), cfg.NumBuckets)

	return &Partitioner[K]{
		hasher:   hasher,
		bucketer: bucketer,
		seed:     seed,
		threads:  cfg.NumThreads,
		verbose:  cfg.Verbose,
	}, nil
}

// Seed returns the hash seed in use.
func (p *Partitioner[K]) Seed() uint64 { return p.seed }

// NumBuckets returns the number of buckets.
func (p *Partitioner[K]) NumBuckets() uint64 { return p.bucketer.NumBuckets() }

// BucketOf returns the bucket of key.
func (p *Partitioner[K]) BucketOf(key K) uint64 {
	var buf [8]byte
	h := p.hasher.Hash(keyBytes(key, &buf), p.seed)
	return p.bucketer.Bucket(h.Mix())
}

// Partition returns, for every bucket, the positions in keys of the keys that
// fall into it, in ascending order.
func (p *Partitioner[K]) Partition(keys []K) [][]int {
	out := make([][]int, p.bucketer.NumBuckets())
	for i, key := range keys {
		b := p.BucketOf(key)
		out[b] = append(out[b], i)
	}
	return out
}

// PartitionParallel is Partition spread over the configured number of
// workers. The result is identical to Partition.
func (p *Partitioner[K]) PartitionParallel(ctx context.Context, keys []K) ([][]int, error) {
	numBuckets := p.bucketer.NumBuckets()
	if p.threads <= 1 || len(keys) < p.threads*100 {
		util.Log(p.verbose, "Partitioning %d keys sequentially...", len(keys))
		return p.Partition(keys), nil
	}
	util.Log(p.verbose, "Partitioning %d keys in parallel (%d threads)...", len(keys), p.threads)

	return parallel.Reduce(ctx, uint64(len(keys)), p.threads,
		func(ctx context.Context, r segment.Range[uint64]) ([][]int, error) {
			local := make([][]int, numBuckets)
			for i := range r.All() {
				if i&0xFFFF == 0 {
					if err := ctx.Err(); err != nil {
						return nil, err
					}
				}
				b := p.BucketOf(keys[i])
				local[b] = append(local[b], int(i))
			}
			return local, nil
		},
		func(acc, part [][]int) [][]int {
			// Segments arrive in order, so appending keeps positions sorted.
			for b := range acc {
				acc[b] = append(acc[b], part[b]...)
			}
			return acc
		},
	)
}

// Counts returns the number of keys per bucket.
func (p *Partitioner[K]) Counts(keys []K) []uint64 {
	counts := make([]uint64, p.bucketer.NumBuckets())
	for _, key := range keys {
		counts[p.BucketOf(key)]++
	}
	return counts
}

// MarshalBinary implements encoding.BinaryMarshaler. The encoding carries the
// seed, the hasher and bucketer names and the bucketer state; worker count and
// verbosity are runtime settings and are not stored.
func (p *Partitioner[K]) MarshalBinary() ([]byte, error) {
	bucketerData, err := serial.TryMarshal(p.bucketer)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal bucketer: %w", err)
	}

	buf := serial.AppendUint64(nil, p.seed)
	buf = serial.AppendSection(buf, []byte(p.hasher.Name()))
	buf = serial.AppendSection(buf, []byte(p.bucketer.Name()))
	buf = serial.AppendSection(buf, bucketerData)
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. The restored
// partitioner runs sequentially until SetThreads is called.
func (p *Partitioner[K]) UnmarshalBinary(data []byte) error {
	r := serial.NewReader(data)
	seed := r.Uint64("seed")
	hasherName := string(r.Section("hasher"))
	bucketerName := string(r.Section("bucketer"))
	bucketerData := r.Section("bucketer data")
	if err := r.Err(); err != nil {
		return fmt.Errorf("partitioner: %w", err)
	}

	hasher, err := HasherByName(hasherName)
	if err != nil {
		return err
	}
	bucketer, err := BucketerByName(bucketerName)
	if err != nil {
		return err
	}
	if err := serial.TryUnmarshal(bucketer, bucketerData); err != nil {
		return fmt.Errorf("failed to unmarshal bucketer: %w", err)
	}

	p.hasher = hasher
	p.bucketer = bucketer
	p.seed = seed
	p.threads = 1
	p.verbose = false
	return nil
}

// SetThreads sets the worker count used by PartitionParallel.
func (p *Partitioner[K]) SetThreads(threads int) {
	p.threads = threads
}
