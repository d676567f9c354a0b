package partition

import (
	"encoding"
	"fmt"
	"math/bits"

	"fastdiv/internal/core"
	"fastdiv/internal/segment"
	"fastdiv/internal/serial"
)

// Bucketer maps a 64-bit hash to a bucket in [0, NumBuckets()).
type Bucketer interface {
	// Init prepares the bucketer for numBuckets buckets.
	Init(numBuckets uint64) error
	// Bucket returns the bucket of hash.
	Bucket(hash uint64) uint64
	// NumBuckets returns the total number of buckets.
	NumBuckets() uint64
	// Name identifies the strategy.
	Name() string
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

// Bucketer names accepted by BucketerByName.
const (
	BucketerMod     = "mod"
	BucketerRange   = "range"
	BucketerSegment = "segment"
)

// BucketerByName returns an uninitialised bucketer of the given strategy.
func BucketerByName(name string) (Bucketer, error) {
	switch name {
	case BucketerMod:
		return &ModBucketer{}, nil
	case BucketerRange:
		return &RangeBucketer{}, nil
	case BucketerSegment:
		return &SegmentBucketer{}, nil
	default:
		return nil, fmt.Errorf("bucketer %q: %w", name, core.ErrUnknownBucketer)
	}
}

// All bucketers serialise only their bucket count; derived state such as
// reciprocals is rebuilt by Init on decode.
func marshalNumBuckets(n uint64) []byte {
	return serial.AppendUint64(nil, n)
}

func unmarshalNumBuckets(b Bucketer, data []byte) error {
	r := serial.NewReader(data)
	n := r.Uint64("numBuckets")
	if err := r.Err(); err != nil {
		return fmt.Errorf("%s bucketer: %w", b.Name(), err)
	}
	return b.Init(n)
}

// --- ModBucketer ---

// ModBucketer assigns hash % numBuckets through a precomputed Divisor.
type ModBucketer struct {
	numBuckets uint64
	div        core.Divisor[uint64]
}

func (b *ModBucketer) Init(numBuckets uint64) error {
	if numBuckets == 0 {
		return fmt.Errorf("ModBucketer: %w", core.ErrZeroBuckets)
	}
	b.numBuckets = numBuckets
	b.div = core.NewDivisor(numBuckets)
	return nil
}

func (b *ModBucketer) Bucket(hash uint64) uint64 {
	return b.div.Mod(hash)
}

func (b *ModBucketer) NumBuckets() uint64 { return b.numBuckets }

func (b *ModBucketer) Name() string { return BucketerMod }

func (b *ModBucketer) MarshalBinary() ([]byte, error) {
	return marshalNumBuckets(b.numBuckets), nil
}

func (b *ModBucketer) UnmarshalBinary(data []byte) error {
	return unmarshalNumBuckets(b, data)
}

// --- RangeBucketer ---

// RangeBucketer scales the high 32 bits of the hash onto [0, numBuckets):
// bucket = (hash>>32) * numBuckets >> 32. No division is involved at all.
type RangeBucketer struct {
	numBuckets uint64
}

func (b *RangeBucketer) Init(numBuckets uint64) error {
	if numBuckets == 0 {
		return fmt.Errorf("RangeBucketer: %w", core.ErrZeroBuckets)
	}
	if numBuckets > 1<<32 {
		return fmt.Errorf("RangeBucketer: %d buckets exceed the 32-bit hash range", numBuckets)
	}
	b.numBuckets = numBuckets
	return nil
}

func (b *RangeBucketer) Bucket(hash uint64) uint64 {
	hi, lo := bits.Mul64(hash>>32, b.numBuckets)
	return hi<<32 | lo>>32
}

func (b *RangeBucketer) NumBuckets() uint64 { return b.numBuckets }

func (b *RangeBucketer) Name() string { return BucketerRange }

func (b *RangeBucketer) MarshalBinary() ([]byte, error) {
	return marshalNumBuckets(b.numBuckets), nil
}

func (b *RangeBucketer) UnmarshalBinary(data []byte) error {
	return unmarshalNumBuckets(b, data)
}

// --- SegmentBucketer ---

// SegmentBucketer gives every bucket a contiguous slice of the hash space, so
// sorted hashes stay sorted across buckets. The lookup is Uniform.SegmentOf.
type SegmentBucketer struct {
	seg segment.Uniform[uint64]
}

func (b *SegmentBucketer) Init(numBuckets uint64) error {
	if numBuckets == 0 {
		return fmt.Errorf("SegmentBucketer: %w", core.ErrZeroBuckets)
	}
	// The space is [0, 2^64-1); the top hash value is folded into the last bucket.
	b.seg = segment.NewUniform(^uint64(0), numBuckets)
	return nil
}

func (b *SegmentBucketer) Bucket(hash uint64) uint64 {
	return b.seg.SegmentOf(min(hash, ^uint64(0)-1))
}

// HashRange returns the hashes owned by bucket.
func (b *SegmentBucketer) HashRange(bucket uint64) segment.Range[uint64] {
	return b.seg.SegmentRange(bucket)
}

func (b *SegmentBucketer) NumBuckets() uint64 { return b.seg.SegmentNum() }

func (b *SegmentBucketer) Name() string { return BucketerSegment }

func (b *SegmentBucketer) MarshalBinary() ([]byte, error) {
	return marshalNumBuckets(b.seg.SegmentNum()), nil
}

func (b *SegmentBucketer) UnmarshalBinary(data []byte) error {
	return unmarshalNumBuckets(b, data)
}
