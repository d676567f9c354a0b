// Package serial provides serialization utilities: BinaryMarshaler dispatch
// and little-endian, length-prefixed sections for composing encodings.
package serial

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"reflect"
)

// TryMarshal attempts to marshal an object if it implements BinaryMarshaler.
// It handles both pointer and value receiver implementations.
func TryMarshal(v any) ([]byte, error) {
	if marshaler, ok := v.(encoding.BinaryMarshaler); ok {
		return marshaler.MarshalBinary()
	}

	// Only possible if v is addressable.
	pv := reflect.ValueOf(v)
	if pv.CanAddr() {
		if marshaler, ok := pv.Addr().Interface().(encoding.BinaryMarshaler); ok {
			return marshaler.MarshalBinary()
		}
	}

	return nil, fmt.Errorf("type %T (or pointer) does not implement encoding.BinaryMarshaler", v)
}

// TryUnmarshal attempts to unmarshal data into a pointer if it implements BinaryUnmarshaler.
// v must be a non-nil pointer to the target object.
func TryUnmarshal(v any, data []byte) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("TryUnmarshal target must be a non-nil pointer, got %T", v)
	}

	if unmarshaler, ok := v.(encoding.BinaryUnmarshaler); ok {
		return unmarshaler.UnmarshalBinary(data)
	}

	return fmt.Errorf("type %T does not implement encoding.BinaryUnmarshaler", v)
}

// AppendUint64 appends v in little-endian order.
func AppendUint64(buf []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(buf, v)
}

// AppendSection appends an 8-byte length followed by data.
func AppendSection(buf, data []byte) []byte {
	buf = AppendUint64(buf, uint64(len(data)))
	return append(buf, data...)
}

// Reader walks an encoding produced with the Append helpers. The first
// failure sticks; check Err once after all reads.
type Reader struct {
	data   []byte
	offset int
	err    error
}

// NewReader returns a Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64(what string) uint64 {
	if r.err != nil {
		return 0
	}
	if len(r.data)-r.offset < 8 {
		r.err = fmt.Errorf("data too short for %s at offset %d", what, r.offset)
		return 0
	}
	v := binary.LittleEndian.Uint64(r.data[r.offset:])
	r.offset += 8
	return v
}

// Section reads a length-prefixed section. The result aliases the input.
func (r *Reader) Section(what string) []byte {
	n := r.Uint64(what + " length")
	if r.err != nil {
		return nil
	}
	if uint64(len(r.data)-r.offset) < n {
		r.err = fmt.Errorf("data too short for %s (%d bytes) at offset %d", what, n, r.offset)
		return nil
	}
	s := r.data[r.offset : r.offset+int(n)]
	r.offset += int(n)
	return s
}

// Err returns the first read failure, or an error if bytes are left over.
func (r *Reader) Err() error {
	if r.err != nil {
		return r.err
	}
	if r.offset != len(r.data) {
		return fmt.Errorf("%d trailing bytes after offset %d", len(r.data)-r.offset, r.offset)
	}
	return nil
}
