package serial

import (
	"bytes"
	"testing"
)

type counter struct{ n uint64 }

func (c *counter) MarshalBinary() ([]byte, error) { return AppendUint64(nil, c.n), nil }

func (c *counter) UnmarshalBinary(data []byte) error {
	r := NewReader(data)
	c.n = r.Uint64("count")
	return r.Err()
}

func TestTryMarshalUnmarshal(t *testing.T) {
	data, err := TryMarshal(&counter{n: 977})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if len(data) != 8 {
		t.Fatalf("Marshal returned %d bytes, want 8", len(data))
	}

	var c counter
	if err := TryUnmarshal(&c, data); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if c.n != 977 {
		t.Errorf("n = %d, want 977", c.n)
	}
}

func TestTryMarshalUnmarshalErrors(t *testing.T) {
	var i int = 5
	if _, err := TryMarshal(i); err == nil {
		t.Error("TryMarshal should fail for int")
	}
	if err := TryUnmarshal(&i, []byte{1, 2, 3}); err == nil {
		t.Error("TryUnmarshal should fail for *int")
	}
	if err := TryUnmarshal(counter{}, nil); err == nil {
		t.Error("TryUnmarshal should fail for a non-pointer")
	}
}

func TestSections(t *testing.T) {
	buf := AppendUint64(nil, 42)
	buf = AppendSection(buf, []byte("mod"))
	buf = AppendSection(buf, nil)

	r := NewReader(buf)
	if v := r.Uint64("seed"); v != 42 {
		t.Errorf("seed = %d", v)
	}
	if s := r.Section("name"); !bytes.Equal(s, []byte("mod")) {
		t.Errorf("name = %q", s)
	}
	if s := r.Section("empty"); len(s) != 0 {
		t.Errorf("empty section = %q", s)
	}
	if err := r.Err(); err != nil {
		t.Fatal(err)
	}

	r = NewReader(buf[:len(buf)-10])
	r.Uint64("seed")
	r.Section("name")
	r.Section("empty")
	if r.Err() == nil {
		t.Error("truncated input accepted")
	}

	r = NewReader(append(AppendUint64(nil, 1), 0))
	r.Uint64("seed")
	if r.Err() == nil {
		t.Error("trailing byte accepted")
	}
}
