package util

import (
	"bytes"
	"math"
	"strings"
	"sync"
	"testing"
)

func TestProgressLoggerPercent(t *testing.T) {
	var buf bytes.Buffer
	pl := NewProgressLoggerTo(&buf, 200, "work: ", "", true)
	pl.Log(50)
	if got := pl.Percent(); got != 25 {
		t.Errorf("Percent() = %d, want 25", got)
	}
	pl.Log(150)
	if got := pl.Percent(); got != 100 {
		t.Errorf("Percent() = %d, want 100", got)
	}
	pl.Finalize()
	if !strings.Contains(buf.String(), "work: 100%") {
		t.Errorf("output %q does not report completion", buf.String())
	}
}

func TestProgressLoggerHugeTotal(t *testing.T) {
	var buf bytes.Buffer
	total := uint64(math.MaxUint64)
	pl := NewProgressLoggerTo(&buf, total, "", "", true)
	pl.Log(total / 2)
	if got := pl.Percent(); got != 50 {
		t.Errorf("Percent() = %d, want 50", got)
	}
}

func TestProgressLoggerDisabled(t *testing.T) {
	var buf bytes.Buffer
	pl := NewProgressLoggerTo(&buf, 10, "x", "", false)
	pl.Log(10)
	pl.Finalize()
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
}

// Run with -race: workers report progress concurrently.
func TestProgressLoggerConcurrent(t *testing.T) {
	var buf bytes.Buffer
	pl := NewProgressLoggerTo(&buf, 8*1000, "", "", true)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				pl.Log(1)
			}
		}()
	}
	wg.Wait()
	if got := pl.Percent(); got != 100 {
		t.Errorf("Percent() = %d, want 100", got)
	}
}
