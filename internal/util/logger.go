package util

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"fastdiv/internal/core"
)

// Log logs a message if verbose is true.
func Log(verbose bool, format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

// ProgressLogger tracks and prints progress. Log may be called from several
// goroutines at once.
type ProgressLogger struct {
	mu             sync.Mutex
	out            io.Writer
	totalEvents    uint64
	prefix         string
	suffix         string
	loggedEvents   uint64
	logStep        uint64
	nextEventToLog uint64
	enabled        bool
	startTime      time.Time
	lastUpdateTime time.Time
}

// NewProgressLogger creates a new progress logger writing to stdout.
func NewProgressLogger(totalEvents uint64, prefix, suffix string, enable bool) *ProgressLogger {
	return NewProgressLoggerTo(os.Stdout, totalEvents, prefix, suffix, enable)
}

// NewProgressLoggerTo is NewProgressLogger with an explicit destination.
func NewProgressLoggerTo(out io.Writer, totalEvents uint64, prefix, suffix string, enable bool) *ProgressLogger {
	pl := &ProgressLogger{
		out:         out,
		totalEvents: totalEvents,
		prefix:      prefix,
		suffix:      suffix,
		enabled:     enable,
		startTime:   time.Now(),
	}

	percFraction := uint64(20) // 5% steps
	if totalEvents >= 100_000_000 {
		percFraction = 100 // 1% steps for large counts
	}
	pl.logStep = core.DivCeil(totalEvents, percFraction)
	if pl.logStep == 0 {
		pl.logStep = 1
	}

	if enable {
		pl.nextEventToLog = pl.logStep
		pl.update(false)
	} else {
		pl.nextEventToLog = ^uint64(0)
	}
	return pl
}

// Log records n events and prints an update when the next step is reached.
func (pl *ProgressLogger) Log(n uint64) {
	if !pl.enabled {
		return
	}
	pl.mu.Lock()
	defer pl.mu.Unlock()

	pl.loggedEvents += n
	if pl.loggedEvents >= pl.nextEventToLog {
		pl.update(false)
		for pl.nextEventToLog <= pl.loggedEvents {
			pl.nextEventToLog += pl.logStep
		}
	}
}

// Finalize prints the 100% progress update.
func (pl *ProgressLogger) Finalize() {
	if !pl.enabled {
		return
	}
	pl.mu.Lock()
	defer pl.mu.Unlock()

	pl.loggedEvents = pl.totalEvents
	pl.update(true)
}

// Percent returns the completed share in whole percent.
func (pl *ProgressLogger) Percent() uint64 {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return pl.percent()
}

func (pl *ProgressLogger) percent() uint64 {
	if pl.totalEvents == 0 {
		return 0
	}
	logged := min(pl.loggedEvents, pl.totalEvents)
	if pl.totalEvents <= ^uint64(0)/100 {
		return 100 * logged / pl.totalEvents
	}
	// 100*logged would overflow; a hundredth of the total is exact enough.
	return logged / (pl.totalEvents / 100)
}

// update prints the progress status; pl.mu must be held.
func (pl *ProgressLogger) update(final bool) {
	perc := pl.percent()
	fmt.Fprintf(pl.out, "\r%s%d%%%s", pl.prefix, perc, pl.suffix)
	if final {
		elapsed := time.Since(pl.startTime)
		fmt.Fprintf(pl.out, " (%.2fs) \n", elapsed.Seconds())
		return
	}
	now := time.Now()
	if now.Sub(pl.lastUpdateTime) > 100*time.Millisecond { // max 10 updates/sec
		fmt.Fprint(pl.out, strings.Repeat(" ", 10))
		fmt.Fprintf(pl.out, "\r%s%d%%%s", pl.prefix, perc, pl.suffix)
		pl.lastUpdateTime = now
	}
}
