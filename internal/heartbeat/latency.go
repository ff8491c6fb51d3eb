package heartbeat

import (
	"sync"
	"time"
)

// latencyWindowSize bounds how many samples feed the reported average.
const latencyWindowSize = 100

// latencyWindow keeps the most recent round-trip samples fed by the host and
// exposes their average for the ping query parameter.
type latencyWindow struct {
	mutex   sync.Mutex
	samples []time.Duration
	next    int
}

func newLatencyWindow() *latencyWindow {
	return &latencyWindow{
		samples: make([]time.Duration, 0, latencyWindowSize),
	}
}

func (w *latencyWindow) Record(d time.Duration) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if len(w.samples) < latencyWindowSize {
		w.samples = append(w.samples, d)
		return
	}
	w.samples[w.next] = d
	w.next = (w.next + 1) % latencyWindowSize
}

// Average returns the mean of the recorded samples in milliseconds. The
// second return value is false when no sample has been recorded yet.
func (w *latencyWindow) Average() (float64, bool) {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if len(w.samples) == 0 {
		return 0, false
	}

	var total time.Duration
	for _, d := range w.samples {
		total += d
	}
	avg := total / time.Duration(len(w.samples))
	return float64(avg) / float64(time.Millisecond), true
}
