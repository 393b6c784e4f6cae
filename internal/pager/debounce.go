package pager

import "time"

// DefaultDebounce is the quiet period after the last scroll event before the
// viewport is evaluated.
const DefaultDebounce = 150 * time.Millisecond

// Debouncer collapses bursts of events into the last one. Each event calls
// Bump and schedules a check after the delay; only the check carrying the
// latest sequence number is Ready.
type Debouncer struct {
	Delay time.Duration
	seq   uint64
}

// NewDebouncer returns a debouncer with the given delay, or DefaultDebounce
// when delay is not positive.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{Delay: delay}
}

// Bump records an event and returns its sequence number.
func (d *Debouncer) Bump() uint64 {
	d.seq++
	return d.seq
}

// Ready reports whether seq is the most recent event.
func (d *Debouncer) Ready(seq uint64) bool {
	return seq == d.seq
}
