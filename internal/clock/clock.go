// Package clock abstracts the wall clock so the scheduler can be driven
// deterministically in tests.
package clock

import (
	"sync"
	"time"
)

// Clock supplies the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// Real reads the system clock.
type Real struct{}

// Now implements Clock.
func (Real) Now() time.Time { return time.Now() }

// Fake is a manually advanced clock for tests.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake returns a Fake frozen at t.
func NewFake(t time.Time) *Fake {
	return &Fake{now: t}
}

// Now implements Clock.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// Set jumps the clock to t.
func (f *Fake) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

// Midnight returns the start of t's calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MinutesOfDay returns the whole minutes elapsed since t's midnight.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// SecondsSince returns t's wall-clock offset in seconds from the midnight of
// epoch's calendar day. Every calendar day counts as 86400 seconds, so the
// value matches minute offsets taken from a printed timetable even across a
// DST change. It keeps growing past 86400 when t falls on a later day.
func SecondsSince(epoch, t time.Time) int64 {
	t = t.In(epoch.Location())
	ey, em, ed := epoch.Date()
	ty, tm, td := t.Date()
	days := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC).Sub(time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)) / (24 * time.Hour)
	return int64(days)*86400 + int64(t.Hour()*3600+t.Minute()*60+t.Second())
}
