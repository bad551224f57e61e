// Package countdown drives the per-second countdown to the next prayer and
// latches the arrival event so it fires exactly once per target.
//
// A State moves through three phases:
//
//	Pending --first tick--> Armed --remaining <= 0--> Fired
//
// On the first tick a target that is already behind the clock is pushed
// forward one day. After that, reaching zero is an arrival. A State is never
// reset; the scheduler replaces it when the schedule changes.
package countdown

import (
	"fmt"

	"github.com/smokyabdulrahman/adhan-clock/internal/prayer"
)

// SecondsPerDay is both the rollover step and the progress denominator.
const SecondsPerDay = 86400

// Placeholder is shown when there is nothing to count down to.
const Placeholder = "--:--:--"

// Phase is the lifecycle position of a State.
type Phase int

const (
	Pending Phase = iota
	Armed
	Fired
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Armed:
		return "armed"
	case Fired:
		return "fired"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State counts down to one resolved prayer.
type State struct {
	prayer    prayer.ID
	target    int64 // seconds since the calculation epoch
	remaining int64
	phase     Phase
}

// Reading is the result of one tick.
type Reading struct {
	Remaining int64   // seconds to go; zero or negative once reached
	Progress  float64 // elapsed share of a nominal 24 hours, in [0,1]
	Arrived   bool    // true on the single tick that reached zero
}

// New creates a Pending state targeting next. Its offset is read as
// minutes from the epoch the caller uses for tick times.
func New(next prayer.Next) *State {
	return &State{
		prayer: next.Prayer,
		target: int64(next.Minutes) * 60,
		phase:  Pending,
	}
}

// Prayer returns the prayer being counted down to.
func (s *State) Prayer() prayer.ID { return s.prayer }

// Target returns the target in seconds since the epoch, after any rollover.
func (s *State) Target() int64 { return s.target }

// Remaining returns the value computed by the last tick.
func (s *State) Remaining() int64 { return s.remaining }

// Phase returns the current lifecycle phase.
func (s *State) Phase() Phase { return s.phase }

// Tick advances the state to now, given in seconds since the epoch.
func (s *State) Tick(now int64) Reading {
	if s.phase == Pending {
		if s.target <= now {
			s.target += SecondsPerDay
		}
		s.phase = Armed
	}

	s.remaining = s.target - now

	arrived := false
	if s.remaining <= 0 && s.phase == Armed {
		s.phase = Fired
		arrived = true
	}

	return Reading{
		Remaining: s.remaining,
		Progress:  Progress(s.remaining),
		Arrived:   arrived,
	}
}

// Progress is (86400 - remaining) / 86400 clamped to [0,1]. The denominator
// is a fixed day regardless of the real gap between prayers.
func Progress(remaining int64) float64 {
	p := float64(SecondsPerDay-remaining) / SecondsPerDay
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	default:
		return p
	}
}

// Format renders seconds as zero-padded HH:MM:SS. Negative values show as
// 00:00:00.
func Format(remaining int64) string {
	if remaining < 0 {
		remaining = 0
	}
	hours := remaining / 3600
	minutes := (remaining % 3600) / 60
	seconds := remaining % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
