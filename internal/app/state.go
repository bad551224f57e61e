// Package app runs the live adhan clock: it owns the schedule, countdown and
// window highlight, fetches data in the background and reacts to arrivals and
// user commands from a single event loop.
package app

import (
	"time"

	"github.com/smokyabdulrahman/adhan-clock/internal/countdown"
	"github.com/smokyabdulrahman/adhan-clock/internal/geo"
	"github.com/smokyabdulrahman/adhan-clock/internal/prayer"
)

// NoticeKind identifies a dashboard notice slot. Each slot holds at most one
// message; a newer message of the same kind replaces the older one.
type NoticeKind int

const (
	NoticeLocation NoticeKind = iota // location detection fell back
	NoticeSchedule                   // default timetable in use
	NoticePlayback                   // adhan player failed
	NoticeInfo                       // answer to a user command
	noticeKinds
)

// Level is how loudly a notice should be drawn.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelAlert
)

// Level returns the level notices of kind k are drawn at.
func (k NoticeKind) Level() Level {
	switch k {
	case NoticeLocation, NoticeSchedule:
		return LevelWarn
	case NoticePlayback:
		return LevelAlert
	default:
		return LevelInfo
	}
}

// Notice is a message shown below the countdown.
type Notice struct {
	Kind  NoticeKind
	Level Level
	Text  string
}

// State is the application state. Only the scheduler goroutine touches it.
type State struct {
	Location geo.Location
	Place    string
	Method   int
	School   int

	Schedule *prayer.Schedule
	// Epoch is the midnight the schedule and countdown offsets count from.
	Epoch time.Time

	Next      prayer.Next
	HasNext   bool
	Countdown *countdown.State
	Reading   countdown.Reading

	Current  prayer.ID
	InWindow bool

	Fetching bool
	notices  [noticeKinds]string

	generation uint64
	cancel     func()
	// redetectPending survives a superseded fetch so a requested location
	// lookup is not lost to a later method change or arrival refetch.
	redetectPending bool
}

func (st *State) setNotice(k NoticeKind, text string) {
	st.notices[k] = text
}

func (st *State) clearNotice(k NoticeKind) {
	st.notices[k] = ""
}

// Notices returns the active notices in slot order.
func (st *State) Notices() []Notice {
	var out []Notice
	for k, text := range st.notices {
		if text == "" {
			continue
		}
		kind := NoticeKind(k)
		out = append(out, Notice{Kind: kind, Level: kind.Level(), Text: text})
	}
	return out
}

// Snapshot is a read-only copy of the state prepared for rendering.
type Snapshot struct {
	// Now is the wall-clock time as HH:MM:SS.
	Now         string
	Place       string
	Coordinates string
	Gregorian   string
	Hijri       string
	Method      int

	Labels [prayer.Count]string
	Times  [prayer.Count]string

	Next     prayer.ID
	HasNext  bool
	Current  prayer.ID
	InWindow bool

	// NextMinutes is the next prayer's offset from the schedule's midnight;
	// past 1440 it falls on the following day.
	NextMinutes int
	// Remaining is the countdown in seconds.
	Remaining int64
	// Countdown is HH:MM:SS, or countdown.Placeholder when nothing is scheduled.
	Countdown string
	Progress  float64
	// Fallback is set while the built-in timetable is shown.
	Fallback bool

	Fetching bool
	Notices  []Notice
}

func (st *State) snapshot(now time.Time, timeFormat string, loc prayer.Locale) Snapshot {
	snap := Snapshot{
		Now:       now.Format("15:04:05"),
		Place:     st.Place,
		Method:    st.Method,
		Next:      st.Next.Prayer,
		HasNext:   st.HasNext,
		Current:   st.Current,
		InWindow:  st.InWindow,
		Countdown: countdown.Placeholder,
		Fetching:  st.Fetching,
		Notices:   st.Notices(),
	}
	if st.Location.Latitude != 0 || st.Location.Longitude != 0 {
		snap.Coordinates = geo.FormatCoordinates(st.Location.Latitude, st.Location.Longitude)
	}
	if st.Schedule != nil {
		snap.Gregorian = st.Schedule.Gregorian
		snap.Hijri = st.Schedule.Hijri
		if loc == prayer.Arabic && st.Schedule.HijriArabic != "" {
			snap.Hijri = st.Schedule.HijriArabic
		}
		snap.Fallback = st.Schedule.Fallback
	}
	for _, id := range prayer.Order {
		snap.Labels[id] = prayer.Label(id, loc)
		snap.Times[id] = st.Schedule.Display(id, timeFormat, loc)
	}
	if st.Countdown != nil && st.Countdown.Phase() != countdown.Pending {
		snap.NextMinutes = st.Next.Minutes
		snap.Remaining = st.Reading.Remaining
		snap.Countdown = countdown.Format(st.Reading.Remaining)
		snap.Progress = st.Reading.Progress
	}
	return snap
}
