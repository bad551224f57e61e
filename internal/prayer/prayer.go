package prayer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/smokyabdulrahman/adhan-clock/internal/api"
)

// ID identifies one of the six daily prayer events.
type ID int

const (
	Fajr ID = iota
	Sunrise
	Dhuhr
	Asr
	Maghrib
	Isha
)

// Count is the number of tracked prayer events.
const Count = 6

// MinutesPerDay is added to a time-of-day to express "tomorrow".
const MinutesPerDay = 24 * 60

// Order lists every prayer in canonical, chronological order.
var Order = [Count]ID{Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha}

// ErrScheduleUnavailable is returned when there is no schedule to work from.
var ErrScheduleUnavailable = errors.New("prayer schedule unavailable")

var keys = [Count]string{"fajr", "sunrise", "dhuhr", "asr", "maghrib", "isha"}

// String returns the lowercase identifier, e.g. "maghrib".
func (id ID) String() string {
	if id < 0 || int(id) >= Count {
		return fmt.Sprintf("prayer(%d)", int(id))
	}
	return keys[id]
}

// Valid reports whether id is one of the six known prayers.
func (id ID) Valid() bool {
	return id >= 0 && int(id) < Count
}

// ParseID looks up a prayer by name, case-insensitively.
func ParseID(name string) (ID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, k := range keys {
		if k == name {
			return ID(i), nil
		}
	}
	return 0, fmt.Errorf("unknown prayer %q; valid names: %s", name, strings.Join(keys[:], ", "))
}

// Schedule is one calendar day's prayer times.
// Times are minutes after midnight; Raw keeps the provider's strings so
// missing fields can be told apart from a real 00:00.
type Schedule struct {
	Times [Count]int
	Raw   [Count]string

	// Date labels for display, as reported by the provider. HijriArabic is
	// empty when the provider sent no Arabic month name.
	Gregorian   string
	Hijri       string
	HijriArabic string
	Timezone    string

	// Fallback is set when the built-in default timetable is in use.
	Fallback bool
}

// At returns the minutes-after-midnight for id.
func (s *Schedule) At(id ID) int {
	return s.Times[id]
}

// Has reports whether the provider supplied a value for id.
func (s *Schedule) Has(id ID) bool {
	return s.Raw[id] != ""
}

// Empty reports whether no prayer time at all was supplied.
func (s *Schedule) Empty() bool {
	for _, r := range s.Raw {
		if r != "" {
			return false
		}
	}
	return true
}

// FromTimings builds a Schedule from an Al Adhan timings payload.
// Malformed or absent fields map to minute 0 rather than failing.
func FromTimings(t api.Timings) *Schedule {
	raw := [Count]string{
		Fajr:    t.Fajr,
		Sunrise: t.Sunrise,
		Dhuhr:   t.Dhuhr,
		Asr:     t.Asr,
		Maghrib: t.Maghrib,
		Isha:    t.Isha,
	}

	s := &Schedule{}
	for _, id := range Order {
		s.Raw[id] = strings.TrimSpace(raw[id])
		s.Times[id] = TimeOfDayToMinutes(raw[id])
	}
	return s
}

// FromResponse builds a Schedule including the provider's date labels.
func FromResponse(data api.Data) *Schedule {
	s := FromTimings(data.Timings)
	s.Gregorian = data.Date.Gregorian.Format()
	s.Hijri = data.Date.Hijri.FormatHijri(false)
	if data.Date.Hijri.Month.Ar != "" {
		s.HijriArabic = data.Date.Hijri.FormatHijri(true)
	}
	s.Timezone = data.Meta.Timezone
	return s
}

// defaultTimings is the timetable used when the provider cannot be reached.
var defaultTimings = api.Timings{
	Fajr:    "05:00",
	Sunrise: "06:30",
	Dhuhr:   "12:30",
	Asr:     "15:45",
	Maghrib: "18:00",
	Isha:    "19:30",
}

// DefaultSchedule returns the built-in fallback schedule.
func DefaultSchedule() *Schedule {
	s := FromTimings(defaultTimings)
	s.Fallback = true
	return s
}
