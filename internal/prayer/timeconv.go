package prayer

import (
	"fmt"
	"strings"
)

// Placeholder is shown in place of a prayer time the provider did not supply.
const Placeholder = "--:--"

// TimeOfDayToMinutes converts "HH:MM" to minutes after midnight.
// A trailing timezone note such as " (BST)" is ignored. Empty or malformed
// input yields 0 so a missing provider field never stops the caller.
func TimeOfDayToMinutes(raw string) int {
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, " "); idx != -1 {
		s = s[:idx]
	}

	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0
	}

	var hour, min int
	if _, err := fmt.Sscanf(parts[0], "%d", &hour); err != nil {
		return 0
	}
	if _, err := fmt.Sscanf(parts[1], "%d", &min); err != nil {
		return 0
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return 0
	}

	return hour*60 + min
}

// MinutesTo12HourLabel renders minutes after midnight as "{h}:{mm} {period}"
// with the period word taken from the locale. Offsets past one day wrap.
func MinutesTo12HourLabel(minutes int, loc Locale) string {
	minutes %= MinutesPerDay
	if minutes < 0 {
		minutes += MinutesPerDay
	}

	hours, mins := minutes/60, minutes%60
	period := loc.am()
	if hours >= 12 {
		period = loc.pm()
	}

	h := hours % 12
	if h == 0 {
		h = 12
	}

	return fmt.Sprintf("%d:%02d %s", h, mins, period)
}

// MinutesTo24HourLabel renders minutes after midnight as "HH:MM".
func MinutesTo24HourLabel(minutes int) string {
	minutes %= MinutesPerDay
	if minutes < 0 {
		minutes += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatTime renders a raw provider time as a 12-hour label, or the
// placeholder when the field is empty.
func FormatTime(raw string, loc Locale) string {
	if strings.TrimSpace(raw) == "" {
		return Placeholder
	}
	return MinutesTo12HourLabel(TimeOfDayToMinutes(raw), loc)
}

// FormatClock renders minutes in the user's chosen clock style:
// "12h" for the locale's 12-hour label, anything else for 24-hour.
func FormatClock(minutes int, timeFormat string, loc Locale) string {
	if timeFormat == "12h" {
		return MinutesTo12HourLabel(minutes, loc)
	}
	return MinutesTo24HourLabel(minutes)
}

// Display renders id's time from s in the chosen clock style.
func (s *Schedule) Display(id ID, timeFormat string, loc Locale) string {
	if s == nil || !s.Has(id) {
		return Placeholder
	}
	return FormatClock(s.At(id), timeFormat, loc)
}
