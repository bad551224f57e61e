package prayer

// Window is the stretch of the day that belongs to one prayer for
// highlighting: from Start's time up to (not including) End's time.
type Window struct {
	Prayer ID
	Start  ID
	End    ID
}

// Windows are the five highlight windows. Sunrise to dhuhr is owned by no
// prayer; isha runs until the next day's fajr.
var Windows = [5]Window{
	{Prayer: Fajr, Start: Fajr, End: Sunrise},
	{Prayer: Dhuhr, Start: Dhuhr, End: Asr},
	{Prayer: Asr, Start: Asr, End: Maghrib},
	{Prayer: Maghrib, Start: Maghrib, End: Isha},
	{Prayer: Isha, Start: Isha, End: Fajr},
}

// bounds returns the half-open minute range of w in s.
func (w Window) bounds(s *Schedule) (start, end int) {
	start, end = s.Times[w.Start], s.Times[w.End]
	if w.End == Fajr {
		end += MinutesPerDay
	}
	return start, end
}

// Classify returns the prayer whose window contains now (minutes after
// midnight). It reports false between sunrise and dhuhr, and when s is
// missing. Minutes before today's fajr still belong to last night's isha,
// where the browser clock this replaces showed no active window.
func Classify(s *Schedule, now int) (ID, bool) {
	if s == nil || s.Empty() {
		return 0, false
	}

	for _, w := range Windows {
		start, end := w.bounds(s)
		if now >= start && now < end {
			return w.Prayer, true
		}
		if w.End == Fajr && now+MinutesPerDay >= start && now+MinutesPerDay < end {
			return w.Prayer, true
		}
	}

	return 0, false
}
