package prayer

// Next is the upcoming prayer and its offset in minutes from the
// schedule's midnight. Minutes exceeds MinutesPerDay when the next prayer
// is tomorrow's fajr.
type Next struct {
	Prayer  ID
	Minutes int
}

// Tomorrow reports whether the prayer falls on the following day.
func (n Next) Tomorrow() bool {
	return n.Minutes >= MinutesPerDay
}

// Resolve returns the first prayer, in canonical order, whose time is
// strictly after now (minutes after midnight). A prayer at exactly now has
// already passed. After isha it wraps to fajr on the next day.
//
// Schedules that are out of order are not rejected: the first later entry
// in canonical order still wins.
func Resolve(s *Schedule, now int) (Next, error) {
	if s == nil || s.Empty() {
		return Next{}, ErrScheduleUnavailable
	}

	for _, id := range Order {
		if s.Times[id] > now {
			return Next{Prayer: id, Minutes: s.Times[id]}, nil
		}
	}

	return Next{Prayer: Fajr, Minutes: s.Times[Fajr] + MinutesPerDay}, nil
}
