package prayer

import (
	"errors"
	"testing"

	"github.com/smokyabdulrahman/adhan-clock/internal/api"
)

func sampleTimings() api.Timings {
	return api.Timings{
		Fajr:    "05:00",
		Sunrise: "06:30",
		Dhuhr:   "12:30",
		Asr:     "15:45",
		Maghrib: "18:00",
		Isha:    "19:30",
	}
}

func hm(h, m int) int { return h*60 + m }

// ---------------------------------------------------------------------------
// ID
// ---------------------------------------------------------------------------

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{"fajr", Fajr, false},
		{"Maghrib", Maghrib, false},
		{"  ISHA ", Isha, false},
		{"sunset", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseID(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseID(%q) expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseID(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseID(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIDString(t *testing.T) {
	if got := Dhuhr.String(); got != "dhuhr" {
		t.Errorf("Dhuhr.String() = %q", got)
	}
	if got := ID(9).String(); got != "prayer(9)" {
		t.Errorf("ID(9).String() = %q", got)
	}
}

// ---------------------------------------------------------------------------
// FromTimings / DefaultSchedule
// ---------------------------------------------------------------------------

func TestFromTimings(t *testing.T) {
	s := FromTimings(sampleTimings())

	want := [Count]int{300, 390, 750, 945, 1080, 1170}
	if s.Times != want {
		t.Errorf("Times = %v, want %v", s.Times, want)
	}
	if s.Fallback {
		t.Error("provider schedule should not be flagged as fallback")
	}
}

func TestFromTimings_MissingField(t *testing.T) {
	tm := sampleTimings()
	tm.Sunrise = ""
	s := FromTimings(tm)

	if s.Has(Sunrise) {
		t.Error("Has(Sunrise) = true for an absent field")
	}
	if s.At(Sunrise) != 0 {
		t.Errorf("At(Sunrise) = %d, want 0", s.At(Sunrise))
	}
	if s.Empty() {
		t.Error("schedule with five fields reported Empty")
	}
}

func TestFromResponse_Labels(t *testing.T) {
	data := api.Data{
		Timings: sampleTimings(),
		Date: api.Date{
			Hijri: api.CalendarDate{
				Day: "25", Year: "1448",
				Month: api.Month{En: "Rabīʿ al-thānī", Ar: "رَبيع الثاني"},
			},
			Gregorian: api.CalendarDate{
				Day: "17", Year: "2026",
				Month: api.Month{En: "October"},
			},
		},
		Meta: api.Meta{Timezone: "Asia/Riyadh"},
	}

	s := FromResponse(data)
	if s.Gregorian != "17 October 2026" {
		t.Errorf("Gregorian = %q", s.Gregorian)
	}
	if s.Hijri != "25 Rabīʿ al-thānī 1448 AH" {
		t.Errorf("Hijri = %q", s.Hijri)
	}
	if s.HijriArabic != "25 رَبيع الثاني 1448 هـ" {
		t.Errorf("HijriArabic = %q", s.HijriArabic)
	}
	if s.Timezone != "Asia/Riyadh" {
		t.Errorf("Timezone = %q", s.Timezone)
	}
}

func TestDefaultSchedule(t *testing.T) {
	s := DefaultSchedule()
	if !s.Fallback {
		t.Error("DefaultSchedule should be flagged as fallback")
	}
	if s.At(Asr) != hm(15, 45) {
		t.Errorf("default Asr = %d, want %d", s.At(Asr), hm(15, 45))
	}
}

// ---------------------------------------------------------------------------
// Resolve
// ---------------------------------------------------------------------------

func TestResolve_Scenarios(t *testing.T) {
	s := FromTimings(sampleTimings())

	tests := []struct {
		name string
		now  int
		want Next
	}{
		{"after isha wraps to tomorrow's fajr", hm(20, 0), Next{Fajr, 1740}},
		{"between fajr and sunrise", hm(5, 30), Next{Sunrise, 390}},
		{"just after midnight", 0, Next{Fajr, 300}},
		{"exactly at dhuhr is past", hm(12, 30), Next{Asr, 945}},
		{"one minute before dhuhr", hm(12, 29), Next{Dhuhr, 750}},
		{"exactly at isha wraps", hm(19, 30), Next{Fajr, 1740}},
		{"last minute of day", 1439, Next{Fajr, 1740}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(s, tt.now)
			if err != nil {
				t.Fatalf("Resolve unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%d) = %+v, want %+v", tt.now, got, tt.want)
			}
		})
	}
}

func TestResolve_SmallestStrictlyGreater(t *testing.T) {
	s := FromTimings(sampleTimings())

	for now := 0; now < MinutesPerDay; now++ {
		got, err := Resolve(s, now)
		if err != nil {
			t.Fatalf("Resolve(%d) unexpected error: %v", now, err)
		}

		want := -1
		for _, id := range Order {
			m := s.At(id)
			if m > now && (want == -1 || m < want) {
				want = m
			}
		}
		if want == -1 {
			want = s.At(Fajr) + MinutesPerDay
		}

		if got.Minutes != want {
			t.Fatalf("Resolve(%d).Minutes = %d, want %d", now, got.Minutes, want)
		}
		if got.Minutes <= now {
			t.Fatalf("Resolve(%d) returned a past prayer %+v", now, got)
		}

		again, _ := Resolve(s, now)
		if again != got {
			t.Fatalf("Resolve(%d) not idempotent: %+v then %+v", now, got, again)
		}
	}
}

func TestResolve_Unavailable(t *testing.T) {
	if _, err := Resolve(nil, 600); !errors.Is(err, ErrScheduleUnavailable) {
		t.Errorf("nil schedule: err = %v, want ErrScheduleUnavailable", err)
	}
	if _, err := Resolve(FromTimings(api.Timings{}), 600); !errors.Is(err, ErrScheduleUnavailable) {
		t.Errorf("empty schedule: err = %v, want ErrScheduleUnavailable", err)
	}
}

func TestResolve_OutOfOrderSchedule(t *testing.T) {
	tm := sampleTimings()
	tm.Asr = "11:00" // earlier than dhuhr
	s := FromTimings(tm)

	got, err := Resolve(s, hm(10, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Prayer != Dhuhr {
		t.Errorf("Resolve = %+v, want first later entry in canonical order (dhuhr)", got)
	}
}

func TestNextTomorrow(t *testing.T) {
	if !(Next{Fajr, 1740}).Tomorrow() {
		t.Error("1740 should be tomorrow")
	}
	if (Next{Isha, 1170}).Tomorrow() {
		t.Error("1170 should be today")
	}
}

// ---------------------------------------------------------------------------
// Classify
// ---------------------------------------------------------------------------

func TestClassify(t *testing.T) {
	s := FromTimings(sampleTimings())

	tests := []struct {
		name   string
		now    int
		want   ID
		wantOK bool
	}{
		{"at fajr", hm(5, 0), Fajr, true},
		{"during fajr", hm(6, 0), Fajr, true},
		{"at sunrise", hm(6, 30), 0, false},
		{"mid morning gap", hm(9, 0), 0, false},
		{"at dhuhr", hm(12, 30), Dhuhr, true},
		{"during asr", hm(16, 0), Asr, true},
		{"at maghrib", hm(18, 0), Maghrib, true},
		{"during isha", hm(22, 0), Isha, true},
		{"after midnight before fajr", hm(2, 0), Isha, true},
		{"one minute before fajr", hm(4, 59), Isha, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Classify(s, tt.now)
			if ok != tt.wantOK {
				t.Fatalf("Classify(%d) ok = %v, want %v", tt.now, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Classify(%d) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestClassify_Range(t *testing.T) {
	s := FromTimings(sampleTimings())

	for now := 0; now < MinutesPerDay; now++ {
		got, ok := Classify(s, now)
		inGap := now >= s.At(Sunrise) && now < s.At(Dhuhr)
		if inGap {
			if ok {
				t.Fatalf("Classify(%d) = %v inside the sunrise-dhuhr gap", now, got)
			}
			continue
		}
		if !ok {
			t.Fatalf("Classify(%d) found no window outside the gap", now)
		}
		if got == Sunrise {
			t.Fatalf("Classify(%d) returned sunrise, which owns no window", now)
		}
	}
}

func TestClassify_NoSchedule(t *testing.T) {
	if _, ok := Classify(nil, 600); ok {
		t.Error("Classify(nil) should report no window")
	}
}
