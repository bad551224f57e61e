package prayer

import (
	"fmt"
	"strings"
	"testing"
)

// helper: Asr at 15:02 with 2h15m09s to go.
func formatTestStatus() Status {
	return Status{
		Next:      Next{Prayer: Asr, Minutes: hm(15, 2)},
		Remaining: 2*3600 + 15*60 + 9,
		Countdown: "02:15:09",
	}
}

// ---------------------------------------------------------------------------
// TimeOfDayToMinutes
// ---------------------------------------------------------------------------

func TestTimeOfDayToMinutes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"simple HH:MM", "15:02", 902},
		{"midnight", "00:00", 0},
		{"with timezone suffix", "15:02 (BST)", 902},
		{"with spaces and suffix", "  05:17  (EET) ", 317},
		{"invalid format", "bad", 0},
		{"empty string", "", 0},
		{"missing minute", "15:", 0},
		{"non-numeric", "ab:cd", 0},
		{"hour out of range", "25:00", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeOfDayToMinutes(tt.raw); got != tt.want {
				t.Errorf("TimeOfDayToMinutes(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// MinutesTo12HourLabel
// ---------------------------------------------------------------------------

func TestMinutesTo12HourLabel(t *testing.T) {
	tests := []struct {
		minutes int
		loc     Locale
		want    string
	}{
		{0, English, "12:00 AM"},
		{hm(5, 0), English, "5:00 AM"},
		{hm(12, 0), English, "12:00 PM"},
		{hm(12, 30), English, "12:30 PM"},
		{hm(15, 45), English, "3:45 PM"},
		{hm(23, 59), English, "11:59 PM"},
		{1740, English, "5:00 AM"},
		{hm(5, 7), Arabic, "5:07 ص"},
		{hm(18, 0), Arabic, "6:00 م"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := MinutesTo12HourLabel(tt.minutes, tt.loc); got != tt.want {
				t.Errorf("MinutesTo12HourLabel(%d, %s) = %q, want %q", tt.minutes, tt.loc, got, tt.want)
			}
		})
	}
}

func TestTimeConversionRoundTrip(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			raw := fmt.Sprintf("%02d:%02d", h, m)

			period := "AM"
			if h >= 12 {
				period = "PM"
			}
			h12 := h % 12
			if h12 == 0 {
				h12 = 12
			}
			want := fmt.Sprintf("%d:%02d %s", h12, m, period)

			if got := MinutesTo12HourLabel(TimeOfDayToMinutes(raw), English); got != want {
				t.Fatalf("round trip %q = %q, want %q", raw, got, want)
			}
		}
	}
}

func TestFormatTime_Placeholder(t *testing.T) {
	if got := FormatTime("", English); got != Placeholder {
		t.Errorf("FormatTime(\"\") = %q, want %q", got, Placeholder)
	}
	if got := FormatTime("19:30", English); got != "7:30 PM" {
		t.Errorf("FormatTime(19:30) = %q", got)
	}
}

func TestScheduleDisplay(t *testing.T) {
	tm := sampleTimings()
	tm.Sunrise = ""
	s := FromTimings(tm)

	if got := s.Display(Sunrise, "12h", English); got != Placeholder {
		t.Errorf("missing sunrise displayed as %q", got)
	}
	if got := s.Display(Maghrib, "24h", English); got != "18:00" {
		t.Errorf("24h maghrib = %q", got)
	}
	var nilSched *Schedule
	if got := nilSched.Display(Fajr, "24h", English); got != Placeholder {
		t.Errorf("nil schedule displayed as %q", got)
	}
}

// ---------------------------------------------------------------------------
// Labels
// ---------------------------------------------------------------------------

func TestLabel(t *testing.T) {
	if got := Label(Maghrib, English); got != "Maghrib" {
		t.Errorf("English Maghrib = %q", got)
	}
	if got := Label(Fajr, Arabic); got != "الفجر" {
		t.Errorf("Arabic Fajr = %q", got)
	}
	if got := Label(Isha, Locale("fr")); got != "Isha" {
		t.Errorf("unknown locale should fall back to English, got %q", got)
	}
}

func TestParseLocale(t *testing.T) {
	for _, in := range []string{"", "en", "ar"} {
		if _, err := ParseLocale(in); err != nil {
			t.Errorf("ParseLocale(%q) unexpected error: %v", in, err)
		}
	}
	if _, err := ParseLocale("de"); err == nil {
		t.Error("ParseLocale(de) expected error")
	}
}

// ---------------------------------------------------------------------------
// FormatOutput
// ---------------------------------------------------------------------------

func TestFormatOutput_AllBuiltinModes(t *testing.T) {
	st := formatTestStatus()

	tests := []struct {
		mode string
		want string
	}{
		{FormatTimeRemaining, "2h 15m"},
		{FormatCountdown, "02:15:09"},
		{FormatNextPrayerTime, "15:02"},
		{FormatNameAndTime, "Asr 15:02"},
		{FormatNameAndRemaining, "Asr 2h 15m"},
		{FormatShortNameAndTime, "A 15:02"},
		{FormatShortNameAndRemain, "A 2h 15m"},
		{FormatFull, "Asr 15:02 (02:15:09)"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			got := FormatOutput(st, tt.mode, "24h", English)
			if got != tt.want {
				t.Errorf("FormatOutput(%q) = %q, want %q", tt.mode, got, tt.want)
			}
		})
	}
}

func TestFormatOutput_12HourFormat(t *testing.T) {
	got := FormatOutput(formatTestStatus(), FormatNameAndTime, "12h", English)
	if got != "Asr 3:02 PM" {
		t.Errorf("12h format = %q, want %q", got, "Asr 3:02 PM")
	}
}

func TestFormatOutput_Arabic(t *testing.T) {
	got := FormatOutput(formatTestStatus(), FormatNameAndTime, "12h", Arabic)
	if got != "العصر 3:02 م" {
		t.Errorf("arabic = %q", got)
	}
}

func TestFormatOutput_UnknownModeDefaultsToNameAndTime(t *testing.T) {
	got := FormatOutput(formatTestStatus(), "nonexistent-format", "24h", English)
	if got != "Asr 15:02" {
		t.Errorf("unknown mode = %q, want %q", got, "Asr 15:02")
	}
}

func TestFormatOutput_CustomTemplate(t *testing.T) {
	st := formatTestStatus()

	got := FormatOutput(st, "{{.Name}} in {{.Countdown}}", "24h", English)
	if got != "Asr in 02:15:09" {
		t.Errorf("custom = %q", got)
	}

	got = FormatOutput(st, "{{.ShortName}} {{.Hours}}h{{.Minutes}}", "24h", English)
	if got != "A 2h15" {
		t.Errorf("custom hours/minutes = %q", got)
	}
}

func TestFormatOutput_BadTemplate(t *testing.T) {
	got := FormatOutput(formatTestStatus(), "{{.Name", "24h", English)
	if !strings.HasPrefix(got, "template-err:") {
		t.Errorf("bad template = %q, want template-err prefix", got)
	}
}

func TestFormatOutput_TomorrowFajr(t *testing.T) {
	st := Status{Next: Next{Prayer: Fajr, Minutes: 1740}, Remaining: 9 * 3600, Countdown: "09:00:00"}
	if got := FormatOutput(st, FormatNameAndTime, "24h", English); got != "Fajr 05:00" {
		t.Errorf("tomorrow fajr = %q", got)
	}
}

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		name    string
		seconds int64
		want    string
	}{
		{"hours and minutes", 2*3600 + 15*60, "2h 15m"},
		{"only minutes", 45 * 60, "45m"},
		{"exactly one hour", 3600, "1h 0m"},
		{"zero", 0, "0m"},
		{"negative", -1800, "0m"},
		{"large", 10*3600 + 59*60 + 59, "10h 59m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRemaining(tt.seconds); got != tt.want {
				t.Errorf("FormatRemaining(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}
