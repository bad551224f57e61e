package prayer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Format constants for the one-line status output.
const (
	FormatTimeRemaining      = "time-remaining"
	FormatCountdown          = "countdown"
	FormatNextPrayerTime     = "next-prayer-time"
	FormatNameAndTime        = "name-and-time"
	FormatNameAndRemaining   = "name-and-remaining"
	FormatShortNameAndTime   = "short-name-and-time"
	FormatShortNameAndRemain = "short-name-and-remaining"
	FormatFull               = "full"
)

// Status is everything the one-line formatter needs about the next prayer.
type Status struct {
	Next      Next
	Remaining int64  // seconds until the prayer
	Countdown string // remaining as HH:MM:SS
}

// FormatData is the data passed to custom Go templates.
type FormatData struct {
	Name      string // Localized prayer name, e.g. "Asr"
	ShortName string // Abbreviated name, e.g. "A"
	Time      string // Formatted prayer time, e.g. "15:02" or "3:02 PM"
	Remaining string // Time remaining, e.g. "2h 15m"
	Countdown string // Time remaining as HH:MM:SS
	Hours     int    // Whole hours remaining
	Minutes   int    // Remaining minutes after hours
}

// FormatRemaining formats seconds as "Xh Ym" or "Ym" if less than an hour.
func FormatRemaining(seconds int64) string {
	if seconds < 0 {
		return "0m"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatOutput formats the next prayer according to the chosen mode.
// timeFormat is "12h" or "24h".
//
// If mode contains "{{", it is treated as a custom Go template string.
// Available template fields: .Name, .ShortName, .Time, .Remaining,
// .Countdown, .Hours, .Minutes
//
// Example: "{{.Name}} in {{.Countdown}}" -> "Asr in 02:15:09"
func FormatOutput(st Status, mode, timeFormat string, loc Locale) string {
	name := Label(st.Next.Prayer, loc)
	short := ShortNames[st.Next.Prayer]
	timeStr := FormatClock(st.Next.Minutes, timeFormat, loc)
	remaining := FormatRemaining(st.Remaining)

	if strings.Contains(mode, "{{") {
		return formatCustom(mode, FormatData{
			Name:      name,
			ShortName: short,
			Time:      timeStr,
			Remaining: remaining,
			Countdown: st.Countdown,
			Hours:     int(st.Remaining / 3600),
			Minutes:   int(st.Remaining%3600) / 60,
		})
	}

	switch mode {
	case FormatTimeRemaining:
		return remaining
	case FormatCountdown:
		return st.Countdown
	case FormatNextPrayerTime:
		return timeStr
	case FormatNameAndTime:
		return fmt.Sprintf("%s %s", name, timeStr)
	case FormatNameAndRemaining:
		return fmt.Sprintf("%s %s", name, remaining)
	case FormatShortNameAndTime:
		return fmt.Sprintf("%s %s", short, timeStr)
	case FormatShortNameAndRemain:
		return fmt.Sprintf("%s %s", short, remaining)
	case FormatFull:
		return fmt.Sprintf("%s %s (%s)", name, timeStr, st.Countdown)
	default:
		return fmt.Sprintf("%s %s", name, timeStr)
	}
}

// formatCustom executes a user-provided Go template string against the FormatData.
func formatCustom(tmpl string, data FormatData) string {
	t, err := template.New("custom").Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	return buf.String()
}
