package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/smokyabdulrahman/adhan-clock/internal/app"
	"github.com/smokyabdulrahman/adhan-clock/internal/prayer"
)

// BarWidth is the number of cells in the progress bar.
const BarWidth = 30

// Dashboard redraws the live clock on every snapshot.
type Dashboard struct {
	w     io.Writer
	clear bool
	loc   prayer.Locale
}

// NewDashboard writes frames to w. When clear is set each frame first wipes
// the screen, which only makes sense on a terminal.
func NewDashboard(w io.Writer, clear bool, loc prayer.Locale) *Dashboard {
	return &Dashboard{w: w, clear: clear, loc: loc}
}

// Render draws one frame.
func (d *Dashboard) Render(s app.Snapshot) error {
	frame := Frame(s, d.loc)
	if d.clear {
		frame = clearScreen + frame
	}
	_, err := io.WriteString(d.w, frame)
	return err
}

var (
	nextWord = map[prayer.Locale]string{prayer.English: "next", prayer.Arabic: "التالية"}
	nowWord  = map[prayer.Locale]string{prayer.English: "now", prayer.Arabic: "الآن"}
)

// Frame renders the dashboard text for s.
func Frame(s app.Snapshot, loc prayer.Locale) string {
	var sb strings.Builder

	sb.WriteString("\n")
	place := s.Place
	if place == "" {
		place = "…"
	}
	header := "  " + Bold(place)
	if s.Coordinates != "" && s.Coordinates != s.Place {
		header += "  " + Gray("("+s.Coordinates+")")
	}
	sb.WriteString(header + "\n")

	if s.Now != "" {
		sb.WriteString("  " + Bold(s.Now) + "\n")
	}
	if date := joinNonEmpty(" · ", s.Gregorian, s.Hijri); date != "" {
		sb.WriteString("  " + Dim(date) + "\n")
	}

	status := "Method: " + methodLabel(s.Method)
	if s.Fetching {
		status += "  " + Yellow("updating…")
	}
	sb.WriteString("  " + Gray(status) + "\n\n")

	tbl := NewTable([]string{"Prayer", "Time", ""})
	for i, id := range prayer.Order {
		mark := ""
		switch {
		case s.HasNext && s.Next == id:
			mark = "◀ " + nextWord[loc]
			tbl.MarkNext(i)
		case s.InWindow && s.Current == id:
			mark = "● " + nowWord[loc]
			tbl.MarkCurrent(i)
		}
		tbl.AddRow([]string{s.Labels[id], s.Times[id], mark})
	}
	sb.WriteString(tbl.Render())
	sb.WriteString("\n")

	if s.HasNext {
		sb.WriteString(fmt.Sprintf("  %s %s\n", Accent(s.Labels[s.Next]), Bold(s.Countdown)))
		sb.WriteString(fmt.Sprintf("  %s %3.0f%%\n", ProgressBar(s.Progress, BarWidth), s.Progress*100))
	} else {
		sb.WriteString("  " + Bold(s.Countdown) + "\n")
	}

	if len(s.Notices) > 0 {
		sb.WriteString("\n")
	}
	for _, n := range s.Notices {
		sb.WriteString("  " + noticeLine(n) + "\n")
	}

	return sb.String()
}

// ProgressBar draws p (0..1) as a bar of width cells.
func ProgressBar(p float64, width int) string {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	filled := int(p * float64(width))
	return Cyan(strings.Repeat("█", filled)) + Gray(strings.Repeat("░", width-filled))
}

func noticeLine(n app.Notice) string {
	switch n.Level {
	case app.LevelAlert:
		return Red("✖ " + n.Text)
	case app.LevelWarn:
		return Yellow("! " + n.Text)
	default:
		return Gray(n.Text)
	}
}

func methodLabel(m int) string {
	if m < 0 {
		return "auto"
	}
	return fmt.Sprintf("%d", m)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
