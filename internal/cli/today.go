package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/adhan-clock/internal/app"
	"github.com/smokyabdulrahman/adhan-clock/internal/display"
	"github.com/smokyabdulrahman/adhan-clock/internal/prayer"
)

func newTodayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's prayer schedule once",
		Long:  "Print today's prayer times with the current window and the next prayer, then exit.",
		RunE:  runToday,
	}
}

func runToday(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	snap := app.New(appOptions(cfg), networkDeps(logger)).Once(cmd.Context())
	out := cmd.OutOrStdout()

	if FlagJSON {
		return printTodayJSON(out, snap)
	}
	printTodayRich(out, snap, cfg.LocaleOrDefault())
	return nil
}

// printTodayRich renders the colored terminal output for today's prayer schedule.
func printTodayRich(w io.Writer, s app.Snapshot, loc prayer.Locale) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s\n", display.Bold("Prayer Times"))
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %s\n", locationLine(s))
	if s.Gregorian != "" {
		fmt.Fprintf(w, "  %s\n", s.Gregorian)
	}
	if s.Hijri != "" {
		fmt.Fprintf(w, "  %s\n", s.Hijri)
	}
	fmt.Fprintln(w)

	tbl := display.NewTable([]string{"Prayer", "Time", ""})
	for i, id := range prayer.Order {
		suffix := ""
		switch {
		case s.HasNext && s.Next == id:
			suffix = "<- next in " + prayer.FormatRemaining(s.Remaining)
			tbl.MarkNext(i)
		case s.InWindow && s.Current == id:
			tbl.MarkCurrent(i)
		}
		tbl.AddRow([]string{prayer.Label(id, loc), s.Times[id], suffix})
	}
	fmt.Fprint(w, tbl.Render())

	// Tomorrow's fajr is not a row of today's table.
	if s.HasNext && s.NextMinutes >= prayer.MinutesPerDay {
		fmt.Fprintf(w, "\n  %s\n", display.Accent(fmt.Sprintf("Next: %s tomorrow in %s", prayer.Label(s.Next, loc), prayer.FormatRemaining(s.Remaining))))
	}

	if len(s.Notices) > 0 {
		fmt.Fprintln(w)
	}
	for _, n := range s.Notices {
		fmt.Fprintf(w, "  %s\n", display.Yellow(n.Text))
	}
	fmt.Fprintln(w)
}

// locationLine prefers the place name and appends coordinates when known.
func locationLine(s app.Snapshot) string {
	switch {
	case s.Place != "" && s.Coordinates != "" && s.Place != s.Coordinates:
		return s.Place + " (" + s.Coordinates + ")"
	case s.Place != "":
		return s.Place
	default:
		return s.Coordinates
	}
}

// todayJSON is the JSON output structure for the today command.
type todayJSON struct {
	Location todayJSONLocation `json:"location"`
	Date     todayJSONDate     `json:"date"`
	Timings  map[string]string `json:"timings"`
	Current  string            `json:"current"`
	Next     *todayJSONNext    `json:"next"`
	Fallback bool              `json:"fallback"`
	Notices  []string          `json:"notices,omitempty"`
}

type todayJSONLocation struct {
	Place       string `json:"place"`
	Coordinates string `json:"coordinates,omitempty"`
}

type todayJSONDate struct {
	Gregorian string `json:"gregorian"`
	Hijri     string `json:"hijri"`
}

// todayJSONNext describes the next prayer. For tomorrow's fajr, Time is
// today's fajr time; the provider answered for today only.
type todayJSONNext struct {
	Prayer    string `json:"prayer"`
	Time      string `json:"time"`
	Tomorrow  bool   `json:"tomorrow"`
	Remaining string `json:"remaining"`
	Countdown string `json:"countdown"`
}

func buildTodayJSON(s app.Snapshot) todayJSON {
	out := todayJSON{
		Location: todayJSONLocation{Place: s.Place, Coordinates: s.Coordinates},
		Date:     todayJSONDate{Gregorian: s.Gregorian, Hijri: s.Hijri},
		Timings:  timingsByKey(s),
		Fallback: s.Fallback,
	}
	if s.InWindow {
		out.Current = s.Current.String()
	}
	if s.HasNext {
		out.Next = &todayJSONNext{
			Prayer:    s.Next.String(),
			Time:      s.Times[s.Next],
			Tomorrow:  s.NextMinutes >= prayer.MinutesPerDay,
			Remaining: prayer.FormatRemaining(s.Remaining),
			Countdown: s.Countdown,
		}
	}
	for _, n := range s.Notices {
		out.Notices = append(out.Notices, n.Text)
	}
	return out
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(w io.Writer, s app.Snapshot) error {
	data, err := json.MarshalIndent(buildTodayJSON(s), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}
