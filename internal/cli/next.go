package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/adhan-clock/internal/app"
	"github.com/smokyabdulrahman/adhan-clock/internal/countdown"
	"github.com/smokyabdulrahman/adhan-clock/internal/prayer"
)

var flagFormat string

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Print the next upcoming prayer on one line, for status bars such as tmux.",
		RunE:  runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull, "Display format: time-remaining, countdown, next-prayer-time, name-and-time, name-and-remaining, short-name-and-time, short-name-and-remaining, full, or a custom Go template")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	snap := app.New(appOptions(cfg), networkDeps(logger)).Once(cmd.Context())
	fmt.Fprint(cmd.OutOrStdout(), nextLine(snap, flagFormat, cfg.TimeFormat, cfg.LocaleOrDefault()))
	return nil
}

// nextLine formats the snapshot's next prayer. Without a schedule the status
// bar still gets a placeholder rather than an error.
func nextLine(s app.Snapshot, mode, timeFormat string, loc prayer.Locale) string {
	if !s.HasNext {
		return countdown.Placeholder
	}
	return prayer.FormatOutput(prayer.Status{
		Next:      prayer.Next{Prayer: s.Next, Minutes: s.NextMinutes},
		Remaining: s.Remaining,
		Countdown: s.Countdown,
	}, mode, timeFormat, loc)
}
