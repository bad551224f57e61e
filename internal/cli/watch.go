package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/adhan-clock/internal/app"
	"github.com/smokyabdulrahman/adhan-clock/internal/audio"
	"github.com/smokyabdulrahman/adhan-clock/internal/config"
	"github.com/smokyabdulrahman/adhan-clock/internal/display"
	"github.com/smokyabdulrahman/adhan-clock/internal/notify"
)

var (
	flagAdhan      string
	flagPlayer     string
	flagMQTTBroker string
	flagMQTTTopic  string
	flagNoClear    bool
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the live prayer clock (default)",
		Long: "Show today's prayer times with a live countdown to the next prayer and\n" +
			"play the adhan when it arrives.\n\n" +
			app.Help,
		RunE: runWatch,
	}
	addWatchFlags(cmd)
	return cmd
}

func addWatchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&flagAdhan, "adhan", "", "Audio file played when a prayer time arrives")
	f.StringVar(&flagPlayer, "player", "", "Player command; {file} marks the audio path (default: mpv)")
	f.StringVar(&flagMQTTBroker, "mqtt-broker", "", "Publish arrivals to this MQTT broker, e.g. tcp://localhost:1883")
	f.StringVar(&flagMQTTTopic, "mqtt-topic", "", "MQTT topic for arrivals (default "+config.DefaultMQTTTopic+")")
	f.BoolVar(&flagNoClear, "no-clear", false, "Append frames instead of redrawing the screen")
}

func mergeWatchFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Lookup("adhan") == nil {
		return
	}
	if f.Changed("adhan") {
		cfg.AdhanFile = flagAdhan
	}
	if f.Changed("player") {
		cfg.Player = flagPlayer
	}
	if f.Changed("mqtt-broker") {
		cfg.MQTTBroker = flagMQTTBroker
	}
	if f.Changed("mqtt-topic") {
		cfg.MQTTTopic = flagMQTTTopic
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	log := logger

	deps := networkDeps(log)

	if cfg.AdhanFile != "" {
		var command []string
		if cfg.Player != "" {
			command = []string{cfg.Player}
		}
		deps.Player = audio.NewExecPlayer(cfg.AdhanFile, command, log)
	} else {
		log.Info().Msg("no adhan file configured; arrivals are silent")
	}

	if cfg.MQTTBroker != "" {
		m, err := notify.DialMQTT(cfg.MQTTBroker, cfg.MQTTTopic, log)
		if err != nil {
			log.Warn().Err(err).Msg("arrival notifications disabled")
		} else {
			defer m.Close()
			deps.Notifier = m
		}
	}

	out := cmd.OutOrStdout()
	if FlagJSON {
		deps.Renderer = newJSONRenderer(out)
	} else {
		redraw := !flagNoClear && display.IsTerminal(os.Stdout)
		deps.Renderer = display.NewDashboard(out, redraw, cfg.LocaleOrDefault())
	}

	sched := app.New(appOptions(cfg), deps)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go readCommands(ctx, cmd.InOrStdin(), cmd.ErrOrStderr(), sched)

	return sched.Run(ctx)
}

// readCommands forwards stdin lines to the scheduler. End of input leaves
// the clock running.
func readCommands(ctx context.Context, in io.Reader, errOut io.Writer, sched *app.Scheduler) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		cmd, err := app.ParseCommand(line)
		if err != nil {
			fmt.Fprintln(errOut, err)
			continue
		}
		if err := sched.Send(ctx, cmd); err != nil {
			return
		}
	}
}

// jsonRenderer writes one JSON object per frame for other programs to consume.
type jsonRenderer struct {
	enc *json.Encoder
}

func newJSONRenderer(w io.Writer) *jsonRenderer {
	return &jsonRenderer{enc: json.NewEncoder(w)}
}

type watchFrame struct {
	Now       string            `json:"now"`
	Place     string            `json:"place"`
	Timings   map[string]string `json:"timings"`
	Next      string            `json:"next,omitempty"`
	Current   string            `json:"current,omitempty"`
	Countdown string            `json:"countdown"`
	Progress  float64           `json:"progress"`
	Fallback  bool              `json:"fallback"`
	Notices   []string          `json:"notices,omitempty"`
}

func (r *jsonRenderer) Render(s app.Snapshot) error {
	frame := watchFrame{
		Now:       s.Now,
		Place:     s.Place,
		Timings:   timingsByKey(s),
		Countdown: s.Countdown,
		Progress:  s.Progress,
		Fallback:  s.Fallback,
	}
	if s.HasNext {
		frame.Next = s.Next.String()
	}
	if s.InWindow {
		frame.Current = s.Current.String()
	}
	for _, n := range s.Notices {
		frame.Notices = append(frame.Notices, n.Text)
	}
	return r.enc.Encode(frame)
}
