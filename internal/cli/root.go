package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/smokyabdulrahman/adhan-clock/internal/config"
	"github.com/smokyabdulrahman/adhan-clock/internal/logging"
)

// Global flags shared across all subcommands.
var (
	FlagCity       string
	FlagCountry    string
	FlagLatitude   float64
	FlagLongitude  float64
	FlagMethod     int
	FlagSchool     int
	FlagJSON       bool
	FlagTimeFormat string
	FlagLocale     string
	FlagLogLevel   string
	FlagLogFile    string
)

// loadedConfig holds the config file merged with the environment, loaded
// during PersistentPreRunE.
var loadedConfig *config.Config

// logger is configured during PersistentPreRunE.
var (
	logger    = zerolog.Nop()
	logCloser io.Closer
)

// NewRootCmd creates the root command for the adhan-clock CLI.
// The version parameter is set by the calling binary via ldflags.
func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "adhan-clock",
		Short: "Live Islamic prayer clock with adhan",
		Long: "Shows today's prayer times for your location, counts down to the next\n" +
			"prayer every second and plays the adhan when it arrives.\n" +
			"Prayer times come from the Al Adhan API.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.ApplyEnv(); err != nil {
				return fmt.Errorf("invalid environment: %w", err)
			}
			loadedConfig = cfg

			log, closer, err := logging.New(FlagLogLevel, FlagLogFile)
			if err != nil {
				return err
			}
			logger, logCloser = log, closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
		// Default action: the live clock.
		RunE:          runWatch,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addWatchFlags(rootCmd)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&FlagCity, "city", "", "Override city (takes precedence over config)")
	pf.StringVar(&FlagCountry, "country", "", "Override country")
	pf.Float64Var(&FlagLatitude, "latitude", 0, "Override latitude")
	pf.Float64Var(&FlagLongitude, "longitude", 0, "Override longitude")
	pf.IntVar(&FlagMethod, "method", -1, "Override calculation method (see `adhan-clock methods`)")
	pf.IntVar(&FlagSchool, "school", -1, "Override school (0=Shafi, 1=Hanafi)")
	pf.BoolVar(&FlagJSON, "json", false, "Output as JSON (where supported)")
	pf.StringVar(&FlagTimeFormat, "time-format", "", "Time format: 12h or 24h (overrides config)")
	pf.StringVar(&FlagLocale, "locale", "", "Label language: en or ar (overrides config)")
	pf.StringVar(&FlagLogLevel, "log-level", logging.DefaultLevel, "Log level: trace, debug, info, warn, error, disabled")
	pf.StringVar(&FlagLogFile, "log-file", "", "Write JSON logs to this file instead of stderr")

	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newTodayCmd())
	rootCmd.AddCommand(newNextCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newMethodsCmd())

	return rootCmd
}

// effectiveConfig returns the merged configuration values,
// applying the priority: CLI flags > environment > config file > defaults.
// It uses pflag's Changed to detect whether a flag was explicitly set.
func effectiveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := loadedConfig
	if cfg == nil {
		empty := config.Config{}
		cfg = &empty
	}
	defaults := config.Defaults()

	flags := cmd.Flags()
	root := cmd.Root().PersistentFlags()

	if flagWasSet(flags, root, "city") {
		cfg.City = FlagCity
	}
	if flagWasSet(flags, root, "country") {
		cfg.Country = FlagCountry
	}
	if flagWasSet(flags, root, "latitude") {
		cfg.Latitude = FlagLatitude
	}
	if flagWasSet(flags, root, "longitude") {
		cfg.Longitude = FlagLongitude
	}
	if flagWasSet(flags, root, "method") {
		if FlagMethod >= 0 {
			if _, err := config.ParseMethod(strconv.Itoa(FlagMethod)); err != nil {
				return nil, err
			}
		}
		cfg.Method = &FlagMethod
	} else if cfg.Method == nil {
		cfg.Method = defaults.Method
	}
	if flagWasSet(flags, root, "school") {
		cfg.School = &FlagSchool
	} else if cfg.School == nil {
		cfg.School = defaults.School
	}

	if flagWasSet(flags, root, "time-format") {
		if err := cfg.Set("time_format", FlagTimeFormat); err != nil {
			return nil, err
		}
	}
	if cfg.TimeFormat == "" {
		cfg.TimeFormat = defaults.TimeFormat
	}

	if flagWasSet(flags, root, "locale") {
		if err := cfg.Set("locale", FlagLocale); err != nil {
			return nil, err
		}
	}
	if cfg.Locale == "" {
		cfg.Locale = defaults.Locale
	}

	mergeWatchFlags(cmd, cfg)
	if cfg.MQTTTopic == "" {
		cfg.MQTTTopic = defaults.MQTTTopic
	}

	if cfg.City != "" && cfg.Country == "" && cfg.Latitude == 0 && cfg.Longitude == 0 {
		return nil, fmt.Errorf("--country is required when using --city")
	}

	return cfg, nil
}

// flagWasSet checks if a flag was explicitly set on either the local or persistent flag set.
func flagWasSet(local, persistent *pflag.FlagSet, name string) bool {
	if f := local.Lookup(name); f != nil && f.Changed {
		return true
	}
	if f := persistent.Lookup(name); f != nil && f.Changed {
		return true
	}
	return false
}
