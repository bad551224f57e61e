package cli

import (
	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/adhan-clock/internal/api"
	"github.com/smokyabdulrahman/adhan-clock/internal/app"
	"github.com/smokyabdulrahman/adhan-clock/internal/cache"
	"github.com/smokyabdulrahman/adhan-clock/internal/config"
	"github.com/smokyabdulrahman/adhan-clock/internal/geo"
	"github.com/smokyabdulrahman/adhan-clock/internal/prayer"
)

// appOptions maps the merged configuration onto scheduler options.
func appOptions(cfg *config.Config) app.Options {
	return app.Options{
		Latitude:   cfg.Latitude,
		Longitude:  cfg.Longitude,
		City:       cfg.City,
		Country:    cfg.Country,
		Method:     cfg.MethodOrDefault(-1),
		School:     cfg.SchoolOrDefault(-1),
		TimeFormat: cfg.TimeFormat,
		Locale:     cfg.LocaleOrDefault(),
	}
}

// networkDeps wires the HTTP providers shared by every command.
func networkDeps(log zerolog.Logger) app.Deps {
	return app.Deps{
		Locator:  geo.NewDetector(log),
		Geocoder: geo.NewReverseGeocoder(log),
		Source:   api.NewClient(log),
		Cache:    cache.New(),
		Log:      log,
	}
}

// timingsByKey returns the snapshot's formatted times keyed by prayer name.
func timingsByKey(s app.Snapshot) map[string]string {
	out := make(map[string]string, prayer.Count)
	for _, id := range prayer.Order {
		out[id.String()] = s.Times[id]
	}
	return out
}
