package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/adhan-clock/internal/api"
	"github.com/smokyabdulrahman/adhan-clock/internal/cache"
	"github.com/smokyabdulrahman/adhan-clock/internal/clock"
	"github.com/smokyabdulrahman/adhan-clock/internal/geo"
	"github.com/smokyabdulrahman/adhan-clock/internal/prayer"
)

// Locator finds the user's position.
type Locator interface {
	Detect(ctx context.Context) (*geo.Location, error)
}

// Geocoder turns coordinates into a place name.
type Geocoder interface {
	Lookup(ctx context.Context, lat, lon float64, lang string) (string, error)
}

// ScheduleSource fetches one day's timetable.
type ScheduleSource interface {
	FetchByCoordinates(ctx context.Context, date time.Time, lat, lon float64, method, school int) (*api.Response, error)
	FetchByCity(ctx context.Context, date time.Time, city, country string, method, school int) (*api.Response, error)
}

const (
	msgLocationFallback = "Could not detect your location; showing prayer times for Makkah."
	msgScheduleFallback = "Could not load prayer times; showing the default schedule."
)

type fetchRequest struct {
	generation uint64
	id         string
	now        time.Time
	method     int
	school     int
	// known is reused instead of detecting again when set.
	known *geo.Location
}

type fetchResult struct {
	generation uint64
	id         string
	epoch      time.Time
	location   geo.Location
	place      string
	schedule   *prayer.Schedule

	locationFallback bool
	scheduleFallback bool
}

// fetcher runs the location → place → schedule pipeline. It never fails:
// every step has a fallback, and the result says which ones were used.
type fetcher struct {
	opts     Options
	locator  Locator
	geocoder Geocoder
	source   ScheduleSource
	cache    *cache.Cache
	log      zerolog.Logger
}

func newFetchID() string {
	return uuid.NewString()[:8]
}

func (f *fetcher) run(ctx context.Context, req fetchRequest) fetchResult {
	log := f.log.With().Str("fetch", req.id).Logger()
	res := fetchResult{
		generation: req.generation,
		id:         req.id,
		epoch:      clock.Midnight(req.now),
	}

	res.location, res.locationFallback = f.locate(ctx, req, log)
	res.place = f.placeName(ctx, res.location, log)
	res.schedule, res.scheduleFallback = f.schedule(ctx, req, res.location, log)

	log.Info().
		Str("place", res.place).
		Bool("location_fallback", res.locationFallback).
		Bool("schedule_fallback", res.scheduleFallback).
		Msg("fetch complete")
	return res
}

func (f *fetcher) byCity() bool {
	return f.opts.City != "" && !f.opts.hasCoordinates()
}

func (f *fetcher) locate(ctx context.Context, req fetchRequest, log zerolog.Logger) (geo.Location, bool) {
	switch {
	case f.opts.hasCoordinates():
		return geo.Location{Latitude: f.opts.Latitude, Longitude: f.opts.Longitude}, false
	case f.byCity():
		return geo.Location{City: f.opts.City, Country: f.opts.Country}, false
	case req.known != nil:
		return *req.known, false
	}

	loc, err := f.locator.Detect(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("using fallback location")
		return geo.Fallback, true
	}
	log.Debug().Float64("lat", loc.Latitude).Float64("lon", loc.Longitude).Msg("location detected")
	return *loc, false
}

func (f *fetcher) placeName(ctx context.Context, loc geo.Location, log zerolog.Logger) string {
	if f.byCity() {
		return joinPlace(loc.City, loc.Country)
	}

	lang := f.opts.Locale.GeocodeLanguage()
	if name, ok := f.cache.LoadPlace(loc.Latitude, loc.Longitude, lang); ok {
		return name
	}

	name, err := f.geocoder.Lookup(ctx, loc.Latitude, loc.Longitude, lang)
	if err != nil {
		log.Warn().Err(err).Msg("showing coordinates instead of a place name")
		return geo.FormatCoordinates(loc.Latitude, loc.Longitude)
	}
	f.cache.SavePlace(loc.Latitude, loc.Longitude, lang, name)
	return name
}

func (f *fetcher) schedule(ctx context.Context, req fetchRequest, loc geo.Location, log zerolog.Logger) (*prayer.Schedule, bool) {
	q := cache.Query{
		Date:    req.now,
		Lat:     loc.Latitude,
		Lon:     loc.Longitude,
		City:    loc.City,
		Country: loc.Country,
		Method:  req.method,
		School:  req.school,
	}
	if !f.byCity() {
		q.City, q.Country = "", ""
	}

	if data, ok := f.cache.LoadTimings(q); ok {
		log.Debug().Msg("timings served from session memo")
		return prayer.FromResponse(data), false
	}

	var (
		resp *api.Response
		err  error
	)
	if f.byCity() {
		resp, err = f.source.FetchByCity(ctx, req.now, loc.City, loc.Country, req.method, req.school)
	} else {
		resp, err = f.source.FetchByCoordinates(ctx, req.now, loc.Latitude, loc.Longitude, req.method, req.school)
	}
	if err != nil {
		log.Error().Err(err).Msg("using default schedule")
		return prayer.DefaultSchedule(), true
	}

	f.cache.SaveTimings(q, resp.Data)
	return prayer.FromResponse(resp.Data), false
}

func joinPlace(city, country string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{city, country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return geo.UnknownPlace
	}
	return strings.Join(parts, ", ")
}

func methodNotice(method int) string {
	if method < 0 {
		return "Calculation method: provider default."
	}
	return fmt.Sprintf("Calculation method set to %d.", method)
}
