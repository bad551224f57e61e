// Package cache memoizes provider answers for the lifetime of the process.
// Nothing is written to disk; a restart always fetches fresh data.
package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/smokyabdulrahman/adhan-clock/internal/api"
)

// Cache holds timings per (date, place, method, school) and place names per
// coordinate. It is safe for concurrent use by fetch goroutines.
type Cache struct {
	mu      sync.Mutex
	timings map[string]timingsEntry
	places  map[string]string
}

type timingsEntry struct {
	day  string
	data api.Data
}

// maxTimings bounds the memo for a process that runs for months.
const maxTimings = 64

// New creates an empty Cache.
func New() *Cache {
	return &Cache{
		timings: make(map[string]timingsEntry),
		places:  make(map[string]string),
	}
}

// Query identifies one day's timetable request.
type Query struct {
	Date    time.Time
	Lat     float64
	Lon     float64
	City    string
	Country string
	Method  int
	School  int
}

func (q Query) day() string {
	return q.Date.Format("2006-01-02")
}

// key builds a deterministic hash from the parameters that affect prayer times.
// This ensures different locations/methods/schools get separate entries.
func (q Query) key() string {
	raw := fmt.Sprintf("%s|%.6f|%.6f|%s|%s|%d|%d",
		q.day(), q.Lat, q.Lon, q.City, q.Country, q.Method, q.School)
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", h[:8]) // 16 hex chars is plenty for uniqueness
}

// LoadTimings returns the memoized payload for q, if any.
func (c *Cache) LoadTimings(q Query) (api.Data, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.timings[q.key()]
	return e.data, ok
}

// SaveTimings memoizes a provider payload. Past maxTimings entries, days
// other than q's are evicted; q's own day is kept.
func (c *Cache) SaveTimings(q Query, d api.Data) {
	c.mu.Lock()
	defer c.mu.Unlock()

	day := q.day()
	if len(c.timings) >= maxTimings {
		for k, e := range c.timings {
			if e.day != day {
				delete(c.timings, k)
			}
		}
	}
	c.timings[q.key()] = timingsEntry{day: day, data: d}
}

func placeKey(lat, lon float64, lang string) string {
	return fmt.Sprintf("%.4f|%.4f|%s", lat, lon, lang)
}

// LoadPlace returns a memoized place name.
func (c *Cache) LoadPlace(lat, lon float64, lang string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	name, ok := c.places[placeKey(lat, lon, lang)]
	return name, ok
}

// SavePlace memoizes a place name.
func (c *Cache) SavePlace(lat, lon float64, lang, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.places[placeKey(lat, lon, lang)] = name
}
