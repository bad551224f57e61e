package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/adhan-clock/internal/httpx"
)

// ErrLocationUnavailable is returned when the user's position cannot be determined.
var ErrLocationUnavailable = errors.New("location unavailable")

// Location holds geographic coordinates detected from the user's IP.
type Location struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Timezone  string  `json:"timezone"`
}

// Fallback is used when detection fails: the Kaaba, Makkah.
var Fallback = Location{
	Latitude:  21.4225,
	Longitude: 39.8262,
	City:      "Makkah",
	Country:   "Saudi Arabia",
	Timezone:  "Asia/Riyadh",
}

// ipAPIResponse maps the response from ip-api.com.
type ipAPIResponse struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Timezone string  `json:"timezone"`
}

const defaultDetectURL = "http://ip-api.com/json/?fields=status,message,lat,lon,city,country,timezone"

// Detector determines the user's location from their public IP address
// using ip-api.com, a free service that requires no API key.
type Detector struct {
	http *httpx.Getter
	// URL is the geolocation endpoint. Exported for testing with httptest.
	URL string
}

// NewDetector creates a Detector with a short timeout so a slow lookup
// never holds up the schedule.
func NewDetector(log zerolog.Logger) *Detector {
	return &Detector{
		http: httpx.NewGetter("ip-api", 5*time.Second, log),
		URL:  defaultDetectURL,
	}
}

// Detect looks up the current location. Every failure wraps ErrLocationUnavailable.
func (d *Detector) Detect(ctx context.Context) (*Location, error) {
	body, err := d.http.Get(ctx, d.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: geolocation request failed: %w", ErrLocationUnavailable, err)
	}

	var result ipAPIResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode geolocation response: %w", ErrLocationUnavailable, err)
	}

	if result.Status != "success" {
		return nil, fmt.Errorf("%w: geolocation failed: %s", ErrLocationUnavailable, result.Message)
	}

	return &Location{
		Latitude:  result.Lat,
		Longitude: result.Lon,
		City:      result.City,
		Country:   result.Country,
		Timezone:  result.Timezone,
	}, nil
}

// FormatCoordinates renders a position for display when no place name is known.
func FormatCoordinates(lat, lon float64) string {
	return fmt.Sprintf("%.2f, %.2f", lat, lon)
}
