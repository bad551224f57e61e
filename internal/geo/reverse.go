package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/adhan-clock/internal/httpx"
)

// ErrGeocodeFailure is returned when coordinates cannot be turned into a place name.
var ErrGeocodeFailure = errors.New("reverse geocoding failed")

// UnknownPlace is returned when the service answers without any name.
const UnknownPlace = "unknown location"

const defaultReverseURL = "https://api.bigdatacloud.net/data/reverse-geocode-client"

// reverseResponse maps the fields we use from BigDataCloud.
type reverseResponse struct {
	City                 string `json:"city"`
	Locality             string `json:"locality"`
	PrincipalSubdivision string `json:"principalSubdivision"`
	CountryName          string `json:"countryName"`
}

// ReverseGeocoder maps coordinates to a locality name.
type ReverseGeocoder struct {
	http *httpx.Getter
	// URL is the reverse-geocoding endpoint. Exported for testing with httptest.
	URL string
}

// NewReverseGeocoder creates a BigDataCloud client.
func NewReverseGeocoder(log zerolog.Logger) *ReverseGeocoder {
	return &ReverseGeocoder{
		http: httpx.NewGetter("bigdatacloud", 5*time.Second, log),
		URL:  defaultReverseURL,
	}
}

// Lookup returns the most specific name the service knows for the position:
// city, then locality, then principal subdivision. lang is the
// localityLanguage code ("en", "ar").
func (g *ReverseGeocoder) Lookup(ctx context.Context, lat, lon float64, lang string) (string, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%f", lat))
	params.Set("longitude", fmt.Sprintf("%f", lon))
	params.Set("localityLanguage", lang)

	body, err := g.http.Get(ctx, g.URL+"?"+params.Encode())
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeocodeFailure, err)
	}

	var result reverseResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %w", ErrGeocodeFailure, err)
	}

	for _, name := range []string{result.City, result.Locality, result.PrincipalSubdivision} {
		if name != "" {
			return name, nil
		}
	}
	return UnknownPlace, nil
}
