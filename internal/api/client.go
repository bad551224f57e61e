// Package api is the client for the Al Adhan prayer times service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/adhan-clock/internal/httpx"
)

const defaultBaseURL = "https://api.aladhan.com/v1"

// requestTimeout bounds a single call, including a slow body.
const requestTimeout = 10 * time.Second

// ErrScheduleFetch wraps every failure to obtain a day's timings.
var ErrScheduleFetch = errors.New("prayer times fetch failed")

// Client fetches a single day's timings.
type Client struct {
	http *httpx.Getter
	log  zerolog.Logger
	// BaseURL is the API base URL. Tests point it at an httptest server.
	BaseURL string
}

// NewClient creates a client for the public Al Adhan API.
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		http:    httpx.NewGetter("aladhan", requestTimeout, log),
		log:     log.With().Str("component", "aladhan").Logger(),
		BaseURL: defaultBaseURL,
	}
}

// FetchByCoordinates fetches the timings for date at lat/lon.
// A negative method or school lets the API choose.
func (c *Client) FetchByCoordinates(ctx context.Context, date time.Time, lat, lon float64, method, school int) (*Response, error) {
	params := calculation(method, school)
	params.Set("latitude", strconv.FormatFloat(lat, 'f', 6, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', 6, 64))
	return c.fetch(ctx, "timings", date, params)
}

// FetchByCity fetches the timings for date in the named city.
func (c *Client) FetchByCity(ctx context.Context, date time.Time, city, country string, method, school int) (*Response, error) {
	params := calculation(method, school)
	params.Set("city", city)
	params.Set("country", country)
	return c.fetch(ctx, "timingsByCity", date, params)
}

func calculation(method, school int) url.Values {
	params := url.Values{}
	if method >= 0 {
		params.Set("method", strconv.Itoa(method))
	}
	if school >= 0 {
		params.Set("school", strconv.Itoa(school))
	}
	return params
}

// fetch calls endpoint for the DD-MM-YYYY date and validates the envelope.
func (c *Client) fetch(ctx context.Context, endpoint string, date time.Time, params url.Values) (*Response, error) {
	reqURL := fmt.Sprintf("%s/%s/%s?%s", c.BaseURL, endpoint, date.Format("02-01-2006"), params.Encode())

	start := time.Now()
	body, err := c.http.Get(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScheduleFetch, err)
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to decode API response: %w", ErrScheduleFetch, err)
	}
	if resp.Code != 200 {
		return nil, fmt.Errorf("%w: API error: code=%d status=%s", ErrScheduleFetch, resp.Code, resp.Status)
	}
	if resp.Data.Timings.Empty() {
		return nil, fmt.Errorf("%w: response carries no timings", ErrScheduleFetch)
	}

	c.log.Debug().
		Str("endpoint", endpoint).
		Int("method", resp.Data.Meta.Method.ID).
		Str("timezone", resp.Data.Meta.Timezone).
		Dur("took", time.Since(start)).
		Msg("timings fetched")
	return &resp, nil
}
