// Package httpx wraps the JSON GET calls made to the external prayer-time,
// geolocation and geocoding services behind a circuit breaker.
package httpx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

// ErrCircuitOpen is returned while a service is considered down.
var ErrCircuitOpen = errors.New("service temporarily unavailable")

// maxBody caps how much of a response body is read.
const maxBody = 1 << 20

// StatusError is returned for a non-200 response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// Getter performs GET requests through a per-service circuit breaker.
type Getter struct {
	client *http.Client
	cb     *gobreaker.CircuitBreaker[[]byte]
}

// NewGetter creates a Getter for the named service. The breaker opens after
// three consecutive failures and probes again after thirty seconds.
func NewGetter(name string, timeout time.Duration, log zerolog.Logger) *Getter {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		// Client errors mean a bad request, not an unhealthy service.
		IsSuccessful: func(err error) bool {
			var se *StatusError
			if errors.As(err, &se) {
				return se.Code < 500
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("service", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	}

	return &Getter{
		client: &http.Client{Timeout: timeout},
		cb:     gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

// Get fetches url and returns the body of a 200 response.
func (g *Getter) Get(ctx context.Context, url string) ([]byte, error) {
	body, err := g.cb.Execute(func() ([]byte, error) {
		return g.do(ctx, url)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrCircuitOpen
	}
	return body, err
}

func (g *Getter) do(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
