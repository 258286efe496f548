// Package geocoder resolves addresses to coordinates. NominatimClient talks to
// a Nominatim-compatible search API; Cache puts a redis layer in front of any
// ports.Geocoder.
package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

var _ ports.Geocoder = (*NominatimClient)(nil)

// ErrUnexpectedStatus is returned when the geocoding service answers with a
// status other than 200.
var ErrUnexpectedStatus = errors.New("unexpected geocoder response status")

// RetryConfig controls the exponential backoff around a single lookup.
type RetryConfig struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryConfig gives up after a few seconds, well within an HTTP request.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		MaxElapsedTime:  5 * time.Second,
	}
}

// NominatimClient implements ports.Geocoder against the /search endpoint.
type NominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	retry      RetryConfig
	logger     *zap.Logger
}

// NewNominatimClient creates a client. timeout bounds each HTTP attempt.
func NewNominatimClient(baseURL, userAgent string, timeout time.Duration, retry RetryConfig, logger *zap.Logger) *NominatimClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NominatimClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		retry:      retry,
		logger:     logger.With(zap.String("component", "geocoder")),
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode returns the first search hit for address, or nil when there is none.
// Server errors and rate limiting are retried; other 4xx answers are not.
func (c *NominatimClient) Geocode(ctx context.Context, address string) (*kernel.Coordinate, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, nil
	}

	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(c.retry.InitialInterval),
		backoff.WithMaxInterval(c.retry.MaxInterval),
		backoff.WithMaxElapsedTime(c.retry.MaxElapsedTime),
	)

	var results []searchResult
	operation := func() error {
		var err error
		results, err = c.search(ctx, address)
		return err
	}
	notify := func(err error, next time.Duration) {
		c.logger.Warn("geocoder request failed, retrying",
			zap.String("address", address),
			zap.Duration("next", next),
			zap.Error(err))
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify); err != nil {
		return nil, fmt.Errorf("geocode %q: %w", address, err)
	}

	if len(results) == 0 {
		return nil, nil
	}

	return parseResult(results[0])
}

func (c *NominatimClient) search(ctx context.Context, address string) ([]searchResult, error) {
	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}

	var results []searchResult
	if err = json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode geocoder response: %w", err))
	}

	return results, nil
}

func parseResult(r searchResult) (*kernel.Coordinate, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parse latitude %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parse longitude %q: %w", r.Lon, err)
	}

	coordinate, err := kernel.NewCoordinate(lat, lon)
	if err != nil {
		return nil, err
	}
	return &coordinate, nil
}
