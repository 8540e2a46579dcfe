// Package geocode resolves free-text place names to coordinates through a
// Nominatim-compatible search endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/joshua-takyi/agenda/internal/apperrors"
	"github.com/joshua-takyi/agenda/internal/breaker"
	"github.com/joshua-takyi/agenda/internal/metrics"
	"github.com/joshua-takyi/agenda/internal/models"
	gobreaker "github.com/sony/gobreaker/v2"
)

const dependencyName = "geocoder"

// ProximityDelta is the half-size, in degrees, of the proximity box.
const ProximityDelta = 0.2

// Fallback is answered when the geocoder finds nothing (Málaga city centre).
var Fallback = models.Coordinates{Latitude: 36.7213, Longitude: -4.4214}

type Geocoder interface {
	Geocode(ctx context.Context, place string) (models.Coordinates, error)
}

type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[models.Coordinates]
	logger     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		userAgent:  "agenda-api/1.0",
		httpClient: &http.Client{Timeout: timeout},
		cb:         breaker.New[models.Coordinates](dependencyName, logger),
		logger:     logger,
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode returns the first match for place, or Fallback when there is none.
func (c *Client) Geocode(ctx context.Context, place string) (models.Coordinates, error) {
	place = strings.TrimSpace(place)
	if place == "" {
		return models.Coordinates{}, apperrors.BadRequest("lugar is required")
	}

	start := time.Now()
	coords, err := c.cb.Execute(func() (models.Coordinates, error) {
		return c.search(ctx, place)
	})
	metrics.ExternalRequestDuration.WithLabelValues(dependencyName).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ExternalRequestsTotal.WithLabelValues(dependencyName, "error").Inc()
		if breaker.IsOpen(err) {
			return models.Coordinates{}, fmt.Errorf("geocoder unavailable: %w", err)
		}
		return models.Coordinates{}, err
	}
	metrics.ExternalRequestsTotal.WithLabelValues(dependencyName, "ok").Inc()
	return coords, nil
}

func (c *Client) search(ctx context.Context, place string) (models.Coordinates, error) {
	q := url.Values{}
	q.Set("q", place)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("error building geocoder request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Coordinates{}, fmt.Errorf("geocoder answered %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return models.Coordinates{}, fmt.Errorf("error decoding geocoder response: %w", err)
	}

	if len(results) == 0 {
		metrics.GeocodeFallbacksTotal.Inc()
		c.logger.Info("no geocoder match, using fallback", "lugar", place)
		return Fallback, nil
	}

	coords, err := models.ParseCoordinates(results[0].Lat, results[0].Lon)
	if err != nil {
		metrics.GeocodeFallbacksTotal.Inc()
		c.logger.Warn("unusable geocoder match, using fallback", "lugar", place, "error", err)
		return Fallback, nil
	}
	return coords, nil
}
