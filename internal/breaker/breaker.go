// Package breaker builds the circuit breakers placed around outbound HTTP calls.
package breaker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/joshua-takyi/agenda/internal/apperrors"
	"github.com/joshua-takyi/agenda/internal/metrics"
	gobreaker "github.com/sony/gobreaker/v2"
)

// New returns a breaker that opens after 5 consecutive failures and probes
// again after 30 seconds. Client errors (4xx-mapped APIErrors) are answers,
// not failures, and never trip it.
func New[T any](name string, logger *slog.Logger) *gobreaker.CircuitBreaker[T] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || apperrors.IsClientError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})
}

// IsOpen reports whether err is a rejection by an open or saturated breaker.
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
