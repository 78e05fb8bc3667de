package apiclient

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/hms/hms/internal/platform/telemetry"
)

// NewBreaker creates the circuit breaker used in front of a backend. It opens
// after `failures` consecutive network or 5xx failures; 4xx responses are the
// caller's fault and do not count.
func NewBreaker(name string, failures uint32, logger zerolog.Logger, metrics *telemetry.ClientMetrics) *gobreaker.CircuitBreaker {
	if failures == 0 {
		failures = 5
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || IsClientError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
			metrics.BreakerState(name, to == gobreaker.StateOpen)
		},
	})
}
