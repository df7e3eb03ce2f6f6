package rest

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// DefaultBreakerTimeout is how long an open breaker rejects calls.
const DefaultBreakerTimeout = 30 * time.Second

func newBreaker(failures uint32, timeout time.Duration, log logrus.FieldLogger) *gobreaker.CircuitBreaker {
	if timeout <= 0 {
		timeout = DefaultBreakerTimeout
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "TaskAPI",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// Caller cancellation says nothing about the API's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	})
}
