package config

import (
	"log"
	"time"

	"github.com/sony/gobreaker"
)

// NewCircuitBreaker opens after 3 consecutive failures.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	timeout := 30 * time.Second
	switch name {
	case "redis-realtime":
		timeout = 5 * time.Second
	case "telegram":
		timeout = time.Minute
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[CRITICAL] circuit breaker %s: %s -> %s", name, from, to)
		},
	})
}
