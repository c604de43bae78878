package circuitbreaker

import (
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

var (
	// MinRequests is the number of requests that must be exceeded before the
	// failure ratio is taken into account.
	MinRequests = 5
	// FailureRatio is the share of failed requests that opens the breaker.
	FailureRatio = 0.6
	// OpenTimeout is how long the breaker stays open before letting a probe
	// request through.
	OpenTimeout = 10 * time.Second
)

// NewCircuitBreaker returns a breaker for the named remote endpoint. Callers
// decide what a failure is by what they return from Execute.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:          name,
		Timeout:       OpenTimeout,
		ReadyToTrip:   tooManyFailures,
		OnStateChange: logStateChange,
	})
}

func tooManyFailures(counts gobreaker.Counts) bool {
	if int(counts.Requests) <= MinRequests {
		return false
	}
	return float64(counts.TotalFailures)/float64(counts.Requests) >= FailureRatio
}

func logStateChange(name string, from, to gobreaker.State) {
	log.Debugf("circuit breaker %s: %s -> %s", name, from, to)
}
