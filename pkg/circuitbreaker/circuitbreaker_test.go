package circuitbreaker_test

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/auction-house/pkg/circuitbreaker"
)

var errUnreachable = errors.New("connection refused")

func TestCircuitBreaker(t *testing.T) {
	t.Run("trips on failures", func(t *testing.T) {
		cb := circuitbreaker.NewCircuitBreaker("test")
		for i := 0; i <= circuitbreaker.MinRequests; i++ {
			_, err := cb.Execute(func() (interface{}, error) { return nil, errUnreachable })
			require.ErrorIs(t, err, errUnreachable)
		}

		require.Equal(t, gobreaker.StateOpen, cb.State())
		_, err := cb.Execute(func() (interface{}, error) { return nil, nil })
		require.ErrorIs(t, err, gobreaker.ErrOpenState)
	})

	t.Run("stays closed below the failing ratio", func(t *testing.T) {
		cb := circuitbreaker.NewCircuitBreaker("test")
		for i := 0; i <= 2*circuitbreaker.MinRequests; i++ {
			_, _ = cb.Execute(func() (interface{}, error) {
				if i%2 == 0 {
					return nil, nil
				}
				return nil, errUnreachable
			})
		}
		require.Equal(t, gobreaker.StateClosed, cb.State())
	})
}
