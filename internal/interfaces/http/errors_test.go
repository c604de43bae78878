package httpinterface

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/auction-house/internal/core/domain"
)

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err    error
		status int
	}{
		{ErrInvalidSignature, http.StatusUnauthorized},
		{ErrMissingNonce, http.StatusUnauthorized},
		{ErrExpiryTooFar, http.StatusUnauthorized},
		{domain.ErrRequestExpired, http.StatusUnauthorized},
		{domain.ErrNonceUsed, http.StatusConflict},
		{domain.ErrUnauthorized, http.StatusForbidden},
		{domain.ErrNoAuctioneer, http.StatusForbidden},
		{ErrFaucetDisabled, http.StatusForbidden},
		{domain.ErrNotFound, http.StatusNotFound},
		{domain.ErrAlreadyExists, http.StatusConflict},
		{domain.ErrStaleTradeState, http.StatusGone},
		{domain.ErrIncrementTooSmall, http.StatusUnprocessableEntity},
		{fmt.Errorf("%w: eof", ErrMalformedRequest), http.StatusUnprocessableEntity},
		{errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.err.Error(), func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.status, httpStatus(tt.err))
		})
	}
}
