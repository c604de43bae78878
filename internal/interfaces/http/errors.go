package httpinterface

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/pkg/address"
)

var (
	ErrMissingSigner    = errors.New("missing or malformed signer header")
	ErrInvalidSignature = errors.New("request signature is not valid for the given signer")
	ErrFaucetDisabled   = errors.New("faucet is not enabled")
	ErrMalformedRequest = errors.New("malformed request body")
	ErrMissingNonce     = errors.New("missing or malformed nonce or expiry header")
	ErrExpiryTooFar     = errors.New("request expiry is too far in the future")
)

// domainErrors are the rejections of the protocol. Anything else is an
// internal failure.
var domainErrors = []error{
	domain.ErrInsufficientFunds,
	domain.ErrNotEmpty,
	domain.ErrInvalidRoyaltySplit,
	domain.ErrAuctionNotOpen,
	domain.ErrBelowReserve,
	domain.ErrIncrementTooSmall,
	domain.ErrMismatch,
	domain.ErrInvalidBasisPoints,
	domain.ErrInvalidQuantity,
	domain.ErrNotEnoughTokens,
	domain.ErrDelegateMissing,
	domain.ErrFreeSaleRequiresSignoff,
	domain.ErrCannotCancelHighestBid,
	domain.ErrNotHighestBidder,
	domain.ErrAuctionActive,
	domain.ErrInvalidTiming,
	domain.ErrUnboundPriceRequiresAuctioneer,
	domain.ErrPriceChangeNotAllowed,
	domain.ErrDerivedKeyInvalid,
	domain.ErrNumericalOverflow,
	address.ErrReservedPrice,
	address.ErrInvalidAddress,
	ErrMalformedRequest,
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, ErrMissingSigner), errors.Is(err, ErrInvalidSignature),
		errors.Is(err, ErrMissingNonce), errors.Is(err, ErrExpiryTooFar),
		errors.Is(err, domain.ErrRequestExpired):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrNotAuthorized),
		errors.Is(err, ErrFaucetDisabled):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyExists), errors.Is(err, domain.ErrNonceUsed):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStaleTradeState):
		return http.StatusGone
	}
	for _, e := range domainErrors {
		if errors.Is(err, e) {
			return http.StatusUnprocessableEntity
		}
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := httpStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.WithError(err).Warn("internal error while serving request")
		msg = http.StatusText(status)
	}
	writeJSON(w, status, ErrorReply{msg})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Debug("failed to write response")
	}
}
