package ports

import (
	"context"
	"time"

	"github.com/tdex-network/auction-house/pkg/address"
)

// RequestNonce identifies a signed request. Every read-write transaction
// started with a nonce in its ctx consumes it, and fails if the same signer
// already used it before Expiry.
type RequestNonce struct {
	Signer address.Address
	Nonce  string
	Expiry time.Time
}

type requestNonceKey struct{}

// WithRequestNonce returns a copy of ctx carrying the given nonce.
func WithRequestNonce(ctx context.Context, nonce RequestNonce) context.Context {
	return context.WithValue(ctx, requestNonceKey{}, nonce)
}

// RequestNonceFromContext returns the nonce carried by ctx, if any.
func RequestNonceFromContext(ctx context.Context) (RequestNonce, bool) {
	nonce, ok := ctx.Value(requestNonceKey{}).(RequestNonce)
	return nonce, ok
}
