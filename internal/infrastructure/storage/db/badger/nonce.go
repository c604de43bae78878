package dbbadger

import (
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/orderedcode"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/internal/core/ports"
)

const noncePrefix = "nonce"

// consumeNonce marks the nonce as used by its signer within tx. The key
// expires along with the request, after which the signature is refused
// anyway.
func consumeNonce(tx *badger.Txn, nonce ports.RequestNonce, now time.Time) error {
	ttl := nonce.Expiry.Sub(now)
	if ttl <= 0 {
		return domain.ErrRequestExpired
	}

	key, err := orderedcode.Append(
		nil, noncePrefix, string(nonce.Signer[:]), nonce.Nonce,
	)
	if err != nil {
		return err
	}

	if _, err := tx.Get(key); err == nil {
		return domain.ErrNonceUsed
	} else if err != badger.ErrKeyNotFound {
		return err
	}
	return tx.SetEntry(badger.NewEntry(key, []byte{1}).WithTTL(ttl))
}
