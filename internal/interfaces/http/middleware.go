package httpinterface

import (
	"bytes"
	"context"
	"io/ioutil"
	"net/http"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/internal/core/ports"
	"github.com/tdex-network/auction-house/pkg/address"
	"go.uber.org/ratelimit"
)

const (
	// SignerHeader carries the base58 address of the principal signing the
	// request.
	SignerHeader = "X-Signer"
	// SignatureHeader carries the base58 ed25519 signature of the request,
	// see SignedMessage.
	SignatureHeader = "X-Signature"
	// NonceHeader carries a string the signer never used before for a request
	// that has not expired yet.
	NonceHeader = "X-Nonce"
	// ExpiryHeader carries the unix time in seconds after which the request
	// is refused.
	ExpiryHeader = "X-Expiry"

	// RequestTTL is the validity SignRequest gives to requests.
	RequestTTL = time.Minute

	maxBodySize   = 1 << 20
	maxNonceSize  = 64
	maxRequestTTL = 10 * time.Minute
)

type signerKey struct{}

func signerFromContext(ctx context.Context) address.Address {
	signer, _ := ctx.Value(signerKey{}).(address.Address)
	return signer
}

// SignedMessage returns the bytes signed for a request to path. Binding path
// and nonce prevents a captured signature from being replayed elsewhere.
func SignedMessage(path, nonce string, expiry int64, body []byte) []byte {
	buf := bytes.NewBufferString(path)
	buf.WriteByte('\n')
	buf.WriteString(nonce)
	buf.WriteByte('\n')
	buf.WriteString(strconv.FormatInt(expiry, 10))
	buf.WriteByte('\n')
	buf.Write(body)
	return buf.Bytes()
}

// SignRequest sets the authentication headers of a request whose body is
// buf, with a fresh nonce valid for RequestTTL.
func SignRequest(req *http.Request, kp *address.Keypair, buf []byte) {
	SignRequestWithNonce(
		req, kp, buf, uuid.New().String(), time.Now().Add(RequestTTL),
	)
}

func SignRequestWithNonce(
	req *http.Request, kp *address.Keypair, buf []byte,
	nonce string, expiry time.Time,
) {
	msg := SignedMessage(req.URL.Path, nonce, expiry.Unix(), buf)
	req.Header.Set(SignerHeader, kp.Address().String())
	req.Header.Set(NonceHeader, nonce)
	req.Header.Set(ExpiryHeader, strconv.FormatInt(expiry.Unix(), 10))
	req.Header.Set(SignatureHeader, base58.Encode(kp.Sign(msg)))
}

// withSigner verifies the signature of the request and makes the signer
// available to the wrapped handler. The request nonce is put in the ctx so
// that the storage layer consumes it along with the operation.
func withSigner(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		signer, err := address.FromString(r.Header.Get(SignerHeader))
		if err != nil {
			writeError(w, ErrMissingSigner)
			return
		}
		sig := base58.Decode(r.Header.Get(SignatureHeader))
		if len(sig) == 0 {
			writeError(w, ErrInvalidSignature)
			return
		}
		nonce := r.Header.Get(NonceHeader)
		if len(nonce) == 0 || len(nonce) > maxNonceSize {
			writeError(w, ErrMissingNonce)
			return
		}
		expiry, err := strconv.ParseInt(r.Header.Get(ExpiryHeader), 10, 64)
		if err != nil {
			writeError(w, ErrMissingNonce)
			return
		}
		now := time.Now()
		expiresAt := time.Unix(expiry, 0)
		if !expiresAt.After(now) {
			writeError(w, domain.ErrRequestExpired)
			return
		}
		if expiresAt.Sub(now) > maxRequestTTL {
			writeError(w, ErrExpiryTooFar)
			return
		}

		body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
		if err != nil {
			writeError(w, ErrMalformedRequest)
			return
		}
		msg := SignedMessage(r.URL.Path, nonce, expiry, body)
		if !address.Verify(signer, msg, sig) {
			writeError(w, ErrInvalidSignature)
			return
		}

		r.Body = ioutil.NopCloser(bytes.NewReader(body))
		ctx := context.WithValue(r.Context(), signerKey{}, signer)
		ctx = ports.WithRequestNonce(ctx, ports.RequestNonce{
			Signer: signer,
			Nonce:  nonce,
			Expiry: expiresAt,
		})
		next(w, r.WithContext(ctx))
	}
}

func rateLimiter(opsPerSecond int) func(http.Handler) http.Handler {
	limiter := ratelimit.New(opsPerSecond)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter.Take()
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{w, http.StatusOK}
		next.ServeHTTP(rec, r)

		log.WithFields(log.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"status":  rec.status,
			"elapsed": time.Since(start),
		}).Debug("served request")
	})
}
