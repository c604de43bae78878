package address

import (
	"crypto/sha256"
	"errors"

	"github.com/oasisprotocol/curve25519-voi/curve"
)

const (
	// MaxSeedLength is the maximum length in bytes of a single seed.
	MaxSeedLength = 32
	// MaxSeeds is the maximum number of seeds, bump included.
	MaxSeeds = 16

	pdaMarker = "ProgramDerivedAddress"
)

var (
	// ErrMaxSeedLengthExceeded is returned when a seed is longer than
	// MaxSeedLength bytes.
	ErrMaxSeedLengthExceeded = errors.New("length of the seed is too long for address generation")
	// ErrTooManySeeds is returned when more than MaxSeeds seeds are given.
	ErrTooManySeeds = errors.New("too many seeds for address generation")
	// ErrInvalidSeeds is returned by CreateProgramAddress when the resulting
	// digest lies on the ed25519 curve and thus could have a private key.
	ErrInvalidSeeds = errors.New("provided seeds do not result in a valid address")
	// ErrNoViableBump is returned when no bump in [0, 255] yields an
	// off-curve address.
	ErrNoViableBump = errors.New("unable to find a viable program address bump seed")
)

// CreateProgramAddress hashes the given seeds together with the namespace
// and returns the resulting address. The address must not be a valid ed25519
// point, otherwise ErrInvalidSeeds is returned.
func CreateProgramAddress(seeds [][]byte, namespace Address) (Address, error) {
	if len(seeds) > MaxSeeds {
		return Zero, ErrTooManySeeds
	}
	for _, seed := range seeds {
		if len(seed) > MaxSeedLength {
			return Zero, ErrMaxSeedLengthExceeded
		}
	}

	h := sha256.New()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write(namespace[:])
	h.Write([]byte(pdaMarker))

	var addr Address
	copy(addr[:], h.Sum(nil))

	if IsOnCurve(addr[:]) {
		return Zero, ErrInvalidSeeds
	}
	return addr, nil
}

// FindProgramAddress searches for the canonical bump, starting from 255 and
// going down, such that seeds+bump yields an off-curve address.
func FindProgramAddress(seeds [][]byte, namespace Address) (Address, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return Zero, 0, ErrTooManySeeds
	}

	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)

	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{uint8(bump)}
		addr, err := CreateProgramAddress(withBump, namespace)
		if err == nil {
			return addr, uint8(bump), nil
		}
		if !errors.Is(err, ErrInvalidSeeds) {
			return Zero, 0, err
		}
	}
	return Zero, 0, ErrNoViableBump
}

// VerifyProgramAddress checks that addr is the address derived from seeds
// with the given bump.
func VerifyProgramAddress(
	addr Address, seeds [][]byte, bump uint8, namespace Address,
) bool {
	withBump := append(append([][]byte{}, seeds...), []byte{bump})
	expected, err := CreateProgramAddress(withBump, namespace)
	if err != nil {
		return false
	}
	return expected == addr
}

// IsOnCurve reports whether buf is the compressed encoding of a point on
// the ed25519 curve.
func IsOnCurve(buf []byte) bool {
	var compressed curve.CompressedEdwardsY
	if _, err := compressed.SetBytes(buf); err != nil {
		return false
	}
	var point curve.EdwardsPoint
	_, err := point.SetCompressedY(&compressed)
	return err == nil
}
