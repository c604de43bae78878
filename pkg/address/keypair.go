package address

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
)

// Keypair is an ed25519 key whose public part is a principal Address.
type Keypair struct {
	priv ed25519.PrivateKey
	pub  Address
}

// NewKeypair generates a random Keypair.
func NewKeypair() (*Keypair, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return fromPrivateKey(priv), nil
}

// KeypairFromSeed deterministically builds a Keypair from a 32-byte seed.
func KeypairFromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes", ed25519.SeedSize)
	}
	return fromPrivateKey(ed25519.NewKeyFromSeed(seed)), nil
}

// LoadKeypair reads a hex encoded seed from the given file.
func LoadKeypair(path string) (*Keypair, error) {
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	seed, err := hex.DecodeString(strings.TrimSpace(string(buf)))
	if err != nil {
		return nil, fmt.Errorf("invalid key file: %w", err)
	}
	return KeypairFromSeed(seed)
}

// Store writes the hex encoded seed of the key to the given file.
func (k *Keypair) Store(path string) error {
	return ioutil.WriteFile(path, []byte(hex.EncodeToString(k.priv.Seed())), 0600)
}

func (k *Keypair) Address() Address {
	return k.pub
}

func (k *Keypair) Sign(msg []byte) []byte {
	return ed25519.Sign(k.priv, msg)
}

// Verify checks an ed25519 signature of msg made by the given principal.
func Verify(signer Address, msg, sig []byte) bool {
	return ed25519.Verify(ed25519.PublicKey(signer[:]), msg, sig)
}

func fromPrivateKey(priv ed25519.PrivateKey) *Keypair {
	var pub Address
	copy(pub[:], priv[ed25519.SeedSize:])
	return &Keypair{priv, pub}
}
