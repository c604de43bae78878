package address

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// Size is the length in bytes of an Address.
const Size = 32

var (
	// ErrInvalidAddress is returned when decoding a malformed base58 address.
	ErrInvalidAddress = errors.New("invalid address")

	// Zero is the all-zeros address, never a valid principal or record.
	Zero Address
)

// Address identifies a principal (an ed25519 public key) or a record stored
// at a derived location.
type Address [Size]byte

// FromString decodes a base58 encoded address.
func FromString(str string) (Address, error) {
	buf := base58.Decode(str)
	if len(buf) != Size {
		return Zero, fmt.Errorf("%w: %s", ErrInvalidAddress, str)
	}
	var addr Address
	copy(addr[:], buf)
	return addr, nil
}

// MustFromString is like FromString but panics on error. Only meant for
// constants and tests.
func MustFromString(str string) Address {
	addr, err := FromString(str)
	if err != nil {
		panic(err)
	}
	return addr
}

// FromBytes copies the given 32-byte slice into an Address.
func FromBytes(buf []byte) (Address, error) {
	if len(buf) != Size {
		return Zero, ErrInvalidAddress
	}
	var addr Address
	copy(addr[:], buf)
	return addr, nil
}

func (a Address) String() string {
	return base58.Encode(a[:])
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) IsZero() bool {
	return a == Zero
}

// Compare lets badgerhold order and match Address fields in queries.
func (a Address) Compare(other interface{}) (int, error) {
	switch o := other.(type) {
	case Address:
		return bytes.Compare(a[:], o[:]), nil
	case *Address:
		if o == nil {
			return 1, nil
		}
		return bytes.Compare(a[:], o[:]), nil
	default:
		return 0, fmt.Errorf("cannot compare address with %T", other)
	}
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	addr, err := FromString(str)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	addr, err := FromString(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
