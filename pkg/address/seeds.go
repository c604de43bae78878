package address

import (
	"encoding/binary"
	"errors"
	"math"
)

const (
	AuctionHousePrefix  = "auction_house"
	AuctioneerPrefix    = "auctioneer"
	ListingConfigPrefix = "listing_config"
	FeePayerSuffix      = "fee_payer"
	TreasurySuffix      = "treasury"
	SignerSuffix        = "signer"
	MetadataPrefix      = "metadata"

	// UnboundPrice is the byte-level sentinel used in place of a real price
	// for listings whose price is adjudicated by an auctioneer.
	UnboundPrice = uint64(math.MaxUint64)
)

// ErrReservedPrice is returned when a fixed price equals the unbound
// sentinel.
var ErrReservedPrice = errors.New("price collides with the unbound sentinel")

// PriceSeed is either a fixed price or the unbound marker used by
// auctioneer-mediated listings. Both encode to 8 little-endian bytes.
type PriceSeed struct {
	Amount  uint64
	Unbound bool
}

// FixedPrice returns a PriceSeed for the given literal price.
func FixedPrice(amount uint64) (PriceSeed, error) {
	if amount == UnboundPrice {
		return PriceSeed{}, ErrReservedPrice
	}
	return PriceSeed{Amount: amount}, nil
}

// Unbound returns the PriceSeed of a listing with no price baked in.
func Unbound() PriceSeed {
	return PriceSeed{Unbound: true}
}

// Value returns the numeric value encoded in the seed.
func (p PriceSeed) Value() uint64 {
	if p.Unbound {
		return UnboundPrice
	}
	return p.Amount
}

func (p PriceSeed) Bytes() []byte {
	return U64Seed(p.Value())
}

// U64Seed encodes v as 8 little-endian bytes.
func U64Seed(v uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	return buf
}

func MarketplaceSeeds(creator, treasuryMint Address) [][]byte {
	return [][]byte{[]byte(AuctionHousePrefix), creator.Bytes(), treasuryMint.Bytes()}
}

func FeeAccountSeeds(marketplace Address) [][]byte {
	return [][]byte{[]byte(AuctionHousePrefix), marketplace.Bytes(), []byte(FeePayerSuffix)}
}

func TreasurySeeds(marketplace Address) [][]byte {
	return [][]byte{[]byte(AuctionHousePrefix), marketplace.Bytes(), []byte(TreasurySuffix)}
}

func EscrowSeeds(marketplace, wallet Address) [][]byte {
	return [][]byte{[]byte(AuctionHousePrefix), marketplace.Bytes(), wallet.Bytes()}
}

func ProgramAsSignerSeeds() [][]byte {
	return [][]byte{[]byte(AuctionHousePrefix), []byte(SignerSuffix)}
}

// AuctioneerSeeds identify the delegation record owned by the auction house
// namespace.
func AuctioneerSeeds(marketplace, auctioneerAuthority Address) [][]byte {
	return [][]byte{[]byte(AuctioneerPrefix), marketplace.Bytes(), auctioneerAuthority.Bytes()}
}

// AuctioneerAuthoritySeeds identify the authority record owned by the
// auctioneer namespace.
func AuctioneerAuthoritySeeds(marketplace Address) [][]byte {
	return [][]byte{[]byte(AuctioneerPrefix), marketplace.Bytes()}
}

func TradeStateSeeds(
	wallet, marketplace, tokenAccount, treasuryMint, tokenMint Address,
	price PriceSeed, quantity uint64,
) [][]byte {
	return [][]byte{
		[]byte(AuctionHousePrefix),
		wallet.Bytes(),
		marketplace.Bytes(),
		tokenAccount.Bytes(),
		treasuryMint.Bytes(),
		tokenMint.Bytes(),
		price.Bytes(),
		U64Seed(quantity),
	}
}

func ListingConfigSeeds(
	wallet, marketplace, tokenAccount, treasuryMint, tokenMint Address,
	quantity uint64,
) [][]byte {
	return [][]byte{
		[]byte(ListingConfigPrefix),
		wallet.Bytes(),
		marketplace.Bytes(),
		tokenAccount.Bytes(),
		treasuryMint.Bytes(),
		tokenMint.Bytes(),
		U64Seed(quantity),
	}
}

func AssociatedTokenSeeds(owner, tokenProgram, mint Address) [][]byte {
	return [][]byte{owner.Bytes(), tokenProgram.Bytes(), mint.Bytes()}
}

func MetadataSeeds(metadataProgram, mint Address) [][]byte {
	return [][]byte{[]byte(MetadataPrefix), metadataProgram.Bytes(), mint.Bytes()}
}
