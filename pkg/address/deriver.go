package address

import (
	"bytes"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// Namespaces groups the program ids under which records are derived.
type Namespaces struct {
	AuctionHouse Address
	Auctioneer   Address
	Token        Address
	Metadata     Address
}

// Deriver computes every derived address of the protocol for a fixed set of
// namespaces. Results are optionally memoized since derivation may iterate
// over many bumps.
type Deriver struct {
	ns    Namespaces
	cache *cache.Cache
}

type derived struct {
	addr Address
	bump uint8
}

// NewDeriver returns a Deriver. A zero ttl disables memoization.
func NewDeriver(ns Namespaces, ttl time.Duration) *Deriver {
	d := &Deriver{ns: ns}
	if ttl > 0 {
		d.cache = cache.New(ttl, 2*ttl)
	}
	return d
}

func (d *Deriver) Namespaces() Namespaces {
	return d.ns
}

func (d *Deriver) Marketplace(creator, treasuryMint Address) (Address, uint8) {
	return d.find(MarketplaceSeeds(creator, treasuryMint), d.ns.AuctionHouse)
}

func (d *Deriver) FeeAccount(marketplace Address) (Address, uint8) {
	return d.find(FeeAccountSeeds(marketplace), d.ns.AuctionHouse)
}

func (d *Deriver) Treasury(marketplace Address) (Address, uint8) {
	return d.find(TreasurySeeds(marketplace), d.ns.AuctionHouse)
}

func (d *Deriver) Escrow(marketplace, wallet Address) (Address, uint8) {
	return d.find(EscrowSeeds(marketplace, wallet), d.ns.AuctionHouse)
}

func (d *Deriver) ProgramAsSigner() (Address, uint8) {
	return d.find(ProgramAsSignerSeeds(), d.ns.AuctionHouse)
}

func (d *Deriver) Auctioneer(marketplace, auctioneerAuthority Address) (Address, uint8) {
	return d.find(AuctioneerSeeds(marketplace, auctioneerAuthority), d.ns.AuctionHouse)
}

func (d *Deriver) AuctioneerAuthority(marketplace Address) (Address, uint8) {
	return d.find(AuctioneerAuthoritySeeds(marketplace), d.ns.Auctioneer)
}

func (d *Deriver) TradeState(
	wallet, marketplace, tokenAccount, treasuryMint, tokenMint Address,
	price PriceSeed, quantity uint64,
) (Address, uint8) {
	return d.find(
		TradeStateSeeds(wallet, marketplace, tokenAccount, treasuryMint, tokenMint, price, quantity),
		d.ns.AuctionHouse,
	)
}

func (d *Deriver) ListingConfig(
	wallet, marketplace, tokenAccount, treasuryMint, tokenMint Address,
	quantity uint64,
) (Address, uint8) {
	return d.find(
		ListingConfigSeeds(wallet, marketplace, tokenAccount, treasuryMint, tokenMint, quantity),
		d.ns.Auctioneer,
	)
}

func (d *Deriver) AssociatedTokenAccount(owner, mint Address) (Address, uint8) {
	return d.find(AssociatedTokenSeeds(owner, d.ns.Token, mint), d.ns.Token)
}

func (d *Deriver) Metadata(mint Address) (Address, uint8) {
	return d.find(MetadataSeeds(d.ns.Metadata, mint), d.ns.Metadata)
}

// find panics if derivation fails: every seed set built by this package has
// bounded length, so an error here means a programming mistake.
func (d *Deriver) find(seeds [][]byte, namespace Address) (Address, uint8) {
	var key string
	if d.cache != nil {
		key = cacheKey(seeds, namespace)
		if v, ok := d.cache.Get(key); ok {
			r := v.(derived)
			return r.addr, r.bump
		}
	}

	addr, bump, err := FindProgramAddress(seeds, namespace)
	if err != nil {
		panic(fmt.Sprintf("address derivation: %s", err))
	}

	if d.cache != nil {
		d.cache.Set(key, derived{addr, bump}, cache.DefaultExpiration)
	}
	return addr, bump
}

func cacheKey(seeds [][]byte, namespace Address) string {
	var buf bytes.Buffer
	buf.Write(namespace[:])
	for _, s := range seeds {
		buf.WriteByte(byte(len(s)))
		buf.Write(s)
	}
	return buf.String()
}
