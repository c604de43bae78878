package auctioneer_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/auction-house/internal/core/application/auctioneer"
	"github.com/tdex-network/auction-house/internal/core/application/auctionhouse"
	"github.com/tdex-network/auction-house/internal/core/domain"
	dbbadger "github.com/tdex-network/auction-house/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/auction-house/pkg/address"
)

const (
	sol         = uint64(1000000000)
	startOfTime = int64(1650000000)
	hour        = int64(3600)
)

var (
	ctx        = context.Background()
	namespaces = address.Namespaces{
		AuctionHouse: address.MustFromString("9sCGJFSVb7zyXfozXXiVyemaaNtbHVEiRy81HmQzGWG9"),
		Auctioneer:   address.MustFromString("FYUpechM9AEW579boyznhD7vq3xumeC3BstW4PB1qGEp"),
		Token:        address.MustFromString("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"),
		Metadata:     address.MustFromString("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s"),
	}
	nativeMint = address.MustFromString("So11111111111111111111111111111111111111112")
)

type testClock struct {
	lock sync.Mutex
	now  int64
}

func (c *testClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return time.Unix(c.now, 0)
}

func (c *testClock) Set(now int64) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = now
}

func randomAddress(t require.TestingT) address.Address {
	kp, err := address.NewKeypair()
	require.NoError(t, err)
	return kp.Address()
}

type fixture struct {
	auctionHouse auctionhouse.Service
	auctioneer   auctioneer.Service
	clock        *testClock
	authority    address.Address
	marketplace  *domain.Marketplace
	seller       address.Address
	creator      address.Address
	token        *domain.TokenAccount
}

// newFixture creates a 1% fee marketplace, with or without the auctioneer
// fully authorized, and an asset held by the seller.
func newFixture(t *testing.T, authorized bool) *fixture {
	repoManager, err := dbbadger.NewRepoManager("", nil)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)

	clock := &testClock{now: startOfTime}
	auctionHouse, err := auctionhouse.NewService(
		repoManager, address.NewDeriver(namespaces, time.Minute), clock, 0,
	)
	require.NoError(t, err)
	strategy, err := auctioneer.NewService(repoManager, auctionHouse, clock)
	require.NoError(t, err)

	authority := randomAddress(t)
	marketplace, err := auctionHouse.CreateMarketplace(ctx, authority, domain.MarketplaceArgs{
		TreasuryMint:                  nativeMint,
		FeeWithdrawalDestination:      authority,
		TreasuryWithdrawalDestination: authority,
		FeeBasisPoints:                100,
	})
	require.NoError(t, err)

	if authorized {
		_, err = strategy.Authorize(ctx, authority, marketplace.Address)
		require.NoError(t, err)
		_, err = auctionHouse.DelegateAuctioneer(
			ctx, authority, marketplace.Address,
			strategy.AuthorityAddress(marketplace.Address),
		)
		require.NoError(t, err)
	}

	seller := randomAddress(t)
	creator := randomAddress(t)
	token, err := auctionHouse.ImportAsset(ctx, seller, auctionhouse.ImportAssetArgs{
		Mint: randomAddress(t),
		Name: "Auctioned",
		Creators: []domain.RoyaltyShare{
			{Address: creator, Share: 40, Verified: true},
			{Address: seller, Share: 60},
		},
		Supply: 1,
	})
	require.NoError(t, err)

	return &fixture{
		auctionHouse: auctionHouse,
		auctioneer:   strategy,
		clock:        clock,
		authority:    authority,
		marketplace:  marketplace,
		seller:       seller,
		creator:      creator,
		token:        token,
	}
}

func timing(reserve, increment uint64, extPeriod, extDelta uint32) domain.ListingTiming {
	return domain.ListingTiming{
		StartTime:       startOfTime,
		EndTime:         startOfTime + hour,
		ReservePrice:    reserve,
		MinBidIncrement: increment,
		TimeExtPeriod:   extPeriod,
		TimeExtDelta:    extDelta,
	}
}

func (f *fixture) sell(t *testing.T, timing domain.ListingTiming) *auctioneer.SellResult {
	res, err := f.auctioneer.Sell(ctx, f.seller, auctioneer.SellArgs{
		Marketplace:  f.marketplace.Address,
		TokenAccount: f.token.Address,
		Quantity:     1,
		Timing:       timing,
	})
	require.NoError(t, err)
	return res
}

func (f *fixture) deposit(t *testing.T, bidder address.Address, amount uint64) {
	_, err := f.auctionHouse.Fund(ctx, bidder, amount)
	require.NoError(t, err)
	_, err = f.auctioneer.Deposit(ctx, bidder, f.marketplace.Address, amount)
	require.NoError(t, err)
}

func (f *fixture) bid(bidder address.Address, price uint64) (*auctioneer.BuyResult, error) {
	return f.auctioneer.Buy(ctx, bidder, auctioneer.BuyArgs{
		Marketplace:  f.marketplace.Address,
		TokenAccount: f.token.Address,
		Price:        price,
		Quantity:     1,
	})
}

func (f *fixture) balance(t *testing.T, addr address.Address) uint64 {
	account, err := f.auctionHouse.GetNativeAccount(ctx, addr)
	require.NoError(t, err)
	return account.Balance
}
