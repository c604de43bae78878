package auctionhouse_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/auction-house/internal/core/application/auctionhouse"
	"github.com/tdex-network/auction-house/internal/core/domain"
	dbbadger "github.com/tdex-network/auction-house/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/auction-house/pkg/address"
)

const (
	sol         = uint64(1000000000)
	minReserve  = uint64(890880)
	feeBps      = uint16(100)
	startOfTime = int64(1650000000)
)

var (
	ctx        = context.Background()
	namespaces = address.Namespaces{
		AuctionHouse: address.MustFromString("hausS13jsjafwWwGqZTUQRmWyvyxn9EQpqMwV1PBBmk"),
		Auctioneer:   address.MustFromString("neer8g6yJq2mQM6KbnViEDAD4gr3gRZyMMf4F2p3MEh"),
		Token:        address.MustFromString("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"),
		Metadata:     address.MustFromString("metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s"),
	}
	nativeMint = address.MustFromString("So11111111111111111111111111111111111111112")
)

type testClock struct {
	lock sync.Mutex
	now  time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Unix(startOfTime, 0)}
}

func (c *testClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = c.now.Add(d)
}

func newTestService(t *testing.T) (auctionhouse.Service, *testClock) {
	repoManager, err := dbbadger.NewRepoManager("", nil)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)

	clock := newTestClock()
	svc, err := auctionhouse.NewService(
		repoManager, address.NewDeriver(namespaces, 0), clock, minReserve,
	)
	require.NoError(t, err)
	return svc, clock
}

func randomAddress(t require.TestingT) address.Address {
	kp, err := address.NewKeypair()
	require.NoError(t, err)
	return kp.Address()
}

type fixture struct {
	svc         auctionhouse.Service
	clock       *testClock
	authority   address.Address
	marketplace *domain.Marketplace
	seller      address.Address
	creator     address.Address
	token       *domain.TokenAccount
}

// newFixture creates a 1% fee marketplace and an asset owned by the seller
// whose royalties are split evenly between the creator and the seller.
func newFixture(t *testing.T) *fixture {
	svc, clock := newTestService(t)

	authority := randomAddress(t)
	marketplace, err := svc.CreateMarketplace(ctx, authority, domain.MarketplaceArgs{
		TreasuryMint:                  nativeMint,
		FeeWithdrawalDestination:      authority,
		TreasuryWithdrawalDestination: authority,
		FeeBasisPoints:                feeBps,
	})
	require.NoError(t, err)

	seller := randomAddress(t)
	creator := randomAddress(t)
	token, err := svc.ImportAsset(ctx, seller, auctionhouse.ImportAssetArgs{
		Mint:                 randomAddress(t),
		Name:                 "Test",
		Symbol:               "TST",
		URI:                  "https://example.com/test.json",
		SellerFeeBasisPoints: 500,
		Creators: []domain.RoyaltyShare{
			{Address: creator, Share: 50, Verified: true},
			{Address: seller, Share: 50},
		},
		Supply: 1,
	})
	require.NoError(t, err)

	return &fixture{svc, clock, authority, marketplace, seller, creator, token}
}

func (f *fixture) fund(t *testing.T, addr address.Address, amount uint64) {
	_, err := f.svc.Fund(ctx, addr, amount)
	require.NoError(t, err)
}

func (f *fixture) deposit(t *testing.T, bidder address.Address, amount uint64) {
	f.fund(t, bidder, amount)
	_, err := f.svc.Deposit(ctx, bidder, f.marketplace.Address, amount, nil)
	require.NoError(t, err)
}

func (f *fixture) balance(t *testing.T, addr address.Address) uint64 {
	account, err := f.svc.GetNativeAccount(ctx, addr)
	require.NoError(t, err)
	return account.Balance
}

func (f *fixture) escrowBalance(t *testing.T, bidder address.Address) uint64 {
	escrow, err := f.svc.GetEscrow(ctx, f.marketplace.Address, bidder)
	if err == domain.ErrNotFound {
		return 0
	}
	require.NoError(t, err)
	return escrow.Balance
}

func (f *fixture) sell(t *testing.T, price uint64) *auctionhouse.SellResult {
	p, err := address.FixedPrice(price)
	require.NoError(t, err)
	res, err := f.svc.Sell(ctx, f.seller, auctionhouse.SellArgs{
		Marketplace:  f.marketplace.Address,
		TokenAccount: f.token.Address,
		Price:        p,
		Quantity:     1,
	}, nil)
	require.NoError(t, err)
	return res
}

func (f *fixture) buy(t *testing.T, bidder address.Address, price uint64) *domain.TradeState {
	buy, err := f.svc.Buy(ctx, bidder, auctionhouse.BuyArgs{
		Marketplace:  f.marketplace.Address,
		TokenAccount: f.token.Address,
		Price:        price,
		Quantity:     1,
	}, nil)
	require.NoError(t, err)
	return buy
}
