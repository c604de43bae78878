package dbbadger_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/internal/core/ports"
	dbbadger "github.com/tdex-network/auction-house/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/auction-house/pkg/address"
)

func TestRepoManager(t *testing.T) {
	t.Run("MarketplaceRepository", testMarketplaceRepository())
	t.Run("TradeStateRepository", testTradeStateRepository())
	t.Run("EscrowRepository", testEscrowRepository())
	t.Run("AssetRepository", testAssetRepository())
	t.Run("RunTransactionRollback", testRunTransactionRollback())
	t.Run("NestedTransaction", testNestedTransaction())
	t.Run("RequestNonce", testRequestNonce())
	t.Run("Journal", testJournal())
}

func newRepoManager(t *testing.T) ports.RepoManager {
	repoManager, err := dbbadger.NewRepoManager("", nil)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)
	return repoManager
}

func randomAddress(t *testing.T) address.Address {
	kp, err := address.NewKeypair()
	require.NoError(t, err)
	return kp.Address()
}

func testMarketplaceRepository() func(*testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo := newRepoManager(t).MarketplaceRepository()

		marketplace := &domain.Marketplace{
			Address:        randomAddress(t),
			Authority:      randomAddress(t),
			FeeBasisPoints: 100,
		}
		require.NoError(t, repo.AddMarketplace(ctx, marketplace))
		require.ErrorIs(t, repo.AddMarketplace(ctx, marketplace), domain.ErrAlreadyExists)

		delegate := randomAddress(t)
		err := repo.UpdateMarketplace(
			ctx, marketplace.Address,
			func(m *domain.Marketplace) (*domain.Marketplace, error) {
				m.SetAuctioneer(delegate)
				return m, nil
			},
		)
		require.NoError(t, err)

		fetched, err := repo.GetMarketplace(ctx, marketplace.Address)
		require.NoError(t, err)
		require.True(t, fetched.IsDelegatedTo(delegate))
		require.Equal(t, marketplace.Authority, fetched.Authority)

		_, err = repo.GetMarketplace(ctx, randomAddress(t))
		require.ErrorIs(t, err, domain.ErrNotFound)

		all, err := repo.GetAllMarketplaces(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
	}
}

func testTradeStateRepository() func(*testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo := newRepoManager(t).TradeStateRepository()

		marketplace := randomAddress(t)
		tradeState := &domain.TradeState{
			Address:     randomAddress(t),
			Kind:        domain.TradeStateBuy,
			Owner:       randomAddress(t),
			Marketplace: marketplace,
			Price:       address.PriceSeed{Amount: 10},
			Quantity:    1,
			Status:      domain.StatusActive,
		}
		require.NoError(t, repo.AddTradeState(ctx, tradeState))
		require.ErrorIs(t, repo.AddTradeState(ctx, tradeState), domain.ErrAlreadyExists)

		active, err := repo.GetActiveTradeStatesByMarketplace(ctx, marketplace)
		require.NoError(t, err)
		require.Len(t, active, 1)

		err = repo.UpdateTradeState(
			ctx, tradeState.Address,
			func(ts *domain.TradeState) (*domain.TradeState, error) {
				return ts, ts.Retire()
			},
		)
		require.NoError(t, err)

		active, err = repo.GetActiveTradeStatesByMarketplace(ctx, marketplace)
		require.NoError(t, err)
		require.Empty(t, active)

		// a retired trade state can be re-created at the same address
		require.NoError(t, repo.AddTradeState(ctx, tradeState))
		fetched, err := repo.GetTradeState(ctx, tradeState.Address)
		require.NoError(t, err)
		require.True(t, fetched.IsActive())
		require.Equal(t, uint64(10), fetched.Price.Value())
	}
}

func testEscrowRepository() func(*testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo := newRepoManager(t).EscrowRepository()

		wallet := randomAddress(t)
		escrow := domain.NewEscrowAccount(randomAddress(t), 254, randomAddress(t), wallet)

		deposit := func(amount uint64) error {
			return repo.UpsertEscrow(
				ctx, escrow,
				func(e *domain.EscrowAccount) (*domain.EscrowAccount, error) {
					return e, e.Deposit(amount)
				},
			)
		}
		require.NoError(t, deposit(5))
		require.NoError(t, deposit(2))

		fetched, err := repo.GetEscrow(ctx, escrow.Address)
		require.NoError(t, err)
		require.Equal(t, uint64(7), fetched.Balance)

		escrows, err := repo.GetEscrowsByWallet(ctx, wallet)
		require.NoError(t, err)
		require.Len(t, escrows, 1)

		require.NoError(t, repo.DeleteEscrow(ctx, escrow.Address))
		_, err = repo.GetEscrow(ctx, escrow.Address)
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.ErrorIs(t, repo.DeleteEscrow(ctx, escrow.Address), domain.ErrNotFound)
	}
}

func testAssetRepository() func(*testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repo := newRepoManager(t).AssetRepository()

		addr := randomAddress(t)
		account, err := repo.GetNativeAccount(ctx, addr)
		require.NoError(t, err)
		require.Zero(t, account.Balance)

		err = repo.UpdateNativeAccount(
			ctx, addr,
			func(a *domain.NativeAccount) (*domain.NativeAccount, error) {
				return a, a.Credit(42)
			},
		)
		require.NoError(t, err)

		account, err = repo.GetNativeAccount(ctx, addr)
		require.NoError(t, err)
		require.Equal(t, uint64(42), account.Balance)

		mint := randomAddress(t)
		metadata := &domain.AssetMetadata{
			Address: randomAddress(t),
			Mint:    mint,
			Name:    "Test",
			Creators: []domain.RoyaltyShare{
				{Address: randomAddress(t), Share: 100, Verified: true},
			},
		}
		require.NoError(t, repo.AddMetadata(ctx, metadata))
		require.ErrorIs(t, repo.AddMetadata(ctx, metadata), domain.ErrAlreadyExists)

		fetched, err := repo.GetMetadataByMint(ctx, mint)
		require.NoError(t, err)
		require.Equal(t, metadata.Creators, fetched.Creators)
	}
}

func testRunTransactionRollback() func(*testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repoManager := newRepoManager(t)
		addr := randomAddress(t)

		_, err := repoManager.RunTransaction(
			ctx, false,
			func(ctx context.Context) (interface{}, error) {
				if err := repoManager.AssetRepository().UpdateNativeAccount(
					ctx, addr,
					func(a *domain.NativeAccount) (*domain.NativeAccount, error) {
						return a, a.Credit(100)
					},
				); err != nil {
					return nil, err
				}
				return nil, fmt.Errorf("failing after write")
			},
		)
		require.Error(t, err)

		account, err := repoManager.AssetRepository().GetNativeAccount(ctx, addr)
		require.NoError(t, err)
		require.Zero(t, account.Balance)

		head, err := repoManager.Journal().Head(ctx)
		require.NoError(t, err)
		require.Zero(t, head)
	}
}

func testRequestNonce() func(*testing.T) {
	return func(t *testing.T) {
		repoManager := newRepoManager(t)
		addr := randomAddress(t)

		credit := func(ctx context.Context) (interface{}, error) {
			return nil, repoManager.AssetRepository().UpdateNativeAccount(
				ctx, addr,
				func(a *domain.NativeAccount) (*domain.NativeAccount, error) {
					return a, a.Credit(1)
				},
			)
		}
		nested := func(ctx context.Context) (interface{}, error) {
			if _, err := credit(ctx); err != nil {
				return nil, err
			}
			return repoManager.RunTransaction(ctx, false, credit)
		}
		fail := func(ctx context.Context) (interface{}, error) {
			if _, err := credit(ctx); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("failing after write")
		}
		withNonce := func(signer address.Address, nonce string, ttl time.Duration) context.Context {
			return ports.WithRequestNonce(context.Background(), ports.RequestNonce{
				Signer: signer,
				Nonce:  nonce,
				Expiry: time.Now().Add(ttl),
			})
		}
		balance := func() uint64 {
			account, err := repoManager.AssetRepository().GetNativeAccount(
				context.Background(), addr,
			)
			require.NoError(t, err)
			return account.Balance
		}

		signer := randomAddress(t)
		ctx := withNonce(signer, "1", time.Minute)

		// Nested calls join the outer transaction and consume the nonce once.
		_, err := repoManager.RunTransaction(ctx, false, nested)
		require.NoError(t, err)
		require.Equal(t, uint64(2), balance())

		_, err = repoManager.RunTransaction(ctx, false, credit)
		require.ErrorIs(t, err, domain.ErrNonceUsed)
		require.Equal(t, uint64(2), balance())

		// Read-only transactions leave nonces alone.
		_, err = repoManager.RunTransaction(
			withNonce(signer, "2", time.Minute), true,
			func(context.Context) (interface{}, error) { return nil, nil },
		)
		require.NoError(t, err)

		// A failed operation does not consume its nonce.
		_, err = repoManager.RunTransaction(withNonce(signer, "2", time.Minute), false, fail)
		require.Error(t, err)
		require.Equal(t, uint64(2), balance())
		_, err = repoManager.RunTransaction(withNonce(signer, "2", time.Minute), false, credit)
		require.NoError(t, err)
		require.Equal(t, uint64(3), balance())

		// Nonces are scoped by signer.
		_, err = repoManager.RunTransaction(
			withNonce(randomAddress(t), "1", time.Minute), false, credit,
		)
		require.NoError(t, err)
		require.Equal(t, uint64(4), balance())

		_, err = repoManager.RunTransaction(withNonce(signer, "3", -time.Second), false, credit)
		require.ErrorIs(t, err, domain.ErrRequestExpired)
		require.Equal(t, uint64(4), balance())
	}
}

func testNestedTransaction() func(*testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repoManager := newRepoManager(t)
		addr := randomAddress(t)

		credit := func(ctx context.Context) (interface{}, error) {
			return nil, repoManager.AssetRepository().UpdateNativeAccount(
				ctx, addr,
				func(a *domain.NativeAccount) (*domain.NativeAccount, error) {
					return a, a.Credit(1)
				},
			)
		}

		_, err := repoManager.RunTransaction(
			ctx, false,
			func(ctx context.Context) (interface{}, error) {
				if _, err := repoManager.RunTransaction(ctx, false, credit); err != nil {
					return nil, err
				}
				return repoManager.RunTransaction(ctx, false, credit)
			},
		)
		require.NoError(t, err)

		account, err := repoManager.AssetRepository().GetNativeAccount(ctx, addr)
		require.NoError(t, err)
		require.Equal(t, uint64(2), account.Balance)
	}
}

func testJournal() func(*testing.T) {
	return func(t *testing.T) {
		ctx := context.Background()
		repoManager := newRepoManager(t)
		journal := repoManager.Journal()
		signer := randomAddress(t)

		for i := 0; i < 12; i++ {
			_, err := repoManager.RunTransaction(
				ctx, false,
				func(ctx context.Context) (interface{}, error) {
					entry := domain.NewJournalEntry("deposit", signer, false, int64(i))
					return nil, journal.Append(ctx, entry)
				},
			)
			require.NoError(t, err)
		}

		head, err := journal.Head(ctx)
		require.NoError(t, err)
		require.Equal(t, uint64(12), head)

		entries, err := journal.List(ctx, 10, 0)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		require.Equal(t, uint64(10), entries[0].Sequence)
		require.Equal(t, uint64(12), entries[2].Sequence)

		entries, err = journal.List(ctx, 1, 5)
		require.NoError(t, err)
		require.Len(t, entries, 5)
		for i, e := range entries {
			require.Equal(t, uint64(i+1), e.Sequence)
			require.Equal(t, signer, e.Signer)
		}
	}
}
