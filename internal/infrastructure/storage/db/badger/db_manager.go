package dbbadger

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/auction-house/internal/core/domain"
	"github.com/tdex-network/auction-house/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

const dbLocation = "ledger"

type txKey struct{}

type repoManager struct {
	store *badgerhold.Store
	// serializes read-write transactions
	lock sync.Mutex
	done chan struct{}

	marketplaceRepository   domain.MarketplaceRepository
	delegationRepository    domain.DelegationRepository
	escrowRepository        domain.EscrowRepository
	tradeStateRepository    domain.TradeStateRepository
	listingConfigRepository domain.ListingConfigRepository
	assetRepository         domain.AssetRepository
	receiptRepository       domain.ReceiptRepository
	journal                 ports.Journal
}

// NewRepoManager opens (or creates if not exists) the badger store in the
// given data dir. An empty dir opens an in-memory store.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, dbLocation)
	}

	done := make(chan struct{})
	store, err := createDb(dbDir, logger, done)
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	return &repoManager{
		store:                   store,
		done:                    done,
		marketplaceRepository:   NewMarketplaceRepositoryImpl(store),
		delegationRepository:    NewDelegationRepositoryImpl(store),
		escrowRepository:        NewEscrowRepositoryImpl(store),
		tradeStateRepository:    NewTradeStateRepositoryImpl(store),
		listingConfigRepository: NewListingConfigRepositoryImpl(store),
		assetRepository:         NewAssetRepositoryImpl(store),
		receiptRepository:       NewReceiptRepositoryImpl(store),
		journal:                 NewJournal(store),
	}, nil
}

func (r *repoManager) MarketplaceRepository() domain.MarketplaceRepository {
	return r.marketplaceRepository
}

func (r *repoManager) DelegationRepository() domain.DelegationRepository {
	return r.delegationRepository
}

func (r *repoManager) EscrowRepository() domain.EscrowRepository {
	return r.escrowRepository
}

func (r *repoManager) TradeStateRepository() domain.TradeStateRepository {
	return r.tradeStateRepository
}

func (r *repoManager) ListingConfigRepository() domain.ListingConfigRepository {
	return r.listingConfigRepository
}

func (r *repoManager) AssetRepository() domain.AssetRepository {
	return r.assetRepository
}

func (r *repoManager) ReceiptRepository() domain.ReceiptRepository {
	return r.receiptRepository
}

func (r *repoManager) Journal() ports.Journal {
	return r.journal
}

func (r *repoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	if txFromContext(ctx) != nil {
		return handler(ctx)
	}

	if !readOnly {
		r.lock.Lock()
		defer r.lock.Unlock()
	}

	tx := r.store.Badger().NewTransaction(!readOnly)
	defer tx.Discard()

	if nonce, ok := ports.RequestNonceFromContext(ctx); ok && !readOnly {
		if err := consumeNonce(tx, nonce, time.Now()); err != nil {
			return nil, err
		}
	}

	res, err := handler(context.WithValue(ctx, txKey{}, tx))
	if err != nil {
		return nil, err
	}

	if !readOnly {
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("committing transaction: %w", err)
		}
	}
	return res, nil
}

func (r *repoManager) Close() {
	close(r.done)
	if err := r.store.Close(); err != nil {
		log.WithError(err).Warn("error while closing ledger db")
	}
}

func txFromContext(ctx context.Context) *badger.Txn {
	if tx, ok := ctx.Value(txKey{}).(*badger.Txn); ok {
		return tx
	}
	return nil
}

func createDb(
	dbDir string, logger badger.Logger, done chan struct{},
) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(30 * time.Minute)

		go func() {
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if err := db.Badger().RunValueLogGC(0.5); err != nil &&
						err != badger.ErrNoRewrite {
						log.Error(err)
					}
				case <-done:
					return
				}
			}
		}()
	}

	return db, nil
}
