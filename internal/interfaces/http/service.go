package httpinterface

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/auction-house/internal/core/application/auctioneer"
	"github.com/tdex-network/auction-house/internal/core/application/auctionhouse"
	interfaces "github.com/tdex-network/auction-house/internal/interfaces"
)

const shutdownTimeout = 5 * time.Second

type ServiceOpts struct {
	Address         string
	AuctionHouseSvc auctionhouse.Service
	AuctioneerSvc   auctioneer.Service
	OpsPerSecond    int
	EnableFaucet    bool
}

func (o ServiceOpts) validate() error {
	if o.AuctionHouseSvc == nil {
		return fmt.Errorf("auction house app service must not be null")
	}
	if o.AuctioneerSvc == nil {
		return fmt.Errorf("auctioneer app service must not be null")
	}
	if o.OpsPerSecond <= 0 {
		return fmt.Errorf("ops per second must be a positive number")
	}
	return nil
}

type service struct {
	opts   ServiceOpts
	server *http.Server
}

func NewService(opts ServiceOpts) (interfaces.Service, error) {
	if opts.Address == "" {
		return nil, fmt.Errorf("missing listening address")
	}
	handler, err := NewHandler(opts)
	if err != nil {
		return nil, err
	}

	return &service{
		opts:   opts,
		server: &http.Server{Addr: opts.Address, Handler: handler},
	}, nil
}

func (s *service) Start() error {
	lis, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}

	go func() {
		if err := s.server.Serve(lis); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("http interface stopped unexpectedly")
		}
	}()
	log.Infof("http interface listening on %s", s.opts.Address)
	return nil
}

func (s *service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("failed to gracefully stop http interface")
	}
	log.Debug("disabled http interface")
}

// NewHandler returns the router serving the protocol operations, the read
// endpoints and the metrics.
func NewHandler(opts ServiceOpts) (http.Handler, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid opts: %s", err)
	}

	h := &handler{
		auctionHouse: opts.AuctionHouseSvc,
		auctioneer:   opts.AuctioneerSvc,
		enableFaucet: opts.EnableFaucet,
	}

	r := mux.NewRouter()
	r.Use(requestLogger)
	r.HandleFunc("/health", h.health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	ops := v1.Methods("POST").Subrouter()
	ops.Use(rateLimiter(opts.OpsPerSecond))
	ops.HandleFunc("/marketplace/create", withSigner(h.createMarketplace))
	ops.HandleFunc("/marketplace/update", withSigner(h.updateMarketplace))
	ops.HandleFunc("/marketplace/withdrawfee", withSigner(h.withdrawFromFee))
	ops.HandleFunc("/marketplace/withdrawtreasury", withSigner(h.withdrawFromTreasury))
	ops.HandleFunc("/marketplace/delegate", withSigner(h.delegateAuctioneer))
	ops.HandleFunc("/escrow/deposit", withSigner(h.deposit))
	ops.HandleFunc("/escrow/withdraw", withSigner(h.withdraw))
	ops.HandleFunc("/escrow/close", withSigner(h.closeEscrow))
	ops.HandleFunc("/sell", withSigner(h.sell))
	ops.HandleFunc("/buy", withSigner(h.buy))
	ops.HandleFunc("/cancel", withSigner(h.cancel))
	ops.HandleFunc("/executesale", withSigner(h.executeSale))
	ops.HandleFunc("/asset/import", withSigner(h.importAsset))
	ops.HandleFunc("/auctioneer/authorize", withSigner(h.authorizeAuctioneer))
	ops.HandleFunc("/auctioneer/sell", withSigner(h.auctioneerSell))
	ops.HandleFunc("/auctioneer/buy", withSigner(h.auctioneerBuy))
	ops.HandleFunc("/auctioneer/cancel", withSigner(h.auctioneerCancel))
	ops.HandleFunc("/auctioneer/executesale", withSigner(h.auctioneerExecuteSale))
	ops.HandleFunc("/auctioneer/deposit", withSigner(h.auctioneerDeposit))
	ops.HandleFunc("/auctioneer/withdraw", withSigner(h.auctioneerWithdraw))
	ops.HandleFunc("/faucet", h.faucet)

	reads := v1.Methods("GET").Subrouter()
	reads.HandleFunc("/marketplaces", h.listMarketplaces)
	reads.HandleFunc("/marketplaces/{address}", h.getMarketplace)
	reads.HandleFunc("/marketplaces/{address}/auctioneer", h.getAuctioneerAuthority)
	reads.HandleFunc("/marketplaces/{address}/escrows/{wallet}", h.getEscrow)
	reads.HandleFunc("/marketplaces/{address}/tradestates", h.listActiveTradeStates)
	reads.HandleFunc("/marketplaces/{address}/listings", h.listActiveListings)
	reads.HandleFunc("/marketplaces/{address}/receipts", h.listReceipts)
	reads.HandleFunc("/tradestates/{address}", h.getTradeState)
	reads.HandleFunc("/listings/{address}", h.getListingConfig)
	reads.HandleFunc("/accounts/{address}", h.getNativeAccount)
	reads.HandleFunc("/tokens/{address}", h.getTokenAccount)
	reads.HandleFunc("/receipts/{id}", h.getReceipt)
	reads.HandleFunc("/journal", h.listJournal)
	reads.HandleFunc("/derive/marketplace", h.deriveMarketplace)
	reads.HandleFunc("/derive/escrow", h.deriveEscrow)
	reads.HandleFunc("/derive/tradestate", h.deriveTradeState)
	reads.HandleFunc("/derive/tokenaccount", h.deriveTokenAccount)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorReply{"page not found"})
	})

	return r, nil
}
