package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/auction-house/config"
	"github.com/tdex-network/auction-house/internal/core/application/auctioneer"
	"github.com/tdex-network/auction-house/internal/core/application/auctionhouse"
	"github.com/tdex-network/auction-house/internal/core/ports"
	dbbadger "github.com/tdex-network/auction-house/internal/infrastructure/storage/db/badger"
	httpinterface "github.com/tdex-network/auction-house/internal/interfaces/http"
	"github.com/tdex-network/auction-house/pkg/address"
	"github.com/tdex-network/auction-house/pkg/stats"
)

const metricsDumpFile = "metrics.txt"

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if config.GetBool(config.EnableProfilerKey) {
		interval := time.Duration(config.GetInt(config.StatsIntervalKey)) * time.Second
		dumpFile := filepath.Join(
			config.GetDatadir(), config.ProfilerLocation, metricsDumpFile,
		)
		stats.EnableMemoryStatistics(ctx, interval, dumpFile)
	}

	repoManager, err := dbbadger.NewRepoManager(
		config.GetDbDir(), dbbadger.NewLogger(),
	)
	if err != nil {
		log.WithError(err).Panic("error while opening ledger")
	}
	defer repoManager.Close()

	deriver := address.NewDeriver(
		config.GetNamespaces(), config.GetDuration(config.DerivationCacheTTLKey),
	)
	clock := ports.SystemClock{}

	auctionHouseSvc, err := auctionhouse.NewService(
		repoManager, deriver, clock, config.GetUint64(config.MinAccountReserveKey),
	)
	if err != nil {
		log.WithError(err).Panic("error while setting up auction house service")
	}
	auctioneerSvc, err := auctioneer.NewService(repoManager, auctionHouseSvc, clock)
	if err != nil {
		log.WithError(err).Panic("error while setting up auctioneer service")
	}

	enableFaucet := config.GetBool(config.EnableFaucetKey)
	if enableFaucet {
		log.Warn("faucet is enabled, anyone can mint settlement currency")
	}

	svc, err := httpinterface.NewService(httpinterface.ServiceOpts{
		Address:         fmt.Sprintf(":%d", config.GetInt(config.HTTPListeningPortKey)),
		AuctionHouseSvc: auctionHouseSvc,
		AuctioneerSvc:   auctioneerSvc,
		OpsPerSecond:    config.GetInt(config.OpsPerSecondKey),
		EnableFaucet:    enableFaucet,
	})
	if err != nil {
		log.WithError(err).Panic("error while setting up http interface")
	}

	log.Debug("starting daemon")

	if err := svc.Start(); err != nil {
		log.WithError(err).Panic("error while starting http interface")
	}
	defer svc.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Debug("exiting")
}
