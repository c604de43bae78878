package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tdex-network/auction-house/pkg/address"
)

const (
	// DatadirKey is the local data directory to store the ledger of the daemon
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// HTTPListeningPortKey is the port where the HTTP interface will listen on
	HTTPListeningPortKey = "HTTP_LISTENING_PORT"
	// AuctionHouseProgramIDKey is the namespace of marketplace records
	AuctionHouseProgramIDKey = "AUCTION_HOUSE_PROGRAM_ID"
	// AuctioneerProgramIDKey is the namespace of the timed auction strategy
	AuctioneerProgramIDKey = "AUCTIONEER_PROGRAM_ID"
	// TokenProgramIDKey is the namespace of associated token accounts
	TokenProgramIDKey = "TOKEN_PROGRAM_ID"
	// MetadataProgramIDKey is the namespace of imported asset metadata
	MetadataProgramIDKey = "METADATA_PROGRAM_ID"
	// MinAccountReserveKey is the amount that withdrawals from fee and treasury
	// accounts always leave untouched
	MinAccountReserveKey = "MIN_ACCOUNT_RESERVE"
	// OpsPerSecondKey is the max number of write operations accepted per second
	OpsPerSecondKey = "OPS_PER_SECOND"
	// DerivationCacheTTLKey is how long derived addresses are memoized, 0
	// disables the cache
	DerivationCacheTTLKey = "DERIVATION_CACHE_TTL"
	// EnableFaucetKey enables the endpoint that credits accounts out of thin
	// air. Never enable it outside of development
	EnableFaucetKey = "ENABLE_FAUCET"
	// DbInMemoryKey keeps the ledger in memory only
	DbInMemoryKey = "DB_IN_MEMORY"
	// EnableProfilerKey enables the profiler that can be used to investigate performance issues
	EnableProfilerKey = "ENABLE_PROFILER"
	// StatsIntervalKey defines interval for printing basic statistics
	StatsIntervalKey = "STATS_INTERVAL"

	DbLocation       = "db"
	ProfilerLocation = "stats"

	MaxOpsPerSecond = 10000
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("auctionhoused", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("AUCTIONHOUSE")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(HTTPListeningPortKey, 9090)
	vip.SetDefault(AuctionHouseProgramIDKey, "hausS13jsjafwWwGqZTUQRmWyvyxn9EQpqMwV1PBBmk")
	vip.SetDefault(AuctioneerProgramIDKey, "neer8g6yJq2mQM6KbnViEDAD4gr3gRZyMMf4F2p3MEh")
	vip.SetDefault(TokenProgramIDKey, "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	vip.SetDefault(MetadataProgramIDKey, "metaqbxxUerdq28cj1RbAWkYQm3ybzjb6a8bt518x1s")
	vip.SetDefault(MinAccountReserveKey, 890880)
	vip.SetDefault(OpsPerSecondKey, 50)
	vip.SetDefault(DerivationCacheTTLKey, 10*time.Minute)
	vip.SetDefault(EnableFaucetKey, false)
	vip.SetDefault(DbInMemoryKey, false)
	vip.SetDefault(EnableProfilerKey, false)
	vip.SetDefault(StatsIntervalKey, 600)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetUint64 ...
func GetUint64(key string) uint64 {
	return vip.GetUint64(key)
}

//GetDuration ...
func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetDbDir returns the directory of the ledger, empty if in memory.
func GetDbDir() string {
	if GetBool(DbInMemoryKey) {
		return ""
	}
	return filepath.Join(GetDatadir(), DbLocation)
}

// GetNamespaces returns the program ids under which records are derived.
func GetNamespaces() address.Namespaces {
	// Already validated.
	return address.Namespaces{
		AuctionHouse: address.MustFromString(GetString(AuctionHouseProgramIDKey)),
		Auctioneer:   address.MustFromString(GetString(AuctioneerProgramIDKey)),
		Token:        address.MustFromString(GetString(TokenProgramIDKey)),
		Metadata:     address.MustFromString(GetString(MetadataProgramIDKey)),
	}
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	for _, key := range []string{
		AuctionHouseProgramIDKey, AuctioneerProgramIDKey,
		TokenProgramIDKey, MetadataProgramIDKey,
	} {
		if _, err := address.FromString(GetString(key)); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}

	if ops := GetInt(OpsPerSecondKey); ops <= 0 || ops > MaxOpsPerSecond {
		return fmt.Errorf(
			"operations per second must be in range [1, %d]", MaxOpsPerSecond,
		)
	}

	if GetDuration(DerivationCacheTTLKey) < 0 {
		return fmt.Errorf("derivation cache ttl must not be negative")
	}

	if GetInt(StatsIntervalKey) < 0 {
		return fmt.Errorf("stats interval must not be negative")
	}
	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if !GetBool(DbInMemoryKey) {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
			return err
		}
	}

	profilerEnabled := GetBool(EnableProfilerKey)
	if profilerEnabled {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, ProfilerLocation)); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
