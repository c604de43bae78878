package stats

import (
	"bufio"
	"context"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const (
	BYTE = 1 << (10 * iota)
	KILOBYTE
	MEGABYTE
	GIGABYTE
	TERABYTE
)

var (
	operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "auctionhouse",
			Name:      "operations_total",
			Help:      "Number of operations submitted, by operation and result.",
		},
		[]string{"operation", "result"},
	)
	operationLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "auctionhouse",
			Name:      "operation_duration_seconds",
			Help:      "Time spent applying an operation to the ledger.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	settledVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "auctionhouse",
			Name:      "settled_volume_total",
			Help:      "Settlement currency base units exchanged in sales, by marketplace.",
		},
		[]string{"marketplace"},
	)
	feesCollected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "auctionhouse",
			Name:      "fees_collected_total",
			Help:      "Fees credited to marketplace fee accounts, by marketplace.",
		},
		[]string{"marketplace"},
	)
)

func init() {
	prometheus.MustRegister(operations, operationLatency, settledVolume, feesCollected)
}

// ObserveOperation records the outcome and duration of an operation.
func ObserveOperation(op string, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "rejected"
	}
	operations.WithLabelValues(op, result).Inc()
	operationLatency.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveSale records the volume and fee of a settlement.
func ObserveSale(marketplace string, price, fee uint64) {
	settledVolume.WithLabelValues(marketplace).Add(float64(price))
	feesCollected.WithLabelValues(marketplace).Add(float64(fee))
}

// EnableMemoryStatistics enables go routine that periodically prints memory
// usage of the go process.
func EnableMemoryStatistics(ctx context.Context, interval time.Duration, dumpFile string) {
	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				PrintMemoryStatistics()
				PrintNumOfRoutines()
			case <-ctx.Done():
				if err := DumpPrometheusDefaults(dumpFile); err != nil {
					log.WithError(err).Warn("failed to dump prometheus metrics")
				}
				return
			}
		}
	}()
}

// toGigabytes returns given memory in bytes to gigabytes.
func toGigabytes(bytes uint64) float64 {
	return float64(bytes) / GIGABYTE
}

// PrintMemoryStatistics prints memory statistics using go runtime library.
func PrintMemoryStatistics() {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	log.Infof(
		"Total allocated: %.3fGB, Heap allocated: %.3fGB, "+
			"Allocated objects count: %v, Freed objects count: %v",
		toGigabytes(memStats.TotalAlloc),
		toGigabytes(memStats.HeapAlloc),
		memStats.Mallocs,
		memStats.Frees,
	)
}

// DumpPrometheusDefaults appends the gathered Prometheus metrics to a file.
func DumpPrometheusDefaults(path string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	metricFamily, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	for _, v := range metricFamily {
		if _, err := writer.WriteString(v.String() + "\n"); err != nil {
			return err
		}
	}

	return writer.Flush()
}

// PrintNumOfRoutines prints number of go routines currently running
func PrintNumOfRoutines() {
	log.Infof("Num of go routines: %v", runtime.NumGoroutine())
}
