package keeper

import (
	"math/big"
	"strconv"
	"sync"
	"time"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// AMMMetrics holds all Prometheus metrics for the amm module
type AMMMetrics struct {
	// Swap metrics
	SwapsTotal  *prometheus.CounterVec
	SwapVolume  *prometheus.CounterVec
	SwapLatency prometheus.Histogram

	// Liquidity metrics
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolReserves     *prometheus.GaugeVec
	PoolShares       *prometheus.GaugeVec

	// Pool metrics
	PoolsCreated prometheus.Counter

	InvariantViolations *prometheus.CounterVec
}

var (
	ammMetricsOnce sync.Once
	ammMetrics     *AMMMetrics
)

// NewAMMMetrics creates and registers amm metrics (singleton pattern)
func NewAMMMetrics() *AMMMetrics {
	ammMetricsOnce.Do(func() {
		ammMetrics = &AMMMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "swaps_total",
					Help:      "Total number of swaps executed",
				},
				[]string{"pool_id", "asset_in", "asset_out", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"pool_id", "asset"},
			),
			SwapLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "swap_latency_seconds",
					Help:      "Swap execution latency",
					Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 12),
				},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity deposited in base units",
				},
				[]string{"pool_id", "asset"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity withdrawn in base units",
				},
				[]string{"pool_id", "asset"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "pool_reserves",
					Help:      "Current pool reserves",
				},
				[]string{"pool_id", "asset"},
			),
			PoolShares: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "pool_total_shares",
					Help:      "Outstanding liquidity shares per pool",
				},
				[]string{"pool_id"},
			),
			PoolsCreated: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "pools_created_total",
					Help:      "Total number of pools created",
				},
			),
			InvariantViolations: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "invariant_violations_total",
					Help:      "Pool transitions rejected by invariant checks",
				},
				[]string{"transition"},
			),
		}
	})
	return ammMetrics
}

// observePool refreshes the reserve and share gauges of a pool.
func (m *AMMMetrics) observePool(pool types.Pool) {
	id := poolLabel(pool.Id)
	m.PoolReserves.WithLabelValues(id, pool.AssetA).Set(toFloat(pool.ReserveA))
	m.PoolReserves.WithLabelValues(id, pool.AssetB).Set(toFloat(pool.ReserveB))
	m.PoolShares.WithLabelValues(id).Set(toFloat(pool.TotalShares))
}

func (m *AMMMetrics) observeSwap(poolID uint64, assetIn, assetOut string, amountIn math.Int, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "failed"
	}
	m.SwapLatency.Observe(time.Since(start).Seconds())
	m.SwapsTotal.WithLabelValues(poolLabel(poolID), assetIn, assetOut, status).Inc()
	if err == nil {
		m.SwapVolume.WithLabelValues(poolLabel(poolID), assetIn).Add(toFloat(amountIn))
	}
}

func poolLabel(poolID uint64) string {
	return strconv.FormatUint(poolID, 10)
}

// toFloat converts an amount for gauges; values wider than int64 are common.
func toFloat(i math.Int) float64 {
	if i.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(i.BigInt()).Float64()
	return f
}
