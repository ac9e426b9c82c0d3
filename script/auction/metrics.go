package auction

import (
	"math/big"

	"github.com/meterio/meter-auction/meter"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	operationsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "auction",
		Name:      "operations_total",
		Help:      "Auction operations by result.",
	}, []string{"op", "result"})

	poolGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "auction",
		Name:      "pool_amount",
		Help:      "Project asset pooled for distribution.",
	})

	depositsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "auction",
		Name:      "total_deposits",
		Help:      "Paired asset received.",
	})

	activeGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "auction",
		Name:      "active",
		Help:      "1 while the deposit window is open.",
	})
)

// Collectors returns the metrics of the module for registration by the host.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{operationsCounter, poolGauge, depositsGauge, activeGauge}
}

func observe(op string, err error) {
	operationsCounter.WithLabelValues(op, ErrorCode(err)).Inc()
}

// PublishState publishes s. Values are approximate beyond float64 precision.
func PublishState(s *meter.AuctionState) {
	poolGauge.Set(toFloat(s.PoolAmount))
	depositsGauge.Set(toFloat(s.TotalDeposits))
	if s.Active {
		activeGauge.Set(1)
	} else {
		activeGauge.Set(0)
	}
}

func toFloat(v *big.Int) float64 {
	if v == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(v).Float64()
	return f
}
