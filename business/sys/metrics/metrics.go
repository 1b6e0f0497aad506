// Package metrics constructs the metrics the application will track.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "powledger_requests_total",
		Help: "The total number of http requests handled",
	})

	errs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "powledger_errors_total",
		Help: "The total number of http requests that returned an error",
	})

	panics = promauto.NewCounter(prometheus.CounterOpts{
		Name: "powledger_panics_total",
		Help: "The total number of panics recovered while handling requests",
	})

	mining = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "powledger_mine_seconds",
		Help:    "Duration of mining operations by outcome",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"outcome"})
)

// AddRequests increments the request count by 1.
func AddRequests() {
	requests.Inc()
}

// AddErrors increments the errors count by 1.
func AddErrors() {
	errs.Inc()
}

// AddPanics increments the panics count by 1.
func AddPanics() {
	panics.Inc()
}

// ObserveMine records how long a mining operation ran.
func ObserveMine(d time.Duration, err error) {
	outcome := "mined"
	if err != nil {
		outcome = "failed"
	}
	mining.WithLabelValues(outcome).Observe(d.Seconds())
}

// =============================================================================

// Chain is the behavior needed to report on the ledger.
type Chain interface {
	Height() int
	PendingCount() int
}

// RegisterChain registers gauges that read the chain height and pending
// pool size every time they are collected.
func RegisterChain(reg prometheus.Registerer, chain Chain) error {
	height := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "powledger_chain_height",
		Help: "Number of blocks in the chain including genesis",
	}, func() float64 { return float64(chain.Height()) })

	pending := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "powledger_pending_transactions",
		Help: "Number of transactions waiting to be mined",
	}, func() float64 { return float64(chain.PendingCount()) })

	for _, c := range []prometheus.Collector{height, pending} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}

	return nil
}
