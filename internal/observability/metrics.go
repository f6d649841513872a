package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ledgerOpsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fitledger",
		Subsystem: "ledger",
		Name:      "operations_total",
		Help:      "Count of ledger mutations by operation.",
	}, []string{"op"})
	persistGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fitledger",
		Subsystem: "persistence",
		Name:      "last_write_timestamp_seconds",
		Help:      "Unix timestamp of the most recent successful write-through.",
	})
	persistFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitledger",
		Subsystem: "persistence",
		Name:      "write_failures_total",
		Help:      "Count of failed write-throughs. In-memory state stays authoritative.",
	})
)

func init() {
	prometheus.MustRegister(ledgerOpsCounter, persistGauge, persistFailures)
}

// RecordOp counts one ledger mutation.
func RecordOp(op string) {
	ledgerOpsCounter.WithLabelValues(op).Inc()
}

// RecordPersisted updates the write-through watermark gauge.
func RecordPersisted(ts time.Time) {
	if ts.IsZero() {
		return
	}
	persistGauge.Set(float64(ts.Unix()))
}

// RecordPersistFailure counts one failed write-through.
func RecordPersistFailure() {
	persistFailures.Inc()
}
