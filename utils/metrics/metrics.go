package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BotMetrics carries the bot's prometheus instruments. Pass a dedicated
// registry in tests to avoid duplicate registration.
type BotMetrics struct {
	Polls          prometheus.Counter
	TransientError prometheus.Counter
	TxsSeen        prometheus.Counter
	NewTxs         prometheus.Counter
	SwapsExtracted prometheus.Counter
	Opportunities  prometheus.Counter
	ProfitTotal    prometheus.Counter
	BalanceResets  prometheus.Counter
	PollLatency    prometheus.Histogram
}

// NewBotMetrics registers the bot's instruments under namespace.
func NewBotMetrics(namespace string, reg prometheus.Registerer) *BotMetrics {
	factory := promauto.With(reg)

	return &BotMetrics{
		Polls: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mempool_polls_total",
			Help:      "Total number of mempool poll attempts",
		}),
		TransientError: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transient_errors_total",
			Help:      "Total number of transient transport errors retried",
		}),
		TxsSeen: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mempool_txs_seen_total",
			Help:      "Total number of pending transactions observed",
		}),
		NewTxs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mempool_new_txs_total",
			Help:      "Total number of previously unseen pending transactions",
		}),
		SwapsExtracted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swaps_extracted_total",
			Help:      "Total number of swaps decoded against tracked pools",
		}),
		Opportunities: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "opportunities_total",
			Help:      "Total number of profitable cycles detected",
		}),
		ProfitTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expected_profit_total",
			Help:      "Cumulative simulated profit in the base denom",
		}),
		BalanceResets: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_resets_total",
			Help:      "Total number of ledger client reconnects",
		}),
		PollLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "mempool_poll_latency_seconds",
			Help:      "Latency of mempool poll requests",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
	}
}
