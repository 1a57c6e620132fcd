package mempool

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/forkoooor/skipper/utils/metrics"
)

// DefaultPollInterval is the delay between mempool poll attempts.
const DefaultPollInterval = time.Second

// TxLister is the transport the watcher polls for pending transactions.
type TxLister interface {
	UnconfirmedTxs(ctx context.Context) ([]string, error)
}

// Watcher polls the node's mempool and surfaces newly observed pending
// transactions. Transient transport failures are logged and retried at the
// same interval; the loop only stops on context cancellation. Opportunities
// are time-sensitive and outages are expected to be short, so liveness wins
// over fast failure: there is no retry cap and no backoff escalation.
type Watcher struct {
	client   TxLister
	cache    *SeenCache
	interval time.Duration
	limiter  *rate.Limiter
	logger   *zap.Logger
	metrics  *metrics.BotMetrics
}

// NewWatcher creates a watcher polling client every interval. The metrics
// argument may be nil.
func NewWatcher(client TxLister, interval time.Duration, logger *zap.Logger, m *metrics.BotMetrics) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Watcher{
		client:   client,
		cache:    NewSeenCache(DefaultSeenThreshold),
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		logger:   logger,
		metrics:  m,
	}
}

// PollForNewSwaps blocks until at least one previously unseen pending
// transaction shows up, returning the batch of raw payloads. The only error
// it returns is the context's.
func (w *Watcher) PollForNewSwaps(ctx context.Context) ([]string, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(w.interval):
		}

		if err := w.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		start := time.Now()
		txs, err := w.client.UnconfirmedTxs(ctx)
		w.observePoll(time.Since(start))

		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Connectivity and decode failures alike are transient here.
			w.logger.Warn("Mempool poll failed, retrying", zap.Error(err))
			if w.metrics != nil {
				w.metrics.TransientError.Inc()
			}
			continue
		}

		newTxs := w.filterSeen(txs)
		if len(newTxs) > 0 {
			w.logger.Debug("New pending transactions",
				zap.Int("new", len(newTxs)),
				zap.Int("pending", len(txs)))
			return newTxs, nil
		}
	}
}

func (w *Watcher) filterSeen(txs []string) []string {
	if w.metrics != nil {
		w.metrics.TxsSeen.Add(float64(len(txs)))
	}

	var newTxs []string
	for _, tx := range txs {
		if w.cache.Add(tx) {
			newTxs = append(newTxs, tx)
		}
	}

	if w.metrics != nil {
		w.metrics.NewTxs.Add(float64(len(newTxs)))
	}
	return newTxs
}

func (w *Watcher) observePoll(elapsed time.Duration) {
	if w.metrics != nil {
		w.metrics.Polls.Inc()
		w.metrics.PollLatency.Observe(elapsed.Seconds())
	}
}
