package mempool

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/forkoooor/skipper/chain"
	"github.com/forkoooor/skipper/utils/metrics"
)

// scriptedLister replays a fixed sequence of poll results.
type scriptedLister struct {
	calls   int
	results [][]string
	errs    []error
}

func (s *scriptedLister) UnconfirmedTxs(ctx context.Context) ([]string, error) {
	i := s.calls
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	s.calls++
	return s.results[i], s.errs[i]
}

func newTestWatcher(lister TxLister) *Watcher {
	m := metrics.NewBotMetrics("skipper", prometheus.NewRegistry())
	return NewWatcher(lister, time.Millisecond, zap.NewNop(), m)
}

func TestPollForNewSwapsReturnsBatch(t *testing.T) {
	lister := &scriptedLister{
		results: [][]string{{"tx-1", "tx-2"}},
		errs:    []error{nil},
	}

	txs, err := newTestWatcher(lister).PollForNewSwaps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"tx-1", "tx-2"}, txs)
}

func TestPollForNewSwapsFiltersSeen(t *testing.T) {
	lister := &scriptedLister{
		results: [][]string{
			{"tx-1", "tx-2"},
			{"tx-1", "tx-2", "tx-3"},
		},
		errs: []error{nil, nil},
	}
	watcher := newTestWatcher(lister)

	first, err := watcher.PollForNewSwaps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"tx-1", "tx-2"}, first)

	// Only tx-3 is new on the second batch.
	second, err := watcher.PollForNewSwaps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"tx-3"}, second)
}

func TestPollForNewSwapsRetriesTransientErrors(t *testing.T) {
	lister := &scriptedLister{
		results: [][]string{nil, nil, {"tx-1"}},
		errs: []error{
			&chain.TransientError{Op: "poll", Err: context.DeadlineExceeded},
			&chain.TransientError{Op: "poll", Err: context.DeadlineExceeded},
			nil,
		},
	}

	txs, err := newTestWatcher(lister).PollForNewSwaps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"tx-1"}, txs)
	assert.Equal(t, 3, lister.calls)
}

func TestPollForNewSwapsKeepsPollingOnEmptyMempool(t *testing.T) {
	lister := &scriptedLister{
		results: [][]string{{}, {}, {"tx-1"}},
		errs:    []error{nil, nil, nil},
	}

	txs, err := newTestWatcher(lister).PollForNewSwaps(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"tx-1"}, txs)
}

func TestPollForNewSwapsHonoursCancellation(t *testing.T) {
	lister := &scriptedLister{
		results: [][]string{{}},
		errs:    []error{nil},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newTestWatcher(lister).PollForNewSwaps(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
