package journal

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTempJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestJournalRecordAndRecent(t *testing.T) {
	j := openTempJournal(t)
	ctx := context.Background()

	first, err := j.Record(ctx, Entry{
		ObservedAt:    time.UnixMilli(1000),
		ArbDenom:      "ujuno",
		RouteContract: RouteKey([]string{"juno1ab", "juno1bc", "juno1ca"}),
		AmountIn:      big.NewInt(207106),
		Profit:        big.NewInt(40931),
	})
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := j.Record(ctx, Entry{
		ObservedAt:    time.UnixMilli(2000),
		ArbDenom:      "ujuno",
		RouteContract: RouteKey([]string{"juno1ca", "juno1ab"}),
		AmountIn:      big.NewInt(50),
		Profit:        big.NewInt(-3),
	})
	require.NoError(t, err)

	entries, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, second, entries[0].ID)
	assert.Equal(t, first, entries[1].ID)
	assert.Equal(t, "juno1ca>juno1ab", entries[0].RouteContract)
	assert.Equal(t, big.NewInt(-3), entries[0].Profit)
	assert.Equal(t, big.NewInt(207106), entries[1].AmountIn)
	assert.False(t, entries[1].Executed)
}

func TestJournalRecentLimit(t *testing.T) {
	j := openTempJournal(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := j.Record(ctx, Entry{
			ObservedAt:    time.UnixMilli(int64(i)),
			ArbDenom:      "ujuno",
			RouteContract: "juno1ab>juno1bc",
			AmountIn:      big.NewInt(int64(i)),
			Profit:        big.NewInt(0),
		})
		require.NoError(t, err)
	}

	entries, err := j.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, big.NewInt(4), entries[0].AmountIn)
}
