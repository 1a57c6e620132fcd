package mempool

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/forkoooor/skipper/dex"
	"github.com/forkoooor/skipper/strategies/arbitrage"
)

// extractorIndexSize bounds the LRU of already-decoded payloads. Nodes
// re-gossip pending transactions, so the same payload often shows up in
// consecutive polls.
const extractorIndexSize = 512

// Extractor identifies swaps against tracked pools inside raw pending
// transactions. Cosmos tx protobufs embed bech32 contract addresses and
// denom strings verbatim, so a byte scan finds the pool and the direction
// without decoding the full message tree.
type Extractor struct {
	contracts map[string]*dex.Pool
	index     *lru.Cache
	logger    *zap.Logger
}

// NewExtractor creates an extractor over the tracked contract registry.
func NewExtractor(contracts map[string]*dex.Pool, logger *zap.Logger) (*Extractor, error) {
	index, err := lru.New(extractorIndexSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create extractor index: %w", err)
	}
	return &Extractor{
		contracts: contracts,
		index:     index,
		logger:    logger,
	}, nil
}

// ExtractSwaps returns the swaps a raw pending transaction performs against
// tracked pools. Payloads that decode to nothing relevant return an empty
// slice. Results are memoized per payload.
func (e *Extractor) ExtractSwaps(rawTx string) []arbitrage.Swap {
	key := xxhash.Sum64String(rawTx)
	if cached, ok := e.index.Get(key); ok {
		return cached.([]arbitrage.Swap)
	}

	swaps := e.scan(rawTx)
	e.index.Add(key, swaps)
	return swaps
}

func (e *Extractor) scan(rawTx string) []arbitrage.Swap {
	payload, err := base64.StdEncoding.DecodeString(rawTx)
	if err != nil {
		// Not base64; scan the raw string bytes instead.
		payload = []byte(rawTx)
	}

	var swaps []arbitrage.Swap
	for address, pool := range e.contracts {
		if !bytes.Contains(payload, []byte(address)) {
			continue
		}

		swap, ok := e.swapDirection(payload, pool)
		if !ok {
			e.logger.Debug("Tracked pool mentioned but no denom found",
				zap.String("pool", address))
			continue
		}
		swaps = append(swaps, swap)
	}
	return swaps
}

// swapDirection decides which way the pending trade moves through the pool.
// The offer denom is the pool denom appearing first in the payload (swap
// messages name the offer asset before the ask); the trade's output is the
// opposite side.
func (e *Extractor) swapDirection(payload []byte, pool *dex.Pool) (arbitrage.Swap, bool) {
	posA := bytes.Index(payload, []byte(pool.TokenADenom))
	posB := bytes.Index(payload, []byte(pool.TokenBDenom))
	if posA < 0 && posB < 0 {
		return arbitrage.Swap{}, false
	}

	offer := pool.TokenADenom
	ask := pool.TokenBDenom
	if posA < 0 || (posB >= 0 && posB < posA) {
		offer, ask = ask, offer
	}

	return arbitrage.Swap{
		ContractAddress: pool.ContractAddress,
		InputDenom:      offer,
		OutputDenom:     ask,
	}, true
}
