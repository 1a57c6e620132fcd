package mempool

import (
	"encoding/base64"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/forkoooor/skipper/dex"
)

func testContracts() map[string]*dex.Pool {
	poolAB := dex.NewPool("juno1swapab", "ujuno", "uatom", big.NewInt(1), big.NewInt(1), 0.003, 0, true)
	poolBC := dex.NewPool("juno1swapbc", "uatom", "uosmo", big.NewInt(1), big.NewInt(1), 0.003, 0, true)
	return map[string]*dex.Pool{
		poolAB.ContractAddress: poolAB,
		poolBC.ContractAddress: poolBC,
	}
}

func encodeTx(payload string) string {
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

func TestExtractSwapsIdentifiesPoolAndDirection(t *testing.T) {
	extractor, err := NewExtractor(testContracts(), zap.NewNop())
	require.NoError(t, err)

	// The offer asset (ujuno) is named before the ask, so the pending
	// trade outputs uatom.
	raw := encodeTx(`{"contract":"juno1swapab","msg":{"swap":{"offer_asset":{"info":{"native_token":{"denom":"ujuno"}},"amount":"1000"},"ask":"uatom"}}}`)
	swaps := extractor.ExtractSwaps(raw)

	require.Len(t, swaps, 1)
	assert.Equal(t, "juno1swapab", swaps[0].ContractAddress)
	assert.Equal(t, "ujuno", swaps[0].InputDenom)
	assert.Equal(t, "uatom", swaps[0].OutputDenom)
}

func TestExtractSwapsOppositeDirection(t *testing.T) {
	extractor, err := NewExtractor(testContracts(), zap.NewNop())
	require.NoError(t, err)

	raw := encodeTx(`{"contract":"juno1swapab","msg":{"swap":{"offer_asset":{"info":{"native_token":{"denom":"uatom"}},"amount":"1000"}}}}`)
	swaps := extractor.ExtractSwaps(raw)

	require.Len(t, swaps, 1)
	assert.Equal(t, "uatom", swaps[0].InputDenom)
	assert.Equal(t, "ujuno", swaps[0].OutputDenom)
}

func TestExtractSwapsIgnoresUntrackedContracts(t *testing.T) {
	extractor, err := NewExtractor(testContracts(), zap.NewNop())
	require.NoError(t, err)

	raw := encodeTx(`{"contract":"juno1unknown","msg":{"swap":{"denom":"ujuno"}}}`)
	assert.Empty(t, extractor.ExtractSwaps(raw))
}

func TestExtractSwapsHandlesNonBase64Payload(t *testing.T) {
	extractor, err := NewExtractor(testContracts(), zap.NewNop())
	require.NoError(t, err)

	// Not valid base64: scanned as plain bytes.
	raw := `!!contract juno1swapbc swap uosmo for uatom!!`
	swaps := extractor.ExtractSwaps(raw)

	require.Len(t, swaps, 1)
	assert.Equal(t, "juno1swapbc", swaps[0].ContractAddress)
	assert.Equal(t, "uosmo", swaps[0].InputDenom)
	assert.Equal(t, "uatom", swaps[0].OutputDenom)
}

func TestExtractSwapsMemoizesDecodedPayloads(t *testing.T) {
	contracts := testContracts()
	extractor, err := NewExtractor(contracts, zap.NewNop())
	require.NoError(t, err)

	raw := encodeTx(`{"contract":"juno1swapab","msg":{"swap":{"denom":"ujuno"}}}`)
	first := extractor.ExtractSwaps(raw)
	require.Len(t, first, 1)

	// Removing the registry entry does not affect the memoized result.
	delete(contracts, "juno1swapab")
	second := extractor.ExtractSwaps(raw)
	assert.Equal(t, first, second)
}
