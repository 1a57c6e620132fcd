package arbitrage

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkoooor/skipper/dex"
)

func TestSimulateHandComputedChain(t *testing.T) {
	// Three balanced 100000/100000 pools with 0.3% charged on input and
	// 1000 in. Hand-computed hops:
	//   floor(100000*997 / 100997)         = 987
	//   floor(100000*984.039 / 100984.039) = 974
	//   floor(100000*971.078 / 100971.078) = 961
	// so profit = 961 - 1000 = -39.
	contracts, route := threePoolCycle(t)

	swap := Swap{ContractAddress: "juno1bc", InputDenom: "denomB", OutputDenom: "denomC"}
	require.NoError(t, route.OrderPools(contracts, swap, "denomA"))
	require.Equal(t, "denomA", route.FirstPool().InputDenom)

	route.AmountIn = big.NewInt(1000)
	profit := route.Simulate()

	assert.Equal(t, big.NewInt(987), route.Pools[0].AmountOut)
	assert.Equal(t, big.NewInt(974), route.Pools[1].AmountOut)
	assert.Equal(t, big.NewInt(961), route.Pools[2].AmountOut)
	assert.Equal(t, big.NewInt(-39), profit)
	assert.Equal(t, route.Profit, profit)
}

func TestSimulateChainsAmounts(t *testing.T) {
	contracts, route := threePoolCycle(t)
	swap := Swap{ContractAddress: "juno1bc", InputDenom: "denomC", OutputDenom: "denomB"}
	require.NoError(t, route.OrderPools(contracts, swap, "denomA"))

	route.AmountIn = big.NewInt(5000)
	route.Simulate()

	// Each pool's input is the previous pool's output.
	assert.Equal(t, route.AmountIn, route.Pools[0].AmountIn)
	assert.Equal(t, route.Pools[0].AmountOut, route.Pools[1].AmountIn)
	assert.Equal(t, route.Pools[1].AmountOut, route.Pools[2].AmountIn)
}

func TestSimulateZeroFeeMatchesConstantProduct(t *testing.T) {
	poolXY := dex.NewPool("juno1xy", "denomX", "denomY", big.NewInt(1_000_000), big.NewInt(3_000_000), 0, 0, true)
	poolYX := dex.NewPool("juno1yx", "denomY", "denomX", big.NewInt(2_000_000), big.NewInt(1_000_000), 0, 0, true)
	route, err := NewRoute(poolXY, poolYX)
	require.NoError(t, err)
	require.NoError(t, poolXY.Orient("denomX"))
	require.NoError(t, poolYX.Orient("denomY"))

	route.AmountIn = big.NewInt(10_000)
	route.Simulate()

	hop1 := new(big.Int).Div(
		new(big.Int).Mul(big.NewInt(10_000), big.NewInt(3_000_000)),
		new(big.Int).Add(big.NewInt(1_000_000), big.NewInt(10_000)),
	)
	hop2 := new(big.Int).Div(
		new(big.Int).Mul(hop1, big.NewInt(1_000_000)),
		new(big.Int).Add(big.NewInt(2_000_000), hop1),
	)
	assert.Equal(t, hop1, route.Pools[0].AmountOut)
	assert.Equal(t, hop2, route.Pools[1].AmountOut)
}
