package arbitrage

import (
	"fmt"
	"math/big"

	"github.com/forkoooor/skipper/dex"
)

// Swap describes one observed pending trade against a tracked pool.
// OutputDenom is what the trade will deliver; the counter-route must
// start by swapping that denom in the opposite direction.
type Swap struct {
	ContractAddress string
	InputDenom      string
	OutputDenom     string
}

// Route is an ordered cycle of pools. A Route is built per detected swap,
// lives for one order->size->simulate pass and is then discarded.
type Route struct {
	Pools           []*dex.Pool
	Profit          *big.Int
	OptimalAmountIn *big.Int
	AmountIn        *big.Int
}

// NewRoute creates a route over a cycle of at least two pools. Consecutive
// pools (and the last back to the first) must share a denom.
func NewRoute(pools ...*dex.Pool) (*Route, error) {
	if len(pools) < 2 {
		return nil, fmt.Errorf("route needs at least 2 pools, got %d", len(pools))
	}

	for i, pool := range pools {
		next := pools[(i+1)%len(pools)]
		if sharedDenom(pool, next) == "" {
			return nil, fmt.Errorf("pools %s and %s share no denom", pool.ContractAddress, next.ContractAddress)
		}
	}

	// Ordering reverses in place; keep the caller's slice intact.
	cycle := make([]*dex.Pool, len(pools))
	copy(cycle, pools)

	return &Route{
		Pools:           cycle,
		Profit:          big.NewInt(0),
		OptimalAmountIn: big.NewInt(0),
		AmountIn:        big.NewInt(0),
	}, nil
}

// FirstPool returns the entry pool of the cycle.
func (r *Route) FirstPool() *dex.Pool {
	return r.Pools[0]
}

// LastPool returns the exit pool of the cycle.
func (r *Route) LastPool() *dex.Pool {
	return r.Pools[len(r.Pools)-1]
}

// ContainsPool reports whether the pool at address is part of the cycle.
func (r *Route) ContainsPool(address string) bool {
	for _, pool := range r.Pools {
		if pool.ContractAddress == address {
			return true
		}
	}
	return false
}

func (r *Route) reverse() {
	for i, j := 0, len(r.Pools)-1; i < j; i, j = i+1, j-1 {
		r.Pools[i], r.Pools[j] = r.Pools[j], r.Pools[i]
	}
}

func sharedDenom(a, b *dex.Pool) string {
	if b.HasDenom(a.TokenADenom) {
		return a.TokenADenom
	}
	if b.HasDenom(a.TokenBDenom) {
		return a.TokenBDenom
	}
	return ""
}
