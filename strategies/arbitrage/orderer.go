package arbitrage

import (
	"fmt"

	"github.com/forkoooor/skipper/dex"
)

// OrderPools reorders the cycle in place so it runs counter to the observed
// swap, then orients every pool so the cycle enters and exits in arbDenom.
// Whether the stored order is reversed depends on where the swapped pool sits:
//
//   - entry pool: reverse unless the swap hands us arbDenom to start with
//   - middle pool: reverse unless the swap hands us the entry pool's outward denom
//   - exit pool: reverse if the swap trades back into arbDenom
func (r *Route) OrderPools(contracts map[string]*dex.Pool, swap Swap, arbDenom string) error {
	swapped, ok := contracts[swap.ContractAddress]
	if !ok {
		return fmt.Errorf("swap targets unknown contract %s", swap.ContractAddress)
	}

	index := -1
	for i, pool := range r.Pools {
		if pool == swapped {
			index = i
			break
		}
	}
	if index < 0 {
		return fmt.Errorf("pool %s is not part of the route", swap.ContractAddress)
	}

	inputDenom := swap.OutputDenom

	switch index {
	case 0:
		if inputDenom != arbDenom {
			r.reverse()
		}
	case len(r.Pools) - 1:
		if inputDenom == arbDenom {
			r.reverse()
		}
	default:
		first := r.Pools[0]
		outputDenom := first.TokenADenom
		if first.TokenADenom == arbDenom {
			outputDenom = first.TokenBDenom
		}
		if inputDenom != outputDenom {
			r.reverse()
		}
	}

	return r.orient(arbDenom)
}

// orient walks the cycle from arbDenom, pointing each pool's reserves in the
// direction of travel, and verifies the denom-chaining invariant.
func (r *Route) orient(arbDenom string) error {
	denom := arbDenom
	for _, pool := range r.Pools {
		if err := pool.Orient(denom); err != nil {
			return fmt.Errorf("route does not chain at pool %s: %w", pool.ContractAddress, err)
		}
		denom = pool.OutputDenom
	}

	if denom != arbDenom {
		return fmt.Errorf("route exits in %s, want %s", denom, arbDenom)
	}
	return nil
}
