package arbitrage

import "math/big"

// Simulate runs AmountIn through the ordered cycle pool by pool and sets
// Profit to the last pool's output minus the first pool's input. Each pool's
// transient AmountIn/AmountOut is overwritten.
func (r *Route) Simulate() *big.Int {
	amount := r.AmountIn
	for _, pool := range r.Pools {
		amount = pool.Swap(amount)
	}

	r.Profit = new(big.Int).Sub(r.LastPool().AmountOut, r.FirstPool().AmountIn)
	return r.Profit
}
