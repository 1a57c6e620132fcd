package arbitrage

import "math/big"

// sizerPrec is the mantissa precision used for the closed-form sizing fold.
// Reserves are chain integers well under 2^128; 256 bits keeps the fold's
// fractional intermediates from losing integer-level accuracy.
const sizerPrec = 256

// ComputeOptimalAmountIn sets OptimalAmountIn to the profit-maximizing input
// into the first pool of the oriented cycle, using the closed-form solution
// for cyclic constant-product arbitrage (https://arxiv.org/abs/2105.02784).
// A result <= 0 means no positive-size trade is profitable.
func (r *Route) ComputeOptimalAmountIn() *big.Int {
	for _, pool := range r.Pools {
		if pool.InputReserves == nil || pool.InputReserves.Sign() <= 0 ||
			pool.OutputReserves == nil || pool.OutputReserves.Sign() <= 0 {
			r.OptimalAmountIn = big.NewInt(0)
			return r.OptimalAmountIn
		}
	}

	feeIn := make([]float64, len(r.Pools))
	feeOut := make([]float64, len(r.Pools))
	for i, pool := range r.Pools {
		if pool.FeeFromInput {
			feeIn[i] = 1 - pool.FeeRate()
			feeOut[i] = 1
		} else {
			feeIn[i] = 1
			feeOut[i] = 1 - pool.FeeRate()
		}
	}

	aIn := newFloat().SetInt(r.Pools[0].InputReserves)
	aOut := newFloat().SetInt(r.Pools[0].OutputReserves)

	// Fold every pool beyond the first into a single virtual pool seen
	// from the entry denom.
	for i, pool := range r.Pools[1:] {
		k := newFloat().SetFloat64(feeIn[i+1] * feeOut[i+1])
		resIn := newFloat().SetInt(pool.InputReserves)
		resOut := newFloat().SetInt(pool.OutputReserves)

		denom := newFloat().Add(resIn, newFloat().Mul(k, aOut))
		nextIn := newFloat().Quo(newFloat().Mul(aIn, resIn), denom)
		nextOut := newFloat().Quo(newFloat().Mul(newFloat().Mul(k, resOut), aOut), denom)
		aIn, aOut = nextIn, nextOut
	}

	k0 := newFloat().SetFloat64(feeIn[0] * feeOut[0])
	sqrt := newFloat().Sqrt(newFloat().Mul(k0, newFloat().Mul(aOut, aIn)))
	optimal := newFloat().Quo(
		newFloat().Sub(sqrt, aIn),
		newFloat().SetFloat64(feeIn[0]),
	)

	r.OptimalAmountIn = floorFloat(optimal)
	return r.OptimalAmountIn
}

// ClampAmountIn sets AmountIn from OptimalAmountIn, constrained by the
// spendable balance net of the reserved gas fee. A non-positive optimal
// leaves AmountIn at zero (no trade); a negative net balance clamps to zero
// rather than going unguarded.
func (r *Route) ClampAmountIn(accountBalance, gasFee *big.Int) *big.Int {
	if r.OptimalAmountIn.Sign() <= 0 {
		return r.AmountIn
	}

	spendable := new(big.Int).Sub(accountBalance, gasFee)
	if spendable.Sign() < 0 {
		spendable.SetInt64(0)
	}

	if r.OptimalAmountIn.Cmp(spendable) > 0 {
		r.AmountIn = spendable
	} else {
		r.AmountIn = new(big.Int).Set(r.OptimalAmountIn)
	}
	return r.AmountIn
}

func newFloat() *big.Float {
	return new(big.Float).SetPrec(sizerPrec)
}

func floorFloat(f *big.Float) *big.Int {
	i, acc := f.Int(nil)
	// Int truncates toward zero; push negative non-integers down to the floor.
	if acc == big.Above {
		i.Sub(i, big.NewInt(1))
	}
	return i
}
