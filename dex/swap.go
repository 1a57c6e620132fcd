package dex

import "math/big"

// CalculateSwap computes the output of a constant-product swap with the fee
// either deducted from the input before the swap or from the output after it.
// All intermediate math is exact rational arithmetic; the result is floored
// to an integer the way the chain settles amounts.
func CalculateSwap(reservesIn, reservesOut, amountIn *big.Int, lpFee, protocolFee float64, feeFromInput bool) *big.Int {
	if amountIn == nil || amountIn.Sign() <= 0 || reservesIn.Sign() <= 0 || reservesOut.Sign() <= 0 {
		return big.NewInt(0)
	}

	multiplier := new(big.Rat).Sub(
		new(big.Rat).SetInt64(1),
		new(big.Rat).SetFloat64(lpFee+protocolFee),
	)

	in := new(big.Rat).SetInt(amountIn)
	if feeFromInput {
		in.Mul(in, multiplier)
	}

	out := new(big.Rat).Quo(
		new(big.Rat).Mul(in, new(big.Rat).SetInt(reservesOut)),
		new(big.Rat).Add(new(big.Rat).SetInt(reservesIn), in),
	)
	if !feeFromInput {
		out.Mul(out, multiplier)
	}

	return floorRat(out)
}

// Swap runs CalculateSwap against the pool's current orientation, recording
// the transient amounts on the pool.
func (p *Pool) Swap(amountIn *big.Int) *big.Int {
	p.AmountIn = amountIn
	p.AmountOut = CalculateSwap(p.InputReserves, p.OutputReserves, amountIn, p.LPFee, p.ProtocolFee, p.FeeFromInput)
	return p.AmountOut
}

func floorRat(r *big.Rat) *big.Int {
	// Denominators are always positive, so integer division floors.
	return new(big.Int).Div(r.Num(), r.Denom())
}
