package gas

import "math/big"

// Estimator reserves a fixed fee for the arbitrage transaction. Cosmos
// chains price gas deterministically, so limit * price in the base denom is
// the exact amount the sizer must leave untouched.
type Estimator struct {
	gasLimit *big.Int
	gasPrice *big.Int
}

// NewEstimator creates an estimator for the given gas limit and per-unit
// price in the base denom.
func NewEstimator(gasLimit, gasPrice int64) *Estimator {
	return &Estimator{
		gasLimit: big.NewInt(gasLimit),
		gasPrice: big.NewInt(gasPrice),
	}
}

// Fee returns the fee to reserve out of the spendable balance.
func (e *Estimator) Fee() *big.Int {
	return new(big.Int).Mul(e.gasLimit, e.gasPrice)
}
