package dex

import (
	"fmt"
	"math/big"
)

// Pool represents a single constant-product AMM pool. Reserves are tracked
// per denom; the Input*/Output* fields are oriented by the route currently
// being evaluated and are overwritten on every simulation pass.
type Pool struct {
	ContractAddress string
	TokenADenom     string
	TokenBDenom     string
	ReservesA       *big.Int
	ReservesB       *big.Int
	LPFee           float64
	ProtocolFee     float64
	FeeFromInput    bool

	// Simulation-transient state, not part of pool identity.
	InputDenom     string
	OutputDenom    string
	InputReserves  *big.Int
	OutputReserves *big.Int
	AmountIn       *big.Int
	AmountOut      *big.Int
}

// NewPool creates a pool with the given token pair and reserves.
func NewPool(address, tokenA, tokenB string, reservesA, reservesB *big.Int, lpFee, protocolFee float64, feeFromInput bool) *Pool {
	return &Pool{
		ContractAddress: address,
		TokenADenom:     tokenA,
		TokenBDenom:     tokenB,
		ReservesA:       reservesA,
		ReservesB:       reservesB,
		LPFee:           lpFee,
		ProtocolFee:     protocolFee,
		FeeFromInput:    feeFromInput,
		AmountIn:        big.NewInt(0),
		AmountOut:       big.NewInt(0),
	}
}

// FeeRate returns the combined fee rate taken from a trade.
func (p *Pool) FeeRate() float64 {
	return p.LPFee + p.ProtocolFee
}

// HasDenom reports whether denom is one side of the pool's pair.
func (p *Pool) HasDenom(denom string) bool {
	return denom == p.TokenADenom || denom == p.TokenBDenom
}

// OtherDenom returns the opposite side of the pair from denom.
func (p *Pool) OtherDenom(denom string) (string, error) {
	switch denom {
	case p.TokenADenom:
		return p.TokenBDenom, nil
	case p.TokenBDenom:
		return p.TokenADenom, nil
	default:
		return "", fmt.Errorf("denom %s not traded by pool %s", denom, p.ContractAddress)
	}
}

// Orient sets the pool's direction so that inputDenom is swapped in.
// Reserve pointers alias ReservesA/ReservesB, so an external reserve
// refresh stays visible without re-orienting.
func (p *Pool) Orient(inputDenom string) error {
	outputDenom, err := p.OtherDenom(inputDenom)
	if err != nil {
		return err
	}

	p.InputDenom = inputDenom
	p.OutputDenom = outputDenom
	if inputDenom == p.TokenADenom {
		p.InputReserves = p.ReservesA
		p.OutputReserves = p.ReservesB
	} else {
		p.InputReserves = p.ReservesB
		p.OutputReserves = p.ReservesA
	}

	return nil
}

// SetReserves replaces both reserve balances, keeping any current
// orientation pointed at the fresh values.
func (p *Pool) SetReserves(reservesA, reservesB *big.Int) {
	p.ReservesA = reservesA
	p.ReservesB = reservesB
	if p.InputDenom != "" {
		// Re-alias the oriented views.
		_ = p.Orient(p.InputDenom)
	}
}
