package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/forkoooor/skipper/dex"
)

// PoolQuerier refreshes pool reserves from chain state between evaluation
// cycles. Callers must serialize refreshes against route evaluation; a
// simulation pass assumes its reserve snapshot does not move underneath it.
type PoolQuerier struct {
	client *Client
	logger *zap.Logger
}

// NewPoolQuerier creates a querier backed by the given RPC client.
func NewPoolQuerier(client *Client, logger *zap.Logger) *PoolQuerier {
	return &PoolQuerier{client: client, logger: logger}
}

// poolResponse mirrors the {"pool":{}} smart query shape shared by
// terraswap-style pair contracts.
type poolResponse struct {
	Assets []struct {
		Info struct {
			NativeToken *struct {
				Denom string `json:"denom"`
			} `json:"native_token,omitempty"`
			Token *struct {
				ContractAddr string `json:"contract_addr"`
			} `json:"token,omitempty"`
		} `json:"info"`
		Amount string `json:"amount"`
	} `json:"assets"`
}

// RefreshReserves queries the pool contract and updates both reserve
// balances in place.
func (q *PoolQuerier) RefreshReserves(ctx context.Context, pool *dex.Pool) error {
	raw, err := q.client.SmartContractState(ctx, pool.ContractAddress, map[string]interface{}{"pool": struct{}{}}, "")
	if err != nil {
		return fmt.Errorf("failed to query pool %s: %w", pool.ContractAddress, err)
	}

	var response poolResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return fmt.Errorf("failed to decode pool %s state: %w", pool.ContractAddress, err)
	}
	if len(response.Assets) != 2 {
		return fmt.Errorf("pool %s returned %d assets, want 2", pool.ContractAddress, len(response.Assets))
	}

	reservesA, reservesB := pool.ReservesA, pool.ReservesB
	for _, asset := range response.Assets {
		denom := ""
		switch {
		case asset.Info.NativeToken != nil:
			denom = asset.Info.NativeToken.Denom
		case asset.Info.Token != nil:
			denom = asset.Info.Token.ContractAddr
		}

		amount, ok := new(big.Int).SetString(asset.Amount, 10)
		if !ok {
			return fmt.Errorf("pool %s returned invalid amount %q", pool.ContractAddress, asset.Amount)
		}

		switch denom {
		case pool.TokenADenom:
			reservesA = amount
		case pool.TokenBDenom:
			reservesB = amount
		default:
			return fmt.Errorf("pool %s returned unexpected denom %q", pool.ContractAddress, denom)
		}
	}

	pool.SetReserves(reservesA, reservesB)
	q.logger.Debug("Refreshed pool reserves",
		zap.String("pool", pool.ContractAddress),
		zap.String("reserves_a", reservesA.String()),
		zap.String("reserves_b", reservesB.String()))
	return nil
}
