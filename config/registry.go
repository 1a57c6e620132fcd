package config

import (
	"fmt"
	"math/big"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/forkoooor/skipper/dex"
)

// PoolConfig describes one tracked AMM pool in the routes file.
type PoolConfig struct {
	Address      string  `yaml:"address"`
	TokenADenom  string  `yaml:"token_a_denom"`
	TokenBDenom  string  `yaml:"token_b_denom"`
	LPFee        float64 `yaml:"lp_fee"`
	ProtocolFee  float64 `yaml:"protocol_fee"`
	FeeFromInput bool    `yaml:"fee_from_input"`
}

// RouteConfig names the pool cycle of one tracked route.
type RouteConfig struct {
	Pools []string `yaml:"pools"`
}

// Registry is the YAML routes file: the tracked pools and the cycles built
// over them. Reserves start at zero and are populated by the first
// chain-state refresh.
type Registry struct {
	Pools  []PoolConfig  `yaml:"pools"`
	Routes []RouteConfig `yaml:"routes"`
}

// LoadRegistry parses the routes file into the contract registry and the
// per-route pool cycles.
func LoadRegistry(path string) (map[string]*dex.Pool, [][]*dex.Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read routes file: %w", err)
	}

	var registry Registry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, nil, fmt.Errorf("failed to parse routes file: %w", err)
	}
	if len(registry.Pools) == 0 {
		return nil, nil, fmt.Errorf("routes file %s defines no pools", path)
	}

	contracts := make(map[string]*dex.Pool, len(registry.Pools))
	for _, pc := range registry.Pools {
		if pc.Address == "" || pc.TokenADenom == "" || pc.TokenBDenom == "" {
			return nil, nil, fmt.Errorf("pool entry %q is missing address or denoms", pc.Address)
		}
		if pc.LPFee+pc.ProtocolFee >= 1 {
			return nil, nil, fmt.Errorf("pool %s has fee rate >= 1", pc.Address)
		}
		if _, exists := contracts[pc.Address]; exists {
			return nil, nil, fmt.Errorf("pool %s defined twice", pc.Address)
		}
		contracts[pc.Address] = dex.NewPool(
			pc.Address,
			pc.TokenADenom, pc.TokenBDenom,
			big.NewInt(0), big.NewInt(0),
			pc.LPFee, pc.ProtocolFee,
			pc.FeeFromInput,
		)
	}

	routes := make([][]*dex.Pool, 0, len(registry.Routes))
	for i, rc := range registry.Routes {
		if len(rc.Pools) < 2 {
			return nil, nil, fmt.Errorf("route %d needs at least 2 pools", i)
		}
		cycle := make([]*dex.Pool, 0, len(rc.Pools))
		for _, address := range rc.Pools {
			pool, ok := contracts[address]
			if !ok {
				return nil, nil, fmt.Errorf("route %d references unknown pool %s", i, address)
			}
			cycle = append(cycle, pool)
		}
		routes = append(routes, cycle)
	}

	return contracts, routes, nil
}
