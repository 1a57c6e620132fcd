package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the bot's runtime settings, loaded from a JSON file.
type Config struct {
	// Chain and network settings
	ChainID     string `json:"chain_id"`
	RPCEndpoint string `json:"rpc_endpoint"`

	// Arbitrage settings
	ArbDenom      string `json:"arb_denom"`
	WalletAddress string `json:"wallet_address"`
	RoutesFile    string `json:"routes_file"`

	// Gas settings: the fee reserved out of the spendable balance,
	// expressed in ArbDenom units as gas_limit * gas_price.
	GasLimit int64 `json:"gas_limit"`
	GasPrice int64 `json:"gas_price"`

	// Monitoring intervals
	PollInterval   time.Duration `json:"poll_interval"`
	NetworkTimeout time.Duration `json:"network_timeout"`

	// Journal
	JournalPath string `json:"journal_path"`

	// Metrics
	MetricsNamespace string `json:"metrics_namespace"`
}

// ValidateConfig checks the configuration for missing or inconsistent
// settings and reports all problems at once.
func (c *Config) ValidateConfig() error {
	var errors []string

	if c.ChainID == "" {
		errors = append(errors, "chain_id must be specified")
	}
	if c.RPCEndpoint == "" {
		errors = append(errors, "rpc_endpoint must be specified")
	}
	if c.ArbDenom == "" {
		errors = append(errors, "arb_denom must be specified")
	}
	if c.WalletAddress == "" {
		errors = append(errors, "wallet_address must be specified")
	}
	if c.RoutesFile == "" {
		errors = append(errors, "routes_file must be specified")
	}
	if c.GasLimit <= 0 {
		errors = append(errors, "gas_limit must be positive")
	}
	if c.GasPrice < 0 {
		errors = append(errors, "gas_price must not be negative")
	}
	if c.PollInterval <= 0 {
		errors = append(errors, "poll_interval must be positive")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}
	return nil
}

// LoadConfig reads and validates the configuration file. An empty path
// defaults to $HOME/.skipper.json.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".skipper.json")
	}

	file, err := os.Open(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	config := DefaultConfig()
	if err := json.NewDecoder(file).Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if err := config.ValidateConfig(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns the built-in defaults; chain-specific settings
// still have to come from the config file.
func DefaultConfig() *Config {
	return &Config{
		PollInterval:     time.Second,
		NetworkTimeout:   5 * time.Second,
		GasLimit:         600_000,
		GasPrice:         0,
		JournalPath:      "skipper.db",
		MetricsNamespace: "skipper",
	}
}
