package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables
const (
	EnvWalletAddress = "SKIPPER_WALLET_ADDRESS"
	EnvMnemonic      = "SKIPPER_MNEMONIC"
	EnvRPCEndpoint   = "SKIPPER_RPC_ENDPOINT"
)

// LoadEnv loads environment variables from a .env file if present.
func LoadEnv() error {
	return godotenv.Load()
}

// GetEnvWithDefault gets an environment variable with a default value
func GetEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetRequiredEnv gets an environment variable or errors if unset
func GetRequiredEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("required environment variable %s not set", key)
	}
	return value, nil
}

// ApplyEnvOverrides lets the environment override file-based secrets and
// endpoints, so a deployment never has to write them to disk.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvWalletAddress); v != "" {
		c.WalletAddress = v
	}
	if v := os.Getenv(EnvRPCEndpoint); v != "" {
		c.RPCEndpoint = v
	}
}
