package config

import (
	"encoding/json"
	"os"
)

// DefaultRPCURL is the public ledger endpoint used when POLYGON_RPC_URL is
// not set.
const DefaultRPCURL = "https://polygon-rpc.com/"

const contractConfigFile = "contract-config.json"

// ContractAddress resolves the attestation contract address. The
// CONTRACT_ADDRESS environment variable wins over contract-config.json in
// the working directory. An empty string means no contract is configured
// and verification runs in degraded mode.
func ContractAddress() string {
	return contractAddressFrom(contractConfigFile)
}

func contractAddressFrom(path string) string {
	if addr := os.Getenv("CONTRACT_ADDRESS"); addr != "" {
		return addr
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	var cfg struct {
		Address string `json:"address"`
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return ""
	}
	return cfg.Address
}

// RPCURL returns the ledger JSON-RPC endpoint.
func RPCURL() string {
	if url := os.Getenv("POLYGON_RPC_URL"); url != "" {
		return url
	}
	return DefaultRPCURL
}
