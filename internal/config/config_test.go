package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContractAddressEnvWins(t *testing.T) {
	t.Setenv("CONTRACT_ADDRESS", "0xenv")

	path := filepath.Join(t.TempDir(), "contract-config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"address":"0xfile"}`), 0o644))

	require.Equal(t, "0xenv", contractAddressFrom(path))
}

func TestContractAddressFromFile(t *testing.T) {
	t.Setenv("CONTRACT_ADDRESS", "")

	path := filepath.Join(t.TempDir(), "contract-config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"address":"0xfile"}`), 0o644))

	require.Equal(t, "0xfile", contractAddressFrom(path))
}

func TestContractAddressUnconfigured(t *testing.T) {
	t.Setenv("CONTRACT_ADDRESS", "")

	require.Equal(t, "", contractAddressFrom(filepath.Join(t.TempDir(), "missing.json")))
}

func TestContractAddressMalformedFile(t *testing.T) {
	t.Setenv("CONTRACT_ADDRESS", "")

	path := filepath.Join(t.TempDir(), "contract-config.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	require.Equal(t, "", contractAddressFrom(path))
}

func TestRPCURL(t *testing.T) {
	t.Setenv("POLYGON_RPC_URL", "")
	require.Equal(t, DefaultRPCURL, RPCURL())

	t.Setenv("POLYGON_RPC_URL", "http://localhost:8545")
	require.Equal(t, "http://localhost:8545", RPCURL())
}
