package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("JASKWALLET_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "JaskWallet", cfg.App.Name)
	require.Equal(t, "mainnet", cfg.Network.Provider)
	require.Equal(t, 10*time.Second, cfg.Gateways.ProbeTimeout)
	require.Equal(t, "JASKWALLET_PASSCODE", cfg.Security.PasscodeEnv)
	require.Empty(t, cfg.Security.Biometry)
	require.Equal(t, 3, cfg.Log.MaxRolls)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := []byte(`
[network]
provider = "ropsten"
rpc_url = "http://127.0.0.1:8545"

[gateways]
probe_timeout = "3s"

[security]
biometry = "FaceID"
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	t.Setenv("JASKWALLET_CURRENCY_CODE", "eur")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "ropsten", cfg.Network.Provider)
	require.Equal(t, "http://127.0.0.1:8545", cfg.Network.RPCURL)
	require.Equal(t, 3*time.Second, cfg.Gateways.ProbeTimeout)
	require.Equal(t, "FaceID", cfg.Security.Biometry)
	require.Equal(t, "eur", cfg.Currency.Code)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv("JASKWALLET_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Currency.Code = "aud"
	cfg.Gateways.ProbeTimeout = 4 * time.Second
	require.NoError(t, Save(cfg))

	again, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "aud", again.Currency.Code)
	require.Equal(t, 4*time.Second, again.Gateways.ProbeTimeout)
}
