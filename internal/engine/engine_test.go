package engine_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskwallet/internal/database"
	"github.com/jask/jaskwallet/internal/database/repository"
	"github.com/jask/jaskwallet/internal/engine"
)

const testPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "wallet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db))
	return db
}

func TestCreateNewVaultAndRestore(t *testing.T) {
	ctx := context.Background()
	e := engine.New(openDB(t), engine.Options{})

	err := e.Keyring.CreateNewVaultAndRestore(ctx, "password1", "abandon abandon abandon")
	require.ErrorIs(t, err, engine.ErrInvalidMnemonic)

	st, err := e.Keyring.State(ctx)
	require.NoError(t, err)
	require.False(t, st.HasVault)

	require.NoError(t, e.Keyring.CreateNewVaultAndRestore(ctx, "password1", "  "+testPhrase+" "))

	rings, err := e.Keyring.Keyrings(ctx)
	require.NoError(t, err)
	require.Equal(t, []engine.Keyring{{
		Type:     engine.HDKeyTree,
		Accounts: []string{"0x9858EfFD232B4033E47d90003D41EC34EcaEda94"},
	}}, rings)

	st, err = e.Keyring.State(ctx)
	require.NoError(t, err)
	require.True(t, st.HasVault)
	require.True(t, st.IsUnlocked)

	e.Keyring.Lock()
	require.Error(t, e.Keyring.Unlock(ctx, "wrong-password"))
	require.NoError(t, e.Keyring.Unlock(ctx, "password1"))
}

func TestUnlockWithoutVault(t *testing.T) {
	e := engine.New(openDB(t), engine.Options{})
	require.ErrorIs(t, e.Keyring.Unlock(context.Background(), "x"), engine.ErrNoVault)
}

func TestNetworkProvider(t *testing.T) {
	ctx := context.Background()
	e := engine.New(openDB(t), engine.Options{DefaultProvider: engine.Ropsten})

	p, err := e.Network.Provider(ctx)
	require.NoError(t, err)
	require.Equal(t, engine.Provider{Type: engine.Ropsten}, p)

	require.Error(t, e.Network.SetProviderType(ctx, "nope"))
	require.NoError(t, e.Network.SetRPCTarget(ctx, "https://rpc.example.com"))

	st, err := e.Network.State(ctx)
	require.NoError(t, err)
	require.Equal(t, engine.RPC, st.Provider.Type)
	require.Equal(t, "https://rpc.example.com", st.Provider.RPCTarget)
	require.Equal(t, "Private Network", engine.NetworkName(st.Provider.Type))
	require.Equal(t, "Ethereum Main Network", engine.NetworkName(engine.Mainnet))
	require.Equal(t, "Private Network", engine.NetworkName("custom"))
}

func TestWipeTransactions(t *testing.T) {
	ctx := context.Background()
	e := engine.New(openDB(t), engine.Options{})

	for _, typ := range []string{engine.Mainnet, engine.Ropsten} {
		require.NoError(t, e.Network.SetProviderType(ctx, typ))
		_, err := e.Transactions.Record(ctx, repository.Transaction{From: "0xa", To: "0xb", ValueWei: "1"})
		require.NoError(t, err)
	}

	require.NoError(t, e.Transactions.WipeTransactions(ctx, false))
	txs, err := e.Transactions.Transactions(ctx)
	require.NoError(t, err)
	require.Empty(t, txs)

	st, err := e.Transactions.State(ctx)
	require.NoError(t, err)
	require.Len(t, st.Transactions, 1)
	require.Equal(t, engine.Mainnet, st.Transactions[0].NetworkID)

	require.NoError(t, e.Transactions.WipeTransactions(ctx, true))
	st, err = e.Transactions.State(ctx)
	require.NoError(t, err)
	require.Empty(t, st.Transactions)
}

func TestCurrencyRefresh(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "ethereum", r.URL.Query().Get("ids"))
		require.Equal(t, "eur", r.URL.Query().Get("vs_currencies"))
		_, _ = io.WriteString(w, `{"ethereum":{"eur":1834.25}}`)
	}))
	defer srv.Close()

	ctx := context.Background()
	e := engine.New(openDB(t), engine.Options{RateURL: srv.URL, Currency: "eur"})

	rate, err := e.CurrencyRate.Refresh(ctx)
	require.NoError(t, err)
	require.InDelta(t, 1834.25, rate, 1e-9)

	st, err := e.CurrencyRate.State(ctx)
	require.NoError(t, err)
	require.Equal(t, "eur", st.CurrentCurrency)
	require.InDelta(t, 1834.25, st.ConversionRate, 1e-9)
	require.NotZero(t, st.ConversionDate)

	require.NoError(t, e.CurrencyRate.SetCurrentCurrency(ctx, "GBP"))
	st, err = e.CurrencyRate.State(ctx)
	require.NoError(t, err)
	require.Equal(t, "gbp", st.CurrentCurrency)
	require.Zero(t, st.ConversionRate)

	_, err = e.CurrencyRate.Refresh(ctx)
	require.Error(t, err)
}

func TestNetworkStatusCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "net_version", req["method"])
		_, _ = io.WriteString(w, `{"jsonrpc":"2.0","id":1,"result":"1"}`)
	}))
	defer srv.Close()

	ctx := context.Background()
	e := engine.New(openDB(t), engine.Options{StatusEndpoints: map[string]string{engine.Mainnet: srv.URL}})

	status, err := e.NetworkStatus.Check(ctx)
	require.NoError(t, err)
	require.Equal(t, engine.StatusOK, status)

	require.NoError(t, e.Network.SetRPCTarget(ctx, "http://127.0.0.1:1"))
	status, err = e.NetworkStatus.Check(ctx)
	require.NoError(t, err)
	require.Equal(t, engine.StatusDown, status)

	st := e.NetworkStatus.State()
	require.Equal(t, engine.StatusOK, st.NetworkStatus[engine.Mainnet])
	require.Equal(t, engine.StatusDown, st.NetworkStatus[engine.RPC])
	require.Equal(t, engine.StatusUnknown, st.NetworkStatus[engine.Kovan])
}

func TestBackgroundState(t *testing.T) {
	ctx := context.Background()
	e := engine.New(openDB(t), engine.Options{})

	require.NoError(t, e.Preferences.SetIPFSGateway(ctx, "https://cloudflare-ipfs.com/ipfs/"))
	require.NoError(t, e.Preferences.AddToFrequentRPCList(ctx, "https://rpc.example.com"))
	require.NoError(t, e.Assets.AddToken(ctx, "0xABC", "TKN", 18))
	require.NoError(t, e.Phishing.BypassPhishingDetection(ctx, "Example.COM"))
	require.NoError(t, e.Phishing.BypassPhishingDetection(ctx, "example.com"))

	st, err := e.BackgroundState(ctx)
	require.NoError(t, err)
	require.Equal(t, "https://cloudflare-ipfs.com/ipfs/", st.PreferencesController.IPFSGateway)
	require.Equal(t, []string{"https://rpc.example.com"}, st.PreferencesController.FrequentRPCList)
	require.Equal(t, []engine.Token{{Address: "0xabc", Symbol: "TKN", Decimals: 18}}, st.AssetsController.Tokens)
	require.Equal(t, []string{"example.com"}, st.PhishingController.Whitelist)
	require.Equal(t, engine.Mainnet, st.NetworkController.Provider.Type)

	raw, err := json.Marshal(st)
	require.NoError(t, err)
	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &generic))
	for _, key := range []string{"KeyringController", "NetworkController", "AssetsController", "PhishingController", "AssetsDetectionController"} {
		require.Contains(t, generic, key)
	}
}

func TestSeedSettings(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	opts := engine.Options{DefaultProvider: engine.Kovan, IPFSGateway: "https://dweb.link/ipfs/", Currency: "EUR"}
	require.NoError(t, database.SeedDefaults(ctx, db, engine.SeedSettings(opts)))

	st, err := engine.New(db, engine.Options{}).BackgroundState(ctx)
	require.NoError(t, err)
	require.Equal(t, engine.Kovan, st.NetworkController.Provider.Type)
	require.Equal(t, "https://dweb.link/ipfs/", st.PreferencesController.IPFSGateway)
	require.Equal(t, "eur", st.CurrencyRateController.CurrentCurrency)

	require.Empty(t, engine.SeedSettings(engine.Options{}))
}
