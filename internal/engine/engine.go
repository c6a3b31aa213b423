// Package engine hosts the wallet controllers and assembles their
// background state.
package engine

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"

	"github.com/jask/jaskwallet/internal/database/repository"
)

// Options configures the controllers that talk to the network.
type Options struct {
	HTTPClient      *http.Client
	DefaultProvider string
	// StatusEndpoints maps built-in provider types to a JSON-RPC endpoint.
	StatusEndpoints map[string]string
	RateURL         string
	Currency        string
	IPFSGateway     string
}

// SeedSettings returns the settings written on first start.
func SeedSettings(opts Options) map[string]string {
	seed := map[string]string{}
	if opts.DefaultProvider != "" {
		seed[keyProviderType] = opts.DefaultProvider
	}
	if opts.IPFSGateway != "" {
		seed[keyIPFSGateway] = opts.IPFSGateway
	}
	if opts.Currency != "" {
		seed[keyCurrencyCode] = strings.ToLower(opts.Currency)
	}
	return seed
}

// Engine bundles every controller over one database.
type Engine struct {
	Keyring       *KeyringController
	Network       *NetworkController
	Preferences   *PreferencesController
	Transactions  *TransactionController
	CurrencyRate  *CurrencyRateController
	NetworkStatus *NetworkStatusController
	Assets        *AssetsController
	Phishing      *PhishingController
}

func New(db *sql.DB, opts Options) *Engine {
	settings := repository.NewSettingsRepo(db)
	keyring := NewKeyringController(settings)
	network := NewNetworkController(settings, opts.DefaultProvider)
	return &Engine{
		Keyring:       keyring,
		Network:       network,
		Preferences:   NewPreferencesController(settings, repository.NewFrequentRPCRepo(db), keyring),
		Transactions:  NewTransactionController(repository.NewTransactionRepo(db), network),
		CurrencyRate:  NewCurrencyRateController(settings, opts.HTTPClient, opts.RateURL, opts.Currency),
		NetworkStatus: NewNetworkStatusController(opts.HTTPClient, network, opts.StatusEndpoints),
		Assets:        NewAssetsController(repository.NewTokenRepo(db), network),
		Phishing:      NewPhishingController(settings),
	}
}

// BackgroundState reads the current state of every controller.
func (e *Engine) BackgroundState(ctx context.Context) (State, error) {
	var (
		st  State
		err error
	)
	if st.KeyringController, err = e.Keyring.State(ctx); err != nil {
		return State{}, fmt.Errorf("keyring state: %w", err)
	}
	if st.NetworkController, err = e.Network.State(ctx); err != nil {
		return State{}, fmt.Errorf("network state: %w", err)
	}
	if st.PreferencesController, err = e.Preferences.State(ctx); err != nil {
		return State{}, fmt.Errorf("preferences state: %w", err)
	}
	if st.TransactionController, err = e.Transactions.State(ctx); err != nil {
		return State{}, fmt.Errorf("transaction state: %w", err)
	}
	if st.CurrencyRateController, err = e.CurrencyRate.State(ctx); err != nil {
		return State{}, fmt.Errorf("currency state: %w", err)
	}
	st.NetworkStatusController = e.NetworkStatus.State()
	if st.AssetsController, err = e.Assets.State(ctx); err != nil {
		return State{}, fmt.Errorf("assets state: %w", err)
	}
	st.AssetsContractController = assetsContractState()
	st.AssetsDetectionController = assetsDetectionState()
	if st.PhishingController, err = e.Phishing.State(ctx); err != nil {
		return State{}, fmt.Errorf("phishing state: %w", err)
	}
	return st, nil
}
