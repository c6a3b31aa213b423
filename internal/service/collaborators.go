package service

import (
	"context"

	"github.com/jask/jaskwallet/internal/engine"
	"github.com/jask/jaskwallet/internal/secrets"
	"github.com/jask/jaskwallet/internal/store"
)

// VaultRestorer recreates the wallet vault from a recovery phrase.
type VaultRestorer interface {
	CreateNewVaultAndRestore(ctx context.Context, password, phrase string) error
}

// CredentialStore guards the unlock credential.
type CredentialStore interface {
	SupportedBiometryType() (string, bool)
	StoreCredential(account, secret string, policy secrets.AccessPolicy) error
	ClearCredential() error
}

// FlagStore persists small durable flags.
type FlagStore interface {
	SetFlag(key, value string) error
	RemoveFlag(key string) error
}

// StateReader returns a fresh copy of the app state.
type StateReader interface {
	FullState(ctx context.Context) (store.FullState, error)
}

// Dispatcher applies a store action.
type Dispatcher interface {
	Dispatch(ctx context.Context, a store.Action) error
}

// KeyringReader exposes keyring material for diagnostics.
type KeyringReader interface {
	Keyrings(ctx context.Context) ([]engine.Keyring, error)
}

// TransactionWiper clears transaction history.
type TransactionWiper interface {
	WipeTransactions(ctx context.Context, ignoreNetwork bool) error
}

// PreferenceWriter stores the gateway choice and frequent RPC endpoints.
type PreferenceWriter interface {
	SetIPFSGateway(ctx context.Context, gateway string) error
	AddToFrequentRPCList(ctx context.Context, url string) error
}

// NetworkTargeter switches the active network to a custom endpoint.
type NetworkTargeter interface {
	SetRPCTarget(ctx context.Context, url string) error
}

// Sharer hands a payload to the platform share target.
type Sharer interface {
	Share(ctx context.Context, p SharePayload) error
}
