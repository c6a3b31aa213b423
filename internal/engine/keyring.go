package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tyler-smith/go-bip39"

	"github.com/jask/jaskwallet/internal/database/repository"
)

const (
	// HDKeyTree is the keyring type produced by restoring from a phrase.
	HDKeyTree = "HD Key Tree"

	keyVault    = "keyring.vault"
	keyAccounts = "keyring.accounts"
)

var (
	ErrNoVault         = errors.New("engine: no vault")
	ErrInvalidMnemonic = errors.New("engine: invalid mnemonic")
)

// KeyringController owns the encrypted vault.
type KeyringController struct {
	settings *repository.SettingsRepo

	mu       sync.Mutex
	unlocked bool
}

func NewKeyringController(settings *repository.SettingsRepo) *KeyringController {
	return &KeyringController{settings: settings}
}

// CreateNewVaultAndRestore replaces any existing vault with one holding a
// single HD keyring derived from phrase, encrypted with password.
func (k *KeyringController) CreateNewVaultAndRestore(ctx context.Context, password, phrase string) error {
	phrase = strings.Join(strings.Fields(phrase), " ")
	seed, err := bip39.NewSeedWithErrorChecking(phrase, "")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	account, err := deriveAddress(seed, 0)
	if err != nil {
		return err
	}

	sealed, err := encryptVault(password, vaultContents{
		Keyrings: []vaultKeyring{{Type: HDKeyTree, Mnemonic: phrase, Accounts: 1}},
	})
	if err != nil {
		return err
	}
	accounts, err := jsonAPI.Marshal([]string{account})
	if err != nil {
		return err
	}
	if err := k.settings.Set(ctx, keyVault, sealed); err != nil {
		return fmt.Errorf("failed to persist vault: %w", err)
	}
	if err := k.settings.Set(ctx, keyAccounts, string(accounts)); err != nil {
		return fmt.Errorf("failed to persist accounts: %w", err)
	}

	k.mu.Lock()
	k.unlocked = true
	k.mu.Unlock()
	log.Infof("Restored vault with account %s", account)
	return nil
}

// Unlock decrypts the vault to verify password.
func (k *KeyringController) Unlock(ctx context.Context, password string) error {
	sealed, ok, err := k.settings.Get(ctx, keyVault)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoVault
	}
	if _, err := decryptVault(password, sealed); err != nil {
		return err
	}
	k.mu.Lock()
	k.unlocked = true
	k.mu.Unlock()
	return nil
}

func (k *KeyringController) Lock() {
	k.mu.Lock()
	k.unlocked = false
	k.mu.Unlock()
}

// Keyrings returns the public view of every keyring in the vault.
func (k *KeyringController) Keyrings(ctx context.Context) ([]Keyring, error) {
	raw, ok, err := k.settings.Get(ctx, keyAccounts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Keyring{}, nil
	}
	var accounts []string
	if err := jsonAPI.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode accounts: %w", err)
	}
	return []Keyring{{Type: HDKeyTree, Accounts: accounts}}, nil
}

// SelectedAddress is the first account of the first keyring, if any.
func (k *KeyringController) SelectedAddress(ctx context.Context) (string, error) {
	rings, err := k.Keyrings(ctx)
	if err != nil || len(rings) == 0 || len(rings[0].Accounts) == 0 {
		return "", err
	}
	return rings[0].Accounts[0], nil
}

func (k *KeyringController) State(ctx context.Context) (KeyringState, error) {
	_, ok, err := k.settings.Get(ctx, keyVault)
	if err != nil {
		return KeyringState{}, err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return KeyringState{HasVault: ok, IsUnlocked: k.unlocked}, nil
}
