package engine

import (
	"context"

	"github.com/jask/jaskwallet/internal/database/repository"
)

const (
	keyIPFSGateway = "preferences.ipfsGateway"

	// DefaultIPFSGateway is used until the user picks another gateway.
	DefaultIPFSGateway = "https://ipfs.io/ipfs/"
)

// PreferencesController holds user preferences that live in the engine.
type PreferencesController struct {
	settings *repository.SettingsRepo
	rpcs     *repository.FrequentRPCRepo
	keyring  *KeyringController
}

func NewPreferencesController(settings *repository.SettingsRepo, rpcs *repository.FrequentRPCRepo, keyring *KeyringController) *PreferencesController {
	return &PreferencesController{settings: settings, rpcs: rpcs, keyring: keyring}
}

func (p *PreferencesController) IPFSGateway(ctx context.Context) (string, error) {
	gw, ok, err := p.settings.Get(ctx, keyIPFSGateway)
	if err != nil {
		return "", err
	}
	if !ok || gw == "" {
		return DefaultIPFSGateway, nil
	}
	return gw, nil
}

func (p *PreferencesController) SetIPFSGateway(ctx context.Context, gateway string) error {
	return p.settings.Set(ctx, keyIPFSGateway, gateway)
}

// AddToFrequentRPCList records url at the front of the list.
func (p *PreferencesController) AddToFrequentRPCList(ctx context.Context, url string) error {
	return p.rpcs.Add(ctx, url)
}

func (p *PreferencesController) RemoveFromFrequentRPCList(ctx context.Context, url string) error {
	return p.rpcs.Remove(ctx, url)
}

func (p *PreferencesController) FrequentRPCList(ctx context.Context) ([]string, error) {
	rows, err := p.rpcs.List(ctx)
	if err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(rows))
	for _, r := range rows {
		urls = append(urls, r.URL)
	}
	return urls, nil
}

func (p *PreferencesController) State(ctx context.Context) (PreferencesState, error) {
	gw, err := p.IPFSGateway(ctx)
	if err != nil {
		return PreferencesState{}, err
	}
	list, err := p.FrequentRPCList(ctx)
	if err != nil {
		return PreferencesState{}, err
	}
	addr, err := p.keyring.SelectedAddress(ctx)
	if err != nil {
		return PreferencesState{}, err
	}
	return PreferencesState{IPFSGateway: gw, FrequentRPCList: list, SelectedAddress: addr}, nil
}
