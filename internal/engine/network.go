package engine

import (
	"context"
	"fmt"

	"github.com/jask/jaskwallet/internal/database/repository"
)

// Provider types.
const (
	Mainnet = "mainnet"
	Ropsten = "ropsten"
	Kovan   = "kovan"
	Rinkeby = "rinkeby"
	RPC     = "rpc"

	keyProviderType   = "network.provider.type"
	keyProviderTarget = "network.provider.rpcTarget"
)

// NetworkInfo describes a built-in network.
type NetworkInfo struct {
	Name      string
	NetworkID string
	Color     string
}

// Networks lists the built-in provider types.
var Networks = map[string]NetworkInfo{
	Mainnet: {Name: "Ethereum Main Network", NetworkID: "1", Color: "#3cc29e"},
	Ropsten: {Name: "Ropsten Test Network", NetworkID: "3", Color: "#ff4a8d"},
	Kovan:   {Name: "Kovan Test Network", NetworkID: "42", Color: "#7057ff"},
	Rinkeby: {Name: "Rinkeby Test Network", NetworkID: "4", Color: "#f6c343"},
	RPC:     {Name: "Private Network", Color: "#9b9b9b"},
}

// NetworkName returns the display name for a provider type. Unknown types
// are shown as a private network.
func NetworkName(providerType string) string {
	if info, ok := Networks[providerType]; ok {
		return info.Name
	}
	return Networks[RPC].Name
}

// NetworkController tracks the active provider.
type NetworkController struct {
	settings        *repository.SettingsRepo
	defaultProvider string
}

func NewNetworkController(settings *repository.SettingsRepo, defaultProvider string) *NetworkController {
	if defaultProvider == "" {
		defaultProvider = Mainnet
	}
	return &NetworkController{settings: settings, defaultProvider: defaultProvider}
}

func (n *NetworkController) Provider(ctx context.Context) (Provider, error) {
	typ, ok, err := n.settings.Get(ctx, keyProviderType)
	if err != nil {
		return Provider{}, err
	}
	if !ok {
		typ = n.defaultProvider
	}
	p := Provider{Type: typ}
	if typ == RPC {
		if p.RPCTarget, _, err = n.settings.Get(ctx, keyProviderTarget); err != nil {
			return Provider{}, err
		}
	}
	return p, nil
}

// SetProviderType switches to a built-in network.
func (n *NetworkController) SetProviderType(ctx context.Context, typ string) error {
	if _, ok := Networks[typ]; !ok || typ == RPC {
		return fmt.Errorf("engine: unknown provider type %q", typ)
	}
	return n.settings.Set(ctx, keyProviderType, typ)
}

// SetRPCTarget switches to a custom RPC endpoint.
func (n *NetworkController) SetRPCTarget(ctx context.Context, rpcURL string) error {
	if err := n.settings.Set(ctx, keyProviderTarget, rpcURL); err != nil {
		return err
	}
	if err := n.settings.Set(ctx, keyProviderType, RPC); err != nil {
		return err
	}
	log.Infof("Switched provider to RPC target %s", rpcURL)
	return nil
}

// NetworkKey identifies the network transactions are recorded against.
func (p Provider) NetworkKey() string {
	if p.Type == RPC {
		return p.RPCTarget
	}
	return p.Type
}

func (n *NetworkController) State(ctx context.Context) (NetworkState, error) {
	p, err := n.Provider(ctx)
	if err != nil {
		return NetworkState{}, err
	}
	return NetworkState{Provider: p, Network: Networks[p.Type].NetworkID}, nil
}
