package service

import (
	"context"
	"strings"

	"github.com/jask/jaskwallet/internal/nav"
	"github.com/jask/jaskwallet/internal/store"
)

// AdvancedService backs the advanced settings screen.
type AdvancedService struct {
	Transactions TransactionWiper
	Preferences  PreferenceWriter
	Network      NetworkTargeter
	Store        Dispatcher
	Prober       *GatewayProber
	Gateways     []GatewayCandidate
	Nav          nav.Navigator
}

// ResetTransactionHistory wipes the history of every network and returns
// to the wallet. Callers confirm with the user first.
func (s *AdvancedService) ResetTransactionHistory(ctx context.Context) error {
	if err := s.Transactions.WipeTransactions(ctx, true); err != nil {
		log.Errorf("Reset transaction history: %v", err)
		return err
	}
	s.Nav.Navigate(nav.WalletView, nil)
	return nil
}

// ProbeGateways returns the reachable configured gateways sorted by key.
func (s *AdvancedService) ProbeGateways(ctx context.Context) []GatewayCandidate {
	return s.Prober.Probe(ctx, s.Gateways)
}

func (s *AdvancedService) SelectGateway(ctx context.Context, gatewayURL string) error {
	return s.Preferences.SetIPFSGateway(ctx, gatewayURL)
}

// SubmitRPCURL validates the draft and, when it passes, registers the
// endpoint, switches the network to it and returns to the wallet. An empty
// draft is left alone.
func (s *AdvancedService) SubmitRPCURL(ctx context.Context, d RPCDraft) (RPCDraft, error) {
	if strings.TrimSpace(d.URL) == "" {
		return d, nil
	}
	endpoint, err := ValidateRPCURL(d.URL)
	if err != nil {
		d.Validated = false
		d.Message = KindOf(err).Message()
		return d, err
	}
	if err := s.Preferences.AddToFrequentRPCList(ctx, endpoint); err != nil {
		d.Message = err.Error()
		return d, err
	}
	if err := s.Network.SetRPCTarget(ctx, endpoint); err != nil {
		d.Message = err.Error()
		return d, err
	}
	s.Nav.Navigate(nav.WalletView, nil)
	return RPCDraft{URL: endpoint, Validated: true}, nil
}

func (s *AdvancedService) ToggleHexData(ctx context.Context, enabled bool) error {
	return s.Store.Dispatch(ctx, store.SetShowHexData{Show: enabled})
}

func (s *AdvancedService) OpenSyncWithExtension() {
	s.Nav.Push(nav.SyncWithExtension, nav.Params{"existingUser": "true"})
}
