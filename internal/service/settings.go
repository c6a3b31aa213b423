package service

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jask/jaskwallet/internal/engine"
	"github.com/jask/jaskwallet/internal/nav"
)

// Summary is what the settings screen shows about the engine.
type Summary struct {
	NetworkName    string
	ConversionRate string
	Currency       string
	NetworkStatus  string
}

// RateInfo is the rate line, e.g. "1,834.25 USD".
func (s Summary) RateInfo() string {
	return s.ConversionRate + " " + s.Currency
}

var (
	ratePrinter = message.NewPrinter(language.English)
	statusCaser = cases.Title(language.Und)
)

// Summarize projects engine state into the settings summary.
func Summarize(st engine.State) Summary {
	provider := st.NetworkController.Provider.Type
	status := st.NetworkStatusController.NetworkStatus[provider]
	if status == "" {
		status = engine.StatusUnknown
	}
	return Summary{
		NetworkName:    engine.NetworkName(provider),
		ConversionRate: ratePrinter.Sprintf("%.2f", st.CurrencyRateController.ConversionRate),
		Currency:       strings.ToUpper(st.CurrencyRateController.CurrentCurrency),
		NetworkStatus:  statusCaser.String(status),
	}
}

// CredentialClearer removes the stored unlock credential.
type CredentialClearer interface {
	ClearCredential() error
}

// SettingsService backs the settings screen actions.
type SettingsService struct {
	State       StateReader
	Credentials CredentialClearer
	Nav         nav.Navigator
}

// Summary reads fresh state and projects it.
func (s *SettingsService) Summary(ctx context.Context) (Summary, error) {
	full, err := s.State.FullState(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(full.Engine.BackgroundState), nil
}

// Logout clears the stored credential and returns to the entry screen.
func (s *SettingsService) Logout() error {
	if err := s.Credentials.ClearCredential(); err != nil {
		log.Errorf("Logout failed to clear credential: %v", err)
		return err
	}
	log.Infof("Logged out")
	s.Nav.Navigate(nav.Entry, nil)
	return nil
}

func (s *SettingsService) OpenNetworkSettings() {
	s.Nav.Push(nav.NetworkSettings, nil)
}

func (s *SettingsService) OpenSeedWords() {
	s.Nav.Push(nav.SeedWords, nil)
}

func (s *SettingsService) OpenSyncWithExtension() {
	s.Nav.Push(nav.SyncWithExtension, nav.Params{"existingUser": "true"})
}

func (s *SettingsService) OpenAdvanced() {
	s.Nav.Push(nav.AdvancedSettings, nil)
}
