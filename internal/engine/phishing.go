package engine

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jask/jaskwallet/internal/database/repository"
)

const keyPhishingWhitelist = "phishing.whitelist"

// PhishingController holds origins the user chose to visit despite a
// phishing warning.
type PhishingController struct {
	settings *repository.SettingsRepo
}

func NewPhishingController(settings *repository.SettingsRepo) *PhishingController {
	return &PhishingController{settings: settings}
}

// BypassPhishingDetection whitelists origin.
func (p *PhishingController) BypassPhishingDetection(ctx context.Context, origin string) error {
	list, err := p.whitelist(ctx)
	if err != nil {
		return err
	}
	origin = strings.ToLower(origin)
	if slices.Contains(list, origin) {
		return nil
	}
	raw, err := jsonAPI.Marshal(append(list, origin))
	if err != nil {
		return err
	}
	return p.settings.Set(ctx, keyPhishingWhitelist, string(raw))
}

func (p *PhishingController) whitelist(ctx context.Context) ([]string, error) {
	raw, ok, err := p.settings.Get(ctx, keyPhishingWhitelist)
	if err != nil || !ok {
		return []string{}, err
	}
	var list []string
	if err := jsonAPI.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("failed to decode whitelist: %w", err)
	}
	return list, nil
}

func (p *PhishingController) State(ctx context.Context) (PhishingState, error) {
	list, err := p.whitelist(ctx)
	if err != nil {
		return PhishingState{}, err
	}
	return PhishingState{Whitelist: list}, nil
}
