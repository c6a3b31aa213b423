package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jaskwallet/internal/nav"
	"github.com/jask/jaskwallet/internal/service"
)

type settingsItem struct {
	label string
	run   func(svc *service.SettingsService) error
}

var settingsItems = []settingsItem{
	{"Network", func(svc *service.SettingsService) error { svc.OpenNetworkSettings(); return nil }},
	{"Seed words", func(svc *service.SettingsService) error { svc.OpenSeedWords(); return nil }},
	{"Sync with extension", func(svc *service.SettingsService) error { svc.OpenSyncWithExtension(); return nil }},
	{"Advanced", func(svc *service.SettingsService) error { svc.OpenAdvanced(); return nil }},
	{"Logout", func(svc *service.SettingsService) error { return svc.Logout() }},
}

type settingsScreen struct {
	ctx     context.Context
	v       visit
	svc     *service.SettingsService
	summary service.Summary
	loaded  bool
	cursor  int
	err     string
}

func newSettingsScreen(ctx context.Context, v visit, svc *service.SettingsService) (Screen, tea.Cmd) {
	s := settingsScreen{ctx: ctx, v: v, svc: svc}
	return s, s.load()
}

func (s settingsScreen) load() tea.Cmd {
	ctx, svc, v := s.ctx, s.svc, s.v
	return func() tea.Msg {
		sum, err := svc.Summary(ctx)
		return summaryMsg{visit: v, summary: sum, err: err}
	}
}

func (s settingsScreen) Route() nav.Route { return nav.Settings }
func (s settingsScreen) Visit() string    { return string(s.v) }
func (s settingsScreen) Title() string    { return "Settings" }

func (s settingsScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case summaryMsg:
		if msg.err != nil {
			s.err = msg.err.Error()
			return s, nil, false
		}
		s.summary, s.loaded, s.err = msg.summary, true, ""
	case actionDoneMsg:
		if msg.err != nil {
			s.err = msg.err.Error()
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, nil, true
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(settingsItems)-1 {
				s.cursor++
			}
		case "r":
			return s, s.load(), false
		case "enter":
			item := settingsItems[s.cursor]
			svc, v := s.svc, s.v
			return s, func() tea.Msg {
				return actionDoneMsg{visit: v, err: item.run(svc)}
			}, false
		}
	}
	return s, nil, false
}

func (s settingsScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")
	if s.loaded {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("ETH           "), s.summary.RateInfo())
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Network       "), s.summary.NetworkName)
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Network status"), s.summary.NetworkStatus)
	} else if s.err == "" {
		b.WriteString(labelStyle.Render("loading...") + "\n")
	}
	b.WriteString("\n")
	for i, item := range settingsItems {
		if i == s.cursor {
			b.WriteString(cursorStyle.Render("> "+item.label) + "\n")
			continue
		}
		b.WriteString("  " + item.label + "\n")
	}
	if s.err != "" {
		b.WriteString("\n" + errorStyle.Render(s.err) + "\n")
	}
	b.WriteString("\n" + help("enter", "open", "r", "refresh", "esc", "back"))
	return b.String()
}
