package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jaskwallet/internal/nav"
)

// entryScreen is shown at start and after logout.
type entryScreen struct {
	v            visit
	appName      string
	checked      bool
	existingUser bool
}

func newEntryScreen(_ context.Context, v visit, deps Deps) (Screen, tea.Cmd) {
	s := entryScreen{v: v, appName: deps.AppName}
	users := deps.Users
	return s, func() tea.Msg {
		return entryMsg{visit: v, existingUser: users != nil && users.IsExistingUser()}
	}
}

func (s entryScreen) Route() nav.Route { return nav.Entry }
func (s entryScreen) Visit() string    { return string(s.v) }
func (s entryScreen) Title() string    { return "Welcome" }

func (s entryScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case entryMsg:
		s.checked, s.existingUser = true, msg.existingUser
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			return s, tea.Quit, false
		case "i":
			return s, navCmd(nav.ImportFromSeed, nil, true), false
		case "w", "enter":
			if s.existingUser {
				return s, navCmd(nav.WalletView, nil, false), false
			}
		}
	}
	return s, nil, false
}

func (s entryScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome to " + s.appName))
	b.WriteString("\n\n")
	if !s.checked {
		b.WriteString(labelStyle.Render("loading..."))
		return b.String()
	}
	if s.existingUser {
		b.WriteString(help("w", "open wallet", "i", "import from seed", "q", "quit"))
	} else {
		b.WriteString("Restore your wallet from its 12 seed words to get started.\n\n")
		b.WriteString(help("i", "import from seed", "q", "quit"))
	}
	return b.String()
}
