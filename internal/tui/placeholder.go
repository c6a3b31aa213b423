package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jaskwallet/internal/nav"
)

var routeTitles = map[nav.Route]string{
	nav.NetworkSettings:   "Networks",
	nav.SeedWords:         "Seed words",
	nav.SyncWithExtension: "Sync with extension",
}

// placeholderScreen stands in for routes without a terminal view.
type placeholderScreen struct {
	v      visit
	route  nav.Route
	params nav.Params
}

func newPlaceholderScreen(v visit, route nav.Route, params nav.Params) Screen {
	return placeholderScreen{v: v, route: route, params: params}
}

func (s placeholderScreen) Route() nav.Route { return s.route }
func (s placeholderScreen) Visit() string    { return string(s.v) }

func (s placeholderScreen) Title() string {
	if t, ok := routeTitles[s.route]; ok {
		return t
	}
	return string(s.route)
}

func (s placeholderScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		return s, nil, true
	}
	return s, nil, false
}

func (s placeholderScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.Title()))
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Not available in the terminal client."))
	b.WriteString("\n")
	keys := make([]string, 0, len(s.params))
	for k := range s.params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render(k+":"), s.params[k])
	}
	b.WriteString("\n" + help("esc", "back"))
	return b.String()
}
