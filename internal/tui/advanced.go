package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jaskwallet/internal/nav"
	"github.com/jask/jaskwallet/internal/service"
)

type advancedRow int

const (
	rowReset advancedRow = iota
	rowSync
	rowRPC
	rowGateway
	rowHexData
	rowStateLogs
	advancedRows
)

var advancedLabels = map[advancedRow]string{
	rowReset:     "Reset account",
	rowSync:      "Sync with extension",
	rowRPC:       "New RPC URL",
	rowGateway:   "IPFS gateway",
	rowHexData:   "Show hex data",
	rowStateLogs: "State logs",
}

// advancedScreen holds one visit of the advanced settings.
type advancedScreen struct {
	ctx   context.Context
	v     visit
	svc   *service.AdvancedService
	diag  *service.DiagnosticsService
	state service.StateReader

	cursor     advancedRow
	confirming bool
	editing    bool
	draft      service.RPCDraft

	gateway   string
	gateways  []service.GatewayCandidate
	probing   bool
	showHex   bool
	status    string
	statusErr bool
}

func newAdvancedScreen(ctx context.Context, v visit, deps Deps) (Screen, tea.Cmd) {
	s := advancedScreen{
		ctx:     ctx,
		v:       v,
		svc:     deps.Advanced,
		diag:    deps.Diagnostics,
		state:   deps.State,
		probing: true,
	}
	return s, tea.Batch(s.loadState(), s.probeGateways())
}

func (s advancedScreen) Route() nav.Route { return nav.AdvancedSettings }
func (s advancedScreen) Visit() string    { return string(s.v) }
func (s advancedScreen) Title() string    { return "Advanced" }

func (s advancedScreen) loadState() tea.Cmd {
	ctx, reader, v := s.ctx, s.state, s.v
	return func() tea.Msg {
		full, err := reader.FullState(ctx)
		if err != nil {
			return advancedStateMsg{visit: v, err: err}
		}
		return advancedStateMsg{
			visit:       v,
			gateway:     full.Engine.BackgroundState.PreferencesController.IPFSGateway,
			showHexData: full.Settings.ShowHexData,
		}
	}
}

func (s advancedScreen) probeGateways() tea.Cmd {
	ctx, svc, v := s.ctx, s.svc, s.v
	return func() tea.Msg {
		return gatewaysMsg{visit: v, online: svc.ProbeGateways(ctx)}
	}
}

func (s advancedScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case advancedStateMsg:
		if msg.err != nil {
			s.status, s.statusErr = msg.err.Error(), true
			return s, nil, false
		}
		s.gateway, s.showHex = msg.gateway, msg.showHexData
	case gatewaysMsg:
		s.gateways, s.probing = msg.online, false
	case rpcResultMsg:
		s.draft = msg.draft
	case exportMsg:
		if msg.ok {
			s.status, s.statusErr = "State logs shared: "+msg.payload.URL, false
		}
	case actionDoneMsg:
		if msg.err != nil {
			s.status, s.statusErr = msg.err.Error(), true
		} else if msg.text != "" {
			s.status, s.statusErr = msg.text, false
		}
	case tea.KeyMsg:
		switch {
		case s.confirming:
			return s.handleConfirmKey(msg)
		case s.editing:
			return s.handleRPCKey(msg)
		}
		return s.handleKey(msg)
	}
	return s, nil, false
}

func (s advancedScreen) handleConfirmKey(msg tea.KeyMsg) (Screen, tea.Cmd, bool) {
	switch msg.String() {
	case "y", "enter":
		s.confirming = false
		ctx, svc, v := s.ctx, s.svc, s.v
		return s, func() tea.Msg {
			return actionDoneMsg{visit: v, err: svc.ResetTransactionHistory(ctx)}
		}, false
	case "n", "esc":
		s.confirming = false
	}
	return s, nil, false
}

func (s advancedScreen) handleRPCKey(msg tea.KeyMsg) (Screen, tea.Cmd, bool) {
	switch msg.String() {
	case "esc":
		s.editing = false
	case "enter", "tab":
		s.editing = false
		ctx, svc, v, draft := s.ctx, s.svc, s.v, s.draft
		return s, func() tea.Msg {
			d, err := svc.SubmitRPCURL(ctx, draft)
			return rpcResultMsg{visit: v, draft: d, err: err}
		}, false
	case "backspace":
		r := []rune(s.draft.URL)
		if len(r) > 0 {
			s.draft = s.draft.Edit(string(r[:len(r)-1]))
		}
	default:
		if msg.Type == tea.KeyRunes {
			s.draft = s.draft.Edit(s.draft.URL + string(msg.Runes))
		}
	}
	return s, nil, false
}

func (s advancedScreen) handleKey(msg tea.KeyMsg) (Screen, tea.Cmd, bool) {
	switch msg.String() {
	case "esc":
		return s, nil, true
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < advancedRows-1 {
			s.cursor++
		}
	case "left", "h":
		if s.cursor == rowGateway {
			return s.stepGateway(-1)
		}
	case "right", "l":
		if s.cursor == rowGateway {
			return s.stepGateway(1)
		}
	case "enter", " ":
		return s.activate()
	}
	return s, nil, false
}

func (s advancedScreen) activate() (Screen, tea.Cmd, bool) {
	ctx, v := s.ctx, s.v
	switch s.cursor {
	case rowReset:
		s.confirming = true
	case rowSync:
		svc := s.svc
		return s, func() tea.Msg {
			svc.OpenSyncWithExtension()
			return nil
		}, false
	case rowRPC:
		s.editing = true
	case rowGateway:
		return s.stepGateway(1)
	case rowHexData:
		s.showHex = !s.showHex
		svc, show := s.svc, s.showHex
		return s, func() tea.Msg {
			return actionDoneMsg{visit: v, err: svc.ToggleHexData(ctx, show)}
		}, false
	case rowStateLogs:
		diag := s.diag
		return s, func() tea.Msg {
			p, ok := diag.Export(ctx)
			return exportMsg{visit: v, payload: p, ok: ok}
		}, false
	}
	return s, nil, false
}

// stepGateway selects the next reachable gateway.
func (s advancedScreen) stepGateway(step int) (Screen, tea.Cmd, bool) {
	if len(s.gateways) == 0 {
		return s, nil, false
	}
	i := -1
	for j, g := range s.gateways {
		if g.URL == s.gateway {
			i = j
			break
		}
	}
	switch {
	case i < 0 && step < 0:
		i = len(s.gateways) - 1
	case i < 0:
		i = 0
	default:
		i = (i + step + len(s.gateways)) % len(s.gateways)
	}
	s.gateway = s.gateways[i].URL
	ctx, svc, v, url := s.ctx, s.svc, s.v, s.gateway
	return s, func() tea.Msg {
		return actionDoneMsg{visit: v, err: svc.SelectGateway(ctx, url)}
	}, false
}

func (s advancedScreen) gatewayLabel() string {
	if s.probing {
		return "checking gateways..."
	}
	for _, g := range s.gateways {
		if g.URL == s.gateway {
			return g.Label + " (" + g.URL + ")"
		}
	}
	if len(s.gateways) == 0 {
		return "Your current IPFS gateway is down"
	}
	return s.gateway
}

func (s advancedScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Advanced"))
	b.WriteString("\n\n")
	for row := advancedRow(0); row < advancedRows; row++ {
		label := advancedLabels[row]
		value := ""
		switch row {
		case rowRPC:
			value = s.draft.URL
			if s.editing {
				value = focusedFieldStyle.Render(value + " ")
			}
		case rowGateway:
			value = s.gatewayLabel()
		case rowHexData:
			value = "off"
			if s.showHex {
				value = "on"
			}
		}
		line := label
		if value != "" {
			line += ": " + value
		}
		if row == s.cursor {
			b.WriteString(cursorStyle.Render("> ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
		if row == rowRPC && s.draft.Message != "" {
			b.WriteString("    " + warningStyle.Render(s.draft.Message) + "\n")
		}
	}
	if s.status != "" {
		style := labelStyle
		if s.statusErr {
			style = errorStyle
		}
		b.WriteString("\n" + style.Render(s.status) + "\n")
	}
	b.WriteString("\n")
	switch {
	case s.editing:
		b.WriteString(help("enter", "save", "esc", "cancel"))
	default:
		b.WriteString(help("enter", "select", "←/→", "change gateway", "esc", "back"))
	}
	if s.confirming {
		b.WriteString("\n\n")
		b.WriteString(modalStyle.Render(
			titleStyle.Render("Reset account?") + "\n" +
				"This clears your transaction history on every network.\n" +
				help("y", "Yes, reset", "n", "Cancel")))
	}
	return b.String()
}
