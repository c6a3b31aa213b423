package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jaskwallet/internal/database/repository"
	"github.com/jask/jaskwallet/internal/nav"
	"github.com/jask/jaskwallet/internal/service"
	"github.com/jask/jaskwallet/internal/store"
)

type StatusMsg struct {
	Text  string
	IsErr bool
}

func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		if err == nil {
			return StatusMsg{}
		}
		return StatusMsg{Text: err.Error(), IsErr: true}
	}
}

// navMsg asks the Model to change screens.
type navMsg struct {
	route  nav.Route
	params nav.Params
	push   bool
}

func navCmd(route nav.Route, params nav.Params, push bool) tea.Cmd {
	return func() tea.Msg { return navMsg{route: route, params: params, push: push} }
}

// routerMsg is a navMsg that came through the Router channel.
type routerMsg struct{ navMsg }

// visitMsg results are only applied to the screen visit that started them.
type visitMsg interface {
	visitID() string
}

type visit string

func (v visit) visitID() string { return string(v) }

type biometryMsg struct {
	visit
	probe service.BiometryProbe
}

type restoreDoneMsg struct {
	visit
	outcome service.Outcome
	err     error
}

type summaryMsg struct {
	visit
	summary service.Summary
	err     error
}

type actionDoneMsg struct {
	visit
	text string
	err  error
}

type advancedStateMsg struct {
	visit
	gateway     string
	showHexData bool
	err         error
}

type gatewaysMsg struct {
	visit
	online []service.GatewayCandidate
}

type rpcResultMsg struct {
	visit
	draft service.RPCDraft
	err   error
}

type exportMsg struct {
	visit
	payload service.SharePayload
	ok      bool
}

type walletMsg struct {
	visit
	state        store.FullState
	transactions []repository.Transaction
	err          error
}

type entryMsg struct {
	visit
	existingUser bool
}
