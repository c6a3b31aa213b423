// Package tui is the terminal front end: a stack of screens driven by the
// bubbletea update loop.
package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/decred/slog"
	"github.com/google/uuid"

	"github.com/jask/jaskwallet/internal/database/repository"
	"github.com/jask/jaskwallet/internal/nav"
	"github.com/jask/jaskwallet/internal/service"
)

var log = slog.Disabled

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(logger slog.Logger) {
	log = logger
}

// Screen is one entry on the stack. Update returns true to close itself.
type Screen interface {
	Route() nav.Route
	Visit() string
	Title() string
	Update(msg tea.Msg) (Screen, tea.Cmd, bool)
	View(width, height int) string
}

// TransactionLister lists history for the active network.
type TransactionLister interface {
	Transactions(ctx context.Context) ([]repository.Transaction, error)
}

// UserChecker reports whether a wallet was restored before.
type UserChecker interface {
	IsExistingUser() bool
}

// Deps are the services the screens call.
type Deps struct {
	AppName      string
	Restore      *service.RestoreService
	Settings     *service.SettingsService
	Advanced     *service.AdvancedService
	Diagnostics  *service.DiagnosticsService
	State        service.StateReader
	Transactions TransactionLister
	Users        UserChecker
}

type Model struct {
	ctx       context.Context
	deps      Deps
	router    *Router
	screens   ScreenStack
	width     int
	height    int
	status    string
	statusErr bool
}

func NewModel(ctx context.Context, deps Deps, router *Router) Model {
	if deps.AppName == "" {
		deps.AppName = "JaskWallet"
	}
	return Model{
		ctx:    ctx,
		deps:   deps,
		router: router,
		width:  100,
		height: 32,
	}
}

// Init opens the entry screen and starts listening for navigation requests
// from services.
func (m Model) Init() tea.Cmd {
	return tea.Batch(navCmd(nav.Entry, nil, false), m.router.wait())
}

func (m *Model) SetStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) SetError(err error) {
	if err == nil {
		m.status = ""
		m.statusErr = false
		return
	}
	m.status = err.Error()
	m.statusErr = true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.updateTop(msg)
	case StatusMsg:
		m.status = msg.Text
		m.statusErr = msg.IsErr
		return m, nil
	case routerMsg:
		cmd := m.apply(msg.navMsg)
		return m, tea.Batch(cmd, m.router.wait())
	case navMsg:
		return m, m.apply(msg)
	case visitMsg:
		i := m.screens.IndexOfVisit(msg.visitID())
		if i < 0 {
			log.Debugf("Dropping %T for closed screen", msg)
			return m, nil
		}
		next, cmd, pop := m.screens.items[i].screen.Update(msg)
		m.screens.Set(i, next)
		if pop && i == m.screens.Len()-1 {
			m.pop()
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) updateTop(msg tea.Msg) (tea.Model, tea.Cmd) {
	top := m.screens.Top()
	if top == nil {
		return m, nil
	}
	next, cmd, pop := top.Update(msg)
	m.screens.Set(m.screens.Len()-1, next)
	if pop {
		m.pop()
	}
	return m, cmd
}

// pop closes the top screen unless it is the last one.
func (m *Model) pop() {
	if m.screens.Len() > 1 {
		m.screens.Pop()
	}
}

// apply performs a navigation request and returns the new screen's
// activation command.
func (m *Model) apply(req navMsg) tea.Cmd {
	switch {
	case nav.IsRoot(req.route):
		m.screens.Truncate(0)
	case !req.push:
		if i := m.screens.IndexOfRoute(req.route); i >= 0 {
			m.screens.Truncate(i)
		}
	}
	screen, cancel, cmd := m.open(req.route, req.params)
	m.screens.Push(screen, cancel)
	m.status, m.statusErr = "", false
	log.Debugf("Navigated to %s (stack %v)", req.route, m.screens.Routes())
	return cmd
}

func (m *Model) open(route nav.Route, params nav.Params) (Screen, context.CancelFunc, tea.Cmd) {
	ctx, cancel := context.WithCancel(m.ctx)
	v := visit(uuid.NewString())
	var (
		s   Screen
		cmd tea.Cmd
	)
	switch route {
	case nav.Entry:
		s, cmd = newEntryScreen(ctx, v, m.deps)
	case nav.HomeNav, nav.WalletView:
		s, cmd = newWalletScreen(ctx, v, route, m.deps)
	case nav.ImportFromSeed:
		s, cmd = newImportScreen(ctx, v, m.deps.Restore)
	case nav.Settings:
		s, cmd = newSettingsScreen(ctx, v, m.deps.Settings)
	case nav.AdvancedSettings:
		s, cmd = newAdvancedScreen(ctx, v, m.deps)
	default:
		s = newPlaceholderScreen(v, route, params)
	}
	return s, cancel, cmd
}

func (m Model) View() string {
	top := m.screens.Top()
	if top == nil {
		return ""
	}
	header := headerBarStyle.Render(m.deps.AppName + " · " + top.Title())
	body := top.View(m.width, m.height-2)

	status := m.status
	style := statusBarStyle
	if m.statusErr {
		style = statusErrBarStyle
	}
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")
	b.WriteString(appStyle.Render(body))
	if status != "" {
		b.WriteString("\n\n")
		b.WriteString(style.Render(" " + status + " "))
	}
	return b.String()
}
