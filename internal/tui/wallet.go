package tui

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/jask/jaskwallet/internal/database/repository"
	"github.com/jask/jaskwallet/internal/nav"
	"github.com/jask/jaskwallet/internal/service"
	"github.com/jask/jaskwallet/internal/store"
)

// walletScreen is the main wallet view.
type walletScreen struct {
	ctx   context.Context
	v     visit
	route nav.Route
	deps  Deps

	loaded       bool
	state        store.FullState
	transactions []repository.Transaction
	err          string
}

func newWalletScreen(ctx context.Context, v visit, route nav.Route, deps Deps) (Screen, tea.Cmd) {
	s := walletScreen{ctx: ctx, v: v, route: route, deps: deps}
	return s, s.load()
}

func (s walletScreen) Route() nav.Route { return s.route }
func (s walletScreen) Visit() string    { return string(s.v) }
func (s walletScreen) Title() string    { return "Wallet" }

func (s walletScreen) load() tea.Cmd {
	ctx, deps, v := s.ctx, s.deps, s.v
	return func() tea.Msg {
		full, err := deps.State.FullState(ctx)
		if err != nil {
			return walletMsg{visit: v, err: err}
		}
		txs, err := deps.Transactions.Transactions(ctx)
		return walletMsg{visit: v, state: full, transactions: txs, err: err}
	}
}

func (s walletScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case walletMsg:
		if msg.err != nil {
			s.err = msg.err.Error()
			return s, nil, false
		}
		s.loaded, s.err = true, ""
		s.state, s.transactions = msg.state, msg.transactions
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return s, tea.Quit, false
		case "s":
			return s, navCmd(nav.Settings, nil, true), false
		case "a":
			return s, navCmd(nav.AdvancedSettings, nil, true), false
		case "r":
			return s, s.load(), false
		}
	}
	return s, nil, false
}

func (s walletScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Wallet"))
	b.WriteString("\n\n")
	if !s.loaded {
		if s.err != "" {
			b.WriteString(errorStyle.Render(s.err))
		} else {
			b.WriteString(labelStyle.Render("loading..."))
		}
		b.WriteString("\n\n" + help("r", "retry", "q", "quit"))
		return b.String()
	}

	bg := s.state.Engine.BackgroundState
	sum := service.Summarize(bg)
	account := bg.PreferencesController.SelectedAddress
	if account == "" {
		account = "no account"
	}
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Account"), account)
	fmt.Fprintf(&b, "%s %s (%s)\n", labelStyle.Render("Network"), sum.NetworkName, sum.NetworkStatus)
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("ETH    "), sum.RateInfo())

	b.WriteString(titleStyle.Render("Transactions"))
	b.WriteString("\n")
	if len(s.transactions) == 0 {
		b.WriteString(labelStyle.Render("You have no transactions!") + "\n")
	}
	limit := height - 12
	if limit < 3 {
		limit = 3
	}
	for i, tx := range s.transactions {
		if i >= limit {
			fmt.Fprintf(&b, "  ... %s more\n", humanize.Comma(int64(len(s.transactions)-i)))
			break
		}
		line := fmt.Sprintf("%-10s %s → %s  %s wei  %s", tx.Status, shortAddr(tx.From), shortAddr(tx.To), formatWei(tx.ValueWei), humanize.Time(tx.CreatedAt))
		if s.state.Settings.ShowHexData && tx.Hash != nil {
			line += "  " + *tx.Hash
		}
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n" + help("s", "settings", "a", "advanced", "r", "refresh", "q", "quit"))
	return b.String()
}

func shortAddr(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

func formatWei(v string) string {
	n, ok := new(big.Int).SetString(v, 10)
	if !ok {
		return v
	}
	return humanize.BigComma(n)
}
