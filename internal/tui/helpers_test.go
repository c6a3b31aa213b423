package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jaskwallet/internal/database/repository"
	"github.com/jask/jaskwallet/internal/nav"
	"github.com/jask/jaskwallet/internal/secrets"
	"github.com/jask/jaskwallet/internal/service"
	"github.com/jask/jaskwallet/internal/store"
)

const testPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func keyMsg(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// runCmd executes cmd and any batched commands, returning the messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func typeText(s Screen, text string) Screen {
	for _, r := range text {
		if r == ' ' {
			s, _, _ = s.Update(key(tea.KeySpace))
			continue
		}
		s, _, _ = s.Update(keyMsg(string(r)))
	}
	return s
}

type fakeVault struct {
	err   error
	calls int
}

func (f *fakeVault) CreateNewVaultAndRestore(context.Context, string, string) error {
	f.calls++
	return f.err
}

type fakeCredentials struct {
	kind    string
	cleared int
}

func (f *fakeCredentials) SupportedBiometryType() (string, bool) { return f.kind, f.kind != "" }
func (f *fakeCredentials) StoreCredential(string, string, secrets.AccessPolicy) error {
	return nil
}
func (f *fakeCredentials) ClearCredential() error {
	f.cleared++
	return nil
}

type fakeFlags map[string]string

func (f fakeFlags) SetFlag(key, value string) error { f[key] = value; return nil }
func (f fakeFlags) RemoveFlag(key string) error     { delete(f, key); return nil }

type recordedNav struct {
	mu     sync.Mutex
	routes []nav.Route
}

func (r *recordedNav) Navigate(route nav.Route, _ nav.Params) { r.record(route) }
func (r *recordedNav) Push(route nav.Route, _ nav.Params)     { r.record(route) }

func (r *recordedNav) record(route nav.Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
}

type fakeState struct{ full store.FullState }

func (f fakeState) FullState(context.Context) (store.FullState, error) { return f.full, nil }

type fakeEngine struct {
	wiped   int
	target  string
	gateway string
	hex     []bool
}

func (f *fakeEngine) WipeTransactions(context.Context, bool) error { f.wiped++; return nil }
func (f *fakeEngine) SetIPFSGateway(_ context.Context, gw string) error {
	f.gateway = gw
	return nil
}
func (f *fakeEngine) AddToFrequentRPCList(context.Context, string) error { return nil }
func (f *fakeEngine) SetRPCTarget(_ context.Context, url string) error {
	f.target = url
	return nil
}
func (f *fakeEngine) Dispatch(_ context.Context, a store.Action) error {
	if h, ok := a.(store.SetShowHexData); ok {
		f.hex = append(f.hex, h.Show)
	}
	return nil
}

type fakeTxs struct{ txs []repository.Transaction }

func (f fakeTxs) Transactions(context.Context) ([]repository.Transaction, error) { return f.txs, nil }

type fakeUsers bool

func (f fakeUsers) IsExistingUser() bool { return bool(f) }

type testDeps struct {
	Deps
	vault  *fakeVault
	creds  *fakeCredentials
	flags  fakeFlags
	nav    *recordedNav
	engine *fakeEngine
}

func newTestDeps() testDeps {
	d := testDeps{
		vault:  &fakeVault{},
		creds:  &fakeCredentials{kind: "TouchID"},
		flags:  fakeFlags{},
		nav:    &recordedNav{},
		engine: &fakeEngine{},
	}
	state := fakeState{}
	d.Deps = Deps{
		AppName: "JaskWallet",
		Restore: &service.RestoreService{Vault: d.vault, Credentials: d.creds, Flags: d.flags, Nav: d.nav},
		Settings: &service.SettingsService{
			State: state, Credentials: d.creds, Nav: d.nav,
		},
		Advanced: &service.AdvancedService{
			Transactions: d.engine,
			Preferences:  d.engine,
			Network:      d.engine,
			Store:        d.engine,
			Prober:       &service.GatewayProber{},
			Gateways: []service.GatewayCandidate{
				{Key: "local", Label: "Local", URL: "http://127.0.0.1:1/ipfs/"},
			},
			Nav: d.nav,
		},
		State:        state,
		Transactions: fakeTxs{},
		Users:        fakeUsers(false),
	}
	return d
}
