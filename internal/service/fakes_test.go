package service

import (
	"context"
	"sync"

	"github.com/jask/jaskwallet/internal/engine"
	"github.com/jask/jaskwallet/internal/nav"
	"github.com/jask/jaskwallet/internal/secrets"
	"github.com/jask/jaskwallet/internal/store"
)

const validPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

type fakeVault struct {
	err     error
	started chan struct{}
	release chan struct{}

	mu       sync.Mutex
	calls    int
	password string
	phrase   string
}

func (f *fakeVault) CreateNewVaultAndRestore(ctx context.Context, password, phrase string) error {
	f.mu.Lock()
	f.calls++
	f.password, f.phrase = password, phrase
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.err
}

type storedCredential struct {
	account string
	secret  string
	policy  secrets.AccessPolicy
}

type fakeCredentials struct {
	kind     string
	storeErr error
	clearErr error

	stored  []storedCredential
	cleared int
}

func (f *fakeCredentials) SupportedBiometryType() (string, bool) {
	return f.kind, f.kind != ""
}

func (f *fakeCredentials) StoreCredential(account, secret string, policy secrets.AccessPolicy) error {
	if f.storeErr != nil {
		return f.storeErr
	}
	f.stored = append(f.stored, storedCredential{account, secret, policy})
	return nil
}

func (f *fakeCredentials) ClearCredential() error {
	f.cleared++
	return f.clearErr
}

type fakeFlags struct {
	flags   map[string]string
	removed []string
}

func newFakeFlags() *fakeFlags { return &fakeFlags{flags: map[string]string{}} }

func (f *fakeFlags) SetFlag(key, value string) error {
	f.flags[key] = value
	return nil
}

func (f *fakeFlags) RemoveFlag(key string) error {
	delete(f.flags, key)
	f.removed = append(f.removed, key)
	return nil
}

type navCall struct {
	push   bool
	route  nav.Route
	params nav.Params
}

type fakeNav struct {
	mu    sync.Mutex
	calls []navCall
}

func (f *fakeNav) Navigate(route nav.Route, params nav.Params) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, navCall{route: route, params: params})
}

func (f *fakeNav) Push(route nav.Route, params nav.Params) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, navCall{push: true, route: route, params: params})
}

func (f *fakeNav) snapshot() []navCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]navCall(nil), f.calls...)
}

type fakeState struct {
	full store.FullState
	err  error
}

func (f fakeState) FullState(context.Context) (store.FullState, error) { return f.full, f.err }

type fakeKeyrings struct {
	rings []engine.Keyring
	err   error
}

func (f fakeKeyrings) Keyrings(context.Context) ([]engine.Keyring, error) { return f.rings, f.err }

type fakeEngine struct {
	wipeErr      error
	wipedAll     []bool
	gateway      string
	frequentRPCs []string
	rpcTarget    string
	actions      []store.Action
}

func (f *fakeEngine) WipeTransactions(_ context.Context, ignoreNetwork bool) error {
	if f.wipeErr != nil {
		return f.wipeErr
	}
	f.wipedAll = append(f.wipedAll, ignoreNetwork)
	return nil
}

func (f *fakeEngine) SetIPFSGateway(_ context.Context, gateway string) error {
	f.gateway = gateway
	return nil
}

func (f *fakeEngine) AddToFrequentRPCList(_ context.Context, url string) error {
	f.frequentRPCs = append(f.frequentRPCs, url)
	return nil
}

func (f *fakeEngine) SetRPCTarget(_ context.Context, url string) error {
	f.rpcTarget = url
	return nil
}

func (f *fakeEngine) Dispatch(_ context.Context, a store.Action) error {
	f.actions = append(f.actions, a)
	return nil
}

type fakeSharer struct {
	err      error
	payloads []SharePayload
}

func (f *fakeSharer) Share(_ context.Context, p SharePayload) error {
	if f.err != nil {
		return f.err
	}
	f.payloads = append(f.payloads, p)
	return nil
}
