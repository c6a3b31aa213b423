// Package store exposes the app-wide state read by the settings screens and
// the diagnostic export, and the actions that change it.
package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jask/jaskwallet/internal/database/repository"
	"github.com/jask/jaskwallet/internal/engine"
)

const keyShowHexData = "settings.showHexData"

// BackgroundStater is satisfied by *engine.Engine.
type BackgroundStater interface {
	BackgroundState(ctx context.Context) (engine.State, error)
}

// FullState is the complete app state.
type FullState struct {
	Engine   EngineState   `json:"engine"`
	Settings SettingsState `json:"settings"`
}

type EngineState struct {
	BackgroundState engine.State `json:"backgroundState"`
}

type SettingsState struct {
	ShowHexData bool `json:"showHexData"`
}

// Action is a state change passed to Dispatch.
type Action interface {
	apply(ctx context.Context, s *Store) error
}

// SetShowHexData toggles display of raw hex data on transactions.
type SetShowHexData struct {
	Show bool
}

func (a SetShowHexData) apply(ctx context.Context, s *Store) error {
	return s.settings.Set(ctx, keyShowHexData, strconv.FormatBool(a.Show))
}

type Store struct {
	engine   BackgroundStater
	settings *repository.SettingsRepo
}

func New(e BackgroundStater, settings *repository.SettingsRepo) *Store {
	return &Store{engine: e, settings: settings}
}

// FullState reads a fresh copy of the app state.
func (s *Store) FullState(ctx context.Context) (FullState, error) {
	bg, err := s.engine.BackgroundState(ctx)
	if err != nil {
		return FullState{}, err
	}
	settings, err := s.Settings(ctx)
	if err != nil {
		return FullState{}, err
	}
	return FullState{Engine: EngineState{BackgroundState: bg}, Settings: settings}, nil
}

func (s *Store) Settings(ctx context.Context) (SettingsState, error) {
	raw, ok, err := s.settings.Get(ctx, keyShowHexData)
	if err != nil || !ok {
		return SettingsState{}, err
	}
	show, err := strconv.ParseBool(raw)
	if err != nil {
		return SettingsState{}, fmt.Errorf("bad %s value %q: %w", keyShowHexData, raw, err)
	}
	return SettingsState{ShowHexData: show}, nil
}

func (s *Store) Dispatch(ctx context.Context, a Action) error {
	return a.apply(ctx, s)
}
