package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskwallet/internal/database"
	"github.com/jask/jaskwallet/internal/database/repository"
	"github.com/jask/jaskwallet/internal/engine"
	"github.com/jask/jaskwallet/internal/store"
)

type stubEngine struct {
	state engine.State
	err   error
}

func (s stubEngine) BackgroundState(context.Context) (engine.State, error) { return s.state, s.err }

func newSettings(t *testing.T) *repository.SettingsRepo {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "wallet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db))
	return repository.NewSettingsRepo(db)
}

func TestDispatchShowHexData(t *testing.T) {
	ctx := context.Background()
	bg := engine.State{NetworkController: engine.NetworkState{Provider: engine.Provider{Type: engine.Kovan}}}
	s := store.New(stubEngine{state: bg}, newSettings(t))

	full, err := s.FullState(ctx)
	require.NoError(t, err)
	require.False(t, full.Settings.ShowHexData)
	require.Equal(t, engine.Kovan, full.Engine.BackgroundState.NetworkController.Provider.Type)

	require.NoError(t, s.Dispatch(ctx, store.SetShowHexData{Show: true}))
	full, err = s.FullState(ctx)
	require.NoError(t, err)
	require.True(t, full.Settings.ShowHexData)

	require.NoError(t, s.Dispatch(ctx, store.SetShowHexData{Show: false}))
	settings, err := s.Settings(ctx)
	require.NoError(t, err)
	require.False(t, settings.ShowHexData)
}

func TestFullStateEngineError(t *testing.T) {
	boom := errors.New("boom")
	s := store.New(stubEngine{err: boom}, newSettings(t))
	_, err := s.FullState(context.Background())
	require.ErrorIs(t, err, boom)
}
