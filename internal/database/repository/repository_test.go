package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskwallet/internal/database"
	"github.com/jask/jaskwallet/internal/database/repository"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "wallet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.RunMigrations(db))
	return db
}

func TestTransactionWipe(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewTransactionRepo(openDB(t))

	for _, network := range []string{"mainnet", "mainnet", "ropsten"} {
		id, err := repo.Insert(ctx, repository.Transaction{Network: network, From: "0xa", To: "0xb", ValueWei: "1"})
		require.NoError(t, err)
		require.NotEmpty(t, id)
	}

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "submitted", all[0].Status)

	n, err := repo.Wipe(ctx, "ropsten")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	n, err = repo.Wipe(ctx, "")
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	all, err = repo.List(ctx, "")
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestFrequentRPCs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewFrequentRPCRepo(openDB(t))

	require.NoError(t, repo.Add(ctx, "https://rpc.example.org"))
	require.NoError(t, repo.Add(ctx, "http://127.0.0.1:8545"))
	require.NoError(t, repo.Add(ctx, "https://rpc.example.org"))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, repo.Remove(ctx, "http://127.0.0.1:8545"))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "https://rpc.example.org", list[0].URL)
}

func TestSettingsAndTokens(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := openDB(t)
	settings := repository.NewSettingsRepo(db)

	_, ok, err := settings.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, settings.Set(ctx, "k", "v1"))
	require.NoError(t, settings.Set(ctx, "k", "v2"))
	v, ok, err := settings.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v2", v)
	require.NoError(t, settings.Delete(ctx, "k"))
	_, ok, err = settings.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	tokens := repository.NewTokenRepo(db)
	require.NoError(t, tokens.Upsert(ctx, repository.Token{Address: "0x6b17", Network: "mainnet", Symbol: "DAI", Decimals: 18}))
	require.NoError(t, tokens.Upsert(ctx, repository.Token{Address: "0x6b17", Network: "mainnet", Symbol: "DAI2", Decimals: 18}))
	list, err := tokens.List(ctx, "mainnet")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "DAI2", list[0].Symbol)
}
