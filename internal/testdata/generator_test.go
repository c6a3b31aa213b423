package testdata

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/jaskwallet/internal/database/repository"
)

type recorder struct {
	txs []repository.Transaction
	err error
}

func (r *recorder) Record(_ context.Context, tx repository.Transaction) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.txs = append(r.txs, tx)
	return "id", nil
}

func TestSeed(t *testing.T) {
	const addr = "0x9858EfFD232B4033E47d90003D41EC34EcaEda94"
	rec := &recorder{}
	require.NoError(t, Seed(context.Background(), rec, addr, 25, 1))
	require.Len(t, rec.txs, 25)

	for _, tx := range rec.txs {
		require.True(t, tx.From == addr || tx.To == addr)
		require.NotNil(t, tx.Hash)
		v, ok := new(big.Int).SetString(tx.ValueWei, 10)
		require.True(t, ok)
		require.Positive(t, v.Sign())
		require.False(t, tx.CreatedAt.IsZero())
	}

	again := &recorder{}
	require.NoError(t, Seed(context.Background(), again, addr, 25, 1))
	for i := range rec.txs {
		require.Equal(t, rec.txs[i].ValueWei, again.txs[i].ValueWei)
		require.Equal(t, rec.txs[i].Status, again.txs[i].Status)
	}
}

func TestSeedStopsOnError(t *testing.T) {
	rec := &recorder{err: errors.New("db closed")}
	err := Seed(context.Background(), rec, "0xabc", 3, 1)
	require.ErrorContains(t, err, "db closed")
}
