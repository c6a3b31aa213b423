// Package testdata fills a wallet with sample history for demos.
package testdata

import (
	"context"
	"fmt"
	"math/big"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/jaskwallet/internal/database/repository"
)

// Recorder stores a transaction against the active network.
type Recorder interface {
	Record(ctx context.Context, tx repository.Transaction) (string, error)
}

var counterparties = []string{
	"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
	"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
	"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
	"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
}

var statuses = []string{"confirmed", "confirmed", "confirmed", "submitted", "failed"}

// Seed records n sample transactions to and from address. seed makes the
// output repeatable.
func Seed(ctx context.Context, rec Recorder, address string, n int, seed int64) error {
	r := rand.New(rand.NewSource(seed))
	now := time.Now().UTC()
	for i := 0; i < n; i++ {
		other := counterparties[r.Intn(len(counterparties))]
		from, to := address, other
		if r.Intn(2) == 0 {
			from, to = other, address
		}
		// Up to 5 ETH in milli-ether steps.
		wei := new(big.Int).Mul(big.NewInt(int64(r.Intn(5000)+1)), big.NewInt(1e15))
		hash := "0x" + strings.ReplaceAll(uuid.NewString(), "-", "")
		tx := repository.Transaction{
			Hash:      &hash,
			From:      from,
			To:        to,
			ValueWei:  wei.String(),
			Status:    statuses[r.Intn(len(statuses))],
			CreatedAt: now.Add(-time.Duration(r.Intn(30*24)) * time.Hour),
		}
		if _, err := rec.Record(ctx, tx); err != nil {
			return fmt.Errorf("record sample transaction %d: %w", i, err)
		}
	}
	return nil
}
