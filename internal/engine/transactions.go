package engine

import (
	"context"

	"github.com/jask/jaskwallet/internal/database/repository"
)

// TransactionController keeps the local transaction history.
type TransactionController struct {
	txs     *repository.TransactionRepo
	network *NetworkController
}

func NewTransactionController(txs *repository.TransactionRepo, network *NetworkController) *TransactionController {
	return &TransactionController{txs: txs, network: network}
}

// Record stores a transaction against the active network.
func (t *TransactionController) Record(ctx context.Context, tx repository.Transaction) (string, error) {
	p, err := t.network.Provider(ctx)
	if err != nil {
		return "", err
	}
	tx.Network = p.NetworkKey()
	return t.txs.Insert(ctx, tx)
}

// Transactions lists the history for the active network.
func (t *TransactionController) Transactions(ctx context.Context) ([]repository.Transaction, error) {
	p, err := t.network.Provider(ctx)
	if err != nil {
		return nil, err
	}
	return t.txs.List(ctx, p.NetworkKey())
}

// WipeTransactions removes the history of the active network, or of every
// network when ignoreNetwork is set.
func (t *TransactionController) WipeTransactions(ctx context.Context, ignoreNetwork bool) error {
	network := ""
	if !ignoreNetwork {
		p, err := t.network.Provider(ctx)
		if err != nil {
			return err
		}
		network = p.NetworkKey()
	}
	n, err := t.txs.Wipe(ctx, network)
	if err != nil {
		return err
	}
	log.Infof("Wiped %d transactions", n)
	return nil
}

func (t *TransactionController) State(ctx context.Context) (TransactionState, error) {
	rows, err := t.txs.List(ctx, "")
	if err != nil {
		return TransactionState{}, err
	}
	out := TransactionState{Transactions: make([]TransactionMeta, 0, len(rows))}
	for _, r := range rows {
		m := TransactionMeta{
			ID:        r.ID,
			NetworkID: r.Network,
			From:      r.From,
			To:        r.To,
			Value:     r.ValueWei,
			Status:    r.Status,
			Time:      r.CreatedAt.UnixMilli(),
		}
		if r.Hash != nil {
			m.Hash = *r.Hash
		}
		out.Transactions = append(out.Transactions, m)
	}
	return out, nil
}
