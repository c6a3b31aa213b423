package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// TransactionRepo handles transaction history.
type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

// Insert stores t, assigning an id when empty.
func (r *TransactionRepo) Insert(ctx context.Context, t Transaction) (string, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = "submitted"
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO transactions(id, network, hash, from_address, to_address, value_wei, status, created_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP);
	`, t.ID, t.Network, t.Hash, t.From, t.To, t.ValueWei, t.Status)
	return t.ID, err
}

// List returns transactions newest first. An empty network lists all.
func (r *TransactionRepo) List(ctx context.Context, network string) ([]Transaction, error) {
	q := `SELECT id, network, hash, from_address, to_address, value_wei, status, created_at FROM transactions`
	var args []interface{}
	if network != "" {
		q += ` WHERE network = ?`
		args = append(args, network)
	}
	q += ` ORDER BY created_at DESC, id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Transaction
	for rows.Next() {
		var t Transaction
		var hash sql.NullString
		if err := rows.Scan(&t.ID, &t.Network, &hash, &t.From, &t.To, &t.ValueWei, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		if hash.Valid {
			h := hash.String
			t.Hash = &h
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Wipe deletes history. An empty network wipes every network.
func (r *TransactionRepo) Wipe(ctx context.Context, network string) (int64, error) {
	var res sql.Result
	var err error
	if network == "" {
		res, err = r.db.ExecContext(ctx, `DELETE FROM transactions`)
	} else {
		res, err = r.db.ExecContext(ctx, `DELETE FROM transactions WHERE network = ?`, network)
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
