package repository

import (
	"context"
	"database/sql"
)

// TokenRepo handles watched assets.
type TokenRepo struct {
	db *sql.DB
}

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{db: db} }

func (r *TokenRepo) Upsert(ctx context.Context, t Token) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO tokens(address, network, symbol, decimals) VALUES (?, ?, ?, ?)
	ON CONFLICT(address, network) DO UPDATE SET symbol=excluded.symbol, decimals=excluded.decimals;
	`, t.Address, t.Network, t.Symbol, t.Decimals)
	return err
}

func (r *TokenRepo) List(ctx context.Context, network string) ([]Token, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT address, network, symbol, decimals FROM tokens WHERE network = ? ORDER BY symbol`, network)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Token
	for rows.Next() {
		var t Token
		if err := rows.Scan(&t.Address, &t.Network, &t.Symbol, &t.Decimals); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
