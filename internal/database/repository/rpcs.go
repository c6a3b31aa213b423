package repository

import (
	"context"
	"database/sql"
)

// FrequentRPCRepo handles the user's frequent RPC list.
type FrequentRPCRepo struct {
	db *sql.DB
}

func NewFrequentRPCRepo(db *sql.DB) *FrequentRPCRepo { return &FrequentRPCRepo{db: db} }

// Add records url; re-adding moves it to the front of the list.
func (r *FrequentRPCRepo) Add(ctx context.Context, url string) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO frequent_rpcs(url, added_at) VALUES (?, CURRENT_TIMESTAMP)
	ON CONFLICT(url) DO UPDATE SET added_at=CURRENT_TIMESTAMP;
	`, url)
	return err
}

func (r *FrequentRPCRepo) Remove(ctx context.Context, url string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM frequent_rpcs WHERE url = ?`, url)
	return err
}

func (r *FrequentRPCRepo) List(ctx context.Context) ([]FrequentRPC, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT url, added_at FROM frequent_rpcs ORDER BY added_at DESC, url`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []FrequentRPC
	for rows.Next() {
		var f FrequentRPC
		if err := rows.Scan(&f.URL, &f.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
