package repository

import "time"

// Transaction represents a transaction history row.
type Transaction struct {
	ID        string
	Network   string
	Hash      *string
	From      string
	To        string
	ValueWei  string
	Status    string
	CreatedAt time.Time
}

// FrequentRPC is a user-added RPC endpoint.
type FrequentRPC struct {
	URL     string
	AddedAt time.Time
}

// Token is a watched asset.
type Token struct {
	Address  string
	Network  string
	Symbol   string
	Decimals int
}
