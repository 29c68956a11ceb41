package store

import "StockCopilot/internal/model"

// Store persists theses, daily snapshots, and the watchlist. All writes are
// fire-and-forget from the core's perspective: callers log failures and
// continue.
type Store interface {
	// GetLatestThesis returns the most recent thesis for the ticker, or
	// (nil, nil) when none exists.
	GetLatestThesis(ticker string) (*model.Thesis, error)
	// InsertThesis appends a new thesis record. Existing records are never
	// modified; history is preserved.
	InsertThesis(t *model.Thesis) error
	// UpsertSnapshot inserts or overwrites the snapshot for its
	// (ticker, date) key.
	UpsertSnapshot(s *model.Snapshot) error
	GetSnapshots(ticker string, limit int) ([]model.Snapshot, error)

	GetActiveWatchlist() ([]string, error)
	AddToWatchlist(ticker string) error
	CloseWatchlistItem(ticker string) error

	Close() error
}
