package store

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"StockCopilot/internal/model"
)

// SQLiteStore persists application data to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS theses (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			ticker          TEXT NOT NULL,
			content         TEXT,
			target_price    REAL,
			stop_loss_price REAL,
			entry_zone_min  REAL,
			entry_zone_max  REAL,
			last_updated    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_theses_ticker ON theses(ticker, last_updated)`,

		`CREATE TABLE IF NOT EXISTS daily_snapshots (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			ticker         TEXT NOT NULL,
			date           TEXT NOT NULL,
			close_price    REAL,
			volume         INTEGER,
			change_percent REAL,
			commentary     TEXT,
			action_signal  TEXT,
			UNIQUE(ticker, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_ticker ON daily_snapshots(ticker, date)`,

		`CREATE TABLE IF NOT EXISTS watchlist (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			ticker   TEXT NOT NULL,
			status   TEXT NOT NULL DEFAULT 'active',
			added_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_watchlist_status ON watchlist(status)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) GetLatestThesis(ticker string) (*model.Thesis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(`SELECT ticker, content, target_price, stop_loss_price,
		entry_zone_min, entry_zone_max, last_updated
		FROM theses WHERE ticker = ? ORDER BY last_updated DESC, id DESC LIMIT 1`,
		strings.ToUpper(ticker))

	var t model.Thesis
	var updated int64
	err := row.Scan(&t.Ticker, &t.Content, &t.TargetPrice, &t.StopLossPrice,
		&t.EntryZoneMin, &t.EntryZoneMax, &updated)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest thesis: %w", err)
	}
	t.LastUpdated = time.Unix(updated, 0)
	return &t, nil
}

func (s *SQLiteStore) InsertThesis(t *model.Thesis) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := t.LastUpdated
	if updated.IsZero() {
		updated = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO theses
		(ticker, content, target_price, stop_loss_price, entry_zone_min, entry_zone_max, last_updated)
		VALUES (?,?,?,?,?,?,?)`,
		strings.ToUpper(t.Ticker), t.Content, t.TargetPrice, t.StopLossPrice,
		t.EntryZoneMin, t.EntryZoneMax, updated.Unix(),
	)
	return err
}

func (s *SQLiteStore) UpsertSnapshot(snap *model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO daily_snapshots
		(ticker, date, close_price, volume, change_percent, commentary, action_signal)
		VALUES (?,?,?,?,?,?,?)
		ON CONFLICT(ticker, date) DO UPDATE SET
			close_price=excluded.close_price,
			volume=excluded.volume,
			change_percent=excluded.change_percent,
			commentary=excluded.commentary,
			action_signal=excluded.action_signal`,
		strings.ToUpper(snap.Ticker), snap.Date, snap.ClosePrice, snap.Volume,
		snap.ChangePercent, snap.Commentary, string(snap.ActionSignal),
	)
	return err
}

func (s *SQLiteStore) GetSnapshots(ticker string, limit int) ([]model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT ticker, date, close_price, volume, change_percent, commentary, action_signal
		FROM daily_snapshots WHERE ticker = ? ORDER BY date DESC LIMIT ?`,
		strings.ToUpper(ticker), limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		var signal string
		if err := rows.Scan(&snap.Ticker, &snap.Date, &snap.ClosePrice, &snap.Volume,
			&snap.ChangePercent, &snap.Commentary, &signal); err != nil {
			return nil, err
		}
		snap.ActionSignal = model.ActionSignal(signal)
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

func (s *SQLiteStore) GetActiveWatchlist() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT ticker FROM watchlist WHERE status = 'active' ORDER BY added_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query watchlist: %w", err)
	}
	defer rows.Close()

	var tickers []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tickers = append(tickers, t)
	}
	return tickers, rows.Err()
}

func (s *SQLiteStore) AddToWatchlist(ticker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticker = strings.ToUpper(ticker)
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(1) FROM watchlist WHERE ticker = ? AND status = 'active'`, ticker).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil // already watched
	}
	_, err := s.db.Exec(`INSERT INTO watchlist (ticker, status, added_at) VALUES (?, 'active', ?)`,
		ticker, time.Now().Unix())
	return err
}

func (s *SQLiteStore) CloseWatchlistItem(ticker string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`UPDATE watchlist SET status = 'closed' WHERE ticker = ? AND status = 'active'`,
		strings.ToUpper(ticker))
	return err
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
