package store

import (
	"sort"
	"strings"
	"sync"

	"StockCopilot/internal/model"
)

// MemoryStore is an in-memory Store used in tests and when no database is
// configured.
type MemoryStore struct {
	mu        sync.Mutex
	theses    map[string][]model.Thesis
	snapshots map[string]model.Snapshot // key: TICKER|date
	watchlist []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		theses:    make(map[string][]model.Thesis),
		snapshots: make(map[string]model.Snapshot),
	}
}

func (m *MemoryStore) GetLatestThesis(ticker string) (*model.Thesis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.theses[strings.ToUpper(ticker)]
	if len(list) == 0 {
		return nil, nil
	}
	latest := list[0]
	for _, t := range list[1:] {
		if !t.LastUpdated.Before(latest.LastUpdated) {
			latest = t
		}
	}
	return &latest, nil
}

func (m *MemoryStore) InsertThesis(t *model.Thesis) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *t
	cp.Ticker = strings.ToUpper(cp.Ticker)
	m.theses[cp.Ticker] = append(m.theses[cp.Ticker], cp)
	return nil
}

// ThesisCount reports how many thesis versions exist for a ticker.
func (m *MemoryStore) ThesisCount(ticker string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.theses[strings.ToUpper(ticker)])
}

func (m *MemoryStore) UpsertSnapshot(s *model.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *s
	cp.Ticker = strings.ToUpper(cp.Ticker)
	m.snapshots[cp.Ticker+"|"+cp.Date] = cp
	return nil
}

func (m *MemoryStore) GetSnapshots(ticker string, limit int) ([]model.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ticker = strings.ToUpper(ticker)
	var snaps []model.Snapshot
	for key, s := range m.snapshots {
		if strings.HasPrefix(key, ticker+"|") {
			snaps = append(snaps, s)
		}
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Date > snaps[j].Date })
	if len(snaps) > limit {
		snaps = snaps[:limit]
	}
	return snaps, nil
}

func (m *MemoryStore) GetActiveWatchlist() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.watchlist...), nil
}

func (m *MemoryStore) AddToWatchlist(ticker string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ticker = strings.ToUpper(ticker)
	for _, t := range m.watchlist {
		if t == ticker {
			return nil
		}
	}
	m.watchlist = append(m.watchlist, ticker)
	return nil
}

func (m *MemoryStore) CloseWatchlistItem(ticker string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ticker = strings.ToUpper(ticker)
	for i, t := range m.watchlist {
		if t == ticker {
			m.watchlist = append(m.watchlist[:i], m.watchlist[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *MemoryStore) Close() error { return nil }
