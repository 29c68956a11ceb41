package model

import "time"

// Thesis is a persisted, immutable investment rationale with numeric
// thresholds. A new analysis run always inserts a new record; "latest" is
// the one with the most recent LastUpdated.
type Thesis struct {
	Ticker        string
	Content       string
	TargetPrice   float64
	StopLossPrice float64
	EntryZoneMin  float64
	EntryZoneMax  float64
	LastUpdated   time.Time
}

// Snapshot records one day's price, volume, signal and commentary for a
// watched ticker. Unique per (ticker, date); a second run on the same date
// overwrites.
type Snapshot struct {
	Ticker        string
	Date          string // YYYY-MM-DD
	ClosePrice    float64
	Volume        int64
	ChangePercent float64
	Commentary    string
	ActionSignal  ActionSignal
}
