package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Quote holds the latest session data for a ticker.
type Quote struct {
	Ticker        string
	Close         float64
	Volume        int64
	ChangePercent float64
}
