package marketdata

import "StockCopilot/internal/model"

// Provider defines the interface for fetching market data. Implementations
// bound their own latency; callers treat every error as an ordinary
// degraded-data condition, never as a reason to abort a run.
type Provider interface {
	// FetchRatios returns the latest fundamental ratios for the ticker as a
	// flat mapping (revenue_growth, profit_growth, roe, pe_ratio,
	// debt_to_equity and any extras the source exposes).
	FetchRatios(ticker string) (map[string]any, error)
	FetchOHLCV(ticker string, lookbackDays int) ([]model.OHLCV, error)
	FetchQuote(ticker string) (*model.Quote, error)
	FetchNews(ticker string, limit int) []string
	Name() string
}
