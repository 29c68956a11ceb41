package marketdata

import (
	"fmt"
	"time"

	"StockCopilot/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
type MockProvider struct {
	Price     float64
	Bars      []model.OHLCV
	Ratios    map[string]any
	Headlines []string
	Quote     *model.Quote

	// FailTickers lists tickers whose fetches should fail.
	FailTickers map[string]bool
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) fail(ticker string) bool {
	return m.FailTickers != nil && m.FailTickers[ticker]
}

func (m *MockProvider) FetchRatios(ticker string) (map[string]any, error) {
	if m.fail(ticker) {
		return nil, fmt.Errorf("mock: ratios unavailable for %s", ticker)
	}
	if m.Ratios != nil {
		return m.Ratios, nil
	}
	return map[string]any{
		"revenue_growth": 18.5,
		"profit_growth":  21.0,
		"roe":            17.2,
		"pe_ratio":       12.4,
		"debt_to_equity": 0.8,
	}, nil
}

func (m *MockProvider) FetchOHLCV(ticker string, lookbackDays int) ([]model.OHLCV, error) {
	if m.fail(ticker) {
		return nil, fmt.Errorf("mock: no price data for %s", ticker)
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateBars(m.Price, lookbackDays), nil
}

func (m *MockProvider) FetchQuote(ticker string) (*model.Quote, error) {
	if m.fail(ticker) {
		return nil, fmt.Errorf("mock: no quote for %s", ticker)
	}
	if m.Quote != nil {
		q := *m.Quote
		q.Ticker = ticker
		return &q, nil
	}
	return &model.Quote{Ticker: ticker, Close: m.Price, Volume: 1_000_000, ChangePercent: 0.5}, nil
}

func (m *MockProvider) FetchNews(ticker string, limit int) []string {
	if m.Headlines != nil {
		return m.Headlines
	}
	return []string{fmt.Sprintf("No recent news found for %s.", ticker)}
}

// GenerateBars builds a gently trending synthetic series around basePrice.
func GenerateBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
