package marketdata

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"StockCopilot/internal/model"
)

// Client implements Provider against an exchange-data REST API.
type Client struct {
	http *resty.Client
}

// NewClient creates a client with optional proxy support.
func NewClient(baseURL, apiKey, proxyURL string) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second)
	if apiKey != "" {
		c.SetAuthToken(apiKey)
	}
	if proxyURL != "" {
		c.SetProxy(proxyURL)
	}
	return &Client{http: c}
}

func (c *Client) Name() string { return "exchange-api" }

// apiBar is the expected JSON shape of a single bar from the API.
type apiBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (c *Client) FetchRatios(ticker string) (map[string]any, error) {
	var ratios map[string]any
	resp, err := c.http.R().
		SetResult(&ratios).
		Get("/api/v1/ratios/" + ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch ratios: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch ratios: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	if len(ratios) == 0 {
		return nil, fmt.Errorf("no financial ratio data found for %s", ticker)
	}
	return ratios, nil
}

func (c *Client) FetchOHLCV(ticker string, lookbackDays int) ([]model.OHLCV, error) {
	var apiBars []apiBar
	resp, err := c.http.R().
		SetQueryParams(map[string]string{
			"symbol": ticker,
			"limit":  strconv.Itoa(lookbackDays),
		}).
		SetResult(&apiBars).
		Get("/api/v1/bars/daily")
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode(), resp.String())
	}
	if len(apiBars) == 0 {
		return nil, fmt.Errorf("no price data for %s", ticker)
	}

	bars := make([]model.OHLCV, len(apiBars))
	for i, b := range apiBars {
		bars[i] = model.OHLCV{
			Time:   time.Unix(b.Timestamp, 0),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}
	// Ensure chronological order
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

func (c *Client) FetchQuote(ticker string) (*model.Quote, error) {
	bars, err := c.FetchOHLCV(ticker, 10)
	if err != nil {
		return nil, err
	}
	latest := bars[len(bars)-1]
	prevClose := latest.Close
	if len(bars) >= 2 {
		prevClose = bars[len(bars)-2].Close
	}
	changePct := 0.0
	if prevClose != 0 {
		changePct = (latest.Close - prevClose) / prevClose * 100
	}
	return &model.Quote{
		Ticker:        ticker,
		Close:         latest.Close,
		Volume:        int64(latest.Volume),
		ChangePercent: float64(int(changePct*100)) / 100,
	}, nil
}

// FetchNews returns recent headlines for the ticker. Best-effort: failures
// degrade to a single placeholder headline so downstream prompts always have
// a news section.
func (c *Client) FetchNews(ticker string, limit int) []string {
	var headlines []string
	resp, err := c.http.R().
		SetQueryParams(map[string]string{
			"symbol": ticker,
			"limit":  strconv.Itoa(limit),
		}).
		SetResult(&headlines).
		Get("/api/v1/news")
	if err != nil || resp.IsError() || len(headlines) == 0 {
		if err != nil {
			log.Printf("[WARN] news fetch failed for %s: %v", ticker, err)
		}
		return []string{fmt.Sprintf("No recent news found for %s.", ticker)}
	}
	if len(headlines) > limit {
		headlines = headlines[:limit]
	}
	return headlines
}
