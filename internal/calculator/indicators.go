package calculator

import (
	"fmt"
	"math"

	"StockCopilot/internal/model"
)

// supportLookback is the number of trailing bars scanned for support and
// resistance levels.
const supportLookback = 60

// ComputeIndicators derives the full technical summary from an OHLCV series.
// Moving averages with insufficient history are treated as 0, which biases
// the trend classification toward SIDEWAYS for short series. An empty series
// yields an unavailable summary rather than an error; callers must treat it
// as a degraded, non-fatal condition.
func ComputeIndicators(bars []model.OHLCV) *model.IndicatorSummary {
	if len(bars) == 0 {
		return &model.IndicatorSummary{
			Trend:          model.TrendSideways,
			RSI:            50,
			MAAlignment:    "N/A",
			SupportZone:    "N/A",
			ResistanceZone: "N/A",
			Unavailable:    true,
		}
	}

	closes := extractCloses(bars)
	latestClose := closes[len(closes)-1]

	ma20, _ := CalculateSMA(closes, 20)
	ma50, _ := CalculateSMA(closes, 50)
	ma200, _ := CalculateSMA(closes, 200)

	rsi, err := CalculateRSI(bars, 14)
	if err != nil {
		rsi = 50
	}

	var trend model.Trend
	switch {
	case ma50 > ma200 && latestClose > ma50:
		trend = model.TrendUp
	case ma50 < ma200 && latestClose < ma50:
		trend = model.TrendDown
	default:
		trend = model.TrendSideways
	}

	support, resistance := supportResistance(bars)

	return &model.IndicatorSummary{
		Trend:          trend,
		RSI:            math.Round(rsi*100) / 100,
		MAAlignment:    maAlignment(ma20, ma50, ma200),
		SupportZone:    support,
		ResistanceZone: resistance,
		MA20:           ma20,
		MA50:           ma50,
		MA200:          ma200,
		LatestClose:    latestClose,
	}
}

// maAlignment describes the available moving averages in ascending-period
// order, e.g. "MA20=25100 > MA50=24800".
func maAlignment(ma20, ma50, ma200 float64) string {
	parts := make([]string, 0, 3)
	if ma20 > 0 {
		parts = append(parts, fmt.Sprintf("MA20=%.0f", ma20))
	}
	if ma50 > 0 {
		parts = append(parts, fmt.Sprintf("MA50=%.0f", ma50))
	}
	if ma200 > 0 {
		parts = append(parts, fmt.Sprintf("MA200=%.0f", ma200))
	}
	if len(parts) == 0 {
		return "N/A"
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += " > " + p
	}
	return out
}

// supportResistance returns min(low) and max(high) over the trailing 60 bars.
func supportResistance(bars []model.OHLCV) (support, resistance string) {
	n := len(bars)
	start := n - supportLookback
	if start < 0 {
		start = 0
	}
	low := math.Inf(1)
	high := math.Inf(-1)
	for i := start; i < n; i++ {
		if bars[i].Low < low {
			low = bars[i].Low
		}
		if bars[i].High > high {
			high = bars[i].High
		}
	}
	return fmt.Sprintf("%.0f", low), fmt.Sprintf("%.0f", high)
}
