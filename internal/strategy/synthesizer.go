// Package strategy derives numeric investment strategies from analysis
// results. The rules are fixed and deterministic; no oracle call is involved.
package strategy

import (
	"math"

	"StockCopilot/internal/model"
)

const (
	entryLowFactor  = 0.92
	entryHighFactor = 0.98
	targetFactor    = 1.20
	stopLossFactor  = 0.90

	summaryMaxLen = 200
)

// Synthesize builds the numeric strategy for the given current price.
// Either analysis input may be nil; risk then defaults to MEDIUM. A zero
// price yields an all-zero strategy, which callers must treat as
// uninformative rather than an error.
func Synthesize(price float64, fa *model.FinancialAnalysis, ta *model.TechnicalSignal, report string) *model.InvestmentStrategy {
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return nil
	}

	summary := report
	if len(summary) > summaryMaxLen {
		summary = summary[:summaryMaxLen]
	}

	risk := model.RiskMedium
	switch {
	case fa != nil && fa.IsHealthy && ta != nil && ta.Trend == model.TrendUp:
		risk = model.RiskLow
	case ta != nil && ta.Trend == model.TrendDown:
		risk = model.RiskHigh
	}

	return &model.InvestmentStrategy{
		ThesisSummary:   summary,
		EntryPriceRange: [2]float64{math.Round(price * entryLowFactor), math.Round(price * entryHighFactor)},
		TargetPrice:     math.Round(price * targetFactor),
		StopLossPrice:   math.Round(price * stopLossFactor),
		RiskLevel:       risk,
	}
}
