// Package parser turns free-form oracle output into typed analysis records.
package parser

import (
	"encoding/json"
	"errors"
	"strings"

	"StockCopilot/internal/model"
)

// ErrParseFailure indicates the oracle output did not contain a decodable
// JSON analysis. Callers must treat both records as absent.
var ErrParseFailure = errors.New("analysis parse failure")

// rawAnalysis mirrors the two top-level keys the analyst instruction asks
// the oracle to emit. Raw-message maps let each field default independently.
type rawAnalysis struct {
	FinancialAnalysis map[string]json.RawMessage `json:"financial_analysis"`
	TechnicalSignals  map[string]json.RawMessage `json:"technical_signals"`
}

// ParseAnalysis extracts the JSON block from oracle output and decodes it
// into a FinancialAnalysis and a TechnicalSignal, applying defaults for any
// missing field so a partially-complete response still yields usable records.
// On decode failure both records are nil and ErrParseFailure is returned.
func ParseAnalysis(text string) (*model.FinancialAnalysis, *model.TechnicalSignal, error) {
	payload := extractJSONBlock(text)

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, nil, ErrParseFailure
	}

	fa := &model.FinancialAnalysis{
		RevenueGrowth: floatField(raw.FinancialAnalysis, "revenue_growth", 0),
		ProfitGrowth:  floatField(raw.FinancialAnalysis, "profit_growth", 0),
		ROE:           floatField(raw.FinancialAnalysis, "roe", 0),
		PERatio:       floatField(raw.FinancialAnalysis, "pe_ratio", 0),
		DebtToEquity:  floatField(raw.FinancialAnalysis, "debt_to_equity", 0),
		IsHealthy:     boolField(raw.FinancialAnalysis, "is_healthy"),
	}

	ta := &model.TechnicalSignal{
		Trend:          model.Trend(stringField(raw.TechnicalSignals, "trend", string(model.TrendSideways))),
		RSI:            floatField(raw.TechnicalSignals, "rsi", 50),
		MAAlignment:    stringField(raw.TechnicalSignals, "ma_alignment", "N/A"),
		SupportZone:    stringField(raw.TechnicalSignals, "support_zone", "N/A"),
		ResistanceZone: stringField(raw.TechnicalSignals, "resistance_zone", "N/A"),
	}

	return fa, ta, nil
}

// extractJSONBlock prefers a json-tagged code fence, falls back to any code
// fence, and finally to the whole text.
func extractJSONBlock(text string) string {
	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	if idx := strings.Index(text, "```"); idx >= 0 {
		rest := text[idx+len("```"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			return strings.TrimSpace(rest[:end])
		}
		return strings.TrimSpace(rest)
	}
	return strings.TrimSpace(text)
}

func floatField(m map[string]json.RawMessage, key string, def float64) float64 {
	rawVal, ok := m[key]
	if !ok {
		return def
	}
	var v float64
	if err := json.Unmarshal(rawVal, &v); err != nil {
		return def
	}
	return v
}

func stringField(m map[string]json.RawMessage, key, def string) string {
	rawVal, ok := m[key]
	if !ok {
		return def
	}
	var v string
	if err := json.Unmarshal(rawVal, &v); err != nil {
		return def
	}
	return v
}

func boolField(m map[string]json.RawMessage, key string) bool {
	rawVal, ok := m[key]
	if !ok {
		return false
	}
	var v bool
	if err := json.Unmarshal(rawVal, &v); err != nil {
		return false
	}
	return v
}
