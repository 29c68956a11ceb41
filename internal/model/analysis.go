package model

// Trend describes the primary price direction.
type Trend string

const (
	TrendUp       Trend = "UP"
	TrendDown     Trend = "DOWN"
	TrendSideways Trend = "SIDEWAYS"
)

// RiskLevel grades a strategy's overall risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// ActionSignal is the outcome of a daily follow-up evaluation.
type ActionSignal string

const (
	SignalBuyMore ActionSignal = "BUY_MORE"
	SignalHold    ActionSignal = "HOLD"
	SignalSell    ActionSignal = "SELL"
)

// FinancialAnalysis holds the structured fundamental assessment.
type FinancialAnalysis struct {
	RevenueGrowth float64 `json:"revenue_growth"`
	ProfitGrowth  float64 `json:"profit_growth"`
	ROE           float64 `json:"roe"`
	PERatio       float64 `json:"pe_ratio"`
	DebtToEquity  float64 `json:"debt_to_equity"`
	IsHealthy     bool    `json:"is_healthy"`
}

// TechnicalSignal holds the structured technical assessment.
type TechnicalSignal struct {
	Trend          Trend   `json:"trend"`
	RSI            float64 `json:"rsi"`
	MAAlignment    string  `json:"ma_alignment"`
	SupportZone    string  `json:"support_zone"`
	ResistanceZone string  `json:"resistance_zone"`
}

// InvestmentStrategy is the numeric action plan derived for a ticker.
type InvestmentStrategy struct {
	ThesisSummary   string
	EntryPriceRange [2]float64 // [low, high]
	TargetPrice     float64
	StopLossPrice   float64
	RiskLevel       RiskLevel
}
