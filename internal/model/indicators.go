package model

// IndicatorSummary holds all computed technical indicators for a series.
type IndicatorSummary struct {
	Trend          Trend
	RSI            float64
	MAAlignment    string
	SupportZone    string
	ResistanceZone string
	MA20           float64
	MA50           float64
	MA200          float64
	LatestClose    float64
	Unavailable    bool // set when no close prices could be identified
}
