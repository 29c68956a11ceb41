package model

// PipelineState is the single record threaded through the three analysis
// stages. It is created fresh per run, populated stage by stage, and never
// shared between concurrent runs. Each field is written exactly once, by the
// stage that owns it.
type PipelineState struct {
	Ticker       string
	CurrentPrice float64

	// Research stage
	RawFinancials  map[string]any
	RawIndicators  *IndicatorSummary
	NewsHeadlines  []string
	PreviousThesis string
	// DataErrors carries upstream fetch failures as data; the run continues
	// in degraded mode and the notes surface in the oracle context.
	DataErrors []string

	// Analyze stage
	FinancialAnalysis *FinancialAnalysis
	TechnicalSignal   *TechnicalSignal

	// Strategize stage
	Strategy    *InvestmentStrategy
	FinalReport string
}
