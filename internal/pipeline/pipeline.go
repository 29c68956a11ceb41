// Package pipeline drives the three-stage analysis run: Research gathers raw
// data, Analyze turns it into structured records via the oracle, Strategize
// produces the final report and persists the resulting thesis. Stages run
// strictly in order; each stage writes only the state fields it owns, and
// failures degrade the run instead of aborting it.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"StockCopilot/internal/calculator"
	"StockCopilot/internal/marketdata"
	"StockCopilot/internal/model"
	"StockCopilot/internal/oracle"
	"StockCopilot/internal/parser"
	"StockCopilot/internal/store"
	"StockCopilot/internal/strategy"
)

// lookbackDays is the OHLCV history window for a full analysis.
const lookbackDays = 365

// newsLimit caps the headlines included in the oracle context.
const newsLimit = 5

// Pipeline owns the collaborator handles for analysis runs. Construct one
// per process; Run itself is safe for sequential reuse across tickers.
type Pipeline struct {
	market marketdata.Provider
	oracle oracle.Oracle
	store  store.Store
}

// New wires the pipeline with its collaborators.
func New(market marketdata.Provider, orc oracle.Oracle, st store.Store) *Pipeline {
	return &Pipeline{market: market, oracle: orc, store: st}
}

// Run executes the full Research → Analyze → Strategize sequence for one
// ticker and returns the accumulated state. Re-running for the same ticker
// is safe: each run inserts a new thesis version and never mutates history.
func (p *Pipeline) Run(ctx context.Context, ticker string) *model.PipelineState {
	state := &model.PipelineState{Ticker: strings.ToUpper(ticker)}

	p.research(state)
	p.analyze(ctx, state)
	p.strategize(ctx, state)

	return state
}

// research fetches raw financials, price history, news, and the previous
// thesis. Fetch failures are captured as data; the stage never fails.
func (p *Pipeline) research(state *model.PipelineState) {
	ticker := state.Ticker
	log.Printf("[INFO] researcher: fetching data for %s", ticker)

	ratios, err := p.market.FetchRatios(ticker)
	if err != nil {
		log.Printf("[WARN] ratios fetch failed for %s: %v", ticker, err)
		ratios = map[string]any{"error": err.Error()}
		state.DataErrors = append(state.DataErrors, fmt.Sprintf("financial ratios unavailable: %v", err))
	}
	state.RawFinancials = ratios

	bars, err := p.market.FetchOHLCV(ticker, lookbackDays)
	if err != nil {
		log.Printf("[WARN] price history fetch failed for %s: %v", ticker, err)
		state.DataErrors = append(state.DataErrors, fmt.Sprintf("price history unavailable: %v", err))
	}
	state.RawIndicators = calculator.ComputeIndicators(bars)
	state.CurrentPrice = state.RawIndicators.LatestClose

	state.NewsHeadlines = p.market.FetchNews(ticker, newsLimit)

	prev, err := p.store.GetLatestThesis(ticker)
	if err != nil {
		log.Printf("[WARN] could not fetch previous thesis for %s: %v", ticker, err)
	} else if prev != nil {
		state.PreviousThesis = prev.Content
	}
}

// analyze sends the raw data context to the oracle and parses the structured
// response. On any failure both structured records stay nil and the run
// proceeds; there is no retry.
func (p *Pipeline) analyze(ctx context.Context, state *model.PipelineState) {
	ticker := state.Ticker
	log.Printf("[INFO] analyst: analysing %s", ticker)

	response, err := p.oracle.Generate(ctx, analystPrompt, p.buildDataContext(state))
	if err != nil {
		log.Printf("[ERROR] analyst oracle call failed for %s: %v", ticker, err)
		return
	}

	fa, ta, err := parser.ParseAnalysis(response)
	if err != nil {
		if errors.Is(err, parser.ErrParseFailure) {
			log.Printf("[WARN] analyst response not parseable for %s", ticker)
		} else {
			log.Printf("[ERROR] analyst parse for %s: %v", ticker, err)
		}
		return
	}
	state.FinancialAnalysis = fa
	state.TechnicalSignal = ta
}

// strategize produces the final report via the oracle, derives the numeric
// strategy independently of the prose, and persists the thesis. Persistence
// failure is logged and swallowed.
func (p *Pipeline) strategize(ctx context.Context, state *model.PipelineState) {
	ticker := state.Ticker
	log.Printf("[INFO] strategist: building strategy for %s", ticker)

	report, err := p.oracle.Generate(ctx, analysisSystemPrompt, p.buildStrategyContext(state))
	if err != nil {
		log.Printf("[ERROR] strategist oracle call failed for %s: %v", ticker, err)
		state.FinalReport = fmt.Sprintf("⚠️ Analysis failed for %s: %v", ticker, err)
		return
	}
	state.FinalReport = strings.TrimSpace(report)

	state.Strategy = strategy.Synthesize(state.CurrentPrice, state.FinancialAnalysis, state.TechnicalSignal, state.FinalReport)

	thesis := &model.Thesis{
		Ticker:      ticker,
		Content:     state.FinalReport,
		LastUpdated: time.Now(),
	}
	if s := state.Strategy; s != nil {
		thesis.TargetPrice = s.TargetPrice
		thesis.StopLossPrice = s.StopLossPrice
		thesis.EntryZoneMin = s.EntryPriceRange[0]
		thesis.EntryZoneMax = s.EntryPriceRange[1]
	}
	if err := p.store.InsertThesis(thesis); err != nil {
		log.Printf("[WARN] could not save thesis for %s: %v", ticker, err)
	}
}

// buildDataContext serializes the raw research data for the analyst call.
func (p *Pipeline) buildDataContext(state *model.PipelineState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Financial data for %s\n\n", state.Ticker)

	ratiosJSON, _ := json.MarshalIndent(state.RawFinancials, "", "  ")
	fmt.Fprintf(&b, "### Financial Ratios\n```json\n%s\n```\n\n", ratiosJSON)

	techJSON, _ := json.MarshalIndent(state.RawIndicators, "", "  ")
	fmt.Fprintf(&b, "### Price & Technical Data\n```json\n%s\n```\n\n", techJSON)

	b.WriteString("### Recent news\n")
	for _, h := range state.NewsHeadlines {
		fmt.Fprintf(&b, "- %s\n", h)
	}

	if len(state.DataErrors) > 0 {
		b.WriteString("\n### Data issues\n")
		for _, e := range state.DataErrors {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}

	return b.String()
}

// buildStrategyContext assembles all accumulated context for the final
// report generation.
func (p *Pipeline) buildStrategyContext(state *model.PipelineState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Analysis for %s\n\n", state.Ticker)
	fmt.Fprintf(&b, "**Current price**: %.0f\n\n", state.CurrentPrice)

	b.WriteString("## Fundamental Analysis\n")
	if fa := state.FinancialAnalysis; fa != nil {
		health := "⚠️ Needs attention"
		if fa.IsHealthy {
			health = "✅ Good"
		}
		fmt.Fprintf(&b, "Revenue Growth: %.2f%% | Profit Growth: %.2f%%\n", fa.RevenueGrowth, fa.ProfitGrowth)
		fmt.Fprintf(&b, "ROE: %.2f%% | P/E: %.2f | D/E: %.2f\n", fa.ROE, fa.PERatio, fa.DebtToEquity)
		fmt.Fprintf(&b, "Financial health: %s\n", health)
	}

	b.WriteString("\n## Technical Analysis\n")
	if ta := state.TechnicalSignal; ta != nil {
		fmt.Fprintf(&b, "Trend: %s | RSI: %.2f\n", ta.Trend, ta.RSI)
		fmt.Fprintf(&b, "MA: %s\n", ta.MAAlignment)
		fmt.Fprintf(&b, "Support: %s | Resistance: %s\n", ta.SupportZone, ta.ResistanceZone)
	}

	b.WriteString("\n## News\n")
	for _, h := range state.NewsHeadlines {
		fmt.Fprintf(&b, "- %s\n", h)
	}

	previous := state.PreviousThesis
	if previous == "" {
		previous = "No previous thesis."
	}
	fmt.Fprintf(&b, "\n## Previous investment thesis\n%s\n", previous)

	return b.String()
}
