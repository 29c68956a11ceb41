package pipeline

import (
	"context"
	"strings"
	"testing"

	"StockCopilot/internal/marketdata"
	"StockCopilot/internal/model"
	"StockCopilot/internal/oracle"
	"StockCopilot/internal/store"
)

const analystJSON = "```json\n" +
	`{"financial_analysis":{"revenue_growth":20,"profit_growth":18,"roe":16,"pe_ratio":11,"debt_to_equity":0.7,"is_healthy":true},` +
	`"technical_signals":{"trend":"UP","rsi":61.3,"ma_alignment":"MA20 > MA50 > MA200","support_zone":"95000","resistance_zone":"110000"}}` +
	"\n```"

func TestRun_FullPass(t *testing.T) {
	st := store.NewMemoryStore()
	orc := &oracle.Mock{Responses: []string{analystJSON, "## Report\nBuy the dip."}}
	p := New(&marketdata.MockProvider{Price: 100000}, orc, st)

	state := p.Run(context.Background(), "aaa")

	if state.Ticker != "AAA" {
		t.Errorf("expected uppercased ticker, got %s", state.Ticker)
	}
	if state.FinancialAnalysis == nil || !state.FinancialAnalysis.IsHealthy {
		t.Fatalf("expected healthy financial analysis, got %+v", state.FinancialAnalysis)
	}
	if state.TechnicalSignal == nil || state.TechnicalSignal.Trend != model.TrendUp {
		t.Fatalf("expected UP technical signal, got %+v", state.TechnicalSignal)
	}
	if state.Strategy == nil {
		t.Fatal("expected synthesized strategy")
	}
	if state.Strategy.RiskLevel != model.RiskLow {
		t.Errorf("healthy + UP should be LOW risk, got %s", state.Strategy.RiskLevel)
	}
	if state.FinalReport != "## Report\nBuy the dip." {
		t.Errorf("unexpected final report: %q", state.FinalReport)
	}
	if st.ThesisCount("AAA") != 1 {
		t.Errorf("expected one persisted thesis, got %d", st.ThesisCount("AAA"))
	}

	thesis, err := st.GetLatestThesis("AAA")
	if err != nil || thesis == nil {
		t.Fatalf("expected stored thesis, err=%v", err)
	}
	if thesis.TargetPrice != state.Strategy.TargetPrice || thesis.StopLossPrice != state.Strategy.StopLossPrice {
		t.Error("thesis thresholds must match the synthesized strategy")
	}
}

func TestRun_IdempotentThesisVersions(t *testing.T) {
	st := store.NewMemoryStore()
	orc := &oracle.Mock{Responses: []string{
		analystJSON, "first report",
		analystJSON, "second report",
	}}
	p := New(&marketdata.MockProvider{Price: 50000}, orc, st)

	first := p.Run(context.Background(), "BBB")
	if first.PreviousThesis != "" {
		t.Errorf("first run should see no previous thesis, got %q", first.PreviousThesis)
	}

	second := p.Run(context.Background(), "BBB")
	if second.PreviousThesis != first.FinalReport {
		t.Errorf("second run should see first run's report as previous thesis, got %q", second.PreviousThesis)
	}
	if st.ThesisCount("BBB") != 2 {
		t.Errorf("expected two independent thesis records, got %d", st.ThesisCount("BBB"))
	}
}

func TestRun_ParseFailureDegrades(t *testing.T) {
	st := store.NewMemoryStore()
	orc := &oracle.Mock{Responses: []string{"I cannot answer in JSON.", "prose report"}}
	p := New(&marketdata.MockProvider{Price: 1000}, orc, st)

	state := p.Run(context.Background(), "CCC")

	if state.FinancialAnalysis != nil || state.TechnicalSignal != nil {
		t.Error("expected both structured records nil after parse failure")
	}
	if state.FinalReport != "prose report" {
		t.Errorf("run must proceed to strategize, got report %q", state.FinalReport)
	}
	if state.Strategy == nil || state.Strategy.RiskLevel != model.RiskMedium {
		t.Errorf("expected MEDIUM-risk strategy with absent inputs, got %+v", state.Strategy)
	}
}

func TestRun_DataFetchFailureDegrades(t *testing.T) {
	st := store.NewMemoryStore()
	orc := &oracle.Mock{Responses: []string{analystJSON, "degraded report"}}
	provider := &marketdata.MockProvider{FailTickers: map[string]bool{"DDD": true}}
	p := New(provider, orc, st)

	state := p.Run(context.Background(), "DDD")

	if _, ok := state.RawFinancials["error"]; !ok {
		t.Error("expected tagged error payload in raw financials")
	}
	if len(state.DataErrors) == 0 {
		t.Error("expected recorded data errors")
	}
	if !state.RawIndicators.Unavailable {
		t.Error("expected unavailable indicator summary")
	}
	if state.CurrentPrice != 0 {
		t.Errorf("expected zero current price, got %v", state.CurrentPrice)
	}
	if state.Strategy == nil || state.Strategy.TargetPrice != 0 {
		t.Errorf("expected all-zero strategy from zero price, got %+v", state.Strategy)
	}
	if state.FinalReport != "degraded report" {
		t.Errorf("degraded run must still produce a report, got %q", state.FinalReport)
	}
	// degraded data is still surfaced to the oracle
	if len(orc.Calls) != 2 || !strings.Contains(orc.Calls[0], "unavailable") {
		t.Error("expected data issues in the analyst context")
	}
}

func TestRun_OracleFailureYieldsErrorReport(t *testing.T) {
	st := store.NewMemoryStore()
	orc := &oracle.Mock{Err: context.DeadlineExceeded}
	p := New(&marketdata.MockProvider{Price: 1000}, orc, st)

	state := p.Run(context.Background(), "EEE")

	if state.FinancialAnalysis != nil || state.TechnicalSignal != nil {
		t.Error("expected nil structured records when the oracle fails")
	}
	if !strings.Contains(state.FinalReport, "Analysis failed") {
		t.Errorf("expected inline failure note, got %q", state.FinalReport)
	}
	if st.ThesisCount("EEE") != 0 {
		t.Error("a failed strategize stage must not persist a thesis")
	}
}
