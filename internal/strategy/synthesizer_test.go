package strategy

import (
	"strings"
	"testing"

	"StockCopilot/internal/model"
)

func TestSynthesize_ReferenceNumbers(t *testing.T) {
	s := Synthesize(100000, nil, nil, "report")
	if s == nil {
		t.Fatal("expected non-nil strategy")
	}
	if s.EntryPriceRange != [2]float64{92000, 98000} {
		t.Errorf("expected entry [92000 98000], got %v", s.EntryPriceRange)
	}
	if s.TargetPrice != 120000 {
		t.Errorf("expected target 120000, got %v", s.TargetPrice)
	}
	if s.StopLossPrice != 90000 {
		t.Errorf("expected stop-loss 90000, got %v", s.StopLossPrice)
	}
	// monotonic risk/reward ordering
	if !(s.StopLossPrice < s.EntryPriceRange[0] && s.EntryPriceRange[0] < s.TargetPrice) {
		t.Errorf("ordering violated: stop=%v entryLow=%v target=%v",
			s.StopLossPrice, s.EntryPriceRange[0], s.TargetPrice)
	}
	if s.EntryPriceRange[0] > s.EntryPriceRange[1] {
		t.Errorf("entry range inverted: %v", s.EntryPriceRange)
	}
}

func TestSynthesize_RiskLevels(t *testing.T) {
	healthy := &model.FinancialAnalysis{IsHealthy: true}
	unhealthy := &model.FinancialAnalysis{IsHealthy: false}
	up := &model.TechnicalSignal{Trend: model.TrendUp}
	down := &model.TechnicalSignal{Trend: model.TrendDown}
	sideways := &model.TechnicalSignal{Trend: model.TrendSideways}

	cases := []struct {
		name string
		fa   *model.FinancialAnalysis
		ta   *model.TechnicalSignal
		want model.RiskLevel
	}{
		{"healthy uptrend", healthy, up, model.RiskLow},
		{"downtrend", unhealthy, down, model.RiskHigh},
		{"downtrend overrides missing financials", nil, down, model.RiskHigh},
		{"unhealthy uptrend", unhealthy, up, model.RiskMedium},
		{"healthy sideways", healthy, sideways, model.RiskMedium},
		{"no inputs", nil, nil, model.RiskMedium},
	}
	for _, tc := range cases {
		s := Synthesize(1000, tc.fa, tc.ta, "")
		if s.RiskLevel != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, s.RiskLevel)
		}
	}
}

func TestSynthesize_ZeroPrice(t *testing.T) {
	s := Synthesize(0, nil, nil, "")
	if s == nil {
		t.Fatal("zero price must yield an uninformative strategy, not nil")
	}
	if s.EntryPriceRange != [2]float64{0, 0} || s.TargetPrice != 0 || s.StopLossPrice != 0 {
		t.Errorf("expected all-zero fields, got %+v", s)
	}
}

func TestSynthesize_SummaryTruncation(t *testing.T) {
	long := strings.Repeat("x", 500)
	s := Synthesize(1000, nil, nil, long)
	if len(s.ThesisSummary) != 200 {
		t.Errorf("expected 200-char summary, got %d", len(s.ThesisSummary))
	}
}
