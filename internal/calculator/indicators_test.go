package calculator

import (
	"strings"
	"testing"
	"time"

	"StockCopilot/internal/model"
)

func barsFromCloses(closes []float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(len(closes) - i)),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func TestCalculateSMA_InsufficientData(t *testing.T) {
	if _, err := CalculateSMA([]float64{1, 2, 3}, 5); err == nil {
		t.Error("expected error for insufficient data")
	}
	if _, err := CalculateSMA([]float64{1, 2, 3}, 0); err == nil {
		t.Error("expected error for non-positive period")
	}
}

func TestCalculateSMA_TrailingWindow(t *testing.T) {
	prices := []float64{1, 1, 1, 10, 20, 30}
	got, err := CalculateSMA(prices, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 20 {
		t.Errorf("expected SMA 20, got %v", got)
	}
}

func TestCalculateRSI_Bounded(t *testing.T) {
	closes := make([]float64, 50)
	for i := range closes {
		// alternating gains and losses
		if i%2 == 0 {
			closes[i] = 100 + float64(i)
		} else {
			closes[i] = 95 + float64(i)
		}
	}
	rsi, err := CalculateRSI(barsFromCloses(closes), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi < 0 || rsi > 100 {
		t.Errorf("RSI out of bounds: %v", rsi)
	}
}

func TestCalculateRSI_AllGains(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	rsi, err := CalculateRSI(barsFromCloses(closes), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 100 {
		t.Errorf("expected RSI=100 with no losses, got %v", rsi)
	}
}

func TestCalculateRSI_InsufficientDataDefaults(t *testing.T) {
	rsi, err := CalculateRSI(barsFromCloses([]float64{1, 2, 3}), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 50 {
		t.Errorf("expected default RSI 50, got %v", rsi)
	}
}

func TestComputeIndicators_EmptySeries(t *testing.T) {
	sum := ComputeIndicators(nil)
	if !sum.Unavailable {
		t.Error("expected unavailable summary for empty series")
	}
	if sum.Trend != model.TrendSideways {
		t.Errorf("expected SIDEWAYS, got %s", sum.Trend)
	}
	if sum.MAAlignment != "N/A" || sum.SupportZone != "N/A" {
		t.Error("expected N/A placeholders for empty series")
	}
}

// Short histories leave MA50 and MA200 at 0, so even a sharply declining
// series classifies as SIDEWAYS. This bias is intentional behavior.
func TestComputeIndicators_ShortSeriesTrendBias(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 1000 - float64(i)*20 // strong decline
	}
	sum := ComputeIndicators(barsFromCloses(closes))
	if sum.Trend != model.TrendSideways {
		t.Errorf("expected SIDEWAYS for short declining series, got %s", sum.Trend)
	}
	if sum.MA50 != 0 || sum.MA200 != 0 {
		t.Errorf("expected unavailable MAs to be 0, got MA50=%v MA200=%v", sum.MA50, sum.MA200)
	}
}

func TestComputeIndicators_UptrendAndDowntrend(t *testing.T) {
	up := make([]float64, 250)
	for i := range up {
		up[i] = 100 + float64(i)
	}
	sum := ComputeIndicators(barsFromCloses(up))
	if sum.Trend != model.TrendUp {
		t.Errorf("expected UP for long rising series, got %s", sum.Trend)
	}

	down := make([]float64, 250)
	for i := range down {
		down[i] = 1000 - float64(i)*2
	}
	sum = ComputeIndicators(barsFromCloses(down))
	if sum.Trend != model.TrendDown {
		t.Errorf("expected DOWN for long falling series, got %s", sum.Trend)
	}
}

func TestComputeIndicators_MAAlignmentOrder(t *testing.T) {
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	sum := ComputeIndicators(barsFromCloses(closes))
	idx20 := strings.Index(sum.MAAlignment, "MA20=")
	idx50 := strings.Index(sum.MAAlignment, "MA50=")
	idx200 := strings.Index(sum.MAAlignment, "MA200=")
	if idx20 < 0 || idx50 < 0 || idx200 < 0 {
		t.Fatalf("expected all MAs in alignment string, got %q", sum.MAAlignment)
	}
	if !(idx20 < idx50 && idx50 < idx200) {
		t.Errorf("expected ascending-period order, got %q", sum.MAAlignment)
	}
}

func TestComputeIndicators_SupportResistanceWindow(t *testing.T) {
	closes := make([]float64, 100)
	for i := range closes {
		closes[i] = 100
	}
	bars := barsFromCloses(closes)
	// extremes outside the trailing 60-bar window must be ignored
	bars[10].Low = 1
	bars[10].High = 10000
	bars[80].Low = 50
	bars[90].High = 200

	sum := ComputeIndicators(bars)
	if sum.SupportZone != "50" {
		t.Errorf("expected support 50, got %q", sum.SupportZone)
	}
	if sum.ResistanceZone != "200" {
		t.Errorf("expected resistance 200, got %q", sum.ResistanceZone)
	}
}
