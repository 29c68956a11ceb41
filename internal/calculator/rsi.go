package calculator

import (
	"errors"

	"StockCopilot/internal/model"
)

// CalculateRSI computes RSI over the trailing `period` price changes using a
// simple rolling mean of gains and losses (not exponential smoothing).
// Requires at least period+1 bars. Returns 50.0 if data is insufficient,
// 100.0 when there are no losses in the window.
func CalculateRSI(bars []model.OHLCV, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) < period+1 {
		return 50.0, nil // default when data insufficient
	}

	closes := extractCloses(bars)

	// Average gain/loss over the trailing `period` changes
	var avgGain, avgLoss float64
	for i := len(closes) - period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change // make positive
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	if avgLoss == 0 {
		return 100.0, nil
	}
	rs := avgGain / avgLoss
	rsi := 100.0 - 100.0/(1.0+rs)
	return rsi, nil
}
