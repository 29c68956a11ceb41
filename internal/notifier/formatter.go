package notifier

import (
	"fmt"
	"strings"
	"time"

	"StockCopilot/internal/model"
)

// FormatAnalysisReport wraps a pipeline report with its delivery header.
func FormatAnalysisReport(ticker, report string) string {
	header := fmt.Sprintf("📊 *Analysis report: %s*\n%s\n\n", ticker, strings.Repeat("─", 30))
	return header + report
}

// FormatFollowupReport assembles per-ticker sections into the daily
// watchlist report.
func FormatFollowupReport(sections []string) string {
	today := time.Now().Format("02/01/2006")
	header := fmt.Sprintf("📋 *Daily Watchlist Report — %s*\n%s\n\n", today, strings.Repeat("─", 35))
	return header + strings.Join(sections, "\n\n")
}

// FormatTickerSection renders one ticker's follow-up result.
func FormatTickerSection(snap *model.Snapshot, rationale string) string {
	emoji := signalEmoji(snap.ActionSignal, rationale)
	section := fmt.Sprintf(
		"%s *%s*\n├ Price: %.0f (%+.2f%%)\n├ Volume: %d\n├ Signal: *%s*\n└ %s",
		emoji, snap.Ticker, snap.ClosePrice, snap.ChangePercent, snap.Volume,
		snap.ActionSignal, rationale,
	)
	if snap.Commentary != "" && snap.Commentary != rationale {
		comment := snap.Commentary
		if len(comment) > 200 {
			comment = comment[:200]
		}
		section += fmt.Sprintf("\n💬 _%s_", comment)
	}
	return section
}

func signalEmoji(signal model.ActionSignal, rationale string) string {
	switch signal {
	case model.SignalBuyMore:
		return "🟢"
	case model.SignalSell:
		// Target-hit sells are a softer alert than stop-loss breaches.
		if strings.Contains(rationale, "target") {
			return "🟡"
		}
		return "🔴"
	default:
		return "⚪"
	}
}
