// Package followup re-evaluates watched tickers against their stored theses
// once per scheduled run and emits one action signal per ticker.
package followup

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"StockCopilot/internal/marketdata"
	"StockCopilot/internal/model"
	"StockCopilot/internal/notifier"
	"StockCopilot/internal/oracle"
	"StockCopilot/internal/pipeline"
	"StockCopilot/internal/store"
)

// Notifier delivers the assembled batch report.
type Notifier interface {
	Send(text string) error
}

// Decide classifies today's quote against the stored thesis thresholds.
// Absent bounds default so that they never trigger; with no thesis at all
// the result is always HOLD. The checks are ordered by priority; zones can
// overlap and the first match wins.
func Decide(thesis *model.Thesis, quote *model.Quote) (model.ActionSignal, string) {
	stopLoss, entryMin := 0.0, 0.0
	entryMax, target := math.Inf(1), math.Inf(1)
	if thesis != nil {
		stopLoss = thesis.StopLossPrice
		entryMin = thesis.EntryZoneMin
		if thesis.EntryZoneMax > 0 {
			entryMax = thesis.EntryZoneMax
		}
		if thesis.TargetPrice > 0 {
			target = thesis.TargetPrice
		}
	}
	close := quote.Close

	switch {
	case stopLoss > 0 && close <= stopLoss:
		return model.SignalSell,
			fmt.Sprintf("CUT LOSS NOW – price %.0f has breached the stop-loss %.0f", close, stopLoss)
	case entryMin > 0 && !math.IsInf(entryMax, 1) && entryMin <= close && close <= entryMax:
		return model.SignalBuyMore,
			fmt.Sprintf("GOOD ENTRY – price %.0f is within the entry zone [%.0f – %.0f]", close, entryMin, entryMax)
	case !math.IsInf(target, 1) && close >= target:
		return model.SignalSell,
			fmt.Sprintf("TAKE PARTIAL PROFIT – price %.0f has reached the target %.0f", close, target)
	default:
		return model.SignalHold, "HOLD – thesis unchanged, keep monitoring."
	}
}

// Engine runs the daily follow-up over the active watchlist.
type Engine struct {
	market marketdata.Provider
	store  store.Store
	oracle oracle.Oracle // advisory-only; may be nil
	notify Notifier
}

// NewEngine wires the follow-up engine with its collaborators.
func NewEngine(market marketdata.Provider, st store.Store, orc oracle.Oracle, n Notifier) *Engine {
	return &Engine{market: market, store: st, oracle: orc, notify: n}
}

// Run processes every active watchlist ticker in order, one at a time. A
// failure on one ticker becomes an error line in its report section and
// never aborts the rest of the batch.
func (e *Engine) Run(ctx context.Context) error {
	log.Println("[INFO] daily follow-up job triggered")

	watchlist, err := e.store.GetActiveWatchlist()
	if err != nil {
		if sendErr := e.notify.Send("❌ *Daily Job Error*: cannot access watchlist."); sendErr != nil {
			log.Printf("[ERROR] send watchlist error notice: %v", sendErr)
		}
		return fmt.Errorf("fetch watchlist: %w", err)
	}
	if len(watchlist) == 0 {
		log.Println("[INFO] watchlist is empty, nothing to do")
		return nil
	}

	sections := make([]string, 0, len(watchlist))
	for _, ticker := range watchlist {
		log.Printf("[INFO] processing %s", ticker)
		section, err := e.processTicker(ctx, ticker)
		if err != nil {
			log.Printf("[ERROR] follow-up failed for %s: %v", ticker, err)
			section = fmt.Sprintf("❌ *%s*: error – %v", ticker, err)
		}
		sections = append(sections, section)
	}

	report := notifier.FormatFollowupReport(sections)
	if err := e.notify.Send(report); err != nil {
		log.Printf("[ERROR] send follow-up report: %v", err)
	}
	log.Printf("[INFO] daily follow-up completed, %d tickers processed", len(watchlist))
	return nil
}

// processTicker evaluates a single ticker: fetch quote, classify against the
// stored thesis, request advisory commentary, persist the snapshot, and
// render the report section.
func (e *Engine) processTicker(ctx context.Context, ticker string) (string, error) {
	quote, err := e.market.FetchQuote(ticker)
	if err != nil {
		return fmt.Sprintf("⚠️ *%s*: could not fetch price data – %v", ticker, err), nil
	}

	thesis, err := e.store.GetLatestThesis(ticker)
	if err != nil {
		log.Printf("[WARN] could not fetch thesis for %s: %v", ticker, err)
		thesis = nil
	}

	signal, rationale := Decide(thesis, quote)

	// Oracle commentary is advisory only: its absence or failure never
	// changes the computed signal.
	commentary := ""
	if e.oracle != nil {
		commentary, err = e.commentary(ctx, ticker, quote, thesis, signal)
		if err != nil {
			log.Printf("[WARN] commentary skipped for %s: %v", ticker, err)
			commentary = ""
		}
	}

	snap := &model.Snapshot{
		Ticker:        ticker,
		Date:          time.Now().Format("2006-01-02"),
		ClosePrice:    quote.Close,
		Volume:        quote.Volume,
		ChangePercent: quote.ChangePercent,
		Commentary:    commentary,
		ActionSignal:  signal,
	}
	if snap.Commentary == "" {
		snap.Commentary = rationale
	}
	if err := e.store.UpsertSnapshot(snap); err != nil {
		log.Printf("[WARN] could not save snapshot for %s: %v", ticker, err)
	}

	return notifier.FormatTickerSection(snap, rationale), nil
}

func (e *Engine) commentary(ctx context.Context, ticker string, quote *model.Quote, thesis *model.Thesis, signal model.ActionSignal) (string, error) {
	thesisText := ""
	if thesis != nil {
		thesisText = fmt.Sprintf("Target: %.0f, Stop-loss: %.0f, Entry: [%.0f – %.0f]",
			thesis.TargetPrice, thesis.StopLossPrice, thesis.EntryZoneMin, thesis.EntryZoneMax)
	}
	data := fmt.Sprintf(
		"Symbol: %s\nClose: %.0f | Change: %+.2f%% | Volume: %d\nSignal: %s\nThesis: %s\n",
		ticker, quote.Close, quote.ChangePercent, quote.Volume, signal, thesisText,
	)

	text, err := e.oracle.Generate(ctx, pipeline.FollowupPrompt, data)
	if err != nil {
		return "", err
	}
	if len(text) > 300 {
		text = text[:300]
	}
	return text, nil
}
