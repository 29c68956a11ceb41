package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"StockCopilot/internal/followup"
	"StockCopilot/internal/notifier"
	"StockCopilot/internal/pipeline"
	"StockCopilot/internal/store"
)

// Scheduler wires cron triggers to the analysis pipeline and the follow-up
// engine.
type Scheduler struct {
	Cron     *cron.Cron
	Pipeline *pipeline.Pipeline
	Followup *followup.Engine
	Store    store.Store
	Notifier *notifier.TelegramNotifier
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, p *pipeline.Pipeline, f *followup.Engine, st store.Store, tn *notifier.TelegramNotifier) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Pipeline: p,
		Followup: f,
		Store:    st,
		Notifier: tn,
		Ctx:      ctx,
	}
}

// RegisterAll registers the daily follow-up and weekly deep-analysis tasks.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyFollowup); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyDeepAnalysis); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily follow-up immediately (manual trigger /
// RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyFollowup()
}

func (s *Scheduler) dailyFollowup() {
	log.Println("[INFO] running daily follow-up task")
	if err := s.Followup.Run(s.Ctx); err != nil {
		log.Printf("[ERROR] daily follow-up: %v", err)
	}
}

// weeklyDeepAnalysis re-runs the full pipeline for every watched ticker and
// sends each fresh report. A per-ticker failure never aborts the rest.
func (s *Scheduler) weeklyDeepAnalysis() {
	log.Println("[INFO] running weekly deep-analysis task")

	watchlist, err := s.Store.GetActiveWatchlist()
	if err != nil {
		log.Printf("[ERROR] weekly analysis: fetch watchlist: %v", err)
		return
	}
	for _, ticker := range watchlist {
		s.AnalyzeTicker(ticker)
	}
}

// AnalyzeTicker runs one full analysis and delivers the resulting report.
func (s *Scheduler) AnalyzeTicker(ticker string) {
	state := s.Pipeline.Run(s.Ctx, ticker)
	if state.FinalReport == "" {
		log.Printf("[WARN] empty report for %s, nothing to send", ticker)
		return
	}
	report := notifier.FormatAnalysisReport(state.Ticker, state.FinalReport)
	if err := s.Notifier.SendWithRetry(s.Ctx, report, 3); err != nil {
		log.Printf("[ERROR] send analysis report for %s: %v", state.Ticker, err)
	}
}
