package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"StockCopilot/internal/config"
	"StockCopilot/internal/followup"
	"StockCopilot/internal/marketdata"
	"StockCopilot/internal/notifier"
	"StockCopilot/internal/oracle"
	"StockCopilot/internal/pipeline"
	"StockCopilot/internal/scheduler"
	"StockCopilot/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockCopilot starting...")

	analyzeTicker := flag.String("analyze", "", "run one analysis for the given ticker and exit")
	flag.Parse()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init market data provider
	var market marketdata.Provider = marketdata.NewClient(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	log.Printf("[INFO] data source: %s", market.Name())

	// Init oracle
	orc := oracle.NewClient(cfg.Oracle.APIKey, cfg.Oracle.Model, cfg.Oracle.MaxTokens, cfg.Proxy)
	if cfg.Oracle.APIKey == "" {
		log.Println("[WARN] oracle API key not set, analysis calls will degrade")
	}

	// Init store
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		sq, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using in-memory store: %v", err)
			st = store.NewMemoryStore()
		} else {
			st = sq
			defer sq.Close()
		}
	} else {
		st = store.NewMemoryStore()
	}

	// Seed watchlist from config
	for _, ticker := range cfg.Watchlist {
		if err := st.AddToWatchlist(ticker); err != nil {
			log.Printf("[WARN] seed watchlist %s: %v", ticker, err)
		}
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Wire pipeline and follow-up engine
	pipe := pipeline.New(market, orc, st)
	fe := followup.NewEngine(market, st, orc, tn)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, pipe, fe, st, tn)

	// One-shot mode
	if *analyzeTicker != "" {
		log.Printf("[INFO] one-shot analysis for %s", *analyzeTicker)
		sched.AnalyzeTicker(*analyzeTicker)
		return
	}

	if err := sched.RegisterAll(cfg.Schedule.DailyCron, cfg.Schedule.WeeklyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing daily follow-up now")
		go sched.RunDailyNow()
	}

	log.Println("[INFO] StockCopilot is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] StockCopilot stopped")
}
