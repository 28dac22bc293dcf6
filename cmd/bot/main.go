package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SignalSentry/internal/collector"
	"SignalSentry/internal/config"
	"SignalSentry/internal/eventlog"
	"SignalSentry/internal/ledger"
	"SignalSentry/internal/notifier"
	"SignalSentry/internal/scanner"
	"SignalSentry/internal/scheduler"
	"SignalSentry/internal/strategy"
	"SignalSentry/internal/tracker"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] SignalSentry starting...")

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

	// Init fetcher
	fetcher := collector.NewMexcFetcher(cfg.Exchange.BaseURL, cfg.Proxy, cfg.Exchange.RequestsPerSecond)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Build the scan universe. No contracts means nothing to do; a failed
	// ranking only degrades to the unranked list.
	contracts, err := fetcher.FetchContracts()
	if err != nil {
		log.Fatalf("[FATAL] fetch contracts: %v", err)
	}
	if len(contracts) == 0 {
		log.Fatalf("[FATAL] no tradable USDT perpetual contracts found")
	}
	symbols, err := fetcher.FetchTopByVolume(contracts, cfg.Scan.TopVolume)
	if err != nil || len(symbols) == 0 {
		log.Printf("[WARN] volume ranking unavailable, scanning all %d contracts: %v", len(contracts), err)
		symbols = contracts
	}
	log.Printf("[INFO] scan universe: %d of %d contracts", len(symbols), len(contracts))

	// Init ledger
	var led ledger.Ledger
	if cfg.Ledger.SQLitePath != "" {
		sl, err := ledger.NewSQLiteLedger(cfg.Ledger.SQLitePath)
		if err != nil {
			log.Fatalf("[FATAL] init sqlite ledger: %v", err)
		}
		led = sl
		defer sl.Close()
	} else {
		cl, err := ledger.NewCSVLedger(cfg.Ledger.PositionsFile)
		if err != nil {
			log.Fatalf("[FATAL] init csv ledger: %v", err)
		}
		led = cl
	}

	// Init event log
	events, err := eventlog.New(cfg.Log.Folder)
	if err != nil {
		log.Printf("[WARN] event log disabled: %v", err)
		events = nil
	}

	// Init notifiers
	notifiers := notifier.Multi{notifier.NewConsoleNotifier(cfg.Scan.PriceDecimals)}
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		notifiers = append(notifiers,
			notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Scan.PriceDecimals, cfg.Proxy))
		log.Println("[INFO] Telegram notifications enabled")
	}

	// Init scan pipeline
	col := collector.NewCollector(fetcher, cfg.Scan.Interval, cfg.Scan.Lookback)
	eval := strategy.NewEvaluator(strategy.Params{
		MinLongPct:  cfg.Strategy.MinLongPct,
		MinShortPct: cfg.Strategy.MinShortPct,
		SLATRMult:   cfg.Strategy.SLATRMult,
		TPATRMult:   cfg.Strategy.TPATRMult,
		RRMin:       cfg.Strategy.RRMin,
	})
	scan := scanner.New(col, eval, led, tracker.New(), notifiers, events, symbols)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(scan, fetcher, notifiers, contracts, cfg.Scan.TopVolume)
	if err := sched.RegisterAll(cfg.Schedule.SummaryCron, cfg.Schedule.RerankCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Run the scan loop
	scanErr := make(chan error, 1)
	go func() {
		scanErr <- scan.Run(ctx, time.Duration(cfg.Scan.RefreshSeconds)*time.Second)
	}()

	log.Println("[INFO] SignalSentry is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal or scan failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		log.Println("[INFO] shutdown signal received, stopping...")
		cancel()
		<-scanErr
	case err := <-scanErr:
		if err != nil && err != context.Canceled {
			log.Fatalf("[FATAL] scan loop: %v", err)
		}
	}
	log.Println("[INFO] SignalSentry stopped")
}
