package scheduler

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"SignalSentry/internal/collector"
	"SignalSentry/internal/notifier"
	"SignalSentry/internal/scanner"
)

// Scheduler runs the periodic side tasks around the scan loop: the daily
// statistics summary and the top-volume universe re-ranking.
type Scheduler struct {
	Cron     *cron.Cron
	Scanner  *scanner.Scanner
	Fetcher  collector.Fetcher
	Notifier notifier.Notifier

	universe  []string // all tradable symbols, ranking candidates
	topVolume int
}

// NewScheduler creates a scheduler with second-resolution cron expressions.
func NewScheduler(s *scanner.Scanner, fetcher collector.Fetcher, not notifier.Notifier,
	universe []string, topVolume int) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Scanner:   s,
		Fetcher:   fetcher,
		Notifier:  not,
		universe:  universe,
		topVolume: topVolume,
	}
}

// RegisterAll installs the summary and re-ranking tasks.
func (s *Scheduler) RegisterAll(summaryCron, rerankCron string) error {
	if _, err := s.Cron.AddFunc(summaryCron, s.summaryTask); err != nil {
		return fmt.Errorf("register summary task: %w", err)
	}
	if _, err := s.Cron.AddFunc(rerankCron, s.rerankTask); err != nil {
		return fmt.Errorf("register rerank task: %w", err)
	}
	return nil
}

// Start begins executing scheduled tasks.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Printf("[INFO] scheduler started with %d tasks", len(s.Cron.Entries()))
}

// Stop halts the scheduler; running tasks finish.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Printf("[INFO] scheduler stopped")
}

func (s *Scheduler) summaryTask() {
	s.Notifier.Summary(s.Scanner.Stats())
}

// rerankTask refreshes the scan universe from 24h volume. On any failure the
// current universe stays in place.
func (s *Scheduler) rerankTask() {
	ranked, err := s.Fetcher.FetchTopByVolume(s.universe, s.topVolume)
	if err != nil {
		log.Printf("[WARN] volume re-rank failed, keeping current universe: %v", err)
		return
	}
	if len(ranked) == 0 {
		log.Printf("[WARN] volume re-rank returned no symbols, keeping current universe")
		return
	}
	s.Scanner.SetSymbols(ranked)
	log.Printf("[INFO] scan universe re-ranked: %d symbols", len(ranked))
}
