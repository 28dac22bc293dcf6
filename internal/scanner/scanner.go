package scanner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"SignalSentry/internal/collector"
	"SignalSentry/internal/eventlog"
	"SignalSentry/internal/ledger"
	"SignalSentry/internal/model"
	"SignalSentry/internal/notifier"
	"SignalSentry/internal/strategy"
	"SignalSentry/internal/tracker"
)

// Scanner runs scan cycles: fetch series, evaluate signals, open positions,
// advance outcomes, persist. It is the single writer of the ledger and the
// alert memory; only the symbol list and the stats are shared with the
// scheduler tasks.
type Scanner struct {
	Collector *collector.Collector
	Evaluator *strategy.Evaluator
	Ledger    ledger.Ledger
	Tracker   *tracker.Tracker
	Notifier  notifier.Notifier
	Events    *eventlog.Logger

	now func() time.Time

	mu      sync.Mutex
	symbols []string
	stats   model.Stats
}

// New wires a Scanner over the given collaborators and initial scan universe.
func New(col *collector.Collector, eval *strategy.Evaluator, led ledger.Ledger,
	trk *tracker.Tracker, not notifier.Notifier, events *eventlog.Logger,
	symbols []string) *Scanner {
	return &Scanner{
		Collector: col,
		Evaluator: eval,
		Ledger:    led,
		Tracker:   trk,
		Notifier:  not,
		Events:    events,
		now:       time.Now,
		symbols:   symbols,
	}
}

// Symbols returns a copy of the current scan universe.
func (s *Scanner) Symbols() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.symbols))
	copy(out, s.symbols)
	return out
}

// SetSymbols replaces the scan universe (used by the re-ranking task).
func (s *Scanner) SetSymbols(symbols []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.symbols = symbols
}

// Stats returns a copy of the counters.
func (s *Scanner) Stats() model.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// RunCycle executes one full scan over the current universe. Ledger errors
// are returned to the caller and end the process; everything else degrades to
// skipping the affected symbol for this cycle.
func (s *Scanner) RunCycle() error {
	symbols := s.Symbols()

	s.mu.Lock()
	s.stats.Cycles++
	s.mu.Unlock()

	positions, err := s.Ledger.Load()
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	latest := make(map[string]model.LastBar)
	for _, res := range s.Collector.CollectAll(symbols) {
		if res.Series != nil {
			if last, ok := res.Series.Last(); ok {
				latest[res.Symbol] = model.LastBar{Close: last.Close, High: last.High, Low: last.Low}
			}
		}
		if res.Err != nil {
			log.Printf("[WARN] skip %s: %v", res.Symbol, res.Err)
			continue
		}

		sig := s.Evaluator.Evaluate(res.Snapshot,
			hasOpen(positions, res.Symbol, model.Long),
			hasOpen(positions, res.Symbol, model.Short))
		if sig == nil {
			continue
		}

		pos := sig.Position()
		if err := s.Ledger.Append(pos); err != nil {
			if errors.Is(err, ledger.ErrDuplicateID) {
				log.Printf("[WARN] duplicate signal id %s, not recorded again", pos.ID)
				continue
			}
			return fmt.Errorf("append position: %w", err)
		}
		positions = append(positions, pos)
		s.Tracker.MarkFresh(pos.ID)

		s.mu.Lock()
		if pos.Direction == model.Long {
			s.stats.Longs++
		} else {
			s.stats.Shorts++
		}
		s.mu.Unlock()

		s.Notifier.SignalOpened(&pos)
		s.Events.Event(fmt.Sprintf("[%s] %s | Entry:%.8f | SL:%.8f | TP1:%.8f | TP2:%.8f | RR:%.2f | Time:%s",
			pos.Direction, pos.Symbol, pos.Entry, pos.StopLoss, pos.TP1, pos.TP2, pos.RiskReward, pos.SignalTime))
	}

	outcomes := s.Tracker.Update(positions, latest, s.now())
	if len(outcomes) > 0 {
		for _, o := range outcomes {
			log.Printf("[INFO] %s", o)
			s.Events.Event(o.String())
		}
		if err := s.Ledger.Save(positions); err != nil {
			return fmt.Errorf("save ledger: %w", err)
		}
	}
	return nil
}

func hasOpen(positions []model.Position, symbol string, dir model.Direction) bool {
	for _, p := range positions {
		if p.Symbol == symbol && p.Direction == dir && p.Status.Open() {
			return true
		}
	}
	return false
}

// Run executes scan cycles until the context is cancelled, sleeping `delay`
// between cycles. The sleep is the loop's only suspension point.
func (s *Scanner) Run(ctx context.Context, delay time.Duration) error {
	for {
		if err := s.RunCycle(); err != nil {
			return err
		}
		fmt.Print(notifier.FormatStats(s.Stats()))
		log.Printf("[INFO] cycle complete, next scan in %s", delay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}
