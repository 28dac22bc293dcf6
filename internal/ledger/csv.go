package ledger

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"SignalSentry/internal/model"
)

var csvHeader = []string{
	"id", "symbol", "direction", "entry", "sl", "tp1", "tp2",
	"signal_time", "rr", "status",
	"tp1_hit_time", "tp2_hit_time", "sl_hit_time",
}

// CSVLedger stores positions in a single CSV file with a fixed header. Saves
// rewrite the whole file; the ledger stays small enough for that to be cheap.
type CSVLedger struct {
	path string
	mu   sync.Mutex
}

// NewCSVLedger opens the positions file, creating it with a header when absent.
func NewCSVLedger(path string) (*CSVLedger, error) {
	l := &CSVLedger{path: path}
	if err := l.ensureFile(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *CSVLedger) ensureFile() error {
	if _, err := os.Stat(l.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	f, err := os.Create(l.path)
	if err != nil {
		return fmt.Errorf("create positions file: %w", err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Load reads every position in file order.
func (l *CSVLedger) Load() ([]model.Position, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

func (l *CSVLedger) load() ([]model.Position, error) {
	if err := l.ensureFile(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open positions file: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read positions file: %w", err)
	}

	var positions []model.Position
	for i, rec := range records {
		if i == 0 || len(rec) < len(csvHeader) {
			continue
		}
		positions = append(positions, model.Position{
			ID:         rec[0],
			Symbol:     rec[1],
			Direction:  model.Direction(rec[2]),
			Entry:      parseFloat(rec[3]),
			StopLoss:   parseFloat(rec[4]),
			TP1:        parseFloat(rec[5]),
			TP2:        parseFloat(rec[6]),
			SignalTime: rec[7],
			RiskReward: parseFloat(rec[8]),
			Status:     model.Status(rec[9]),
			TP1HitTime: rec[10],
			TP2HitTime: rec[11],
			SLHitTime:  rec[12],
		})
	}
	return positions, nil
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func record(p model.Position) []string {
	return []string{
		p.ID,
		p.Symbol,
		string(p.Direction),
		fmt.Sprintf("%.8f", p.Entry),
		fmt.Sprintf("%.8f", p.StopLoss),
		fmt.Sprintf("%.8f", p.TP1),
		fmt.Sprintf("%.8f", p.TP2),
		p.SignalTime,
		fmt.Sprintf("%.2f", p.RiskReward),
		string(p.Status),
		p.TP1HitTime,
		p.TP2HitTime,
		p.SLHitTime,
	}
}

// Save rewrites the whole file: header plus one row per position.
func (l *CSVLedger) Save(positions []model.Position) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Create(l.path)
	if err != nil {
		return fmt.Errorf("rewrite positions file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range positions {
		if err := w.Write(record(p)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Append adds one position, rejecting an identity that already exists.
func (l *CSVLedger) Append(pos model.Position) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.load()
	if err != nil {
		return err
	}
	for _, p := range existing {
		if p.ID == pos.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, pos.ID)
		}
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("append positions file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(record(pos)); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (l *CSVLedger) Close() error { return nil }
