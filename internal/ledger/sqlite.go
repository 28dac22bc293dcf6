package ledger

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"SignalSentry/internal/model"
)

// SQLiteLedger persists positions in a SQLite database.
type SQLiteLedger struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteLedger opens (or creates) the database and runs migrations.
func NewSQLiteLedger(dbPath string) (*SQLiteLedger, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	l := &SQLiteLedger{db: db}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite ledger opened: %s", dbPath)
	return l, nil
}

func (l *SQLiteLedger) migrate() error {
	_, err := l.db.Exec(`CREATE TABLE IF NOT EXISTS positions (
		seq          INTEGER PRIMARY KEY AUTOINCREMENT,
		id           TEXT NOT NULL UNIQUE,
		symbol       TEXT NOT NULL,
		direction    TEXT NOT NULL,
		entry        REAL,
		sl           REAL,
		tp1          REAL,
		tp2          REAL,
		signal_time  TEXT,
		rr           REAL,
		status       TEXT,
		tp1_hit_time TEXT DEFAULT '',
		tp2_hit_time TEXT DEFAULT '',
		sl_hit_time  TEXT DEFAULT ''
	)`)
	return err
}

const insertSQL = `INSERT INTO positions
	(id, symbol, direction, entry, sl, tp1, tp2, signal_time, rr, status,
	 tp1_hit_time, tp2_hit_time, sl_hit_time)
	VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`

func insertArgs(p model.Position) []interface{} {
	return []interface{}{
		p.ID, p.Symbol, string(p.Direction), p.Entry, p.StopLoss,
		p.TP1, p.TP2, p.SignalTime, p.RiskReward, string(p.Status),
		p.TP1HitTime, p.TP2HitTime, p.SLHitTime,
	}
}

// Load reads every position in insertion order.
func (l *SQLiteLedger) Load() ([]model.Position, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.db.Query(`SELECT id, symbol, direction, entry, sl, tp1, tp2,
		signal_time, rr, status, tp1_hit_time, tp2_hit_time, sl_hit_time
		FROM positions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("load positions: %w", err)
	}
	defer rows.Close()

	var positions []model.Position
	for rows.Next() {
		var p model.Position
		var dir, status string
		if err := rows.Scan(&p.ID, &p.Symbol, &dir, &p.Entry, &p.StopLoss,
			&p.TP1, &p.TP2, &p.SignalTime, &p.RiskReward, &status,
			&p.TP1HitTime, &p.TP2HitTime, &p.SLHitTime); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		p.Direction = model.Direction(dir)
		p.Status = model.Status(status)
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

// Save replaces the whole table in one transaction.
func (l *SQLiteLedger) Save(positions []model.Position) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM positions`); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear positions: %w", err)
	}
	for _, p := range positions {
		if _, err := tx.Exec(insertSQL, insertArgs(p)...); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

// Append inserts one position; the unique id column rejects duplicates.
func (l *SQLiteLedger) Append(pos model.Position) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.db.Exec(insertSQL, insertArgs(pos)...); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", ErrDuplicateID, pos.ID)
		}
		return fmt.Errorf("append %s: %w", pos.ID, err)
	}
	return nil
}

func (l *SQLiteLedger) Close() error {
	log.Println("[INFO] closing sqlite ledger")
	return l.db.Close()
}
