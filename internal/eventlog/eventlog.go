package eventlog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger appends signal and outcome events to one plain-text file per day
// (logs/2006-01-02.txt).
type Logger struct {
	dir string
	mu  sync.Mutex
}

// New creates the log directory if needed.
func New(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log folder: %w", err)
	}
	return &Logger{dir: dir}, nil
}

// Event appends one line to today's file. Failures are logged, never
// returned: event logging must not interrupt a scan cycle. A nil Logger is a
// no-op.
func (l *Logger) Event(text string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	name := filepath.Join(l.dir, time.Now().Format("2006-01-02")+".txt")
	f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("[WARN] open event log: %v", err)
		return
	}
	defer f.Close()
	if _, err := f.WriteString(text + "\n"); err != nil {
		log.Printf("[WARN] write event log: %v", err)
	}
}
