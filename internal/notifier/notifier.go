package notifier

import "SignalSentry/internal/model"

// Notifier presents new signals and statistics summaries. Implementations
// must never fail the scan pipeline; delivery errors are handled internally.
type Notifier interface {
	SignalOpened(pos *model.Position)
	Summary(stats model.Stats)
}

// Multi fans a notification out to several notifiers.
type Multi []Notifier

func (m Multi) SignalOpened(pos *model.Position) {
	for _, n := range m {
		n.SignalOpened(pos)
	}
}

func (m Multi) Summary(stats model.Stats) {
	for _, n := range m {
		n.Summary(stats)
	}
}
