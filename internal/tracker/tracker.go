package tracker

import (
	"fmt"
	"time"

	"SignalSentry/internal/model"
)

// Outcome describes one position transition made during an update pass.
type Outcome struct {
	Position model.Position // copy taken after the transition
	Event    string         // "TP1", "TP2" or "STOP"
	Bar      model.LastBar  // the bar that triggered the transition
}

// String renders the outcome as an event-log line.
func (o Outcome) String() string {
	p := o.Position
	switch o.Event {
	case "STOP":
		trigger := o.Bar.Low
		if p.Direction == model.Short {
			trigger = o.Bar.High
		}
		return fmt.Sprintf("[RESULT] %s %s STOP | Entry:%.8f | SL:%.8f | Trigger:%.8f | Time:%s",
			p.Symbol, p.Direction, p.Entry, p.StopLoss, trigger, p.SLHitTime)
	case "TP2":
		trigger := o.Bar.High
		if p.Direction == model.Short {
			trigger = o.Bar.Low
		}
		return fmt.Sprintf("[RESULT] %s %s TP2 | Entry:%.8f | TP2:%.8f | Trigger:%.8f | Time:%s",
			p.Symbol, p.Direction, p.Entry, p.TP2, trigger, p.TP2HitTime)
	default:
		trigger := o.Bar.High
		if p.Direction == model.Short {
			trigger = o.Bar.Low
		}
		return fmt.Sprintf("[RESULT] %s %s TP1 | Entry:%.8f | TP1:%.8f | Trigger:%.8f | Time:%s",
			p.Symbol, p.Direction, p.Entry, p.TP1, trigger, p.TP1HitTime)
	}
}

// Tracker advances open positions against newly observed bars. Positions
// opened in the current cycle are exempt until the next pass, so a signal is
// never resolved by the very bar that spawned it.
type Tracker struct {
	fresh map[string]struct{}
}

// New creates a Tracker with an empty grace set.
func New() *Tracker {
	return &Tracker{fresh: make(map[string]struct{})}
}

// MarkFresh exempts a newly opened position from the next update pass.
func (t *Tracker) MarkFresh(id string) {
	t.fresh[id] = struct{}{}
}

// Update runs one evaluation pass, mutating positions in place. latest maps
// symbol to the most recent bar observed this cycle. At most one transition
// happens per position per pass; when a single bar crosses several thresholds
// the stop wins over tp2, and tp2 over tp1. The fresh set is cleared
// afterwards so this cycle's new positions become eligible next pass.
func (t *Tracker) Update(positions []model.Position, latest map[string]model.LastBar, now time.Time) []Outcome {
	nowStr := now.Format(model.TimeFormat)
	var outcomes []Outcome

	for i := range positions {
		p := &positions[i]
		if _, ok := t.fresh[p.ID]; ok {
			continue
		}
		if !p.Status.Open() {
			continue
		}
		bar, ok := latest[p.Symbol]
		if !ok {
			continue
		}

		var event string
		switch p.Direction {
		case model.Long:
			event = advanceLong(p, bar, nowStr)
		case model.Short:
			event = advanceShort(p, bar, nowStr)
		}
		if event != "" {
			outcomes = append(outcomes, Outcome{Position: *p, Event: event, Bar: bar})
		}
	}

	t.fresh = make(map[string]struct{})
	return outcomes
}

// advanceLong applies at most one transition for a LONG: the stop is checked
// against the bar low, the targets against the bar high.
func advanceLong(p *model.Position, bar model.LastBar, now string) string {
	if bar.Low <= p.StopLoss && p.SLHitTime == "" {
		p.SLHitTime = now
		p.Status = model.StatusStopped
		return "STOP"
	}
	if bar.High >= p.TP2 && p.TP2HitTime == "" {
		if p.TP1HitTime == "" {
			p.TP1HitTime = now
		}
		p.TP2HitTime = now
		p.Status = model.StatusClosedTP2
		return "TP2"
	}
	if bar.High >= p.TP1 && p.TP1HitTime == "" {
		p.TP1HitTime = now
		p.Status = model.StatusTP1Hit
		return "TP1"
	}
	return ""
}

// advanceShort mirrors advanceLong: the stop is checked against the bar high,
// the targets against the bar low.
func advanceShort(p *model.Position, bar model.LastBar, now string) string {
	if bar.High >= p.StopLoss && p.SLHitTime == "" {
		p.SLHitTime = now
		p.Status = model.StatusStopped
		return "STOP"
	}
	if bar.Low <= p.TP2 && p.TP2HitTime == "" {
		if p.TP1HitTime == "" {
			p.TP1HitTime = now
		}
		p.TP2HitTime = now
		p.Status = model.StatusClosedTP2
		return "TP2"
	}
	if bar.Low <= p.TP1 && p.TP1HitTime == "" {
		p.TP1HitTime = now
		p.Status = model.StatusTP1Hit
		return "TP1"
	}
	return ""
}
