package tracker

import (
	"testing"
	"time"

	"SignalSentry/internal/model"
)

func pendingLong() model.Position {
	return model.Position{
		ID:         "ZORA_USDT_LONG_2024-03-01_12:15:00",
		Symbol:     "ZORA_USDT",
		Direction:  model.Long,
		Entry:      100,
		StopLoss:   97.6,
		TP1:        101.8,
		TP2:        103.6,
		SignalTime: "2024-03-01 12:15:00",
		RiskReward: 1.5,
		Status:     model.StatusPending,
	}
}

func pendingShort() model.Position {
	return model.Position{
		ID:         "ZORA_USDT_SHORT_2024-03-01_12:15:00",
		Symbol:     "ZORA_USDT",
		Direction:  model.Short,
		Entry:      100,
		StopLoss:   102.4,
		TP1:        98.2,
		TP2:        96.4,
		SignalTime: "2024-03-01 12:15:00",
		RiskReward: 1.5,
		Status:     model.StatusPending,
	}
}

var now = time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

func TestUpdate_StopBeatsTP2(t *testing.T) {
	// The bar crosses both the stop and tp2; the stop must win.
	positions := []model.Position{pendingLong()}
	latest := map[string]model.LastBar{
		"ZORA_USDT": {Close: 100, High: 104, Low: 96},
	}

	outcomes := New().Update(positions, latest, now)
	if len(outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %d", len(outcomes))
	}
	if outcomes[0].Event != "STOP" {
		t.Fatalf("expected STOP, got %s", outcomes[0].Event)
	}
	p := positions[0]
	if p.Status != model.StatusStopped {
		t.Errorf("expected STOPPED, got %s", p.Status)
	}
	if p.SLHitTime == "" {
		t.Error("stop hit time must be recorded")
	}
	if p.TP1HitTime != "" || p.TP2HitTime != "" {
		t.Error("tp hit times must stay untouched when the stop fires")
	}
}

func TestUpdate_TP1Transition(t *testing.T) {
	positions := []model.Position{pendingLong()}
	latest := map[string]model.LastBar{
		"ZORA_USDT": {Close: 102, High: 102, Low: 99},
	}

	outcomes := New().Update(positions, latest, now)
	if len(outcomes) != 1 || outcomes[0].Event != "TP1" {
		t.Fatalf("expected TP1 outcome, got %+v", outcomes)
	}
	p := positions[0]
	if p.Status != model.StatusTP1Hit {
		t.Errorf("expected TP1_HIT, got %s", p.Status)
	}
	if p.TP1HitTime == "" || p.TP2HitTime != "" {
		t.Error("only tp1 hit time must be recorded")
	}
}

func TestUpdate_DirectTP2StampsTP1(t *testing.T) {
	positions := []model.Position{pendingLong()}
	latest := map[string]model.LastBar{
		"ZORA_USDT": {Close: 104, High: 104, Low: 99},
	}

	outcomes := New().Update(positions, latest, now)
	if len(outcomes) != 1 || outcomes[0].Event != "TP2" {
		t.Fatalf("expected TP2 outcome, got %+v", outcomes)
	}
	p := positions[0]
	if p.Status != model.StatusClosedTP2 {
		t.Errorf("expected CLOSED_TP2, got %s", p.Status)
	}
	if p.TP1HitTime == "" {
		t.Error("a direct tp2 close must also stamp the tp1 hit time")
	}
	if p.TP1HitTime != p.TP2HitTime {
		t.Error("tp1 and tp2 stamps must match on a direct close")
	}
}

func TestUpdate_TP1ThenStop(t *testing.T) {
	// No break-even move after tp1: the original stop stays live.
	positions := []model.Position{pendingLong()}
	trk := New()

	latest := map[string]model.LastBar{"ZORA_USDT": {Close: 102, High: 102, Low: 99}}
	if out := trk.Update(positions, latest, now); len(out) != 1 || out[0].Event != "TP1" {
		t.Fatalf("expected TP1 first, got %+v", out)
	}
	tp1Stamp := positions[0].TP1HitTime

	latest = map[string]model.LastBar{"ZORA_USDT": {Close: 97, High: 98, Low: 97}}
	out := trk.Update(positions, latest, now.Add(15*time.Minute))
	if len(out) != 1 || out[0].Event != "STOP" {
		t.Fatalf("expected STOP after TP1, got %+v", out)
	}
	p := positions[0]
	if p.Status != model.StatusStopped {
		t.Errorf("expected STOPPED, got %s", p.Status)
	}
	if p.TP1HitTime != tp1Stamp {
		t.Error("tp1 hit time must never be overwritten")
	}
}

func TestUpdate_OneTransitionPerPass(t *testing.T) {
	// tp1 and tp2 both crossed, stop untouched: only the tp2 transition runs.
	positions := []model.Position{pendingLong()}
	latest := map[string]model.LastBar{
		"ZORA_USDT": {Close: 103, High: 105, Low: 100},
	}

	outcomes := New().Update(positions, latest, now)
	if len(outcomes) != 1 {
		t.Fatalf("expected exactly one transition, got %d", len(outcomes))
	}
	if positions[0].Status != model.StatusClosedTP2 {
		t.Errorf("expected CLOSED_TP2, got %s", positions[0].Status)
	}
}

func TestUpdate_GraceCycle(t *testing.T) {
	positions := []model.Position{pendingLong()}
	trk := New()
	trk.MarkFresh(positions[0].ID)

	// The bar would stop the position, but it was opened this cycle.
	latest := map[string]model.LastBar{"ZORA_USDT": {Close: 96, High: 98, Low: 96}}
	if out := trk.Update(positions, latest, now); len(out) != 0 {
		t.Fatalf("fresh position must not transition, got %+v", out)
	}
	if positions[0].Status != model.StatusPending {
		t.Errorf("expected PENDING after grace pass, got %s", positions[0].Status)
	}

	// Next cycle the same bar takes effect.
	out := trk.Update(positions, latest, now.Add(15*time.Minute))
	if len(out) != 1 || out[0].Event != "STOP" {
		t.Fatalf("expected STOP on the following cycle, got %+v", out)
	}
}

func TestUpdate_TerminalNeverMutates(t *testing.T) {
	stopped := pendingLong()
	stopped.Status = model.StatusStopped
	stopped.SLHitTime = "2024-03-01 12:30:00"
	closed := pendingShort()
	closed.Status = model.StatusClosedTP2
	closed.TP1HitTime = "2024-03-01 12:30:00"
	closed.TP2HitTime = "2024-03-01 12:30:00"
	positions := []model.Position{stopped, closed}

	latest := map[string]model.LastBar{
		"ZORA_USDT": {Close: 120, High: 130, Low: 50},
	}
	if out := New().Update(positions, latest, now); len(out) != 0 {
		t.Fatalf("terminal positions must not transition, got %+v", out)
	}
	if positions[0] != stopped || positions[1] != closed {
		t.Error("terminal positions must not be mutated")
	}
}

func TestUpdate_ShortMirror(t *testing.T) {
	// Stop checked against the high for a SHORT.
	positions := []model.Position{pendingShort()}
	latest := map[string]model.LastBar{
		"ZORA_USDT": {Close: 102, High: 103, Low: 95},
	}
	out := New().Update(positions, latest, now)
	if len(out) != 1 || out[0].Event != "STOP" {
		t.Fatalf("expected SHORT STOP, got %+v", out)
	}

	// Targets checked against the low.
	positions = []model.Position{pendingShort()}
	latest = map[string]model.LastBar{
		"ZORA_USDT": {Close: 97, High: 101, Low: 96},
	}
	out = New().Update(positions, latest, now)
	if len(out) != 1 || out[0].Event != "TP2" {
		t.Fatalf("expected SHORT TP2, got %+v", out)
	}
	if positions[0].TP1HitTime == "" {
		t.Error("direct SHORT tp2 must stamp tp1 too")
	}
}

func TestUpdate_MissingSymbolSkipped(t *testing.T) {
	positions := []model.Position{pendingLong()}
	// No bar for the symbol this cycle.
	if out := New().Update(positions, map[string]model.LastBar{}, now); len(out) != 0 {
		t.Fatalf("expected no outcome without a bar, got %+v", out)
	}
	if positions[0].Status != model.StatusPending {
		t.Error("position must stay PENDING when its symbol has no data")
	}
}
