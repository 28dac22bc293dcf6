package model

import "strings"

// Direction of a signal.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// Status is the lifecycle state of a tracked position.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusTP1Hit    Status = "TP1_HIT"
	StatusClosedTP2 Status = "CLOSED_TP2"
	StatusStopped   Status = "STOPPED"
)

// Open reports whether the position is still being tracked.
func (s Status) Open() bool { return s == StatusPending || s == StatusTP1Hit }

// Terminal reports whether the status can never change again.
func (s Status) Terminal() bool { return s == StatusClosedTP2 || s == StatusStopped }

// Position is one emitted signal and its outcome tracking. Timestamps use
// TimeFormat; an empty hit time means the level was never reached.
type Position struct {
	ID         string
	Symbol     string
	Direction  Direction
	Entry      float64
	StopLoss   float64
	TP1        float64
	TP2        float64
	SignalTime string
	RiskReward float64
	Status     Status
	TP1HitTime string
	TP2HitTime string
	SLHitTime  string
}

// PositionID builds the deterministic identity of a signal. Two signals for
// the same symbol, direction and candle must collide here so duplicates can
// be rejected instead of silently overwritten.
func PositionID(symbol string, dir Direction, signalTime string) string {
	return symbol + "_" + string(dir) + "_" + strings.ReplaceAll(signalTime, " ", "_")
}
