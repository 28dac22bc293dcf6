package model

import "time"

// TimeFormat is used for signal and hit timestamps throughout.
const TimeFormat = "2006-01-02 15:04:05"

// Signal is the evaluator's decision to open a position.
type Signal struct {
	Symbol       string
	Direction    Direction
	Entry        float64
	StopLoss     float64
	TP1          float64
	TP2          float64
	RiskReward   float64
	PotentialPct float64
	CandleTime   time.Time // close time of the bar that produced the signal
}

// Position converts the signal into a fresh PENDING position.
func (s *Signal) Position() Position {
	ts := s.CandleTime.Local().Format(TimeFormat)
	return Position{
		ID:         PositionID(s.Symbol, s.Direction, ts),
		Symbol:     s.Symbol,
		Direction:  s.Direction,
		Entry:      s.Entry,
		StopLoss:   s.StopLoss,
		TP1:        s.TP1,
		TP2:        s.TP2,
		SignalTime: ts,
		RiskReward: s.RiskReward,
		Status:     StatusPending,
	}
}

// Stats counts scan activity since process start.
type Stats struct {
	Cycles int
	Longs  int
	Shorts int
}
