package strategy

import (
	"time"

	"SignalSentry/internal/model"
)

// Params are the tunable gates for signal generation.
type Params struct {
	MinLongPct  float64 // minimum profit potential for a LONG, percent
	MinShortPct float64 // minimum profit potential for a SHORT, percent
	SLATRMult   float64 // ATR multiplier for the stop
	TPATRMult   float64 // ATR multiplier for the far target
	RRMin       float64 // minimum risk/reward ratio
}

// DefaultParams mirrors the stock tuning of the scanner.
func DefaultParams() Params {
	return Params{
		MinLongPct:  1.5,
		MinShortPct: 1.5,
		SLATRMult:   1.2,
		TPATRMult:   1.8,
		RRMin:       1.2,
	}
}

// Evaluator decides whether an indicator snapshot constitutes a new signal.
// It remembers the last candle each (symbol, direction) alerted on, so one
// bar can never fire twice.
type Evaluator struct {
	params    Params
	lastAlert map[string]time.Time
}

// NewEvaluator creates an Evaluator with empty alert memory.
func NewEvaluator(p Params) *Evaluator {
	return &Evaluator{params: p, lastAlert: make(map[string]time.Time)}
}

// Evaluate returns a signal when the snapshot satisfies every gate, nil
// otherwise. hasOpenLong / hasOpenShort suppress the corresponding direction
// while a position is still being tracked for the symbol.
func (e *Evaluator) Evaluate(snap *model.IndicatorSnapshot, hasOpenLong, hasOpenShort bool) *model.Signal {
	if snap == nil {
		return nil
	}
	if snap.Price < snap.BollLower && snap.RSI < 30 && !hasOpenLong {
		if sig := e.buildLong(snap); sig != nil {
			return sig
		}
	}
	if snap.Price > snap.BollUpper && snap.RSI > 70 && !hasOpenShort {
		if sig := e.buildShort(snap); sig != nil {
			return sig
		}
	}
	return nil
}

func (e *Evaluator) alerted(symbol string, dir model.Direction, candle time.Time) bool {
	last, ok := e.lastAlert[symbol+"_"+string(dir)]
	return ok && last.Equal(candle)
}

func (e *Evaluator) markAlerted(symbol string, dir model.Direction, candle time.Time) {
	e.lastAlert[symbol+"_"+string(dir)] = candle
}

func (e *Evaluator) buildLong(snap *model.IndicatorSnapshot) *model.Signal {
	if e.alerted(snap.Symbol, model.Long, snap.CloseTime) {
		return nil
	}
	price := snap.Price
	sl := price - e.params.SLATRMult*snap.ATR
	tp2 := price + e.params.TPATRMult*snap.ATR
	tp1 := price + (tp2-price)*0.5

	pct := (tp2 - price) / price * 100
	if pct < e.params.MinLongPct {
		return nil
	}

	risk := price - sl
	reward := tp2 - price
	rr := 0.0
	if risk > 0 {
		rr = reward / risk
	}
	if rr < e.params.RRMin {
		return nil
	}

	e.markAlerted(snap.Symbol, model.Long, snap.CloseTime)
	return &model.Signal{
		Symbol:       snap.Symbol,
		Direction:    model.Long,
		Entry:        price,
		StopLoss:     sl,
		TP1:          tp1,
		TP2:          tp2,
		RiskReward:   rr,
		PotentialPct: pct,
		CandleTime:   snap.CloseTime,
	}
}

func (e *Evaluator) buildShort(snap *model.IndicatorSnapshot) *model.Signal {
	if e.alerted(snap.Symbol, model.Short, snap.CloseTime) {
		return nil
	}
	price := snap.Price
	sl := price + e.params.SLATRMult*snap.ATR
	tp2 := price - e.params.TPATRMult*snap.ATR
	tp1 := price - (price-tp2)*0.5

	pct := (price - tp2) / price * 100
	if pct < e.params.MinShortPct {
		return nil
	}

	risk := sl - price
	reward := price - tp2
	rr := 0.0
	if risk > 0 {
		rr = reward / risk
	}
	if rr < e.params.RRMin {
		return nil
	}

	e.markAlerted(snap.Symbol, model.Short, snap.CloseTime)
	return &model.Signal{
		Symbol:       snap.Symbol,
		Direction:    model.Short,
		Entry:        price,
		StopLoss:     sl,
		TP1:          tp1,
		TP2:          tp2,
		RiskReward:   rr,
		PotentialPct: pct,
		CandleTime:   snap.CloseTime,
	}
}
