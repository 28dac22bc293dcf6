package model

import "time"

// Candle represents a single candlestick bar.
type Candle struct {
	Open      float64
	High      float64
	Low       float64
	Close     float64
	CloseTime time.Time
}

// Series holds the recent bars for one symbol, oldest first.
type Series struct {
	Symbol string
	Bars   []Candle
}

func (s *Series) Len() int { return len(s.Bars) }

// Last returns the most recent bar.
func (s *Series) Last() (Candle, bool) {
	if len(s.Bars) == 0 {
		return Candle{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// Closes returns the close prices in bar order.
func (s *Series) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Highs returns the high prices in bar order.
func (s *Series) Highs() []float64 {
	highs := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		highs[i] = b.High
	}
	return highs
}

// Lows returns the low prices in bar order.
func (s *Series) Lows() []float64 {
	lows := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		lows[i] = b.Low
	}
	return lows
}

// LastBar is the latest observed close/high/low for a symbol within a scan
// cycle, used to advance open positions.
type LastBar struct {
	Close float64
	High  float64
	Low   float64
}
