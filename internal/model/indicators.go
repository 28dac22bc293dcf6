package model

import "time"

// IndicatorSnapshot holds all indicators computed for one symbol in one cycle.
// BollMid doubles as the SMA over the Bollinger period.
type IndicatorSnapshot struct {
	Symbol    string
	Price     float64 // latest close
	CloseTime time.Time

	BollLower float64
	BollMid   float64
	BollUpper float64
	RSI       float64
	ATR       float64
}
