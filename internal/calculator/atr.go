package calculator

import (
	"errors"
	"math"
)

// CalculateATR computes the average true range over the last `period` bars.
// True range compares each bar against the previous close, so period+1 bars
// are required.
func CalculateATR(highs, lows, closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	n := len(closes)
	if n < period+1 || len(highs) < n || len(lows) < n {
		return 0, errors.New("not enough data for ATR calculation")
	}

	sum := 0.0
	for i := n - period; i < n; i++ {
		tr := highs[i] - lows[i]
		if v := math.Abs(highs[i] - closes[i-1]); v > tr {
			tr = v
		}
		if v := math.Abs(lows[i] - closes[i-1]); v > tr {
			tr = v
		}
		sum += tr
	}
	return sum / float64(period), nil
}
