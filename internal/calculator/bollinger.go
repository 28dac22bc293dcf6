package calculator

import (
	"errors"
	"math"
)

// CalculateBollinger returns the lower, middle and upper Bollinger bands over
// the last `period` closes. The middle band is the SMA; the band width is mult
// times the population standard deviation of the window.
func CalculateBollinger(closes []float64, period int, mult float64) (lower, mid, upper float64, err error) {
	if len(closes) < period {
		return 0, 0, 0, errors.New("not enough data for Bollinger calculation")
	}
	mid, err = CalculateSMA(closes, period)
	if err != nil {
		return 0, 0, 0, err
	}

	window := closes[len(closes)-period:]
	std := 0.0
	if len(window) >= 2 {
		var sq float64
		for _, v := range window {
			d := v - mid
			sq += d * d
		}
		std = math.Sqrt(sq / float64(len(window)))
	}

	return mid - mult*std, mid, mid + mult*std, nil
}
