package calculator

import (
	"math"
	"testing"
)

func TestCalculateSMA(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	sma, err := CalculateSMA(values, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sma != 4.0 {
		t.Errorf("expected 4.0, got %v", sma)
	}

	if _, err := CalculateSMA(values, 6); err == nil {
		t.Error("expected error for period longer than series")
	}
	if _, err := CalculateSMA(values, 0); err == nil {
		t.Error("expected error for zero period")
	}
}

func TestCalculateRSI_MonotonicRise(t *testing.T) {
	// Strictly rising closes have zero losses in the window, so RSI must be
	// exactly 100.
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	rsi, err := CalculateRSI(closes, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 100.0 {
		t.Errorf("expected RSI 100.0 for rising series, got %v", rsi)
	}
}

func TestCalculateRSI_MonotonicFall(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 - float64(i)
	}
	rsi, err := CalculateRSI(closes, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 0.0 {
		t.Errorf("expected RSI 0.0 for falling series, got %v", rsi)
	}
}

func TestCalculateRSI_WindowedAverage(t *testing.T) {
	// Two gains of 2 and two losses of 1 over a period of 4:
	// avg gain 1.0, avg loss 0.5, RS 2, RSI = 100 - 100/3.
	closes := []float64{10, 12, 11, 13, 12}
	rsi, err := CalculateRSI(closes, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 100.0 - 100.0/3.0
	if math.Abs(rsi-want) > 1e-9 {
		t.Errorf("expected RSI %v, got %v", want, rsi)
	}
}

func TestCalculateRSI_InsufficientData(t *testing.T) {
	closes := []float64{1, 2, 3}
	if _, err := CalculateRSI(closes, 14); err == nil {
		t.Error("expected error for short series")
	}
	// Exactly period closes is still one short: period+1 are required.
	if _, err := CalculateRSI(make([]float64, 14), 14); err == nil {
		t.Error("expected error for period-length series")
	}
}

func TestCalculateBollinger_Symmetry(t *testing.T) {
	closes := []float64{9, 11, 10, 12, 8, 10, 13, 7, 10, 11, 9, 12, 10, 8, 11, 10, 9, 13, 10, 12}
	lower, mid, upper, err := CalculateBollinger(closes, 20, 2.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs((upper-mid)-(mid-lower)) > 1e-9 {
		t.Errorf("band not symmetric: lower=%v mid=%v upper=%v", lower, mid, upper)
	}
	if upper < mid || lower > mid {
		t.Errorf("band ordering violated: lower=%v mid=%v upper=%v", lower, mid, upper)
	}
}

func TestCalculateBollinger_PopulationStd(t *testing.T) {
	// Window {1,2,3,4}: mean 2.5, population variance 1.25.
	closes := []float64{1, 2, 3, 4}
	lower, mid, upper, err := CalculateBollinger(closes, 4, 2.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	std := math.Sqrt(1.25)
	if math.Abs(mid-2.5) > 1e-9 {
		t.Errorf("expected mid 2.5, got %v", mid)
	}
	if math.Abs(upper-(2.5+2*std)) > 1e-9 {
		t.Errorf("expected upper %v, got %v", 2.5+2*std, upper)
	}
	if math.Abs(lower-(2.5-2*std)) > 1e-9 {
		t.Errorf("expected lower %v, got %v", 2.5-2*std, lower)
	}
}

func TestCalculateBollinger_InsufficientData(t *testing.T) {
	if _, _, _, err := CalculateBollinger([]float64{1, 2, 3}, 20, 2.0); err == nil {
		t.Error("expected error for short series")
	}
}

func TestCalculateATR_ConstantSeries(t *testing.T) {
	// high == low == close everywhere, so every true range is zero.
	n := 20
	highs := make([]float64, n)
	lows := make([]float64, n)
	closes := make([]float64, n)
	for i := 0; i < n; i++ {
		highs[i], lows[i], closes[i] = 50, 50, 50
	}
	atr, err := CalculateATR(highs, lows, closes, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atr != 0 {
		t.Errorf("expected ATR 0 for constant series, got %v", atr)
	}
}

func TestCalculateATR_GapAgainstPrevClose(t *testing.T) {
	// Second bar gaps above the previous close: TR = |high - prev close| = 5.
	highs := []float64{10, 14}
	lows := []float64{9, 13}
	closes := []float64{9, 13.5}
	atr, err := CalculateATR(highs, lows, closes, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atr != 5 {
		t.Errorf("expected ATR 5, got %v", atr)
	}
}

func TestCalculateATR_InsufficientData(t *testing.T) {
	v := make([]float64, 14)
	if _, err := CalculateATR(v, v, v, 14); err == nil {
		t.Error("expected error: ATR needs period+1 bars")
	}
}
