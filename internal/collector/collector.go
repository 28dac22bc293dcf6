package collector

import (
	"errors"
	"fmt"

	"SignalSentry/internal/calculator"
	"SignalSentry/internal/model"
)

// Indicator periods. The decision rule reads the Bollinger bands, RSI and ATR;
// these windows match the stock tuning of the scanner.
const (
	bollPeriod = 20
	bollMult   = 2.0
	rsiPeriod  = 14
	atrPeriod  = 14
)

// Result reports the outcome of collecting one symbol in a scan cycle.
// Series is set whenever the fetch succeeded, even if the history is too short
// for indicators, so the position tracker still sees the latest bar. Snapshot
// is set only when every indicator could be computed. A non-nil Err means the
// symbol produced no snapshot this cycle and why.
type Result struct {
	Symbol   string
	Series   *model.Series
	Snapshot *model.IndicatorSnapshot
	Err      error
}

// Skipped reports whether the symbol yielded no snapshot this cycle.
func (r Result) Skipped() bool { return r.Err != nil }

// Collector fetches price series and computes indicator snapshots.
type Collector struct {
	Fetcher  Fetcher
	Interval string
	Lookback int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, interval string, lookback int) *Collector {
	return &Collector{Fetcher: fetcher, Interval: interval, Lookback: lookback}
}

// Collect fetches the symbol's klines and computes its indicator snapshot.
func (c *Collector) Collect(symbol string) Result {
	series, err := c.Fetcher.FetchKlines(symbol, c.Interval, c.Lookback)
	if err != nil {
		return Result{Symbol: symbol, Err: fmt.Errorf("fetch: %w", err)}
	}
	if series.Len() == 0 {
		return Result{Symbol: symbol, Err: errors.New("no bars returned")}
	}
	res := Result{Symbol: symbol, Series: series}

	closes := series.Closes()
	lower, mid, upper, err := calculator.CalculateBollinger(closes, bollPeriod, bollMult)
	if err != nil {
		res.Err = fmt.Errorf("bollinger: %w", err)
		return res
	}
	rsi, err := calculator.CalculateRSI(closes, rsiPeriod)
	if err != nil {
		res.Err = fmt.Errorf("rsi: %w", err)
		return res
	}
	atr, err := calculator.CalculateATR(series.Highs(), series.Lows(), closes, atrPeriod)
	if err != nil {
		res.Err = fmt.Errorf("atr: %w", err)
		return res
	}

	last, _ := series.Last()
	res.Snapshot = &model.IndicatorSnapshot{
		Symbol:    symbol,
		Price:     last.Close,
		CloseTime: last.CloseTime,
		BollLower: lower,
		BollMid:   mid,
		BollUpper: upper,
		RSI:       rsi,
		ATR:       atr,
	}
	return res
}

// CollectAll collects every symbol in order. Per-symbol failures surface as
// skip results, never as an error for the whole pass.
func (c *Collector) CollectAll(symbols []string) []Result {
	results := make([]Result, 0, len(symbols))
	for _, symbol := range symbols {
		results = append(results, c.Collect(symbol))
	}
	return results
}
