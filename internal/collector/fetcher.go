package collector

import "SignalSentry/internal/model"

// Fetcher defines the interface for talking to a futures exchange.
type Fetcher interface {
	// FetchContracts returns every tradable symbol on the exchange.
	FetchContracts() ([]string, error)
	// FetchTopByVolume ranks the allowed symbols by 24h volume, descending,
	// and returns at most topN of them.
	FetchTopByVolume(allowed []string, topN int) ([]string, error)
	// FetchKlines returns up to `lookback` bars for the symbol, oldest first.
	FetchKlines(symbol, interval string, lookback int) (*model.Series, error)
	Name() string
}
